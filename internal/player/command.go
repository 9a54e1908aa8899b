package player

import "fmt"

// Command is a serializable control message, used by remote hosts.
type Command struct {
	Name  string  `json:"command"`
	Index int     `json:"index,omitempty"`
	Key   Key     `json:"key,omitempty"`
	DX    float64 `json:"dx,omitempty"`
	DY    float64 `json:"dy,omitempty"`
	Kind  string  `json:"kind,omitempty"`
	Value string  `json:"value,omitempty"`
}

// Apply dispatches cmd. Only unknown command names are errors; commands the current
// state does not accept are dropped like any other input.
func (p *Player) Apply(cmd Command) error {
	switch cmd.Name {
	case "next":
		p.Next()
	case "previous":
		p.Previous()
	case "goto":
		p.GoTo(cmd.Index)
	case "key":
		p.HandleKey(cmd.Key)
	case "swipe":
		p.HandleSwipe(cmd.DX, cmd.DY)
	case "exit":
		p.Exit()
	case "interact":
		p.Interact(cmd.Kind, cmd.Value)
	case "toggle_play":
		p.TogglePlay()
	case "toggle_mute":
		p.ToggleMute()
	case "media_loaded":
		p.MediaLoaded()
	default:
		return fmt.Errorf("unknown command %q", cmd.Name)
	}
	return nil
}
