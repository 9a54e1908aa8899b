package player

import "github.com/ivlev/slideplay/internal/scenario"

// Key is a keyboard key name as reported by the host.
type Key string

const (
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeySpace      Key = " "
	KeyEscape     Key = "Escape"
)

// HandleKey applies a key press and reports whether the host must suppress the key's
// default action. Navigation is dropped while a transition is running.
func (p *Player) HandleKey(k Key) bool {
	if !p.doc.Settings.EnableKeyboard || p.state == Exited {
		return false
	}
	switch k {
	case KeyArrowDown, KeyArrowRight, KeySpace:
		p.Next()
		return true
	case KeyArrowUp, KeyArrowLeft:
		p.Previous()
		return true
	case KeyEscape:
		if !p.doc.Settings.ShowExitButton {
			return false
		}
		p.Exit()
		return true
	}
	return false
}

// HandleSwipe applies a drag of (dx, dy) surface units. Upward and leftward drags move
// forward. Horizontal drags navigate only in horizontal mode. It reports whether the
// drag was taken as navigation.
func (p *Player) HandleSwipe(dx, dy float64) bool {
	if !p.doc.Settings.EnableSwipe || p.finished() {
		return false
	}
	ax, ay := abs(dx), abs(dy)
	threshold := p.opts.SwipeThreshold

	switch {
	case ay > ax && ay > threshold:
		if dy < 0 {
			p.Next()
		} else {
			p.Previous()
		}
		return true
	case ax > ay && ax > threshold && p.doc.Settings.Navigation == scenario.NavigationHorizontal:
		if dx < 0 {
			p.Next()
		} else {
			p.Previous()
		}
		return true
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
