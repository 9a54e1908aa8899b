package player

import (
	"fmt"
	"slices"
	"time"
)

// State is the controller's lifecycle phase.
type State int

const (
	Loading State = iota
	Ready
	Transitioning
	Completed
	Exited
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Transitioning:
		return "transitioning"
	case Completed:
		return "completed"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st := Loading; st <= Exited; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown playback state %q", text)
}

// Interaction is one learner action recorded during playback.
type Interaction struct {
	SlideID    string    `json:"slideId"`
	SlideIndex int       `json:"slideIndex"`
	Kind       string    `json:"kind"`
	Value      string    `json:"value,omitempty"`
	At         time.Time `json:"at"`
}

// Result is reported to the host when the last slide is passed.
type Result struct {
	CurrentSlide    int           `json:"currentSlide"`
	TotalSlides     int           `json:"totalSlides"`
	CompletedSlides []int         `json:"completedSlides"`
	StartedAt       time.Time     `json:"startedAt"`
	Interactions    []Interaction `json:"interactions"`
}

// PlaybackState is a read-only snapshot of the controller.
type PlaybackState struct {
	State           State         `json:"state"`
	CurrentSlide    int           `json:"currentSlide"`
	TotalSlides     int           `json:"totalSlides"`
	IsPlaying       bool          `json:"isPlaying"`
	IsMuted         bool          `json:"isMuted"`
	AudioTime       float64       `json:"audioTime"`
	Duration        float64       `json:"duration"`
	Subtitle        string        `json:"subtitle,omitempty"`
	IsTransitioning bool          `json:"isTransitioning"`
	CompletedSlides []int         `json:"completedSlides"`
	StartedAt       time.Time     `json:"startedAt"`
	Interactions    []Interaction `json:"interactions,omitempty"`
}

// Progress is the visited share of the document, 0..1.
func (s PlaybackState) Progress() float64 {
	if s.TotalSlides == 0 {
		return 0
	}
	return float64(len(s.CompletedSlides)) / float64(s.TotalSlides)
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
