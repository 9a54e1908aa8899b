package scenario

import "slices"

// CurrentVersion is the document version written by New.
const CurrentVersion = "1.0"

// NavigationMode controls which gestures move between slides.
type NavigationMode string

const (
	NavigationVertical   NavigationMode = "vertical"
	NavigationHorizontal NavigationMode = "horizontal"
	NavigationFree       NavigationMode = "free"
)

// Scenario is one immersive lesson: theme, playback settings and ordered slides.
type Scenario struct {
	Version     string   `json:"version"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Theme       Theme    `json:"theme"`
	Settings    Settings `json:"settings"`
	Slides      []Slide  `json:"slides"`
}

// Theme holds document-wide colors and the fallback background.
type Theme struct {
	PrimaryColor   string      `json:"primaryColor"`
	SecondaryColor string      `json:"secondaryColor"`
	TextColor      string      `json:"textColor,omitempty"`
	FontFamily     string      `json:"fontFamily,omitempty"`
	Background     *Background `json:"background,omitempty"`
}

// Settings configures playback behaviour.
type Settings struct {
	Navigation     NavigationMode `json:"navigation"`
	AutoAdvance    bool           `json:"autoAdvance"`
	ShowProgress   bool           `json:"showProgress"`
	EnableKeyboard bool           `json:"enableKeyboard"`
	EnableSwipe    bool           `json:"enableSwipe"`
	ShowExitButton bool           `json:"showExitButton"`
	AutoplayAudio  bool           `json:"autoplayAudio"`
	// TransitionDuration is in milliseconds; zero means the player default.
	TransitionDuration int `json:"transitionDuration,omitempty"`
}

// DefaultTheme returns the theme used for new documents.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   "#1e3a8a",
		SecondaryColor: "#f59e0b",
		TextColor:      "#ffffff",
		FontFamily:     "Inter, sans-serif",
		Background: &Background{
			Type:      BackgroundGradient,
			Colors:    []string{"#1e3a8a", "#0f172a"},
			Direction: "to-bottom",
		},
	}
}

// DefaultSettings returns the settings used for new documents.
func DefaultSettings() Settings {
	return Settings{
		Navigation:     NavigationVertical,
		ShowProgress:   true,
		EnableKeyboard: true,
		EnableSwipe:    true,
		ShowExitButton: true,
		AutoplayAudio:  true,
	}
}

// New creates a document holding exactly one title slide.
func New(title, slideID string) *Scenario {
	first := NewSlide(TypeTitle, slideID)
	if tc, ok := first.Content.(*TitleContent); ok && title != "" {
		tc.Title = title
	}
	return &Scenario{
		Version:  CurrentVersion,
		Title:    title,
		Theme:    DefaultTheme(),
		Settings: DefaultSettings(),
		Slides:   []Slide{first},
	}
}

// Clone returns a deep copy. Editors hand out clones so readers never see a value change.
func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	out := *s
	out.Theme.Background = s.Theme.Background.Clone()
	if s.Slides != nil {
		out.Slides = make([]Slide, len(s.Slides))
		for i := range s.Slides {
			out.Slides[i] = s.Slides[i].Clone()
		}
	}
	return &out
}

// Normalize replaces empty lists and maps with nil throughout the document, so an
// edited document compares equal to its exported and re-imported form.
func (s *Scenario) Normalize() {
	s.Theme.Background = s.Theme.Background.Clone()
	for i := range s.Slides {
		s.Slides[i] = s.Slides[i].Clone()
	}
}

// Reindex rewrites every slide's Order to its position in Slides.
func (s *Scenario) Reindex() {
	for i := range s.Slides {
		s.Slides[i].Order = i
	}
}

// IsCanonical reports whether orders are contiguous from 0 and match array positions.
func (s *Scenario) IsCanonical() bool {
	for i, sl := range s.Slides {
		if sl.Order != i {
			return false
		}
	}
	return true
}

// SlideIndex returns the array position of the slide with the given id, or -1.
func (s *Scenario) SlideIndex(id string) int {
	return slices.IndexFunc(s.Slides, func(sl Slide) bool { return sl.ID == id })
}

// At returns the slide at index i, or nil when i is out of range.
func (s *Scenario) At(i int) *Slide {
	if s == nil || i < 0 || i >= len(s.Slides) {
		return nil
	}
	return &s.Slides[i]
}

// TotalDuration sums the declared slide durations in seconds.
func (s *Scenario) TotalDuration() float64 {
	total := 0.0
	for _, sl := range s.Slides {
		if sl.Duration != nil {
			total += *sl.Duration
		}
	}
	return total
}
