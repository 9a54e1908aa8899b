package scenario

import (
	"encoding/json"
)

// Content is the variant payload of a slide. The set of implementations is closed;
// Unsupported carries anything this version cannot interpret.
type Content interface {
	Type() SlideType
	clone() Content
}

// TitleContent is the opening card of a lesson or section.
type TitleContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Logo     string `json:"logo,omitempty"`
}

// TextContent is the "content" variant: heading, body, bullets and an optional image.
type TextContent struct {
	Title         string   `json:"title"`
	Text          string   `json:"text,omitempty"`
	Bullets       []string `json:"bullets,omitempty"`
	Image         string   `json:"image,omitempty"`
	ImagePosition string   `json:"imagePosition,omitempty"` // left | right
}

type QuoteContent struct {
	Quote  string `json:"quote"`
	Author string `json:"author,omitempty"`
	Role   string `json:"role,omitempty"`
	Image  string `json:"image,omitempty"`
}

type VideoContent struct {
	Title    string `json:"title,omitempty"`
	URL      string `json:"url"`
	Poster   string `json:"poster,omitempty"`
	Autoplay bool   `json:"autoplay,omitempty"`
	Loop     bool   `json:"loop,omitempty"`
	Muted    bool   `json:"muted,omitempty"`
}

// Stat is one figure on a stats slide.
type Stat struct {
	ID     string  `json:"id"`
	Value  float64 `json:"value"`
	Label  string  `json:"label"`
	Prefix string  `json:"prefix,omitempty"`
	Suffix string  `json:"suffix,omitempty"`
	Color  string  `json:"color,omitempty"`
}

type StatsContent struct {
	Title string `json:"title,omitempty"`
	Stats []Stat `json:"stats,omitempty"`
}

type CarouselItem struct {
	ID          string `json:"id"`
	Image       string `json:"image,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type CarouselContent struct {
	Title string         `json:"title,omitempty"`
	Items []CarouselItem `json:"items,omitempty"`
	// Interval rotates the visible item every Interval seconds; zero shows the first.
	Interval float64 `json:"interval,omitempty"`
}

// StageContent is the "scenario" variant: freely positioned, time-windowed elements.
type StageContent struct {
	Title    string    `json:"title,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

type Choice struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Feedback string `json:"feedback,omitempty"`
	Correct  bool   `json:"correct,omitempty"`
}

type InteractiveContent struct {
	Title    string   `json:"title,omitempty"`
	Question string   `json:"question"`
	Choices  []Choice `json:"choices,omitempty"`
}

type TimelineEvent struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type TimelineContent struct {
	Title  string          `json:"title,omitempty"`
	Events []TimelineEvent `json:"events,omitempty"`
}

type GalleryImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type GalleryContent struct {
	Title   string         `json:"title,omitempty"`
	Images  []GalleryImage `json:"images,omitempty"`
	Columns int            `json:"columns,omitempty"`
}

type ComparisonSide struct {
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
	Color string   `json:"color,omitempty"`
}

type ComparisonContent struct {
	Title string         `json:"title,omitempty"`
	Left  ComparisonSide `json:"left"`
	Right ComparisonSide `json:"right"`
}

// Unsupported keeps the payload of a slide whose tag is unknown or whose payload
// could not be decoded, so the document survives a round trip untouched.
type Unsupported struct {
	Tag    SlideType
	Fields map[string]any
}

func (c *TitleContent) Type() SlideType       { return TypeTitle }
func (c *TextContent) Type() SlideType        { return TypeContent }
func (c *QuoteContent) Type() SlideType       { return TypeQuote }
func (c *VideoContent) Type() SlideType       { return TypeVideo }
func (c *StatsContent) Type() SlideType       { return TypeStats }
func (c *CarouselContent) Type() SlideType    { return TypeCarousel }
func (c *StageContent) Type() SlideType       { return TypeScenario }
func (c *InteractiveContent) Type() SlideType { return TypeInteractive }
func (c *TimelineContent) Type() SlideType    { return TypeTimeline }
func (c *GalleryContent) Type() SlideType     { return TypeGallery }
func (c *ComparisonContent) Type() SlideType  { return TypeComparison }
func (c *Unsupported) Type() SlideType        { return c.Tag }

func (c *TitleContent) clone() Content { out := *c; return &out }
func (c *QuoteContent) clone() Content { out := *c; return &out }
func (c *VideoContent) clone() Content { out := *c; return &out }

func (c *TextContent) clone() Content {
	out := *c
	out.Bullets = cloneList(c.Bullets)
	return &out
}

func (c *StatsContent) clone() Content {
	out := *c
	out.Stats = cloneList(c.Stats)
	return &out
}

func (c *CarouselContent) clone() Content {
	out := *c
	out.Items = cloneList(c.Items)
	return &out
}

func (c *StageContent) clone() Content {
	out := *c
	out.Elements = nil
	if len(c.Elements) > 0 {
		out.Elements = make([]Element, len(c.Elements))
		for i, el := range c.Elements {
			out.Elements[i] = el.Clone()
		}
	}
	return &out
}

func (c *InteractiveContent) clone() Content {
	out := *c
	out.Choices = cloneList(c.Choices)
	return &out
}

func (c *TimelineContent) clone() Content {
	out := *c
	out.Events = cloneList(c.Events)
	return &out
}

func (c *GalleryContent) clone() Content {
	out := *c
	out.Images = cloneList(c.Images)
	return &out
}

func (c *ComparisonContent) clone() Content {
	out := *c
	out.Left.Items = cloneList(c.Left.Items)
	out.Right.Items = cloneList(c.Right.Items)
	return &out
}

func (c *Unsupported) clone() Content {
	out := &Unsupported{Tag: c.Tag}
	if len(c.Fields) > 0 {
		out.Fields = cloneTree(c.Fields).(map[string]any)
	}
	return out
}

// cloneTree deep-copies a decoded JSON value.
func cloneTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneTree(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneTree(val)
		}
		return out
	default:
		return v
	}
}

func newContent(t SlideType) Content {
	switch t {
	case TypeTitle:
		return &TitleContent{}
	case TypeContent:
		return &TextContent{}
	case TypeQuote:
		return &QuoteContent{}
	case TypeVideo:
		return &VideoContent{}
	case TypeStats:
		return &StatsContent{}
	case TypeCarousel:
		return &CarouselContent{}
	case TypeScenario:
		return &StageContent{}
	case TypeInteractive:
		return &InteractiveContent{}
	case TypeTimeline:
		return &TimelineContent{}
	case TypeGallery:
		return &GalleryContent{}
	case TypeComparison:
		return &ComparisonContent{}
	default:
		return nil
	}
}

func defaultContent(t SlideType) Content {
	switch t {
	case TypeTitle:
		return &TitleContent{Title: "New title", Subtitle: "Subtitle"}
	case TypeContent:
		return &TextContent{Title: "New section", Text: "Write your text here"}
	case TypeQuote:
		return &QuoteContent{Quote: "Quote text", Author: "Author"}
	case TypeStats:
		return &StatsContent{Title: "Key figures"}
	case TypeComparison:
		return &ComparisonContent{
			Title: "Comparison",
			Left:  ComparisonSide{Title: "Before"},
			Right: ComparisonSide{Title: "After"},
		}
	case TypeInteractive:
		return &InteractiveContent{Question: "Your question"}
	}
	if c := newContent(t); c != nil {
		return c
	}
	return &Unsupported{Tag: t}
}

// decodeContent picks the payload struct by tag. Unknown tags and payloads that do
// not fit their struct are kept verbatim as *Unsupported.
func decodeContent(t SlideType, data []byte) (Content, error) {
	if c := newContent(t); c != nil {
		if err := json.Unmarshal(data, c); err == nil {
			return c, nil
		}
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, k := range headerKeys {
		delete(fields, k)
	}
	if len(fields) == 0 {
		fields = nil
	}
	return &Unsupported{Tag: t, Fields: fields}, nil
}
