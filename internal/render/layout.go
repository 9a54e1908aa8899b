package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ivlev/slideplay/internal/scenario"
)

// stagger spaces the entrances of static blocks, in seconds.
const stagger = 0.1

// DefaultCarouselInterval applies when a carousel declares none.
const DefaultCarouselInterval = 5.0

func layout(slide *scenario.Slide, t float64, chosen string) ([]Block, bool) {
	var blocks []Block
	switch c := slide.Content.(type) {
	case *scenario.TitleContent:
		blocks = titleBlocks(c)
	case *scenario.TextContent:
		blocks = textBlocks(c)
	case *scenario.QuoteContent:
		blocks = quoteBlocks(c)
	case *scenario.VideoContent:
		blocks = videoBlocks(c)
	case *scenario.StatsContent:
		blocks = statsBlocks(c)
	case *scenario.CarouselContent:
		blocks = carouselBlocks(c, t)
	case *scenario.StageContent:
		return stageBlocks(c, t), false
	case *scenario.InteractiveContent:
		blocks = interactiveBlocks(c, chosen)
	case *scenario.TimelineContent:
		blocks = timelineBlocks(c)
	case *scenario.GalleryContent:
		blocks = galleryBlocks(c)
	case *scenario.ComparisonContent:
		blocks = comparisonBlocks(c)
	default:
		return []Block{placeholder(slide)}, true
	}
	for i := range blocks {
		blocks[i].anim = &scenario.Animation{Type: "slide-up", Delay: float64(i) * stagger, Duration: 0.5}
	}
	return blocks, false
}

func placeholder(slide *scenario.Slide) Block {
	text := "Unsupported slide"
	if slide.Type != "" {
		text = fmt.Sprintf("Unsupported slide type %q", slide.Type)
	}
	return Block{ID: "placeholder", Kind: BlockPlaceholder, Text: text}
}

func heading(title string) []Block {
	if title == "" {
		return nil
	}
	return []Block{{ID: "heading", Kind: BlockHeading, Text: title}}
}

func titleBlocks(c *scenario.TitleContent) []Block {
	var out []Block
	if c.Logo != "" {
		out = append(out, Block{ID: "logo", Kind: BlockImage, URL: c.Logo})
	}
	out = append(out, heading(c.Title)...)
	if c.Subtitle != "" {
		out = append(out, Block{ID: "subheading", Kind: BlockSubheading, Text: c.Subtitle})
	}
	return out
}

func textBlocks(c *scenario.TextContent) []Block {
	out := heading(c.Title)
	image := Block{ID: "image", Kind: BlockImage, URL: c.Image, Column: "right"}
	if c.ImagePosition == "left" {
		image.Column = "left"
	}
	if c.Image != "" && image.Column == "left" {
		out = append(out, image)
	}
	if c.Text != "" {
		out = append(out, Block{ID: "text", Kind: BlockText, Text: c.Text})
	}
	for i, b := range c.Bullets {
		out = append(out, Block{ID: "bullet-" + strconv.Itoa(i), Kind: BlockBullet, Text: b})
	}
	if c.Image != "" && image.Column == "right" {
		out = append(out, image)
	}
	return out
}

func quoteBlocks(c *scenario.QuoteContent) []Block {
	var out []Block
	if c.Image != "" {
		out = append(out, Block{ID: "portrait", Kind: BlockImage, URL: c.Image})
	}
	out = append(out, Block{ID: "quote", Kind: BlockQuote, Text: c.Quote})
	if c.Author != "" {
		out = append(out, Block{ID: "attribution", Kind: BlockAttribution, Text: c.Author, Detail: c.Role})
	}
	return out
}

func videoBlocks(c *scenario.VideoContent) []Block {
	out := heading(c.Title)
	return append(out, Block{ID: "video", Kind: BlockVideo, URL: c.URL, Detail: c.Poster})
}

func statsBlocks(c *scenario.StatsContent) []Block {
	out := heading(c.Title)
	for i, s := range c.Stats {
		out = append(out, Block{
			ID:     itemID("stat", s.ID, i),
			Kind:   BlockStat,
			Text:   FormatStat(s),
			Detail: s.Label,
			Color:  s.Color,
		})
	}
	return out
}

// FormatStat renders a stat value with its prefix and suffix, dropping a zero fraction.
func FormatStat(s scenario.Stat) string {
	return s.Prefix + strconv.FormatFloat(s.Value, 'f', -1, 64) + s.Suffix
}

// CarouselIndex is the item shown at time t.
func CarouselIndex(c *scenario.CarouselContent, t float64) int {
	if len(c.Items) == 0 {
		return -1
	}
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultCarouselInterval
	}
	if t < 0 {
		t = 0
	}
	return int(math.Floor(t/interval)) % len(c.Items)
}

func carouselBlocks(c *scenario.CarouselContent, t float64) []Block {
	out := heading(c.Title)
	active := CarouselIndex(c, t)
	for i, item := range c.Items {
		out = append(out, Block{
			ID:     itemID("item", item.ID, i),
			Kind:   BlockSlide,
			Text:   item.Title,
			Detail: item.Description,
			URL:    item.Image,
			Active: i == active,
		})
	}
	return out
}

// stageBlocks filters elements by their timing window on every frame. Element block
// ids derive from the element id, or its list position when it has none, so the
// entrance record survives leaving the window.
func stageBlocks(c *scenario.StageContent, t float64) []Block {
	var out []Block
	if c.Title != "" {
		out = append(out, Block{ID: "heading", Kind: BlockHeading, Text: c.Title,
			anim: &scenario.Animation{Type: "fade"}})
	}
	for i, el := range c.Elements {
		if !el.VisibleAt(t) {
			continue
		}
		out = append(out, Block{
			ID:       itemID("element", el.ID, i),
			Kind:     BlockElement,
			Element:  el.Type,
			Text:     el.Content,
			Position: el.Position,
			Size:     el.Size,
			Style:    el.Style,
			anim:     el.Animation,
		})
	}
	return out
}

func interactiveBlocks(c *scenario.InteractiveContent, chosen string) []Block {
	out := heading(c.Title)
	out = append(out, Block{ID: "question", Kind: BlockQuestion, Text: c.Question})
	var feedback *scenario.Choice
	for i, ch := range c.Choices {
		b := Block{ID: itemID("choice", ch.ID, i), Kind: BlockChoice, Text: ch.Text}
		if chosen != "" {
			b.Correct = ch.Correct
			if ch.ID == chosen {
				b.Active = true
				feedback = &c.Choices[i]
			}
		}
		out = append(out, b)
	}
	if feedback != nil && feedback.Feedback != "" {
		out = append(out, Block{ID: "feedback", Kind: BlockFeedback, Text: feedback.Feedback, Correct: feedback.Correct})
	}
	return out
}

func timelineBlocks(c *scenario.TimelineContent) []Block {
	out := heading(c.Title)
	for i, ev := range c.Events {
		out = append(out, Block{
			ID:     itemID("event", ev.ID, i),
			Kind:   BlockEvent,
			Text:   ev.Title,
			Detail: ev.Description,
			Label:  ev.Date,
		})
	}
	return out
}

func galleryBlocks(c *scenario.GalleryContent) []Block {
	out := heading(c.Title)
	cols := c.Columns
	if cols <= 0 {
		cols = 3
	}
	for i, img := range c.Images {
		out = append(out, Block{
			ID:     itemID("image", img.ID, i),
			Kind:   BlockImage,
			URL:    img.URL,
			Detail: img.Caption,
			Column: strconv.Itoa(i % cols),
		})
	}
	return out
}

func comparisonBlocks(c *scenario.ComparisonContent) []Block {
	out := heading(c.Title)
	for _, side := range []struct {
		name string
		s    scenario.ComparisonSide
	}{{"left", c.Left}, {"right", c.Right}} {
		out = append(out, Block{ID: side.name, Kind: BlockColumn, Text: side.s.Title, Color: side.s.Color, Column: side.name})
		for i, item := range side.s.Items {
			out = append(out, Block{
				ID:     side.name + "-" + strconv.Itoa(i),
				Kind:   BlockItem,
				Text:   item,
				Color:  side.s.Color,
				Column: side.name,
			})
		}
	}
	return out
}

func itemID(prefix, id string, i int) string {
	if id == "" {
		return prefix + "-" + strconv.Itoa(i)
	}
	return prefix + "-" + id
}
