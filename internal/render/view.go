package render

import (
	"github.com/ivlev/slideplay/internal/background"
	"github.com/ivlev/slideplay/internal/scenario"
)

// BlockKind names the visual role of a block.
type BlockKind string

const (
	BlockHeading     BlockKind = "heading"
	BlockSubheading  BlockKind = "subheading"
	BlockText        BlockKind = "text"
	BlockBullet      BlockKind = "bullet"
	BlockImage       BlockKind = "image"
	BlockQuote       BlockKind = "quote"
	BlockAttribution BlockKind = "attribution"
	BlockVideo       BlockKind = "video"
	BlockStat        BlockKind = "stat"
	BlockSlide       BlockKind = "carousel-item"
	BlockQuestion    BlockKind = "question"
	BlockChoice      BlockKind = "choice"
	BlockFeedback    BlockKind = "feedback"
	BlockEvent       BlockKind = "event"
	BlockColumn      BlockKind = "column"
	BlockItem        BlockKind = "column-item"
	BlockElement     BlockKind = "element"
	BlockPlaceholder BlockKind = "placeholder"
)

// Block is one positioned piece of a rendered slide.
type Block struct {
	ID     string    `json:"id"`
	Kind   BlockKind `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Detail string    `json:"detail,omitempty"` // secondary line: caption, role, description
	Label  string    `json:"label,omitempty"`  // timeline date
	URL    string    `json:"url,omitempty"`
	Color  string    `json:"color,omitempty"`
	Column string    `json:"column,omitempty"` // "left" or "right" in a comparison, gallery column index otherwise

	// Active marks the visible carousel item or a chosen answer.
	Active bool `json:"active,omitempty"`
	// Correct is set on revealed choices.
	Correct bool `json:"correct,omitempty"`

	Element  scenario.ElementType `json:"element,omitempty"`
	Position *scenario.Position   `json:"position,omitempty"`
	Size     *scenario.Size       `json:"size,omitempty"`
	Style    map[string]string    `json:"style,omitempty"`

	Pose Pose `json:"pose"`
	// Entering is true only on the first frame the block appears after mount.
	Entering bool `json:"entering,omitempty"`

	anim *scenario.Animation
}

// View is a fully resolved frame of one slide.
type View struct {
	SlideID    string             `json:"slideId"`
	Kind       scenario.SlideType `json:"kind"`
	Time       float64            `json:"time"`
	Background background.Paint   `json:"background"`
	// Revealed is false until the background media has loaded.
	Revealed bool    `json:"revealed"`
	Blocks   []Block `json:"blocks"`
	Subtitle string  `json:"subtitle,omitempty"`
	// Unsupported is set when the slide's content could not be interpreted.
	Unsupported bool `json:"unsupported,omitempty"`
}

// Block returns the block with id, if present in the frame.
func (v View) Block(id string) (Block, bool) {
	for _, b := range v.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}
