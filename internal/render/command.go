package render

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/skeletontrail/internal/mapping"
)

// Kind is the primitive a Command draws.
type Kind int

const (
	// KindClear fills the whole canvas with the background colour.
	KindClear Kind = iota
	// KindRect fills an axis-aligned rectangle.
	KindRect
	// KindLine strokes a segment.
	KindLine
	// KindEllipse fills an ellipse.
	KindEllipse
)

// String returns the primitive name.
func (k Kind) String() string {
	switch k {
	case KindClear:
		return "clear"
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindEllipse:
		return "ellipse"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	X, Y, W, H float64
}

// Command is one drawing primitive in screen space.
type Command struct {
	Kind  Kind
	Color color.RGBA

	// Rect is set for KindClear and KindRect.
	Rect Rect

	// From and To are the line endpoints; From is the ellipse centre.
	From mapping.ScreenPoint
	To   mapping.ScreenPoint

	// Width is the line stroke width.
	Width float64

	// RadiusX and RadiusY are the ellipse radii.
	RadiusX, RadiusY float64

	// Slot is the history slot the primitive belongs to, -1 for frame-level
	// primitives (background, clip edges, body centre).
	Slot int

	// Label names what was drawn, e.g. "bone:Head-ShoulderCenter".
	Label string
}

// Count returns the number of commands of kind k.
func Count(cmds []Command, k Kind) int {
	n := 0
	for _, c := range cmds {
		if c.Kind == k {
			n++
		}
	}
	return n
}
