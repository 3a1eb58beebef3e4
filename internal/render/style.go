package render

import (
	"image/color"

	"github.com/banshee-data/skeletontrail/internal/gesture"
	"github.com/banshee-data/skeletontrail/internal/mapping"
)

// Palette holds every colour the renderer uses.
type Palette struct {
	// Bones maps each gesture state to the tracked-bone colour.
	Bones map[gesture.State]color.RGBA

	TrackedJoint  color.RGBA
	InferredJoint color.RGBA
	Head          color.RGBA
	InferredBone  color.RGBA
	CenterPoint   color.RGBA
	ClipEdge      color.RGBA
	Background    color.RGBA
}

// Config sizes the canvas and the primitives.
type Config struct {
	Width  float64
	Height float64

	// Joint, head and body-centre sizes are ellipse radii.
	JointThickness      float64
	HeadThickness       float64
	BodyCenterThickness float64
	ClipBoundsThickness float64

	TrackedBoneWidth  float64
	InferredBoneWidth float64

	Palette Palette
}

// DefaultPalette returns the reference colours.
func DefaultPalette() Palette {
	return Palette{
		Bones: map[gesture.State]color.RGBA{
			gesture.Blue:   {R: 0, G: 0, B: 255, A: 255},
			gesture.Green:  {R: 0, G: 128, B: 0, A: 255},
			gesture.Yellow: {R: 255, G: 255, B: 0, A: 255},
			gesture.Red:    {R: 255, G: 0, B: 0, A: 255},
		},
		TrackedJoint:  color.RGBA{R: 10, G: 255, B: 255, A: 255},
		InferredJoint: color.RGBA{R: 255, G: 255, B: 0, A: 255},
		Head:          color.RGBA{R: 255, G: 25, B: 25, A: 255},
		InferredBone:  color.RGBA{R: 128, G: 128, B: 128, A: 255},
		CenterPoint:   color.RGBA{R: 0, G: 0, B: 255, A: 255},
		ClipEdge:      color.RGBA{R: 255, G: 0, B: 0, A: 255},
		Background:    color.RGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

// DefaultConfig returns the 640×480 reference configuration.
func DefaultConfig() Config {
	return Config{
		Width:               mapping.DefaultWidth,
		Height:              mapping.DefaultHeight,
		JointThickness:      3,
		HeadThickness:       25,
		BodyCenterThickness: 10,
		ClipBoundsThickness: 10,
		TrackedBoneWidth:    6,
		InferredBoneWidth:   1,
		Palette:             DefaultPalette(),
	}
}

// boneColor falls back to the Blue entry, then opaque black, for states
// missing from the palette.
func (p Palette) boneColor(s gesture.State) color.RGBA {
	if c, ok := p.Bones[s]; ok {
		return c
	}
	if c, ok := p.Bones[gesture.Initial]; ok {
		return c
	}
	return color.RGBA{A: 255}
}
