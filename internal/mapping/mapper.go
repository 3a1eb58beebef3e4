// Package mapping converts sensor-space positions into the fixed-resolution
// screen space the renderer draws in.
package mapping

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultWidth and DefaultHeight are the output resolution in pixels.
	DefaultWidth  = 640
	DefaultHeight = 480

	// depthFocalPx is the depth camera's nominal focal length in pixels at
	// DefaultWidth × DefaultHeight.
	depthFocalPx = 571.26
)

var (
	// ErrNoMapper is returned when rendering is attempted without an active
	// sensor to project through.
	ErrNoMapper = errors.New("no coordinate mapper: sensor not active")
	// ErrInvalidDepth is returned for points at or behind the sensor plane.
	ErrInvalidDepth = errors.New("point has no positive depth")
)

// ScreenPoint is a position on the output canvas, origin top-left, y down.
type ScreenPoint struct {
	X, Y float64
}

// Mapper projects a sensor-space point onto the output canvas.
type Mapper interface {
	ToScreen(p r3.Vec) (ScreenPoint, error)
}

// DepthProjector reproduces the sensor's skeleton-to-depth projection for
// a fixed output resolution. Results are truncated to whole pixels, as the
// device's depth points are integers.
type DepthProjector struct {
	Width, Height int
	focal         float64
}

// NewDepthProjector returns a projector for the given resolution. The focal
// length scales linearly with width.
func NewDepthProjector(width, height int) (*DepthProjector, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid projection resolution %dx%d", width, height)
	}
	return &DepthProjector{
		Width:  width,
		Height: height,
		focal:  depthFocalPx * float64(width) / DefaultWidth,
	}, nil
}

// ToScreen implements Mapper.
func (d *DepthProjector) ToScreen(p r3.Vec) (ScreenPoint, error) {
	if p.Z <= 0 || math.IsNaN(p.Z) {
		return ScreenPoint{}, fmt.Errorf("project (%.3f, %.3f, %.3f): %w", p.X, p.Y, p.Z, ErrInvalidDepth)
	}
	x := float64(d.Width)/2 + p.X*d.focal/p.Z
	y := float64(d.Height)/2 - p.Y*d.focal/p.Z
	return ScreenPoint{X: math.Trunc(x), Y: math.Trunc(y)}, nil
}

// MapperFunc adapts a function to the Mapper interface.
type MapperFunc func(p r3.Vec) (ScreenPoint, error)

// ToScreen implements Mapper.
func (f MapperFunc) ToScreen(p r3.Vec) (ScreenPoint, error) { return f(p) }
