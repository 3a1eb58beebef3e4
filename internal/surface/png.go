package surface

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/skeletontrail/internal/render"
)

// pixelDPI makes one vg point one pixel.
const pixelDPI = 72

// PNGSurface paints frames onto a gonum/plot raster canvas and writes every
// Nth frame to a numbered PNG file.
type PNGSurface struct {
	dir           string
	every         int
	width, height float64

	frame   int
	latest  *vgimg.Canvas
	written []string
}

// NewPNGSurface creates dir and returns a surface writing
// frame_NNNNNN.png there every `every` frames. every <= 0 disables file
// output; frames are still painted and available through Image.
func NewPNGSurface(dir string, width, height float64, every int) (*PNGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %.0fx%.0f", width, height)
	}
	if every > 0 {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	return &PNGSurface{dir: dir, every: every, width: width, height: height}, nil
}

// Draw implements Surface.
func (s *PNGSurface) Draw(cmds []render.Command) error {
	s.frame++
	s.latest = Paint(cmds, s.width, s.height)
	if s.every <= 0 || (s.frame-1)%s.every != 0 {
		return nil
	}
	name := filepath.Join(s.dir, fmt.Sprintf("frame_%06d.png", s.frame))
	if err := writePNG(s.latest, name); err != nil {
		return err
	}
	s.written = append(s.written, name)
	return nil
}

// Image returns the most recently painted frame, or nil before the first.
func (s *PNGSurface) Image() image.Image {
	if s.latest == nil {
		return nil
	}
	return s.latest.Image()
}

// Written lists the files written so far.
func (s *PNGSurface) Written() []string {
	return append([]string(nil), s.written...)
}

// SaveLatest writes the most recent frame to path.
func (s *PNGSurface) SaveLatest(path string) error {
	if s.latest == nil {
		return fmt.Errorf("no frame painted yet")
	}
	return writePNG(s.latest, path)
}

func writePNG(c *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Paint replays cmds on a fresh width×height canvas. Screen coordinates
// have y pointing down; the canvas has y up, so y is flipped. Anything
// outside the canvas is clipped.
func Paint(cmds []render.Command, width, height float64) *vgimg.Canvas {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width), vg.Length(height)),
		vgimg.UseDPI(pixelDPI),
	)
	pt := func(x, y float64) vg.Point {
		return vg.Point{X: vg.Length(x), Y: vg.Length(height - y)}
	}

	for _, cmd := range cmds {
		c.SetColor(cmd.Color)
		switch cmd.Kind {
		case render.KindClear, render.KindRect:
			r := cmd.Rect
			var p vg.Path
			p.Move(pt(r.X, r.Y))
			p.Line(pt(r.X+r.W, r.Y))
			p.Line(pt(r.X+r.W, r.Y+r.H))
			p.Line(pt(r.X, r.Y+r.H))
			p.Close()
			c.Fill(p)
		case render.KindLine:
			c.SetLineWidth(vg.Length(cmd.Width))
			var p vg.Path
			p.Move(pt(cmd.From.X, cmd.From.Y))
			p.Line(pt(cmd.To.X, cmd.To.Y))
			c.Stroke(p)
		case render.KindEllipse:
			if cmd.RadiusX <= 0 || cmd.RadiusY <= 0 {
				continue
			}
			c.Push()
			c.Translate(pt(cmd.From.X, cmd.From.Y))
			c.Scale(1, cmd.RadiusY/cmd.RadiusX)
			rad := vg.Length(cmd.RadiusX)
			var p vg.Path
			p.Move(vg.Point{X: rad})
			p.Arc(vg.Point{}, rad, 0, 2*math.Pi)
			p.Close()
			c.Fill(p)
			c.Pop()
		}
	}
	return c
}
