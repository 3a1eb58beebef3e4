// Package surface replays render commands onto output targets.
package surface

import (
	"errors"
	"sync"

	"github.com/banshee-data/skeletontrail/internal/render"
)

// Surface receives one frame of draw commands at a time. Each Draw call
// replaces the previous frame: the surface is cleared, drawn and committed
// within the call.
type Surface interface {
	Draw(cmds []render.Command) error
}

// Recorder keeps the most recent frame in memory.
type Recorder struct {
	mu     sync.Mutex
	frames int
	last   []render.Command
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Draw implements Surface.
func (r *Recorder) Draw(cmds []render.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.last = append(r.last[:0:0], cmds...)
	return nil
}

// Last returns a copy of the most recent frame.
func (r *Recorder) Last() []render.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]render.Command(nil), r.last...)
}

// Frames returns the number of frames drawn.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Tee fans one frame out to several surfaces. Every surface is drawn even
// when an earlier one fails; the errors are joined.
type Tee []Surface

// Draw implements Surface.
func (t Tee) Draw(cmds []render.Command) error {
	var errs []error
	for _, s := range t {
		if s == nil {
			continue
		}
		if err := s.Draw(cmds); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
