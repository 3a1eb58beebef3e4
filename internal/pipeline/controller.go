// Package pipeline runs the per-frame skeleton trail pipeline: body
// selection, history admission, gesture classification and rendering.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/skeletontrail/internal/gesture"
	"github.com/banshee-data/skeletontrail/internal/history"
	"github.com/banshee-data/skeletontrail/internal/mapping"
	"github.com/banshee-data/skeletontrail/internal/render"
	"github.com/banshee-data/skeletontrail/internal/skeleton"
	"github.com/banshee-data/skeletontrail/internal/surface"
	"github.com/banshee-data/skeletontrail/internal/trail"
)

// Config holds the controller parameters.
type Config struct {
	ListSize      int
	FrameInterval int
	TrailStep     float64
	Render        render.Config
}

// DefaultConfig returns a single-slot, every-third-frame configuration.
func DefaultConfig() Config {
	return Config{
		ListSize:      1,
		FrameInterval: 3,
		TrailStep:     trail.DefaultStep,
		Render:        render.DefaultConfig(),
	}
}

// MapperSource supplies the active sensor's coordinate mapper. Sensors
// satisfy it; the mapper is looked up once per frame.
type MapperSource interface {
	Mapper() mapping.Mapper
}

// FrameResult summarises one processed frame.
type FrameResult struct {
	Number   uint64
	Body     skeleton.TrackingState
	Admitted bool
	State    gesture.State
	Changed  bool
	Commands int
	Err      error
}

// Observer receives a FrameResult after every frame.
type Observer interface {
	ObserveFrame(r FrameResult)
}

// Stats counts frames over the session.
type Stats struct {
	Frames      int
	Admitted    int
	Rendered    int
	Failures    int
	Transitions int
}

// Controller owns the history buffer and colour state of one session.
// HandleFrame must be called serially.
type Controller struct {
	session    string
	buffer     *history.Buffer
	classifier *gesture.Classifier
	renderer   *render.Renderer
	mappers    MapperSource
	surface    surface.Surface
	observers  []Observer
	stats      Stats
}

// NewController builds a controller drawing onto surf. mappers may be nil
// until a sensor is active.
func NewController(cfg Config, mappers MapperSource, surf surface.Surface, observers ...Observer) *Controller {
	c := &Controller{
		session:    uuid.NewString(),
		buffer:     history.New(cfg.ListSize, cfg.FrameInterval),
		classifier: gesture.NewClassifier(),
		renderer:   render.New(cfg.Render, trail.NewOffsetter(cfg.TrailStep), nil),
		mappers:    mappers,
		surface:    surf,
		observers:  observers,
	}
	diagf("session %s: list_size=%d frame_interval=%d trail_step=%.3f",
		c.session, c.buffer.Capacity(), c.buffer.FrameInterval(), cfg.TrailStep)
	return c
}

// AddObservers registers further frame observers.
func (c *Controller) AddObservers(obs ...Observer) {
	c.observers = append(c.observers, obs...)
}

// SessionID identifies this controller in logs and reports.
func (c *Controller) SessionID() string { return c.session }

// State returns the current gesture colour.
func (c *Controller) State() gesture.State { return c.classifier.State() }

// Stats returns the session counters.
func (c *Controller) Stats() Stats { return c.stats }

// Buffer exposes the history buffer for inspection.
func (c *Controller) Buffer() *history.Buffer { return c.buffer }

// HandleFrame processes one sensor frame. Failures abort only this frame,
// which is drawn as background only.
func (c *Controller) HandleFrame(f *skeleton.Frame) {
	c.stats.Frames++
	res := FrameResult{State: c.classifier.State()}
	if f != nil {
		res.Number = f.Number
	}

	body, ok := f.Primary()
	var current *skeleton.Skeleton
	if ok {
		current = &body
		res.Body = body.TrackingState
		if c.buffer.Admit(body) {
			c.stats.Admitted++
			res.Admitted = true
		}
	}

	snapshots := c.buffer.Snapshots()
	if ok && body.TrackingState == skeleton.Tracked && render.HasTrackedBone(snapshots) {
		if head, ok := c.buffer.Newest(); ok && head.TrackingState == skeleton.Tracked {
			state, changed := c.classifier.Update(&head)
			res.State, res.Changed = state, changed
			if changed {
				c.stats.Transitions++
				diagf("session %s frame %d: gesture %s (%s)", c.session, res.Number, state, state.Description())
			}
		}
	}

	var mapper mapping.Mapper
	if c.mappers != nil {
		mapper = c.mappers.Mapper()
	}
	c.renderer.SetMapper(mapper)

	cmds, err := c.renderer.RenderFrame(current, snapshots, res.State)
	if err != nil {
		res.Err = fmt.Errorf("render frame %d: %w", res.Number, err)
		cmds = c.fail(res.Err)
	}
	res.Commands = len(cmds)

	if derr := c.draw(cmds); derr != nil {
		if res.Err == nil {
			res.Err = derr
			c.stats.Failures++
		} else {
			res.Err = errors.Join(res.Err, derr)
		}
	}
	if res.Err == nil {
		c.stats.Rendered++
	}

	tracef("frame %d: body=%s admitted=%t slots=%d cmds=%d", res.Number, res.Body, res.Admitted, len(snapshots), res.Commands)
	c.notify(res)
}

// HandleFrameError records a frame the sensor could not deliver.
func (c *Controller) HandleFrameError(err error) {
	c.stats.Frames++
	res := FrameResult{State: c.classifier.State(), Err: err}
	cmds := c.fail(err)
	res.Commands = len(cmds)
	if derr := c.draw(cmds); derr != nil {
		res.Err = errors.Join(err, derr)
	}
	c.notify(res)
}

// Close logs the session summary.
func (c *Controller) Close() {
	s := c.stats
	diagf("session %s done: frames=%d admitted=%d rendered=%d failures=%d transitions=%d final=%s",
		c.session, s.Frames, s.Admitted, s.Rendered, s.Failures, s.Transitions, c.classifier.State())
}

func (c *Controller) fail(err error) []render.Command {
	c.stats.Failures++
	opsf("session %s: %v", c.session, err)
	return c.renderer.Background()
}

func (c *Controller) draw(cmds []render.Command) error {
	if c.surface == nil {
		return nil
	}
	if err := c.surface.Draw(cmds); err != nil {
		err = fmt.Errorf("draw: %w", err)
		opsf("session %s: %v", c.session, err)
		return err
	}
	return nil
}

func (c *Controller) notify(res FrameResult) {
	for _, o := range c.observers {
		o.ObserveFrame(res)
	}
}
