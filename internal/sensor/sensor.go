// Package sensor provides skeleton frame sources: a deterministic synthetic
// body, JSON-lines replay from files, and JSON-lines frames read from a
// serial port.
package sensor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/banshee-data/skeletontrail/internal/mapping"
	"github.com/banshee-data/skeletontrail/internal/monitoring"
	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

var (
	// ErrNoSensor is returned by Discover when no candidate is connected
	// and starts successfully.
	ErrNoSensor = errors.New("no ready skeleton sensor")
	// ErrSensorStopped is returned by Run on a sensor that is not started.
	ErrSensorStopped = errors.New("sensor not running")
)

// Status is the lifecycle state of a sensor.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnected
	StatusStarted
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnected:
		return "connected"
	case StatusStarted:
		return "started"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// FrameHandler receives frames from a running sensor. Calls are serial and
// made from the goroutine executing Run.
type FrameHandler interface {
	HandleFrame(f *skeleton.Frame)
	// HandleFrameError is called when one frame could not be acquired.
	HandleFrameError(err error)
}

// Sensor is a source of skeleton frames.
type Sensor interface {
	Name() string
	Status() Status
	Start(ctx context.Context) error
	// Run delivers frames to h until ctx is cancelled, Stop is called, or
	// the source is exhausted.
	Run(ctx context.Context, h FrameHandler) error
	Stop() error
	SetTrackingMode(mode skeleton.TrackingMode)
	// Mapper projects sensor space onto the output canvas. It is nil
	// unless the sensor is started.
	Mapper() mapping.Mapper
}

// Discover returns the first candidate that is connected and starts.
// Start failures are logged and treated as an absent sensor.
func Discover(ctx context.Context, candidates ...Sensor) (Sensor, error) {
	for _, s := range candidates {
		if s == nil {
			continue
		}
		if st := s.Status(); st != StatusConnected {
			diagf("skipping %s: %s", s.Name(), st)
			continue
		}
		if err := s.Start(ctx); err != nil {
			opsf("start %s: %v", s.Name(), err)
			monitoring.Logf("sensor %s failed to start: %v", s.Name(), err)
			continue
		}
		monitoring.Logf("using sensor %s", s.Name())
		return s, nil
	}
	return nil, ErrNoSensor
}

// device holds the lifecycle state shared by every sensor.
type device struct {
	mu     sync.Mutex
	name   string
	width  int
	height int
	status Status
	mode   skeleton.TrackingMode
	mapper mapping.Mapper
	done   chan struct{}
}

func newDevice(name string, width, height int) device {
	if width <= 0 {
		width = mapping.DefaultWidth
	}
	if height <= 0 {
		height = mapping.DefaultHeight
	}
	return device{name: name, width: width, height: height}
}

func (d *device) Name() string { return d.name }

func (d *device) SetTrackingMode(mode skeleton.TrackingMode) {
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
	diagf("%s tracking mode set to %s", d.name, mode)
}

func (d *device) trackingMode() skeleton.TrackingMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *device) Mapper() mapping.Mapper {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mapper
}

// markStarted installs the projector and a fresh done channel.
func (d *device) markStarted() error {
	proj, err := mapping.NewDepthProjector(d.width, d.height)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mapper = proj
	d.status = StatusStarted
	d.done = make(chan struct{})
	diagf("%s started at %dx%d", d.name, d.width, d.height)
	return nil
}

// markStopped reports whether this call performed the transition.
func (d *device) markStopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusStarted {
		return false
	}
	d.status = StatusStopped
	d.mapper = nil
	close(d.done)
	diagf("%s stopped", d.name)
	return true
}

// running returns the done channel of a started sensor.
func (d *device) running() (<-chan struct{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusStarted {
		return nil, fmt.Errorf("%s: %w", d.name, ErrSensorStopped)
	}
	return d.done, nil
}

func (d *device) currentStatus() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// ApplyTrackingMode marks every joint outside the upper body NotTracked
// when mode is Seated, as the device does in its seated model.
func ApplyTrackingMode(f *skeleton.Frame, mode skeleton.TrackingMode) {
	f.TrackingMode = mode
	if mode != skeleton.ModeSeated {
		return
	}
	for i := range f.Skeletons {
		for j := range f.Skeletons[i].Joints {
			if !f.Skeletons[i].Joints[j].Type.UpperBody() {
				f.Skeletons[i].Joints[j].TrackingState = skeleton.JointNotTracked
			}
		}
	}
}
