package sensor

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

// restPose is the standing pose in metres relative to the hip centre.
// The right arm is posed by the generator.
var restPose = map[skeleton.JointType]r3.Vec{
	skeleton.HipCenter:      {X: 0, Y: 0, Z: 0},
	skeleton.Spine:          {X: 0, Y: 0.25, Z: 0.02},
	skeleton.ShoulderCenter: {X: 0, Y: 0.5, Z: 0},
	skeleton.Head:           {X: 0, Y: 0.7, Z: 0},
	skeleton.ShoulderLeft:   {X: -0.2, Y: 0.45, Z: 0},
	skeleton.ElbowLeft:      {X: -0.3, Y: 0.2, Z: 0},
	skeleton.WristLeft:      {X: -0.33, Y: 0, Z: -0.02},
	skeleton.HandLeft:       {X: -0.35, Y: -0.08, Z: -0.03},
	skeleton.ShoulderRight:  {X: 0.2, Y: 0.45, Z: 0},
	skeleton.HipLeft:        {X: -0.1, Y: -0.05, Z: 0},
	skeleton.KneeLeft:       {X: -0.12, Y: -0.5, Z: -0.05},
	skeleton.AnkleLeft:      {X: -0.12, Y: -0.9, Z: 0},
	skeleton.FootLeft:       {X: -0.12, Y: -0.95, Z: -0.1},
	skeleton.HipRight:       {X: 0.1, Y: -0.05, Z: 0},
	skeleton.KneeRight:      {X: 0.12, Y: -0.5, Z: -0.05},
	skeleton.AnkleRight:     {X: 0.12, Y: -0.9, Z: 0},
	skeleton.FootRight:      {X: 0.12, Y: -0.95, Z: -0.1},
}

// Right arm segment lengths from the shoulder.
const (
	elbowReach = 0.28
	wristReach = 0.53
	handReach  = 0.61
)

// Synthetic generates one body that raises and lowers its right arm, so
// the hand passes through every gesture band once per period.
type Synthetic struct {
	device

	// Configuration
	FrameRate    float64       // frames per second; 0 delivers without pacing
	Frames       int           // frames to deliver before Run returns; 0 is unlimited
	Period       int           // frames per full arm cycle
	Origin       r3.Vec        // hip-centre position in sensor space
	Warmup       int           // leading frames delivered as PositionOnly
	ClipRaised   bool          // flag the top edge while the hand is near its highest
	InferEvery   int           // left hand is Inferred for 5 of every InferEvery frames; 0 disables
	Epoch        time.Time     // timestamp of frame 1; zero uses the start time
	frameSpacing time.Duration // derived from FrameRate
	frame        uint64
}

// NewSynthetic creates a generator rendering at width × height.
func NewSynthetic(width, height int) *Synthetic {
	s := &Synthetic{
		device:     newDevice("synthetic", width, height),
		FrameRate:  30,
		Period:     90,
		Origin:     r3.Vec{X: 0, Y: -0.1, Z: 2.2},
		InferEvery: 30,
	}
	s.status = StatusConnected
	return s
}

// Status implements Sensor.
func (s *Synthetic) Status() Status { return s.currentStatus() }

// Start implements Sensor.
func (s *Synthetic) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.markStarted(); err != nil {
		return err
	}
	s.frame = 0
	if s.Epoch.IsZero() {
		s.Epoch = time.Now()
	}
	s.frameSpacing = 0
	if s.FrameRate > 0 {
		s.frameSpacing = time.Duration(float64(time.Second) / s.FrameRate)
	}
	return nil
}

// Stop implements Sensor.
func (s *Synthetic) Stop() error {
	s.markStopped()
	return nil
}

// Run implements Sensor.
func (s *Synthetic) Run(ctx context.Context, h FrameHandler) error {
	done, err := s.running()
	if err != nil {
		return err
	}

	var tick <-chan time.Time
	if s.frameSpacing > 0 {
		ticker := time.NewTicker(s.frameSpacing)
		defer ticker.Stop()
		tick = ticker.C
	}

	for s.Frames <= 0 || s.frame < uint64(s.Frames) {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-done:
				return nil
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-done:
				return nil
			default:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		f := s.NextFrame()
		tracef("synthetic frame %d", f.Number)
		h.HandleFrame(f)
	}
	return nil
}

// NextFrame builds the next frame without pacing.
func (s *Synthetic) NextFrame() *skeleton.Frame {
	s.frame++
	n := s.frame
	spacing := s.frameSpacing
	if spacing == 0 {
		spacing = time.Second / 30
	}

	body := s.pose(n)
	f := &skeleton.Frame{
		Number:    n,
		Timestamp: s.Epoch.Add(time.Duration(n-1) * spacing),
		Skeletons: []skeleton.Skeleton{body},
	}
	ApplyTrackingMode(f, s.trackingMode())
	return f
}

// ArmAngle returns the right arm's angle from hanging (0) to raised (π)
// for frame n.
func (s *Synthetic) ArmAngle(n uint64) float64 {
	period := s.Period
	if period <= 0 {
		period = 90
	}
	if n == 0 {
		n = 1
	}
	phase := 2 * math.Pi * float64((n-1)%uint64(period)) / float64(period)
	return math.Pi / 2 * (1 - math.Cos(phase))
}

func (s *Synthetic) pose(n uint64) skeleton.Skeleton {
	body := skeleton.New()
	body.TrackingID = 1
	body.Position = s.Origin

	if n <= uint64(s.Warmup) {
		body.TrackingState = skeleton.PositionOnly
		return body
	}
	body.TrackingState = skeleton.Tracked

	for t, p := range restPose {
		body.SetJoint(skeleton.Joint{
			Type:          t,
			Position:      r3.Add(s.Origin, p),
			TrackingState: skeleton.JointTracked,
		})
	}

	theta := s.ArmAngle(n)
	dir := r3.Vec{X: math.Sin(theta) * 0.3, Y: -math.Cos(theta)}
	shoulder := body.Joint(skeleton.ShoulderRight).Position
	for _, seg := range []struct {
		t     skeleton.JointType
		reach float64
	}{
		{skeleton.ElbowRight, elbowReach},
		{skeleton.WristRight, wristReach},
		{skeleton.HandRight, handReach},
	} {
		body.SetJoint(skeleton.Joint{
			Type:          seg.t,
			Position:      r3.Add(shoulder, r3.Scale(seg.reach, dir)),
			TrackingState: skeleton.JointTracked,
		})
	}

	if s.InferEvery > 0 && int((n-1)%uint64(s.InferEvery)) >= s.InferEvery-5 {
		for _, t := range []skeleton.JointType{skeleton.WristLeft, skeleton.HandLeft} {
			j := body.Joint(t)
			j.TrackingState = skeleton.JointInferred
			body.SetJoint(j)
		}
	}

	if s.ClipRaised && theta > 0.9*math.Pi {
		body.ClippedEdges |= skeleton.EdgeTop
	}
	return body
}
