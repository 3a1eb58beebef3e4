package skeleton

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// MaxSkeletons is the number of body slots the sensor delivers per frame.
const MaxSkeletons = 6

// TrackingState is the overall tracking state of a body.
type TrackingState int

const (
	NotTracked TrackingState = iota
	PositionOnly
	Tracked
)

// String returns the lower-case wire name of the state.
func (s TrackingState) String() string {
	switch s {
	case NotTracked:
		return "not_tracked"
	case PositionOnly:
		return "position_only"
	case Tracked:
		return "tracked"
	default:
		return "unknown"
	}
}

// ParseTrackingState parses the wire name produced by String.
func ParseTrackingState(s string) (TrackingState, error) {
	switch s {
	case "not_tracked", "":
		return NotTracked, nil
	case "position_only":
		return PositionOnly, nil
	case "tracked":
		return Tracked, nil
	default:
		return NotTracked, fmt.Errorf("unknown skeleton tracking state %q", s)
	}
}

// FrameEdges is a bit set of field-of-view edges a body extends past.
type FrameEdges uint8

const (
	EdgeNone   FrameEdges = 0
	EdgeRight  FrameEdges = 1 << 0
	EdgeLeft   FrameEdges = 1 << 1
	EdgeTop    FrameEdges = 1 << 2
	EdgeBottom FrameEdges = 1 << 3
)

var edgeNames = []struct {
	edge FrameEdges
	name string
}{
	{EdgeTop, "top"},
	{EdgeBottom, "bottom"},
	{EdgeLeft, "left"},
	{EdgeRight, "right"},
}

// Has reports whether every edge in flag is set.
func (e FrameEdges) Has(flag FrameEdges) bool {
	return flag != EdgeNone && e&flag == flag
}

// Names lists the set edges in top, bottom, left, right order.
func (e FrameEdges) Names() []string {
	var names []string
	for _, en := range edgeNames {
		if e.Has(en.edge) {
			names = append(names, en.name)
		}
	}
	return names
}

// String joins Names with "|", or returns "none".
func (e FrameEdges) String() string {
	names := e.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseFrameEdges builds a FrameEdges set from edge names.
func ParseFrameEdges(names []string) (FrameEdges, error) {
	var edges FrameEdges
	for _, n := range names {
		found := false
		for _, en := range edgeNames {
			if en.name == n {
				edges |= en.edge
				found = true
				break
			}
		}
		if !found {
			return EdgeNone, fmt.Errorf("unknown clipped edge %q", n)
		}
	}
	return edges, nil
}

// Skeleton is one tracked body as delivered by the sensor.
type Skeleton struct {
	TrackingID    int
	TrackingState TrackingState
	// Position is the aggregate body position, valid for PositionOnly bodies.
	Position     r3.Vec
	ClippedEdges FrameEdges
	Joints       [JointCount]Joint
}

// New returns a NotTracked skeleton whose joints carry their types and
// are all NotTracked.
func New() Skeleton {
	var s Skeleton
	for i := range s.Joints {
		s.Joints[i].Type = JointType(i)
	}
	return s
}

// Joint returns the joint of the given type.
func (s *Skeleton) Joint(t JointType) Joint {
	return s.Joints[t]
}

// SetJoint replaces the joint of j.Type. Used by sensors while building a
// frame; downstream code treats skeletons as read-only.
func (s *Skeleton) SetJoint(j Joint) {
	s.Joints[j.Type] = j
}

// TrackingMode selects the sensor's skeletal tracking model.
type TrackingMode int

const (
	ModeDefault TrackingMode = iota
	// ModeSeated tracks only the ten upper-body joints.
	ModeSeated
)

// String returns "default" or "seated".
func (m TrackingMode) String() string {
	if m == ModeSeated {
		return "seated"
	}
	return "default"
}

// ParseTrackingMode parses "default" or "seated"; empty means default.
func ParseTrackingMode(s string) (TrackingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return ModeDefault, nil
	case "seated":
		return ModeSeated, nil
	default:
		return ModeDefault, fmt.Errorf("unknown tracking mode %q: expected default or seated", s)
	}
}

// Frame is one sensor tick.
type Frame struct {
	Number       uint64
	Timestamp    time.Time
	TrackingMode TrackingMode
	Skeletons    []Skeleton
}

// Primary selects the single body processed for this frame: the first
// Tracked skeleton, else the first PositionOnly one. ok is false when the
// frame carries no body.
func (f *Frame) Primary() (s Skeleton, ok bool) {
	if f == nil {
		return Skeleton{}, false
	}
	for _, sk := range f.Skeletons {
		if sk.TrackingState == Tracked {
			return sk, true
		}
	}
	for _, sk := range f.Skeletons {
		if sk.TrackingState == PositionOnly {
			return sk, true
		}
	}
	return Skeleton{}, false
}
