// Package gesture derives the bone colour state from the height of the
// right hand relative to the hip centre, shoulder centre and head.
package gesture

import (
	"fmt"

	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

// State is one of the four reference bone colours.
type State int

const (
	Blue State = iota
	Green
	Yellow
	Red
)

// Initial is the colour before any classification.
const Initial = Blue

// States lists every state in band order, lowest hand first.
var States = []State{Blue, Green, Yellow, Red}

// String returns the lower-case colour name.
func (s State) String() string {
	switch s {
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Description says where the right hand is for the state.
func (s State) Description() string {
	switch s {
	case Blue:
		return "right hand below hips"
	case Green:
		return "right hand between hips and shoulders"
	case Yellow:
		return "right hand between shoulders and head"
	case Red:
		return "right hand above head"
	default:
		return "unknown"
	}
}

// Band classifies a single skeleton. Bands are checked in order and the
// first match wins:
//
//	hand <  hip               -> Blue
//	hip <= hand < shoulder    -> Green
//	shoulder <= hand < head   -> Yellow
//	hand >= head              -> Red
//
// References are not required to be ordered; a noisy frame with the hip
// above the shoulder still lands in the first band whose test passes. Only
// a NaN height that fails every comparison matches no band, and then ok is
// false. Tracking states are not consulted.
func Band(s *skeleton.Skeleton) (state State, ok bool) {
	hand := s.Joint(skeleton.HandRight).Position.Y
	hip := s.Joint(skeleton.HipCenter).Position.Y
	shoulder := s.Joint(skeleton.ShoulderCenter).Position.Y
	head := s.Joint(skeleton.Head).Position.Y

	switch {
	case hand < hip:
		return Blue, true
	case hip <= hand && hand < shoulder:
		return Green, true
	case shoulder <= hand && hand < head:
		return Yellow, true
	case hand >= head:
		return Red, true
	}
	return 0, false
}

// Classifier holds the colour state across frames.
type Classifier struct {
	state State
}

// NewClassifier returns a classifier starting at Initial.
func NewClassifier() *Classifier {
	return &Classifier{state: Initial}
}

// State returns the current colour state.
func (c *Classifier) State() State { return c.state }

// Update classifies s and stores the result. When no band matches the
// previous state is kept. changed reports whether the state moved.
func (c *Classifier) Update(s *skeleton.Skeleton) (state State, changed bool) {
	next, ok := Band(s)
	if !ok || next == c.state {
		return c.state, false
	}
	c.state = next
	return next, true
}

// Reset restores the initial state.
func (c *Classifier) Reset() { c.state = Initial }
