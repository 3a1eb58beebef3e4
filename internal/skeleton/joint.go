package skeleton

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// JointType identifies a body-part landmark. Values follow the sensor's
// joint ordering so a Skeleton can index its joints by type.
type JointType int

const (
	HipCenter JointType = iota
	Spine
	ShoulderCenter
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight

	// JointCount is the number of joints in a Skeleton.
	JointCount = int(FootRight) + 1
)

var jointNames = [JointCount]string{
	"HipCenter", "Spine", "ShoulderCenter", "Head",
	"ShoulderLeft", "ElbowLeft", "WristLeft", "HandLeft",
	"ShoulderRight", "ElbowRight", "WristRight", "HandRight",
	"HipLeft", "KneeLeft", "AnkleLeft", "FootLeft",
	"HipRight", "KneeRight", "AnkleRight", "FootRight",
}

// String returns the joint's canonical name, e.g. "HandRight".
func (t JointType) String() string {
	if t < 0 || int(t) >= JointCount {
		return fmt.Sprintf("JointType(%d)", int(t))
	}
	return jointNames[t]
}

// Valid reports whether t names one of the JointCount joints.
func (t JointType) Valid() bool {
	return t >= 0 && int(t) < JointCount
}

// ParseJointType resolves a canonical joint name.
func ParseJointType(s string) (JointType, error) {
	for i, name := range jointNames {
		if name == s {
			return JointType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown joint type %q", s)
}

// UpperBody reports whether the joint is tracked in seated mode.
func (t JointType) UpperBody() bool {
	switch t {
	case ShoulderCenter, Head,
		ShoulderLeft, ElbowLeft, WristLeft, HandLeft,
		ShoulderRight, ElbowRight, WristRight, HandRight:
		return true
	default:
		return false
	}
}

// JointTrackingState is the sensor's confidence in a joint position.
type JointTrackingState int

const (
	JointNotTracked JointTrackingState = iota
	JointInferred
	JointTracked
)

// String returns the lower-case wire name of the state.
func (s JointTrackingState) String() string {
	switch s {
	case JointNotTracked:
		return "not_tracked"
	case JointInferred:
		return "inferred"
	case JointTracked:
		return "tracked"
	default:
		return "unknown"
	}
}

// ParseJointTrackingState parses the wire name produced by String.
func ParseJointTrackingState(s string) (JointTrackingState, error) {
	switch s {
	case "not_tracked", "":
		return JointNotTracked, nil
	case "inferred":
		return JointInferred, nil
	case "tracked":
		return JointTracked, nil
	default:
		return JointNotTracked, fmt.Errorf("unknown joint tracking state %q", s)
	}
}

// Joint is a single landmark sample.
type Joint struct {
	Type          JointType
	Position      r3.Vec
	TrackingState JointTrackingState
}
