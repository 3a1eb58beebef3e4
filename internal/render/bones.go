package render

import "github.com/banshee-data/skeletontrail/internal/skeleton"

// Bone connects two anatomically adjacent joints.
type Bone struct {
	From, To skeleton.JointType
}

// Label returns "From-To".
func (b Bone) Label() string {
	return b.From.String() + "-" + b.To.String()
}

// Bones is the fixed 19-segment stick figure, torso first.
var Bones = [...]Bone{
	// Torso
	{skeleton.Head, skeleton.ShoulderCenter},
	{skeleton.ShoulderCenter, skeleton.ShoulderLeft},
	{skeleton.ShoulderCenter, skeleton.ShoulderRight},
	{skeleton.ShoulderCenter, skeleton.Spine},
	{skeleton.Spine, skeleton.HipCenter},
	{skeleton.HipCenter, skeleton.HipLeft},
	{skeleton.HipCenter, skeleton.HipRight},

	// Left arm
	{skeleton.ShoulderLeft, skeleton.ElbowLeft},
	{skeleton.ElbowLeft, skeleton.WristLeft},
	{skeleton.WristLeft, skeleton.HandLeft},

	// Right arm
	{skeleton.ShoulderRight, skeleton.ElbowRight},
	{skeleton.ElbowRight, skeleton.WristRight},
	{skeleton.WristRight, skeleton.HandRight},

	// Left leg
	{skeleton.HipLeft, skeleton.KneeLeft},
	{skeleton.KneeLeft, skeleton.AnkleLeft},
	{skeleton.AnkleLeft, skeleton.FootLeft},

	// Right leg
	{skeleton.HipRight, skeleton.KneeRight},
	{skeleton.KneeRight, skeleton.AnkleRight},
	{skeleton.AnkleRight, skeleton.FootRight},
}

// BoneKind is the outcome of the bone-drawing rule.
type BoneKind int

const (
	// BoneSkipped bones produce no draw command.
	BoneSkipped BoneKind = iota
	// BoneInferred bones are drawn thin and grey.
	BoneInferred
	// BoneTracked bones are drawn in the gesture colour.
	BoneTracked
)

// ClassifyBone applies the bone rule to the endpoint tracking states: skip
// if either end is NotTracked or both are Inferred, tracked style only when
// both are Tracked, inferred style otherwise.
func ClassifyBone(a, b skeleton.JointTrackingState) BoneKind {
	if a == skeleton.JointNotTracked || b == skeleton.JointNotTracked {
		return BoneSkipped
	}
	if a == skeleton.JointInferred && b == skeleton.JointInferred {
		return BoneSkipped
	}
	if a == skeleton.JointTracked && b == skeleton.JointTracked {
		return BoneTracked
	}
	return BoneInferred
}

// HasTrackedBone reports whether any skeleton has a bone with both
// endpoints Tracked, i.e. whether a frame would draw in the gesture colour.
func HasTrackedBone(skels []skeleton.Skeleton) bool {
	for i := range skels {
		for _, b := range Bones {
			if ClassifyBone(skels[i].Joints[b.From].TrackingState, skels[i].Joints[b.To].TrackingState) == BoneTracked {
				return true
			}
		}
	}
	return false
}
