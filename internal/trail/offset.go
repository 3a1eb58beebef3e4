// Package trail produces the spatial fan-out that turns retained history
// slots into a visible trail.
package trail

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

// DefaultStep is the per-slot translation along each axis, in metres.
const DefaultStep = 0.05

// Offsetter translates positions by Step × slot on x, y and z.
type Offsetter struct {
	Step float64
}

// NewOffsetter returns an Offsetter with the given step.
func NewOffsetter(step float64) Offsetter {
	return Offsetter{Step: step}
}

// Offset returns the joint's position shifted for the given history slot.
// Slot 0 is the identity.
func (o Offsetter) Offset(j skeleton.Joint, slot int) r3.Vec {
	return o.OffsetPoint(j.Position, slot)
}

// OffsetPoint shifts an arbitrary sensor-space point for the given slot.
func (o Offsetter) OffsetPoint(p r3.Vec, slot int) r3.Vec {
	if slot == 0 {
		return p
	}
	d := o.Step * float64(slot)
	return r3.Add(p, r3.Vec{X: d, Y: d, Z: d})
}
