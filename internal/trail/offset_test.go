package trail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

func TestOffsetSlotZeroIsIdentity(t *testing.T) {
	o := NewOffsetter(DefaultStep)
	j := skeleton.Joint{Type: skeleton.Head, Position: r3.Vec{X: 0.13, Y: -0.42, Z: 2.7}}
	assert.Equal(t, j.Position, o.Offset(j, 0))
}

func TestOffsetPerAxis(t *testing.T) {
	o := NewOffsetter(DefaultStep)
	j := skeleton.Joint{Type: skeleton.HandRight, Position: r3.Vec{X: 0.3, Y: 0.1, Z: 1.9}}
	for slot := -2; slot <= 10; slot++ {
		got := o.Offset(j, slot)
		want := 0.05 * float64(slot)
		assert.InDelta(t, want, got.X-j.Position.X, 1e-12, "slot %d x", slot)
		assert.InDelta(t, want, got.Y-j.Position.Y, 1e-12, "slot %d y", slot)
		assert.InDelta(t, want, got.Z-j.Position.Z, 1e-12, "slot %d z", slot)
	}
}

func TestOffsetDoesNotMutateJoint(t *testing.T) {
	o := NewOffsetter(0.5)
	j := skeleton.Joint{Position: r3.Vec{X: 1, Y: 2, Z: 3}}
	_ = o.Offset(j, 4)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, j.Position)
	assert.Equal(t, r3.Vec{X: 3, Y: 4, Z: 5}, o.OffsetPoint(j.Position, 4))
}
