package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

func body(id int) skeleton.Skeleton {
	s := skeleton.New()
	s.TrackingID = id
	s.TrackingState = skeleton.Tracked
	return s
}

func ids(b *Buffer) []int {
	var out []int
	for _, s := range b.Snapshots() {
		out = append(out, s.TrackingID)
	}
	return out
}

func TestNewDefaults(t *testing.T) {
	b := New(0, -1)
	assert.Equal(t, DefaultCapacity, b.Capacity())
	assert.Equal(t, DefaultFrameInterval, b.FrameInterval())
	assert.Equal(t, 0, b.Len())
	_, ok := b.Newest()
	assert.False(t, ok)
	assert.Nil(t, b.Snapshots())
}

func TestAdmitDecimation(t *testing.T) {
	b := New(1, 3)

	// Frames 1..9: insertions on frames 1, 4, 7.
	var inserted []int
	for i := 1; i <= 9; i++ {
		if b.Admit(body(i)) {
			inserted = append(inserted, i)
		}
	}
	assert.Equal(t, []int{1, 4, 7}, inserted)
	assert.Equal(t, []int{7}, ids(b))
}

func TestAdmitLeavesContentsUnchangedBetweenSamples(t *testing.T) {
	b := New(2, 3)
	require.True(t, b.Admit(body(1)))
	before := b.Snapshots()

	assert.False(t, b.Admit(body(2)))
	assert.Equal(t, before, b.Snapshots())
	assert.False(t, b.Admit(body(3)))
	assert.Equal(t, before, b.Snapshots())

	assert.True(t, b.Admit(body(4)))
	assert.Equal(t, []int{4, 1}, ids(b))
}

func TestCapacityNeverExceeded(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 5} {
		for _, interval := range []int{1, 2, 3} {
			b := New(capacity, interval)
			for i := 0; i < 40; i++ {
				b.Admit(body(i))
				require.LessOrEqual(t, b.Len(), capacity)
			}
			assert.Equal(t, capacity, b.Len())
		}
	}
}

func TestEvictionDropsOldest(t *testing.T) {
	b := New(3, 1)
	for i := 1; i <= 5; i++ {
		b.Admit(body(i))
	}
	assert.Equal(t, []int{5, 4, 3}, ids(b))

	s, ok := b.At(2)
	require.True(t, ok)
	assert.Equal(t, 3, s.TrackingID)
	_, ok = b.At(3)
	assert.False(t, ok)
	_, ok = b.At(-1)
	assert.False(t, ok)

	newest, ok := b.Newest()
	require.True(t, ok)
	assert.Equal(t, 5, newest.TrackingID)
}

func TestClear(t *testing.T) {
	b := New(2, 3)
	b.Admit(body(1))
	b.Admit(body(2))
	b.Clear()
	assert.Equal(t, 0, b.Len())

	// Counter reset: the next frame is admitted.
	assert.True(t, b.Admit(body(3)))
	assert.Equal(t, []int{3}, ids(b))
}
