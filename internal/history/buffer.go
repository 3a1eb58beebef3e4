// Package history keeps the short, decimated run of recent skeletons that
// the renderer fans out into a trail.
package history

import "github.com/banshee-data/skeletontrail/internal/skeleton"

const (
	// DefaultCapacity is the number of retained snapshots.
	DefaultCapacity = 1
	// DefaultFrameInterval admits one frame in every three.
	DefaultFrameInterval = 3
)

// Buffer is a bounded, newest-first sequence of skeleton snapshots with a
// sample-interval counter governing admission.
//
// It is not safe for concurrent use; the pipeline confines it to the
// sensor's delivery goroutine.
type Buffer struct {
	slots         []skeleton.Skeleton
	capacity      int
	frameInterval int
	head          int // index of the newest snapshot
	size          int
	counter       int
}

// New creates a buffer retaining at most capacity snapshots and admitting
// one frame every frameInterval frames. Non-positive arguments fall back to
// the defaults.
func New(capacity, frameInterval int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if frameInterval < 1 {
		frameInterval = DefaultFrameInterval
	}
	return &Buffer{
		slots:         make([]skeleton.Skeleton, capacity),
		capacity:      capacity,
		frameInterval: frameInterval,
	}
}

// Admit offers one incoming skeleton. When the sample counter is at zero
// modulo the frame interval the skeleton is inserted at the front and the
// counter resets; otherwise it is dropped for buffering purposes. The
// counter advances on every call. Admit reports whether an insertion
// happened.
func (b *Buffer) Admit(s skeleton.Skeleton) bool {
	inserted := false
	if b.counter%b.frameInterval == 0 {
		b.pushFront(s)
		b.counter = 0
		inserted = true
	}
	b.counter++
	return inserted
}

// pushFront inserts s as slot 0, shifting existing snapshots back by one.
func (b *Buffer) pushFront(s skeleton.Skeleton) {
	b.head = (b.head - 1 + b.capacity) % b.capacity
	b.slots[b.head] = s
	b.size++
	if b.size > b.capacity {
		b.evict()
	}
}

// evict drops the snapshot at index Capacity(), the one pushed past the
// bound by the latest insertion. With a fixed capacity this is always the
// oldest snapshot. pushFront has already reused its ring cell for the new
// slot 0, so only the size needs correcting.
func (b *Buffer) evict() {
	b.size = b.capacity
}

// Len returns the number of retained snapshots.
func (b *Buffer) Len() int { return b.size }

// Capacity returns the maximum number of retained snapshots.
func (b *Buffer) Capacity() int { return b.capacity }

// FrameInterval returns the admission decimation interval.
func (b *Buffer) FrameInterval() int { return b.frameInterval }

// At returns the snapshot in the given slot; slot 0 is the newest.
// ok is false for slots outside [0, Len()).
func (b *Buffer) At(slot int) (s skeleton.Skeleton, ok bool) {
	if slot < 0 || slot >= b.size {
		return skeleton.Skeleton{}, false
	}
	return b.slots[(b.head+slot)%b.capacity], true
}

// Newest returns slot 0.
func (b *Buffer) Newest() (skeleton.Skeleton, bool) {
	return b.At(0)
}

// Snapshots returns a newest-first copy of the retained skeletons.
func (b *Buffer) Snapshots() []skeleton.Skeleton {
	if b.size == 0 {
		return nil
	}
	out := make([]skeleton.Skeleton, b.size)
	for i := range out {
		out[i] = b.slots[(b.head+i)%b.capacity]
	}
	return out
}

// Clear removes all snapshots and resets the sample counter.
func (b *Buffer) Clear() {
	for i := range b.slots {
		b.slots[i] = skeleton.Skeleton{}
	}
	b.head = 0
	b.size = 0
	b.counter = 0
}
