package render

import (
	"fmt"

	"github.com/banshee-data/skeletontrail/internal/gesture"
	"github.com/banshee-data/skeletontrail/internal/mapping"
	"github.com/banshee-data/skeletontrail/internal/skeleton"
	"github.com/banshee-data/skeletontrail/internal/trail"
)

// frameSlot marks primitives that are not tied to a history slot.
const frameSlot = -1

// Renderer draws clip indicators, bones and joints for every retained
// skeleton.
type Renderer struct {
	cfg    Config
	offset trail.Offsetter
	mapper mapping.Mapper
}

// New returns a Renderer. mapper may be nil while no sensor is active;
// RenderFrame then fails with mapping.ErrNoMapper.
func New(cfg Config, offset trail.Offsetter, mapper mapping.Mapper) *Renderer {
	return &Renderer{cfg: cfg, offset: offset, mapper: mapper}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config { return r.cfg }

// SetMapper swaps the coordinate mapper, e.g. after a sensor restart.
func (r *Renderer) SetMapper(m mapping.Mapper) { r.mapper = m }

// Background returns the background-only frame.
func (r *Renderer) Background() []Command {
	return []Command{{
		Kind:  KindClear,
		Color: r.cfg.Palette.Background,
		Rect:  Rect{W: r.cfg.Width, H: r.cfg.Height},
		Slot:  frameSlot,
		Label: "background",
	}}
}

// RenderFrame draws one frame. current is the body delivered with this
// frame (nil when none); buffered holds the retained snapshots newest
// first. Slots are drawn from the oldest to the newest so newer trail
// copies paint over older ones. Any mapping failure aborts the frame.
func (r *Renderer) RenderFrame(current *skeleton.Skeleton, buffered []skeleton.Skeleton, color gesture.State) ([]Command, error) {
	if r.mapper == nil {
		return nil, mapping.ErrNoMapper
	}
	cmds := r.Background()
	if current == nil {
		return cmds, nil
	}

	cmds = r.appendClippedEdges(cmds, current.ClippedEdges)

	switch current.TrackingState {
	case skeleton.Tracked:
		for slot := len(buffered) - 1; slot >= 0; slot-- {
			var err error
			if cmds, err = r.appendSkeleton(cmds, &buffered[slot], slot, color); err != nil {
				return nil, err
			}
		}
	case skeleton.PositionOnly:
		p, err := r.mapper.ToScreen(current.Position)
		if err != nil {
			return nil, fmt.Errorf("body centre: %w", err)
		}
		cmds = append(cmds, Command{
			Kind:    KindEllipse,
			Color:   r.cfg.Palette.CenterPoint,
			From:    p,
			RadiusX: r.cfg.BodyCenterThickness,
			RadiusY: r.cfg.BodyCenterThickness,
			Slot:    frameSlot,
			Label:   "center",
		})
	}
	return cmds, nil
}

// appendClippedEdges adds one bar per clipped edge.
func (r *Renderer) appendClippedEdges(cmds []Command, edges skeleton.FrameEdges) []Command {
	w, h, t := r.cfg.Width, r.cfg.Height, r.cfg.ClipBoundsThickness
	bars := []struct {
		edge skeleton.FrameEdges
		rect Rect
		name string
	}{
		{skeleton.EdgeBottom, Rect{X: 0, Y: h - t, W: w, H: t}, "clip:bottom"},
		{skeleton.EdgeTop, Rect{X: 0, Y: 0, W: w, H: t}, "clip:top"},
		{skeleton.EdgeLeft, Rect{X: 0, Y: 0, W: t, H: h}, "clip:left"},
		{skeleton.EdgeRight, Rect{X: w - t, Y: 0, W: t, H: h}, "clip:right"},
	}
	for _, b := range bars {
		if edges.Has(b.edge) {
			cmds = append(cmds, Command{Kind: KindRect, Color: r.cfg.Palette.ClipEdge, Rect: b.rect, Slot: frameSlot, Label: b.name})
		}
	}
	return cmds
}

// appendSkeleton adds the bones and then the joints of one history slot.
func (r *Renderer) appendSkeleton(cmds []Command, s *skeleton.Skeleton, slot int, color gesture.State) ([]Command, error) {
	for _, b := range Bones {
		var err error
		if cmds, err = r.appendBone(cmds, s, b, slot, color); err != nil {
			return nil, err
		}
	}

	for _, j := range s.Joints {
		fill := r.cfg.Palette.TrackedJoint
		switch j.TrackingState {
		case skeleton.JointNotTracked:
			continue
		case skeleton.JointInferred:
			fill = r.cfg.Palette.InferredJoint
		}
		radius := r.cfg.JointThickness
		if j.Type == skeleton.Head {
			fill = r.cfg.Palette.Head
			radius = r.cfg.HeadThickness
		}
		p, err := r.mapper.ToScreen(r.offset.Offset(j, slot))
		if err != nil {
			return nil, fmt.Errorf("slot %d joint %s: %w", slot, j.Type, err)
		}
		cmds = append(cmds, Command{
			Kind:    KindEllipse,
			Color:   fill,
			From:    p,
			RadiusX: radius,
			RadiusY: radius,
			Slot:    slot,
			Label:   "joint:" + j.Type.String(),
		})
	}
	return cmds, nil
}

// appendBone applies the bone rule and adds at most one line.
func (r *Renderer) appendBone(cmds []Command, s *skeleton.Skeleton, b Bone, slot int, color gesture.State) ([]Command, error) {
	j0, j1 := s.Joint(b.From), s.Joint(b.To)

	var (
		stroke = r.cfg.Palette.InferredBone
		width  = r.cfg.InferredBoneWidth
	)
	switch ClassifyBone(j0.TrackingState, j1.TrackingState) {
	case BoneSkipped:
		return cmds, nil
	case BoneTracked:
		stroke = r.cfg.Palette.boneColor(color)
		width = r.cfg.TrackedBoneWidth
	}

	p0, err := r.mapper.ToScreen(r.offset.Offset(j0, slot))
	if err != nil {
		return nil, fmt.Errorf("slot %d bone %s: %w", slot, b.Label(), err)
	}
	p1, err := r.mapper.ToScreen(r.offset.Offset(j1, slot))
	if err != nil {
		return nil, fmt.Errorf("slot %d bone %s: %w", slot, b.Label(), err)
	}
	return append(cmds, Command{
		Kind:  KindLine,
		Color: stroke,
		From:  p0,
		To:    p1,
		Width: width,
		Slot:  slot,
		Label: "bone:" + b.Label(),
	}), nil
}
