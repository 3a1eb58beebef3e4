package skeleton

import (
	"encoding/json"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Wire format: one JSON object per frame, newline separated.
//
//	{"frame":1,"timestamp_ns":0,"tracking_mode":"default","skeletons":[
//	  {"tracking_id":1,"tracking_state":"tracked","position":{"x":0,"y":0,"z":2},
//	   "clipped_edges":["top"],
//	   "joints":[{"type":"Head","tracking_state":"tracked","position":{"x":0,"y":0.6,"z":2}}]}]}
//
// Joints absent from the list decode as NotTracked.

type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type wireJoint struct {
	Type          string    `json:"type"`
	TrackingState string    `json:"tracking_state"`
	Position      wirePoint `json:"position"`
}

type wireSkeleton struct {
	TrackingID    int         `json:"tracking_id"`
	TrackingState string      `json:"tracking_state"`
	Position      wirePoint   `json:"position"`
	ClippedEdges  []string    `json:"clipped_edges,omitempty"`
	Joints        []wireJoint `json:"joints,omitempty"`
}

type wireFrame struct {
	Frame        uint64         `json:"frame"`
	TimestampNs  int64          `json:"timestamp_ns"`
	TrackingMode string         `json:"tracking_mode,omitempty"`
	Skeletons    []wireSkeleton `json:"skeletons"`
}

func toWirePoint(v r3.Vec) wirePoint { return wirePoint{X: v.X, Y: v.Y, Z: v.Z} }
func (p wirePoint) vec() r3.Vec      { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// MarshalJSON encodes the frame in the wire format.
func (f Frame) MarshalJSON() ([]byte, error) {
	wf := wireFrame{
		Frame:        f.Number,
		TrackingMode: f.TrackingMode.String(),
		Skeletons:    make([]wireSkeleton, 0, len(f.Skeletons)),
	}
	if !f.Timestamp.IsZero() {
		wf.TimestampNs = f.Timestamp.UnixNano()
	}
	for _, s := range f.Skeletons {
		ws := wireSkeleton{
			TrackingID:    s.TrackingID,
			TrackingState: s.TrackingState.String(),
			Position:      toWirePoint(s.Position),
			ClippedEdges:  s.ClippedEdges.Names(),
		}
		for _, j := range s.Joints {
			if j.TrackingState == JointNotTracked {
				continue
			}
			ws.Joints = append(ws.Joints, wireJoint{
				Type:          j.Type.String(),
				TrackingState: j.TrackingState.String(),
				Position:      toWirePoint(j.Position),
			})
		}
		wf.Skeletons = append(wf.Skeletons, ws)
	}
	return json.Marshal(wf)
}

// UnmarshalJSON decodes a frame from the wire format.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var wf wireFrame
	if err := json.Unmarshal(data, &wf); err != nil {
		return err
	}
	mode, err := ParseTrackingMode(wf.TrackingMode)
	if err != nil {
		return err
	}
	out := Frame{Number: wf.Frame, TrackingMode: mode}
	if wf.TimestampNs != 0 {
		out.Timestamp = time.Unix(0, wf.TimestampNs)
	}
	if len(wf.Skeletons) > MaxSkeletons {
		return fmt.Errorf("frame %d carries %d skeletons (max %d)", wf.Frame, len(wf.Skeletons), MaxSkeletons)
	}
	for i, ws := range wf.Skeletons {
		s := New()
		s.TrackingID = ws.TrackingID
		s.Position = ws.Position.vec()
		if s.TrackingState, err = ParseTrackingState(ws.TrackingState); err != nil {
			return fmt.Errorf("skeleton %d: %w", i, err)
		}
		if s.ClippedEdges, err = ParseFrameEdges(ws.ClippedEdges); err != nil {
			return fmt.Errorf("skeleton %d: %w", i, err)
		}
		for _, wj := range ws.Joints {
			jt, err := ParseJointType(wj.Type)
			if err != nil {
				return fmt.Errorf("skeleton %d: %w", i, err)
			}
			state, err := ParseJointTrackingState(wj.TrackingState)
			if err != nil {
				return fmt.Errorf("skeleton %d joint %s: %w", i, jt, err)
			}
			s.SetJoint(Joint{Type: jt, Position: wj.Position.vec(), TrackingState: state})
		}
		out.Skeletons = append(out.Skeletons, s)
	}
	*f = out
	return nil
}

// DecodeFrame parses one wire-format line into a Frame.
func DecodeFrame(line []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(line, &f); err != nil {
		return nil, fmt.Errorf("decode skeleton frame: %w", err)
	}
	return &f, nil
}
