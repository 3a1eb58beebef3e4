package skeleton

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestJointTypeNames(t *testing.T) {
	for i := 0; i < JointCount; i++ {
		jt := JointType(i)
		parsed, err := ParseJointType(jt.String())
		require.NoError(t, err)
		assert.Equal(t, jt, parsed)
	}
	_, err := ParseJointType("Tail")
	assert.Error(t, err)
	assert.Equal(t, "JointType(42)", JointType(42).String())
	assert.False(t, JointType(-1).Valid())
}

func TestUpperBodyJoints(t *testing.T) {
	upper := 0
	for i := 0; i < JointCount; i++ {
		if JointType(i).UpperBody() {
			upper++
		}
	}
	assert.Equal(t, 10, upper)
	assert.True(t, HandRight.UpperBody())
	assert.False(t, HipCenter.UpperBody())
	assert.False(t, FootLeft.UpperBody())
}

func TestFrameEdges(t *testing.T) {
	e := EdgeTop | EdgeLeft
	assert.True(t, e.Has(EdgeTop))
	assert.True(t, e.Has(EdgeLeft))
	assert.False(t, e.Has(EdgeRight))
	assert.False(t, e.Has(EdgeNone))
	assert.Equal(t, []string{"top", "left"}, e.Names())
	assert.Equal(t, "top|left", e.String())
	assert.Equal(t, "none", EdgeNone.String())

	parsed, err := ParseFrameEdges([]string{"left", "top"})
	require.NoError(t, err)
	assert.Equal(t, e, parsed)

	_, err = ParseFrameEdges([]string{"front"})
	assert.Error(t, err)
}

func TestNewSkeletonJointTypes(t *testing.T) {
	s := New()
	for i, j := range s.Joints {
		assert.Equal(t, JointType(i), j.Type)
		assert.Equal(t, JointNotTracked, j.TrackingState)
	}
	s.SetJoint(Joint{Type: Head, Position: r3.Vec{Y: 1}, TrackingState: JointTracked})
	assert.Equal(t, 1.0, s.Joint(Head).Position.Y)
}

func TestFramePrimary(t *testing.T) {
	tracked := New()
	tracked.TrackingID = 7
	tracked.TrackingState = Tracked
	posOnly := New()
	posOnly.TrackingID = 3
	posOnly.TrackingState = PositionOnly

	tests := []struct {
		name   string
		frame  *Frame
		wantID int
		wantOK bool
	}{
		{"nil frame", nil, 0, false},
		{"empty", &Frame{}, 0, false},
		{"only untracked", &Frame{Skeletons: []Skeleton{New(), New()}}, 0, false},
		{"tracked wins over earlier position-only", &Frame{Skeletons: []Skeleton{New(), posOnly, tracked}}, 7, true},
		{"position-only fallback", &Frame{Skeletons: []Skeleton{New(), posOnly}}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := tt.frame.Primary()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, s.TrackingID)
		})
	}
}

func TestParseTrackingMode(t *testing.T) {
	m, err := ParseTrackingMode(" Seated ")
	require.NoError(t, err)
	assert.Equal(t, ModeSeated, m)
	m, err = ParseTrackingMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDefault, m)
	_, err = ParseTrackingMode("standing")
	assert.Error(t, err)
}

const sampleStream = `{"frame":1,"timestamp_ns":1000,"tracking_mode":"seated","skeletons":[{"tracking_id":4,"tracking_state":"tracked","position":{"x":0.1,"y":0.2,"z":2},"clipped_edges":["bottom","right"],"joints":[{"type":"Head","tracking_state":"tracked","position":{"x":0,"y":0.7,"z":2}},{"type":"HandRight","tracking_state":"inferred","position":{"x":0.3,"y":0.1,"z":1.9}}]}]}
{"frame":2,"skeletons":[]}
`

func TestDecodeFrameReadsLines(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(sampleStream), "\n")
	require.Len(t, lines, 2)

	f, err := DecodeFrame([]byte(lines[0]))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), f.Number)
	assert.Equal(t, int64(1000), f.Timestamp.UnixNano())
	assert.Equal(t, ModeSeated, f.TrackingMode)
	require.Len(t, f.Skeletons, 1)

	s := f.Skeletons[0]
	assert.Equal(t, 4, s.TrackingID)
	assert.Equal(t, Tracked, s.TrackingState)
	assert.Equal(t, EdgeBottom|EdgeRight, s.ClippedEdges)
	assert.Equal(t, JointTracked, s.Joint(Head).TrackingState)
	assert.Equal(t, 0.7, s.Joint(Head).Position.Y)
	assert.Equal(t, JointInferred, s.Joint(HandRight).TrackingState)
	assert.Equal(t, JointNotTracked, s.Joint(FootLeft).TrackingState)
	assert.Equal(t, FootLeft, s.Joint(FootLeft).Type)

	f, err = DecodeFrame([]byte(lines[1]))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), f.Number)
	assert.True(t, f.Timestamp.IsZero())
	assert.Empty(t, f.Skeletons)
}

func TestDecodeFrameRejectsBadInput(t *testing.T) {
	inputs := map[string]string{
		"bad joint": `{"frame":1,"skeletons":[{"tracking_state":"tracked","joints":[{"type":"Tail"}]}]}`,
		"bad state": `{"frame":1,"skeletons":[{"tracking_state":"flying"}]}`,
		"bad edge":  `{"frame":1,"skeletons":[{"clipped_edges":["front"]}]}`,
		"bad mode":  `{"frame":1,"tracking_mode":"lying","skeletons":[]}`,
		"truncated": `{"frame":1,`,
		"too many":  `{"frame":1,"skeletons":[{},{},{},{},{},{},{}]}`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFrame([]byte(in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode skeleton frame")
		})
	}
}

func TestMarshalDecodeAgree(t *testing.T) {
	s := New()
	s.TrackingID = 1
	s.TrackingState = Tracked
	s.ClippedEdges = EdgeTop
	s.SetJoint(Joint{Type: ShoulderCenter, Position: r3.Vec{X: 0.1, Y: 0.4, Z: 2.2}, TrackingState: JointTracked})
	in := &Frame{Number: 9, Skeletons: []Skeleton{s}}

	line, err := json.Marshal(in)
	require.NoError(t, err)
	out, err := DecodeFrame(line)
	require.NoError(t, err)
	assert.Equal(t, in.Skeletons, out.Skeletons)
	assert.Equal(t, in.Number, out.Number)
}
