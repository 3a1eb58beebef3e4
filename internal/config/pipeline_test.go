package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/skeletontrail/internal/gesture"
	"github.com/banshee-data/skeletontrail/internal/render"
	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *PipelineConfig
		wantErr bool
	}{
		{name: "empty config", config: EmptyPipelineConfig(), wantErr: false},
		{name: "defaults", config: DefaultPipelineConfig(), wantErr: false},
		{name: "zero list size", config: &PipelineConfig{ListSize: ptrInt(0)}, wantErr: true},
		{name: "negative frame interval", config: &PipelineConfig{FrameInterval: ptrInt(-1)}, wantErr: true},
		{name: "frame interval of one", config: &PipelineConfig{FrameInterval: ptrInt(1)}, wantErr: false},
		{name: "zero width", config: &PipelineConfig{RenderWidth: ptrInt(0)}, wantErr: true},
		{name: "negative height", config: &PipelineConfig{RenderHeight: ptrInt(-480)}, wantErr: true},
		{name: "negative head thickness", config: &PipelineConfig{HeadThickness: ptrFloat64(-1)}, wantErr: true},
		{name: "zero bone width", config: &PipelineConfig{InferredBoneWidth: ptrFloat64(0)}, wantErr: false},
		{name: "zero frame rate", config: &PipelineConfig{FrameRate: ptrFloat64(0)}, wantErr: true},
		{name: "seated mode", config: &PipelineConfig{TrackingMode: ptrString("seated")}, wantErr: false},
		{name: "unknown mode", config: &PipelineConfig{TrackingMode: ptrString("lying")}, wantErr: true},
		{name: "short hex colour", config: &PipelineConfig{Colors: &ColorConfig{Red: ptrString("#f00")}}, wantErr: false},
		{name: "bad colour", config: &PipelineConfig{Colors: &ColorConfig{Head: ptrString("crimson")}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetters(t *testing.T) {
	t.Run("nil pointers return defaults", func(t *testing.T) {
		cfg := EmptyPipelineConfig()
		assert.Equal(t, 1, cfg.GetListSize())
		assert.Equal(t, 3, cfg.GetFrameInterval())
		assert.InDelta(t, 0.05, cfg.GetTrailStep(), 1e-12)
		assert.Equal(t, 640, cfg.GetRenderWidth())
		assert.Equal(t, 480, cfg.GetRenderHeight())
		assert.Equal(t, skeleton.ModeDefault, cfg.GetTrackingMode())
		assert.InDelta(t, 30.0, cfg.GetFrameRate(), 1e-12)
	})

	t.Run("set values win", func(t *testing.T) {
		cfg := &PipelineConfig{
			ListSize:      ptrInt(5),
			FrameInterval: ptrInt(2),
			TrailStep:     ptrFloat64(0.1),
			RenderWidth:   ptrInt(320),
			RenderHeight:  ptrInt(240),
			TrackingMode:  ptrString("seated"),
			FrameRate:     ptrFloat64(15),
		}
		assert.Equal(t, 5, cfg.GetListSize())
		assert.Equal(t, 2, cfg.GetFrameInterval())
		assert.InDelta(t, 0.1, cfg.GetTrailStep(), 1e-12)
		assert.Equal(t, 320, cfg.GetRenderWidth())
		assert.Equal(t, 240, cfg.GetRenderHeight())
		assert.Equal(t, skeleton.ModeSeated, cfg.GetTrackingMode())
		assert.InDelta(t, 15.0, cfg.GetFrameRate(), 1e-12)
	})
}

func TestRenderConfig(t *testing.T) {
	t.Run("empty config matches renderer defaults", func(t *testing.T) {
		got, err := EmptyPipelineConfig().RenderConfig()
		require.NoError(t, err)
		assert.Equal(t, render.DefaultConfig(), got)
	})

	t.Run("default file values match renderer defaults", func(t *testing.T) {
		got, err := DefaultPipelineConfig().RenderConfig()
		require.NoError(t, err)
		assert.Equal(t, render.DefaultConfig(), got)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := &PipelineConfig{
			RenderWidth:   ptrInt(320),
			HeadThickness: ptrFloat64(12),
			Colors: &ColorConfig{
				Green:      ptrString("#00ff00"),
				Background: ptrString("#fff"),
			},
		}
		got, err := cfg.RenderConfig()
		require.NoError(t, err)
		assert.Equal(t, 320.0, got.Width)
		assert.Equal(t, 480.0, got.Height)
		assert.Equal(t, 12.0, got.HeadThickness)
		assert.Equal(t, color.RGBA{G: 255, A: 255}, got.Palette.Bones[gesture.Green])
		assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, got.Palette.Background)
		// Untouched entries keep the reference colours.
		assert.Equal(t, render.DefaultPalette().Bones[gesture.Blue], got.Palette.Bones[gesture.Blue])
	})

	t.Run("bad colour", func(t *testing.T) {
		cfg := &PipelineConfig{Colors: &ColorConfig{Blue: ptrString("#12")}}
		_, err := cfg.RenderConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "colors.blue")
	})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#0affff", want: color.RGBA{R: 10, G: 255, B: 255, A: 255}},
		{in: "#ff1919", want: color.RGBA{R: 255, G: 25, B: 25, A: 255}},
		{in: "#f00", want: color.RGBA{R: 255, A: 255}},
		{in: "0affff", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadPipelineConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "valid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"list_size": 4, "frame_interval": 2, "tracking_mode": "seated"}`), 0o644))

		cfg, err := LoadPipelineConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.GetListSize())
		assert.Equal(t, 2, cfg.GetFrameInterval())
		assert.Equal(t, skeleton.ModeSeated, cfg.GetTrackingMode())
		// Unset fields fall back.
		assert.Equal(t, 640, cfg.GetRenderWidth())
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
		_, err := LoadPipelineConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".json extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPipelineConfig(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(dir, "big.json")
		big := `{"list_size": 1` + strings.Repeat(" ", 1024*1024+1) + `}`
		require.NoError(t, os.WriteFile(path, []byte(big), 0o644))
		_, err := LoadPipelineConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"list_size": `), 0o644))
		_, err := LoadPipelineConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config JSON")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"list_size": 0}`), 0o644))
		_, err := LoadPipelineConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	assert.Equal(t, DefaultPipelineConfig(), cfg)
}

func TestResolved(t *testing.T) {
	got, err := EmptyPipelineConfig().Resolved()
	require.NoError(t, err)
	assert.Equal(t, DefaultPipelineConfig(), got)

	_, err = (&PipelineConfig{Colors: &ColorConfig{Red: ptrString("red")}}).Resolved()
	assert.Error(t, err)
}
