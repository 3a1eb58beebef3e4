package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/banshee-data/skeletontrail/internal/gesture"
	"github.com/banshee-data/skeletontrail/internal/render"
	"github.com/banshee-data/skeletontrail/internal/skeleton"
)

// DefaultConfigPath is the path to the canonical pipeline defaults file.
const DefaultConfigPath = "config/pipeline.defaults.json"

// PipelineConfig is the runtime configuration of the frame pipeline.
// Every field is optional; the Get* methods supply the built-in default
// for anything left unset, so partial files are safe.
type PipelineConfig struct {
	// History params
	ListSize      *int     `json:"list_size,omitempty"`
	FrameInterval *int     `json:"frame_interval,omitempty"`
	TrailStep     *float64 `json:"trail_step,omitempty"`

	// Canvas params
	RenderWidth         *int     `json:"render_width,omitempty"`
	RenderHeight        *int     `json:"render_height,omitempty"`
	JointThickness      *float64 `json:"joint_thickness,omitempty"`
	HeadThickness       *float64 `json:"head_thickness,omitempty"`
	BodyCenterThickness *float64 `json:"body_center_thickness,omitempty"`
	ClipBoundsThickness *float64 `json:"clip_bounds_thickness,omitempty"`
	TrackedBoneWidth    *float64 `json:"tracked_bone_width,omitempty"`
	InferredBoneWidth   *float64 `json:"inferred_bone_width,omitempty"`

	// Colours as "#rrggbb" or "#rgb"
	Colors *ColorConfig `json:"colors,omitempty"`

	// Sensor params
	TrackingMode *string  `json:"tracking_mode,omitempty"` // "default" or "seated"
	FrameRate    *float64 `json:"frame_rate,omitempty"`    // synthetic sensor pacing, Hz
}

// ColorConfig overrides individual palette entries.
type ColorConfig struct {
	Blue          *string `json:"blue,omitempty"`
	Green         *string `json:"green,omitempty"`
	Yellow        *string `json:"yellow,omitempty"`
	Red           *string `json:"red,omitempty"`
	TrackedJoint  *string `json:"tracked_joint,omitempty"`
	InferredJoint *string `json:"inferred_joint,omitempty"`
	Head          *string `json:"head,omitempty"`
	InferredBone  *string `json:"inferred_bone,omitempty"`
	CenterPoint   *string `json:"center_point,omitempty"`
	ClipEdge      *string `json:"clip_edge,omitempty"`
	Background    *string `json:"background,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyPipelineConfig returns a PipelineConfig with all fields set to nil.
func EmptyPipelineConfig() *PipelineConfig {
	return &PipelineConfig{}
}

// DefaultPipelineConfig returns a PipelineConfig with every field set to
// its built-in default.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		ListSize:            ptrInt(1),
		FrameInterval:       ptrInt(3),
		TrailStep:           ptrFloat64(0.05),
		RenderWidth:         ptrInt(640),
		RenderHeight:        ptrInt(480),
		JointThickness:      ptrFloat64(3),
		HeadThickness:       ptrFloat64(25),
		BodyCenterThickness: ptrFloat64(10),
		ClipBoundsThickness: ptrFloat64(10),
		TrackedBoneWidth:    ptrFloat64(6),
		InferredBoneWidth:   ptrFloat64(1),
		Colors: &ColorConfig{
			Blue:          ptrString("#0000ff"),
			Green:         ptrString("#008000"),
			Yellow:        ptrString("#ffff00"),
			Red:           ptrString("#ff0000"),
			TrackedJoint:  ptrString("#0affff"),
			InferredJoint: ptrString("#ffff00"),
			Head:          ptrString("#ff1919"),
			InferredBone:  ptrString("#808080"),
			CenterPoint:   ptrString("#0000ff"),
			ClipEdge:      ptrString("#ff0000"),
			Background:    ptrString("#000000"),
		},
		TrackingMode: ptrString("default"),
		FrameRate:    ptrFloat64(30),
	}
}

// LoadPipelineConfig loads a PipelineConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPipelineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *PipelineConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadPipelineConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *PipelineConfig) Validate() error {
	if c.ListSize != nil && *c.ListSize < 1 {
		return fmt.Errorf("list_size must be at least 1, got %d", *c.ListSize)
	}
	if c.FrameInterval != nil && *c.FrameInterval < 1 {
		return fmt.Errorf("frame_interval must be at least 1, got %d", *c.FrameInterval)
	}
	if c.RenderWidth != nil && *c.RenderWidth <= 0 {
		return fmt.Errorf("render_width must be positive, got %d", *c.RenderWidth)
	}
	if c.RenderHeight != nil && *c.RenderHeight <= 0 {
		return fmt.Errorf("render_height must be positive, got %d", *c.RenderHeight)
	}

	sizes := []struct {
		name string
		v    *float64
	}{
		{"joint_thickness", c.JointThickness},
		{"head_thickness", c.HeadThickness},
		{"body_center_thickness", c.BodyCenterThickness},
		{"clip_bounds_thickness", c.ClipBoundsThickness},
		{"tracked_bone_width", c.TrackedBoneWidth},
		{"inferred_bone_width", c.InferredBoneWidth},
	}
	for _, s := range sizes {
		if s.v != nil && *s.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", s.name, *s.v)
		}
	}

	if c.FrameRate != nil && *c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %f", *c.FrameRate)
	}

	if c.TrackingMode != nil {
		if _, err := skeleton.ParseTrackingMode(*c.TrackingMode); err != nil {
			return err
		}
	}

	if _, err := c.GetPalette(); err != nil {
		return err
	}

	return nil
}

// GetListSize returns the list_size value or the default.
func (c *PipelineConfig) GetListSize() int {
	if c.ListSize == nil {
		return 1
	}
	return *c.ListSize
}

// GetFrameInterval returns the frame_interval value or the default.
func (c *PipelineConfig) GetFrameInterval() int {
	if c.FrameInterval == nil {
		return 3
	}
	return *c.FrameInterval
}

// GetTrailStep returns the trail_step value or the default.
func (c *PipelineConfig) GetTrailStep() float64 {
	if c.TrailStep == nil {
		return 0.05
	}
	return *c.TrailStep
}

// GetRenderWidth returns the render_width value or the default.
func (c *PipelineConfig) GetRenderWidth() int {
	if c.RenderWidth == nil {
		return 640
	}
	return *c.RenderWidth
}

// GetRenderHeight returns the render_height value or the default.
func (c *PipelineConfig) GetRenderHeight() int {
	if c.RenderHeight == nil {
		return 480
	}
	return *c.RenderHeight
}

// GetTrackingMode returns the parsed tracking_mode, falling back to the
// default mode when unset or invalid.
func (c *PipelineConfig) GetTrackingMode() skeleton.TrackingMode {
	if c.TrackingMode == nil {
		return skeleton.ModeDefault
	}
	m, err := skeleton.ParseTrackingMode(*c.TrackingMode)
	if err != nil {
		return skeleton.ModeDefault
	}
	return m
}

// GetFrameRate returns the frame_rate value or the default.
func (c *PipelineConfig) GetFrameRate() float64 {
	if c.FrameRate == nil {
		return 30
	}
	return *c.FrameRate
}

func float64Or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// GetPalette resolves the colour overrides on top of the reference palette.
func (c *PipelineConfig) GetPalette() (render.Palette, error) {
	p := render.DefaultPalette()
	if c.Colors == nil {
		return p, nil
	}
	bones := make(map[gesture.State]color.RGBA, len(p.Bones))
	for k, v := range p.Bones {
		bones[k] = v
	}
	p.Bones = bones

	entries := []struct {
		name string
		v    *string
		set  func(color.RGBA)
	}{
		{"blue", c.Colors.Blue, func(col color.RGBA) { p.Bones[gesture.Blue] = col }},
		{"green", c.Colors.Green, func(col color.RGBA) { p.Bones[gesture.Green] = col }},
		{"yellow", c.Colors.Yellow, func(col color.RGBA) { p.Bones[gesture.Yellow] = col }},
		{"red", c.Colors.Red, func(col color.RGBA) { p.Bones[gesture.Red] = col }},
		{"tracked_joint", c.Colors.TrackedJoint, func(col color.RGBA) { p.TrackedJoint = col }},
		{"inferred_joint", c.Colors.InferredJoint, func(col color.RGBA) { p.InferredJoint = col }},
		{"head", c.Colors.Head, func(col color.RGBA) { p.Head = col }},
		{"inferred_bone", c.Colors.InferredBone, func(col color.RGBA) { p.InferredBone = col }},
		{"center_point", c.Colors.CenterPoint, func(col color.RGBA) { p.CenterPoint = col }},
		{"clip_edge", c.Colors.ClipEdge, func(col color.RGBA) { p.ClipEdge = col }},
		{"background", c.Colors.Background, func(col color.RGBA) { p.Background = col }},
	}
	for _, e := range entries {
		if e.v == nil {
			continue
		}
		col, err := ParseColor(*e.v)
		if err != nil {
			return render.Palette{}, fmt.Errorf("colors.%s: %w", e.name, err)
		}
		e.set(col)
	}
	return p, nil
}

// RenderConfig assembles the renderer configuration.
func (c *PipelineConfig) RenderConfig() (render.Config, error) {
	def := render.DefaultConfig()
	palette, err := c.GetPalette()
	if err != nil {
		return render.Config{}, err
	}
	return render.Config{
		Width:               float64(c.GetRenderWidth()),
		Height:              float64(c.GetRenderHeight()),
		JointThickness:      float64Or(c.JointThickness, def.JointThickness),
		HeadThickness:       float64Or(c.HeadThickness, def.HeadThickness),
		BodyCenterThickness: float64Or(c.BodyCenterThickness, def.BodyCenterThickness),
		ClipBoundsThickness: float64Or(c.ClipBoundsThickness, def.ClipBoundsThickness),
		TrackedBoneWidth:    float64Or(c.TrackedBoneWidth, def.TrackedBoneWidth),
		InferredBoneWidth:   float64Or(c.InferredBoneWidth, def.InferredBoneWidth),
		Palette:             palette,
	}, nil
}

// ParseColor parses "#rrggbb" or "#rgb" into an opaque colour.
func ParseColor(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Resolved returns a copy with every field set to its effective value.
func (c *PipelineConfig) Resolved() (*PipelineConfig, error) {
	rc, err := c.RenderConfig()
	if err != nil {
		return nil, err
	}
	hex := func(col color.RGBA) *string {
		cc, _ := colorful.MakeColor(col)
		return ptrString(cc.Hex())
	}
	p := rc.Palette
	return &PipelineConfig{
		ListSize:            ptrInt(c.GetListSize()),
		FrameInterval:       ptrInt(c.GetFrameInterval()),
		TrailStep:           ptrFloat64(c.GetTrailStep()),
		RenderWidth:         ptrInt(c.GetRenderWidth()),
		RenderHeight:        ptrInt(c.GetRenderHeight()),
		JointThickness:      ptrFloat64(rc.JointThickness),
		HeadThickness:       ptrFloat64(rc.HeadThickness),
		BodyCenterThickness: ptrFloat64(rc.BodyCenterThickness),
		ClipBoundsThickness: ptrFloat64(rc.ClipBoundsThickness),
		TrackedBoneWidth:    ptrFloat64(rc.TrackedBoneWidth),
		InferredBoneWidth:   ptrFloat64(rc.InferredBoneWidth),
		Colors: &ColorConfig{
			Blue:          hex(p.Bones[gesture.Blue]),
			Green:         hex(p.Bones[gesture.Green]),
			Yellow:        hex(p.Bones[gesture.Yellow]),
			Red:           hex(p.Bones[gesture.Red]),
			TrackedJoint:  hex(p.TrackedJoint),
			InferredJoint: hex(p.InferredJoint),
			Head:          hex(p.Head),
			InferredBone:  hex(p.InferredBone),
			CenterPoint:   hex(p.CenterPoint),
			ClipEdge:      hex(p.ClipEdge),
			Background:    hex(p.Background),
		},
		TrackingMode: ptrString(c.GetTrackingMode().String()),
		FrameRate:    ptrFloat64(c.GetFrameRate()),
	}, nil
}
