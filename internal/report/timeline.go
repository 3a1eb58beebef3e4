// Package report renders a session's gesture history as an HTML chart.
package report

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/banshee-data/skeletontrail/internal/gesture"
	"github.com/banshee-data/skeletontrail/internal/pipeline"
	"github.com/banshee-data/skeletontrail/internal/render"
)

type sample struct {
	frame    uint64
	state    gesture.State
	admitted bool
	failed   bool
}

// Timeline records the gesture colour of every processed frame.
type Timeline struct {
	mu      sync.Mutex
	session string
	colors  map[gesture.State]color.RGBA
	samples []sample
}

// NewTimeline creates a timeline for session, colouring states with
// bones. States missing from bones use the renderer's reference colours.
func NewTimeline(session string, bones map[gesture.State]color.RGBA) *Timeline {
	colors := render.DefaultPalette().Bones
	for st, c := range bones {
		colors[st] = c
	}
	return &Timeline{session: session, colors: colors}
}

// ObserveFrame implements pipeline.Observer.
func (t *Timeline) ObserveFrame(r pipeline.FrameResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, sample{
		frame:    r.Number,
		state:    r.State,
		admitted: r.Admitted,
		failed:   r.Err != nil,
	})
}

// Len returns the number of recorded frames.
func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.samples)
}

// Counts returns the number of frames spent in each state.
func (t *Timeline) Counts() map[gesture.State]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	counts := make(map[gesture.State]int, len(gesture.States))
	for _, s := range t.samples {
		counts[s.state]++
	}
	return counts
}

func (t *Timeline) hex(s gesture.State) string {
	c, ok := t.colors[s]
	if !ok {
		return ""
	}
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}

// Render writes an HTML page with the state per frame and the time spent
// in each state.
func (t *Timeline) Render(w io.Writer) error {
	t.mu.Lock()
	samples := append([]sample(nil), t.samples...)
	t.mu.Unlock()

	x := make([]string, 0, len(samples))
	states := make([]opts.LineData, 0, len(samples))
	admitted := make([]opts.ScatterData, 0, len(samples))
	failed := make([]opts.ScatterData, 0)
	for _, s := range samples {
		label := strconv.FormatUint(s.frame, 10)
		x = append(x, label)
		states = append(states, opts.LineData{Value: int(s.state), Name: s.state.String()})
		if s.admitted {
			admitted = append(admitted, opts.ScatterData{Value: []interface{}{label, int(s.state)}})
		}
		if s.failed {
			failed = append(failed, opts.ScatterData{Value: []interface{}{label, int(s.state)}})
		}
	}

	names := make([]string, len(gesture.States))
	for i, s := range gesture.States {
		names[i] = s.String()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Gesture Timeline", Width: "1200px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Gesture state per frame", Subtitle: fmt.Sprintf("session=%s frames=%d", t.session, len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "state", Type: "category", Data: names}),
	)
	line.SetXAxis(x).AddSeries("state", states)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Buffer admissions and failed frames"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame", Type: "category", Data: x}),
		charts.WithYAxisOpts(opts.YAxis{Name: "state", Type: "category", Data: names}),
	)
	scatter.AddSeries("admitted", admitted, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6})).
		AddSeries("failed", failed, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))

	counts := make(map[gesture.State]int, len(gesture.States))
	for _, s := range samples {
		counts[s.state]++
	}
	bars := make([]opts.BarData, len(gesture.States))
	for i, s := range gesture.States {
		bars[i] = opts.BarData{Name: s.String(), Value: counts[s]}
		if hex := t.hex(s); hex != "" {
			bars[i].ItemStyle = &opts.ItemStyle{Color: hex}
		}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Frames per state"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries("frames", bars,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)

	page := components.NewPage()
	page.AddCharts(line, scatter, bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render timeline: %w", err)
	}
	return nil
}
