package chartlayout_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/xrand"

	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/chartlayout"
	"oss.terrastruct.com/charts/chartparser"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/log"
	"oss.terrastruct.com/charts/lib/textmeasure"
)

func ptr(f float64) *float64 {
	return &f
}

func layout(t testing.TB, c chartgraph.Chart, opts *chartlayout.Options) *charttarget.Diagram {
	t.Helper()
	ctx := log.WithTB(context.Background(), t, nil)
	d, err := chartlayout.Layout(ctx, c, textmeasure.NewMonoRuler(), opts)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func layoutString(t testing.TB, src string, opts *chartlayout.Options) *charttarget.Diagram {
	t.Helper()
	c, err := chartparser.ParseString(src)
	require.NoError(t, err)
	return layout(t, c, opts)
}

func classOf(p charttarget.Primitive) string {
	switch p := p.(type) {
	case *charttarget.Path:
		return p.Class
	case *charttarget.Line:
		return p.Class
	case *charttarget.TextRun:
		return p.Class
	}
	return ""
}

func byClass(d *charttarget.Diagram, class string) (out []charttarget.Primitive) {
	for _, p := range d.Primitives {
		if classOf(p) == class {
			out = append(out, p)
		}
	}
	return out
}

// firstIndex and lastIndex find primitives of class in paint order, -1 when there is none.
func firstIndex(d *charttarget.Diagram, class string) int {
	for i, p := range d.Primitives {
		if classOf(p) == class {
			return i
		}
	}
	return -1
}

func lastIndex(d *charttarget.Diagram, class string) int {
	for i := len(d.Primitives) - 1; i >= 0; i-- {
		if classOf(d.Primitives[i]) == class {
			return i
		}
	}
	return -1
}

func texts(ps []charttarget.Primitive) (out []string) {
	for _, p := range ps {
		out = append(out, p.(*charttarget.TextRun).Text)
	}
	return out
}

func arcs(p charttarget.Primitive) (out []charttarget.Segment) {
	for _, s := range p.(*charttarget.Path).Segments {
		if s.Op == charttarget.SegmentArc {
			out = append(out, s)
		}
	}
	return out
}

func sweep(p charttarget.Primitive) float64 {
	total := 0.
	for _, a := range arcs(p) {
		total += a.EndAngle - a.StartAngle
	}
	return total
}

func TestPieScenario(t *testing.T) {
	t.Parallel()

	d := layoutString(t, `pie title T
"A": 1
"B": 1
"B": 2
`, nil)
	assert.False(t, d.Degenerate)
	assert.Equal(t, chartgraph.KindPie, d.Kind)

	slices := byClass(d, "pie-slice")
	require.Len(t, slices, 3)
	exp := [][2]float64{
		{-math.Pi / 2, 0},
		{0, math.Pi / 2},
		{math.Pi / 2, 3 * math.Pi / 2},
	}
	for i, s := range slices {
		as := arcs(s)
		require.Len(t, as, 1)
		assert.InDelta(t, exp[i][0], as[0].StartAngle, 1e-9, "slice %d", i)
		assert.InDelta(t, exp[i][1], as[0].EndAngle, 1e-9, "slice %d", i)
	}
	assert.Equal(t, []string{"A", "B", "B"}, texts(byClass(d, "pie-label")))
	assert.Equal(t, []string{"T"}, texts(byClass(d, "title")))

	// The outer rim is painted after every slice and before any label.
	rim := firstIndex(d, "pie-outer")
	assert.Less(t, lastIndex(d, "pie-slice"), rim)
	assert.Less(t, rim, firstIndex(d, "pie-label"))
	assert.Less(t, firstIndex(d, "title"), firstIndex(d, "pie-slice"))
}

func TestPieSweepSum(t *testing.T) {
	t.Parallel()

	seed := rand.Int63()
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < 50; i++ {
		pc := &chartgraph.PieChart{}
		n := 1 + r.Intn(12)
		for j := 0; j < n; j++ {
			v := math.Round(r.Float64()*1000) / 10
			if r.Intn(5) == 0 {
				v = 0
			}
			pc.Slices = append(pc.Slices, chartgraph.PieSlice{Label: xrand.String(4, nil), Value: v})
		}
		if pc.Total() == 0 {
			pc.Slices[0].Value = 1
		}

		d := layout(t, pc, nil)
		require.False(t, d.Degenerate, "seed %d", seed)
		total := 0.
		for _, s := range byClass(d, "pie-slice") {
			total += sweep(s)
		}
		assert.InDelta(t, 2*math.Pi, total, 1e-9, "seed %d", seed)
		// Zero slices draw nothing but keep their label.
		assert.Len(t, byClass(d, "pie-label"), n, "seed %d", seed)
	}
}

func TestPiePermutation(t *testing.T) {
	t.Parallel()

	seed := rand.Int63()
	r := rand.New(rand.NewSource(seed))
	var slices []chartgraph.PieSlice
	for i := 0; i < 8; i++ {
		slices = append(slices, chartgraph.PieSlice{
			Label: xrand.String(6, []rune{'\n'}),
			Value: float64(1 + r.Intn(20)),
		})
	}

	for i := 0; i < 10; i++ {
		perm := r.Perm(len(slices))
		pc := &chartgraph.PieChart{}
		var labels []string
		for _, j := range perm {
			pc.Slices = append(pc.Slices, slices[j])
			labels = append(labels, slices[j].Label)
		}

		d := layout(t, pc, nil)
		assert.Equal(t, labels, texts(byClass(d, "pie-label")), "seed %d", seed)

		// Slices follow each other clockwise in declaration order.
		angle := -math.Pi / 2
		ps := byClass(d, "pie-slice")
		require.Len(t, ps, len(slices))
		for k, p := range ps {
			as := arcs(p)
			require.NotEmpty(t, as)
			assert.InDelta(t, angle, as[0].StartAngle, 1e-9, "seed %d", seed)
			want := 2 * math.Pi * pc.Slices[k].Value / pc.Total()
			assert.InDelta(t, want, sweep(p), 1e-9, "seed %d", seed)
			angle = as[len(as)-1].EndAngle
		}
	}
}

func TestPieCanvasIsContentExtents(t *testing.T) {
	t.Parallel()

	pc := &chartgraph.PieChart{
		Title:    "Pets",
		ShowData: true,
		Slices: []chartgraph.PieSlice{
			{Label: "Dogs", Value: 386},
			{Label: "Cats", Value: 85},
			{Label: "Rats", Value: 15},
		},
	}
	d := layout(t, pc, nil)
	b := d.ContentBounds()
	require.NotNil(t, b)
	assert.InDelta(t, chartlayout.PIE_MARGIN, b.TopLeft.X, 1e-9)
	assert.InDelta(t, chartlayout.PIE_MARGIN, b.TopLeft.Y, 1e-9)
	assert.InDelta(t, b.Right()+chartlayout.PIE_MARGIN, d.ContentWidth, 1e-9)
	assert.InDelta(t, b.Bottom()+chartlayout.PIE_MARGIN, d.ContentHeight, 1e-9)
	assert.Equal(t, d.ContentWidth, d.Width)
	assert.Equal(t, 1., d.Scale)

	assert.Equal(t, []string{"Dogs [386]", "Cats [85]", "Rats [15]"}, texts(byClass(d, "pie-label")))
	assert.Equal(t, []string{"79%", "17%", "3%"}, texts(byClass(d, "pie-percent")))
}

func TestPieOverrides(t *testing.T) {
	t.Parallel()

	d := layoutString(t, `%%{init: {"theme": "dark", "themeVariables": {"pie1": "#ff0000", "pieOpacity": 0.5}}}%%
pie
"A": 1
"B": 1
`, nil)
	slices := byClass(d, "pie-slice")
	require.Len(t, slices, 2)
	first := slices[0].(*charttarget.Path)
	assert.Equal(t, "#ff0000", first.Fill)
	assert.Equal(t, 0.5, first.Opacity)
	assert.NotEqual(t, "#ff0000", slices[1].(*charttarget.Path).Fill)
}

func TestFit(t *testing.T) {
	t.Parallel()

	pc := &chartgraph.PieChart{Slices: []chartgraph.PieSlice{{Label: "A", Value: 1}, {Label: "B", Value: 2}}}
	d := layout(t, pc, &chartlayout.Options{MaxWidth: ptr(200)})
	assert.InDelta(t, 200, d.Width, 1e-9)
	assert.InDelta(t, 200/d.ContentWidth, d.Scale, 1e-9)
	assert.InDelta(t, d.ContentHeight*d.Scale, d.Height, 1e-9)

	w, h, scale := charttarget.Fit(d.Width, d.Height, ptr(200), nil)
	assert.InDelta(t, d.Width, w, 1e-9)
	assert.InDelta(t, d.Height, h, 1e-9)
	assert.InDelta(t, 1, scale, 1e-9)
}

func TestDegenerate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		chart  chartgraph.Chart
		opts   *chartlayout.Options
		reason string
		// Fitted size, the placeholder size when zero.
		expW, expH float64
	}{
		{
			name:   "pie_all_zero",
			chart:  &chartgraph.PieChart{Slices: []chartgraph.PieSlice{{Label: "A"}, {Label: "B"}}},
			reason: "pie chart: all pie values are zero",
		},
		{
			name: "xy_empty_range",
			chart: &chartgraph.XYChart{
				XAxis:  chartgraph.XAxis{Labels: []string{"A"}},
				YAxis:  chartgraph.YAxis{Min: 5, Max: 5},
				Series: []chartgraph.Series{{Type: chartgraph.SeriesBar, Values: []float64{5}}},
			},
			reason: "xychart-beta chart: empty y-axis range 5 --> 5",
		},
		{
			name:   "zero_max_width",
			chart:  &chartgraph.PieChart{Slices: []chartgraph.PieSlice{{Label: "A", Value: 1}}},
			opts:   &chartlayout.Options{MaxWidth: ptr(0)},
			reason: "pie chart: zero-area canvas",
		},
		{
			name:   "zero_frame",
			chart:  &chartgraph.PieChart{Slices: []chartgraph.PieSlice{{Label: "A", Value: 1}}},
			opts:   &chartlayout.Options{Width: -1},
			reason: "pie chart: zero-area frame",
		},
		{
			name:   "pie_total_overflow",
			chart:  &chartgraph.PieChart{Slices: []chartgraph.PieSlice{{Label: "A", Value: 1e308}, {Label: "B", Value: 1e308}}},
			reason: "pie chart: pie values sum to more than",
		},
		{
			name: "xy_range_overflow",
			chart: &chartgraph.XYChart{
				XAxis:  chartgraph.XAxis{Labels: []string{"A"}},
				YAxis:  chartgraph.YAxis{Min: -1e308, Max: 1e308},
				Series: []chartgraph.Series{{Type: chartgraph.SeriesBar, Values: []float64{0}}},
			},
			reason: "is too wide",
		},
		{
			name:   "fitted_placeholder",
			chart:  &chartgraph.PieChart{Slices: []chartgraph.PieSlice{{Label: "A"}}},
			opts:   &chartlayout.Options{MaxWidth: ptr(100)},
			reason: "pie chart: all pie values are zero",
			expW:   100,
			expH:   50,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := layout(t, tc.chart, tc.opts)
			assert.True(t, d.Degenerate)
			assert.Contains(t, d.DegenerateReason, tc.reason)
			expW, expH := tc.expW, tc.expH
			if expW == 0 {
				expW, expH = charttarget.DEGENERATE_WIDTH, charttarget.DEGENERATE_HEIGHT
			}
			assert.Equal(t, expW, d.Width)
			assert.Equal(t, expH, d.Height)
			assert.Equal(t, float64(charttarget.DEGENERATE_WIDTH), d.ContentWidth)
			assert.Equal(t, float64(charttarget.DEGENERATE_HEIGHT), d.ContentHeight)

			lines := byClass(d, "degenerate")
			require.Len(t, lines, 2)
			for _, l := range lines {
				assert.LessOrEqual(t, l.(*charttarget.TextRun).Width, float64(charttarget.DEGENERATE_WIDTH))
			}
		})
	}
}

func TestInvalidModel(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := chartlayout.Layout(ctx, &chartgraph.PieChart{}, textmeasure.NewMonoRuler(), nil)
	assert.Error(t, err)
}

type barInfo struct {
	idx    int
	center float64
	height float64
}

func bars(d *charttarget.Diagram) (out []barInfo) {
	for i, p := range d.Primitives {
		path, ok := p.(*charttarget.Path)
		if !ok || path.Class != "bar" {
			continue
		}
		b := path.Bounds()
		out = append(out, barInfo{idx: i, center: b.TopLeft.X + b.Width/2, height: b.Height})
	}
	return out
}

func firstLine(d *charttarget.Diagram) int {
	if i := firstIndex(d, "line"); i != -1 {
		return i
	}
	return len(d.Primitives)
}

func TestXYScenario(t *testing.T) {
	t.Parallel()

	d := layoutString(t, `xychart-beta
x-axis [A, B]
y-axis "Y" 0 --> 10
bar [2, 8]
bar [5, 1]
line [3, 3]
`, nil)
	require.False(t, d.Degenerate)

	bs := bars(d)
	require.Len(t, bs, 4)
	// Category A: the 5 bar precedes the 2 bar. Category B: 8 precedes 1.
	assert.InDelta(t, bs[0].center, bs[1].center, 1e-9)
	assert.InDelta(t, 2.5, bs[0].height/bs[1].height, 1e-9)
	assert.InDelta(t, bs[2].center, bs[3].center, 1e-9)
	assert.InDelta(t, 8, bs[2].height/bs[3].height, 1e-9)
	assert.Less(t, bs[0].center, bs[2].center)

	a5 := d.Primitives[bs[0].idx].(*charttarget.Path)
	a2 := d.Primitives[bs[1].idx].(*charttarget.Path)
	b8 := d.Primitives[bs[2].idx].(*charttarget.Path)
	assert.Equal(t, a2.Fill, b8.Fill)
	assert.NotEqual(t, a5.Fill, a2.Fill)

	assert.Less(t, bs[3].idx, firstLine(d))

	ticks := texts(byClass(d, "tick-label"))
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, ticks)
	assert.Equal(t, []string{"Y"}, texts(byClass(d, "y-axis-title")))
}

func TestXYBarOrderProperty(t *testing.T) {
	t.Parallel()

	seed := rand.Int63()
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < 30; i++ {
		n := 1 + r.Intn(6)
		xy := &chartgraph.XYChart{YAxis: chartgraph.YAxis{Min: 0, Max: 100}}
		for j := 0; j < n; j++ {
			xy.XAxis.Labels = append(xy.XAxis.Labels, xrand.String(3, nil))
		}
		ns := 1 + r.Intn(5)
		for s := 0; s < ns; s++ {
			typ := chartgraph.SeriesBar
			if r.Intn(3) == 0 {
				typ = chartgraph.SeriesLine
			}
			series := chartgraph.Series{Type: typ}
			for j := 0; j < n; j++ {
				series.Values = append(series.Values, float64(r.Intn(101)))
			}
			xy.Series = append(xy.Series, series)
		}

		d := layout(t, xy, nil)
		require.False(t, d.Degenerate, "seed %d", seed)
		lineIdx := firstLine(d)
		byCategory := map[float64][]barInfo{}
		for _, b := range bars(d) {
			key := math.Round(b.center*1e6) / 1e6
			byCategory[key] = append(byCategory[key], b)
			assert.Less(t, b.idx, lineIdx, "seed %d", seed)
		}
		for _, bs := range byCategory {
			for k := 1; k < len(bs); k++ {
				assert.GreaterOrEqual(t, bs[k-1].height, bs[k].height-1e-9, "seed %d", seed)
			}
		}
	}
}

func TestXYLabelOrientation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		labels   []string
		rotation float64
	}{
		{name: "horizontal", labels: []string{"jan", "feb", "mar"}, rotation: 0},
		{name: "vertical", labels: []string{"jan", "a very long category name indeed", "mar"}, rotation: -90},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			xy := &chartgraph.XYChart{
				XAxis:  chartgraph.XAxis{Labels: tc.labels},
				YAxis:  chartgraph.YAxis{Min: 0, Max: 10},
				Series: []chartgraph.Series{{Type: chartgraph.SeriesBar, Values: []float64{1, 2, 3}}},
			}
			d := layout(t, xy, nil)
			ls := byClass(d, "x-label")
			require.Len(t, ls, len(tc.labels))
			for _, l := range ls {
				assert.Equal(t, tc.rotation, l.(*charttarget.TextRun).Rotation)
			}
		})
	}
}

func TestXYLegendAndStyles(t *testing.T) {
	t.Parallel()

	d := layoutString(t, `%%{init: {"themeVariables": {"xyChart": {"plotColorPalette": "#111111, #222222", "plotPoints": "none, square", "strokeStyles": "solid, dashed"}}}}%%
xychart-beta
title "Sales"
x-axis [q1, q2]
legend [Revenue, Cost]
y-axis "EUR" 0 --> 100
bar [10, 20]
line [30, 40]
`, nil)
	require.False(t, d.Degenerate)

	assert.Equal(t, []string{"Revenue", "Cost"}, texts(byClass(d, "legend")))
	swatches := byClass(d, "legend-swatch")
	require.Len(t, swatches, 2)
	assert.Equal(t, "#111111", swatches[0].(*charttarget.Path).Fill)
	assert.Equal(t, "#222222", swatches[1].(*charttarget.Path).Fill)

	lines := byClass(d, "line")
	require.Len(t, lines, 1)
	line := lines[0].(*charttarget.Line)
	assert.Equal(t, "#222222", line.Stroke)
	assert.Equal(t, []float64{6, 4}, line.Dash)
	assert.Len(t, byClass(d, "plot-point"), 2)
}

func TestWorkItemScenario(t *testing.T) {
	t.Parallel()

	d := layoutString(t, `work-item-movement
title 'Sprint'
columns [To Do, Done]
X To Do: 1 -> Done: 3
`, nil)
	require.False(t, d.Degenerate)

	columns := byClass(d, "column")
	assert.Equal(t, []string{"To Do", "Done"}, texts(columns))
	todo := columns[0].(*charttarget.TextRun).Pos.X
	done := columns[1].(*charttarget.TextRun).Pos.X
	require.Less(t, todo, done)

	arrows := byClass(d, "arrow")
	require.Len(t, arrows, 1)
	arrow := arrows[0].(*charttarget.Line)
	require.Len(t, arrow.Points, 2)
	assert.InDelta(t, todo+chartlayout.WIM_CIRCLE_RADIUS, arrow.Points[0].X, 1e-9)
	assert.InDelta(t, done-chartlayout.WIM_CIRCLE_RADIUS-chartlayout.WIM_ARROW_SIZE, arrow.Points[1].X, 1e-9)
	assert.Len(t, byClass(d, "arrow-head"), 1)

	assert.Equal(t, []string{"1", "3"}, texts(byClass(d, "value")))
	assert.Equal(t, []string{"X: +2"}, texts(byClass(d, "transition")))
	assert.Len(t, byClass(d, "guide"), 2)
}

func TestWorkItemRows(t *testing.T) {
	t.Parallel()

	wim := &chartgraph.WorkItemMovement{
		Columns: []string{"a", "b", "c"},
		Transitions: []chartgraph.Transition{
			{ID: "1", From: "a", FromValue: 2, To: "c", ToValue: 2},
			{ID: "2", From: "a", FromValue: 2, To: "c", ToValue: 2},
			{ID: "3", From: "C", FromValue: 5, To: "c", ToValue: 3},
		},
	}
	d := layout(t, wim, nil)
	arrows := byClass(d, "arrow")
	require.Len(t, arrows, 3)
	y0 := arrows[0].(*charttarget.Line).Points[0].Y
	y1 := arrows[1].(*charttarget.Line).Points[0].Y
	// Identical transitions still get their own row, in input order.
	assert.InDelta(t, chartlayout.WIM_ROW_HEIGHT, y1-y0, 1e-9)

	vertical := arrows[2].(*charttarget.Line)
	assert.Equal(t, vertical.Points[0].X, vertical.Points[1].X)
	assert.Greater(t, vertical.Points[1].Y, vertical.Points[0].Y)
	assert.Equal(t, []string{"1", "2", "3: -2"}, texts(byClass(d, "transition")))

	columns := byClass(d, "column")
	xa := columns[0].(*charttarget.TextRun).Pos.X
	xb := columns[1].(*charttarget.TextRun).Pos.X
	xc := columns[2].(*charttarget.TextRun).Pos.X
	assert.InDelta(t, xb-xa, xc-xb, 1e-9)

	// The last column's same-column label hangs to the left of its arrow.
	label := byClass(d, "transition")[2].(*charttarget.TextRun)
	assert.Equal(t, charttarget.AnchorEnd, label.Anchor)
}

func TestDirectiveWidth(t *testing.T) {
	t.Parallel()

	d := layoutString(t, `%%{init: {"width": 1200}}%%
work-item-movement
columns [a, b]
i a: 1 -> b: 2
`, &chartlayout.Options{Width: 400})
	assert.InDelta(t, 1200, d.ContentWidth, 1e-9)
}
