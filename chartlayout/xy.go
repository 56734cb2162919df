package chartlayout

import (
	"math"

	"golang.org/x/exp/slices"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/geo"
	"oss.terrastruct.com/charts/lib/go2"
)

const (
	XY_MARGIN = 35
	// XY_TICKS is the number of y-axis ticks, min and max included.
	XY_TICKS     = 11
	XY_TICK_LEN  = 5
	XY_LABEL_GAP = 5
	// XY_LABEL_PADDING is the room a horizontal x-axis label needs beside its measured width.
	XY_LABEL_PADDING = 5
	XY_BAR_RATIO     = 0.8

	XY_LEGEND_GAP     = 20
	XY_LEGEND_SWATCH  = 18
	XY_LEGEND_SPACING = 22
	XY_LEGEND_TEXT    = 6

	XY_POINT_SIZE = 8
)

type bar struct {
	series int
	height float64
}

// xy draws a categorical bar/line chart. Within a category bars are painted tallest first, and
// every bar is painted before any line.
func (l *layouter) xy(xy *chartgraph.XYChart) (*charttarget.Diagram, string) {
	min, max := xy.YAxis.Min, xy.YAxis.Max
	if !(min < max) {
		return nil, "empty y-axis range " + formatNumber(min) + " --> " + formatNumber(max)
	}
	if math.IsInf(max-min, 1) {
		return nil, "y-axis range " + formatNumber(min) + " --> " + formatNumber(max) + " is too wide"
	}

	d := l.newDiagram(xy)
	o := l.style.o
	xo := l.style.xy()
	d.Background = pick(xo.BackgroundColor, l.style.background())

	titleFont := l.style.font(xo.TitleFontSize.Value(o.TitleFontSize.Value(chartfonts.FONT_SIZE_L)), chartfonts.FONT_STYLE_REGULAR)
	labelFont := l.style.font(xo.LabelFontSize.Value(o.LabelFontSize.Value(chartfonts.FONT_SIZE_ITEM)), chartfonts.FONT_STYLE_REGULAR)
	legendFont := l.style.font(xo.LegendFontSize.Value(chartfonts.FONT_SIZE_ITEM), chartfonts.FONT_STYLE_REGULAR)
	textColor := l.style.text()
	axisColor := pick(xo.AxisLineColor, l.style.line())

	var ps []charttarget.Primitive
	top := float64(XY_MARGIN)
	if xy.Title != "" {
		t := l.text("title", xy.Title, titleFont, pick(xo.TitleColor, textColor), l.opts.Width/2, top, charttarget.AnchorMiddle, charttarget.BaselineHanging)
		ps = append(ps, t)
		top += t.Height + TITLE_GAP
	}

	ticks := make([]string, XY_TICKS)
	maxTickW, tickH := 0., 0.
	for i := range ticks {
		ticks[i] = formatNumber(min + (max-min)*float64(i)/float64(XY_TICKS-1))
		w, h := l.ruler.Measure(labelFont, ticks[i])
		maxTickW = math.Max(maxTickW, w)
		tickH = math.Max(tickH, h)
	}
	// Half a tick label sticks out above the top tick.
	top += tickH / 2

	left := float64(XY_MARGIN)
	var yTitle *charttarget.TextRun
	if xy.YAxis.Label != "" {
		yTitle = l.text("y-axis-title", xy.YAxis.Label, labelFont, textColor, 0, 0, charttarget.AnchorMiddle, charttarget.BaselineMiddle)
		yTitle.Rotation = -90
		left += yTitle.Height + XY_LABEL_GAP
	}
	left += maxTickW + XY_LABEL_GAP + XY_TICK_LEN

	legendW := 0.
	for _, s := range xy.Legend {
		w, _ := l.ruler.Measure(legendFont, s)
		legendW = math.Max(legendW, XY_LEGEND_GAP+XY_LEGEND_SWATCH+XY_LEGEND_TEXT+w)
	}
	right := l.opts.Width - XY_MARGIN - legendW

	n := len(xy.XAxis.Labels)
	plotW := right - left
	if !(plotW > 0) {
		return nil, "frame too narrow for the axes and legend"
	}
	slot := plotW / float64(n)

	// All x-axis labels turn vertical when any one of them does not fit its slot.
	vertical := false
	maxXW, maxXH := 0., 0.
	for _, s := range xy.XAxis.Labels {
		w, h := l.ruler.Measure(labelFont, s)
		if w+XY_LABEL_PADDING > slot {
			vertical = true
		}
		maxXW = math.Max(maxXW, w)
		maxXH = math.Max(maxXH, h)
	}
	xLabelBlock := maxXH
	if vertical {
		xLabelBlock = maxXW
	}
	bottom := l.opts.Height - XY_MARGIN - xLabelBlock - XY_LABEL_GAP - XY_TICK_LEN
	plotH := bottom - top
	if !(plotH > 0) {
		return nil, "frame too short for the axes"
	}
	scale := plotH / (max - min)
	yOf := func(v float64) float64 {
		return bottom - (go2.Clamp(v, min, max)-min)*scale
	}
	xOf := func(i int) float64 {
		return left + (float64(i)+0.5)*slot
	}

	if yTitle != nil {
		yTitle.Pos = geo.Point{X: XY_MARGIN + yTitle.Height/2, Y: (top + bottom) / 2}
		ps = append(ps, yTitle)
	}

	// Axes, ticks and their labels.
	ps = append(ps, &charttarget.Line{
		Class:       "axis",
		Points:      []geo.Point{{X: left, Y: top}, {X: left, Y: bottom}, {X: right, Y: bottom}},
		Stroke:      axisColor,
		StrokeWidth: 2,
	})
	for i, tick := range ticks {
		y := bottom - plotH*float64(i)/float64(XY_TICKS-1)
		ps = append(ps, &charttarget.Line{
			Class:       "tick",
			Points:      []geo.Point{{X: left - XY_TICK_LEN, Y: y}, {X: left, Y: y}},
			Stroke:      axisColor,
			StrokeWidth: 1,
		})
		ps = append(ps, l.text("tick-label", tick, labelFont, textColor, left-XY_TICK_LEN-XY_LABEL_GAP, y, charttarget.AnchorEnd, charttarget.BaselineMiddle))
	}
	for i, s := range xy.XAxis.Labels {
		x := xOf(i)
		ps = append(ps, &charttarget.Line{
			Class:       "tick",
			Points:      []geo.Point{{X: x, Y: bottom}, {X: x, Y: bottom + XY_TICK_LEN}},
			Stroke:      axisColor,
			StrokeWidth: 1,
		})
		y := bottom + XY_TICK_LEN + XY_LABEL_GAP
		if vertical {
			t := l.text("x-label", s, labelFont, textColor, x, y, charttarget.AnchorEnd, charttarget.BaselineMiddle)
			t.Rotation = -90
			ps = append(ps, t)
		} else {
			ps = append(ps, l.text("x-label", s, labelFont, textColor, x, y, charttarget.AnchorMiddle, charttarget.BaselineHanging))
		}
	}

	// Bars, category by category, tallest first.
	barW := slot * XY_BAR_RATIO
	for i := 0; i < n; i++ {
		var bars []bar
		for si, s := range xy.Series {
			if s.Type != chartgraph.SeriesBar {
				continue
			}
			bars = append(bars, bar{series: si, height: bottom - yOf(s.Values[i])})
		}
		slices.SortStableFunc(bars, func(a, b bar) bool {
			return a.height > b.height
		})
		for _, b := range bars {
			p := charttarget.NewPath("bar").Rect(xOf(i)-barW/2, bottom-b.height, barW, b.height)
			p.Fill = l.style.seriesColor(b.series)
			ps = append(ps, p)
		}
	}

	// Lines, each followed by its points.
	for si, s := range xy.Series {
		if s.Type != chartgraph.SeriesLine {
			continue
		}
		color := l.style.seriesColor(si)
		line := &charttarget.Line{
			Class:       "line",
			Stroke:      color,
			StrokeWidth: 2,
		}
		if xo.StrokeStyles.At(si) == "dashed" {
			line.Dash = []float64{6, 4}
		}
		for i, v := range s.Values {
			line.Points = append(line.Points, geo.Point{X: xOf(i), Y: yOf(v)})
		}
		ps = append(ps, line)
		for _, pt := range line.Points {
			if marker := plotPoint(xo.PlotPoints.At(si), pt, color); marker != nil {
				ps = append(ps, marker)
			}
		}
	}

	// Legend entries follow declaration order.
	for i, s := range xy.Legend {
		x := right + XY_LEGEND_GAP
		y := top + float64(i)*XY_LEGEND_SPACING
		swatch := charttarget.NewPath("legend-swatch").Rect(x, y, XY_LEGEND_SWATCH, XY_LEGEND_SWATCH)
		swatch.Fill = l.style.seriesColor(i)
		ps = append(ps, swatch)
		ps = append(ps, l.text("legend", s, legendFont, textColor, x+XY_LEGEND_SWATCH+XY_LEGEND_TEXT, y+XY_LEGEND_SWATCH/2, charttarget.AnchorStart, charttarget.BaselineMiddle))
	}

	w, h := place(ps, l.opts.Width, l.opts.Height, XY_MARGIN)
	return l.finish(d, ps, w, h), ""
}

func plotPoint(shape string, at geo.Point, fill string) charttarget.Primitive {
	const r = XY_POINT_SIZE / 2
	p := charttarget.NewPath("plot-point")
	switch shape {
	case "square":
		p.Rect(at.X-r, at.Y-r, 2*r, 2*r)
	case "diamond":
		p.MoveTo(at.X, at.Y-r).LineTo(at.X+r, at.Y).LineTo(at.X, at.Y+r).LineTo(at.X-r, at.Y).Close()
	default:
		return nil
	}
	p.Fill = fill
	return p
}
