package chartlayout

import (
	"math"
	"strconv"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/geo"
)

const (
	PIE_MARGIN     = 20
	PIE_LABEL_GAP  = 12
	PIE_MIN_RADIUS = 20
	// PIE_START_ANGLE is 12 o'clock.
	PIE_START_ANGLE = -math.Pi / 2

	PIE_DEFAULT_OPACITY      = 0.7
	PIE_DEFAULT_STROKE_WIDTH = 2
	PIE_PERCENT_RADIUS       = 0.6
)

type pieLabel struct {
	text string
	w, h float64
}

// pie draws slices clockwise from 12 o'clock in declaration order, each sweeping its share of
// 2π. Labels sit past the rim at each slice's angular midpoint.
func (l *layouter) pie(pc *chartgraph.PieChart) (*charttarget.Diagram, string) {
	total := pc.Total()
	if !(total > 0) {
		return nil, "all pie values are zero"
	}
	if math.IsInf(total, 1) {
		return nil, "pie values sum to more than " + strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64)
	}

	d := l.newDiagram(pc)
	d.Background = l.style.background()
	o := l.style.o

	labelFont := l.style.font(o.PieLegendTextSize.Value(o.LabelFontSize.Value(chartfonts.FONT_SIZE_LEGEND)), chartfonts.FONT_STYLE_REGULAR)
	labels := make([]pieLabel, len(pc.Slices))
	maxLW, maxLH := 0., 0.
	for i, s := range pc.Slices {
		text := s.Label
		if pc.ShowData {
			text += " [" + formatNumber(s.Value) + "]"
		}
		w, h := l.ruler.Measure(labelFont, text)
		labels[i] = pieLabel{text: text, w: w, h: h}
		maxLW = math.Max(maxLW, w)
		maxLH = math.Max(maxLH, h)
	}

	var titleFont chartfonts.Font
	titleBlock := 0.
	if pc.Title != "" {
		titleFont = l.style.font(o.PieTitleTextSize.Value(o.TitleFontSize.Value(chartfonts.FONT_SIZE_PIE)), chartfonts.FONT_STYLE_REGULAR)
		_, th := l.ruler.Measure(titleFont, pc.Title)
		titleBlock = th + TITLE_GAP
	}

	availW := l.opts.Width - 2*PIE_MARGIN - 2*(PIE_LABEL_GAP+maxLW)
	availH := l.opts.Height - 2*PIE_MARGIN - titleBlock - 2*(PIE_LABEL_GAP+maxLH)
	r := math.Max(PIE_MIN_RADIUS, math.Min(availW, availH)/2)

	center := geo.Point{}
	strokeColor := pick(o.PieStrokeColor, l.style.background())
	strokeWidth := o.PieStrokeWidth.Value(PIE_DEFAULT_STROKE_WIDTH)
	opacity := o.PieOpacity.Value(PIE_DEFAULT_OPACITY)

	var slices, percents, outer []charttarget.Primitive
	mids := make([]float64, len(pc.Slices))
	angle := PIE_START_ANGLE
	for i, s := range pc.Slices {
		sweep := 2 * math.Pi * s.Value / total
		start, end := angle, angle+sweep
		angle = end
		mids[i] = start + sweep/2
		if sweep == 0 {
			continue
		}

		fill := l.style.pieColor(i)
		p := charttarget.NewPath("pie-slice")
		if sweep >= 2*math.Pi-1e-9 {
			p.Circle(center, r)
		} else {
			from := geo.Polar(&center, r, start)
			p.MoveTo(center.X, center.Y).LineTo(from.X, from.Y).ArcTo(center, r, start, end).Close()
		}
		p.Fill = fill
		p.Stroke = strokeColor
		p.StrokeWidth = strokeWidth
		p.Opacity = opacity
		slices = append(slices, p)

		if pc.ShowData {
			percent := strconv.Itoa(int(math.Round(100*s.Value/total))) + "%"
			at := geo.Polar(&center, r*PIE_PERCENT_RADIUS, mids[i])
			sectionFont := l.style.font(o.PieSectionTextSize.Value(chartfonts.FONT_SIZE_LEGEND), chartfonts.FONT_STYLE_REGULAR)
			percents = append(percents, l.text("pie-percent", percent, sectionFont, pick(o.PieSectionTextColor, l.style.textOn(fill)), at.X, at.Y, charttarget.AnchorMiddle, charttarget.BaselineMiddle))
		}
	}

	rim := charttarget.NewPath("pie-outer").Circle(center, r)
	rim.Fill = "none"
	rim.Stroke = pick(o.PieOuterStrokeColor, l.style.line())
	rim.StrokeWidth = o.PieOuterStrokeWidth.Value(PIE_DEFAULT_STROKE_WIDTH)
	outer = append(outer, rim)

	labelColor := pick(o.PieLegendTextColor, l.style.text())
	var texts []charttarget.Primitive
	for i := range pc.Slices {
		mid := mids[i]
		at := geo.Polar(&center, r+PIE_LABEL_GAP, mid)
		cos, sin := math.Cos(mid), math.Sin(mid)
		anchor := charttarget.AnchorMiddle
		switch {
		case cos > 0.1:
			anchor = charttarget.AnchorStart
		case cos < -0.1:
			anchor = charttarget.AnchorEnd
		}
		// Push the label's box outwards so its near edge clears the rim vertically too.
		y := at.Y + sin*labels[i].h/2
		t := l.text("pie-label", labels[i].text, labelFont, labelColor, at.X, y, anchor, charttarget.BaselineMiddle)
		texts = append(texts, t)
	}

	var ps []charttarget.Primitive
	if pc.Title != "" {
		var b *geo.Box
		for _, p := range append(append(append([]charttarget.Primitive{}, slices...), outer...), texts...) {
			b = b.Union(p.Bounds())
		}
		titleY := b.TopLeft.Y - titleBlock
		ps = append(ps, l.text("title", pc.Title, titleFont, pick(o.PieTitleTextColor, l.style.text()), center.X, titleY, charttarget.AnchorMiddle, charttarget.BaselineHanging))
	}
	ps = append(ps, slices...)
	ps = append(ps, outer...)
	ps = append(ps, percents...)
	ps = append(ps, texts...)

	w, h := place(ps, 0, 0, PIE_MARGIN)
	return l.finish(d, ps, w, h), ""
}
