package chartlayout

import (
	"math"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/geo"
)

const (
	WIM_MARGIN        = 20
	WIM_TITLE_GAP     = 20
	WIM_COLUMN_HEIGHT = 40
	WIM_COLUMN_GAP    = 20
	// WIM_MIN_COLUMN_GAP keeps neighbouring value circles and their labels apart when the frame
	// is narrow.
	WIM_MIN_COLUMN_GAP = 120

	WIM_ROW_HEIGHT = 50
	// WIM_SAME_COLUMN_HEIGHT is the length of a vertical arrow between two circles of one column.
	WIM_SAME_COLUMN_HEIGHT = 80
	WIM_CIRCLE_RADIUS      = 15
	WIM_ARROW_SIZE         = 12
	WIM_GUIDE_EXTENSION    = 15
	WIM_LABEL_OFFSET       = 5
)

// workItemMovement gives every transition its own row, in input order, so two transitions
// never share an endpoint even when their columns and values are identical.
func (l *layouter) workItemMovement(wim *chartgraph.WorkItemMovement) (*charttarget.Diagram, string) {
	d := l.newDiagram(wim)
	d.Background = l.style.background()
	o := l.style.o

	width := l.opts.Width
	textColor := l.style.text()
	lineColor := l.style.line()
	columnFont := l.style.font(chartfonts.FONT_SIZE_M, chartfonts.FONT_STYLE_BOLD)
	itemFont := l.style.font(o.LabelFontSize.Value(chartfonts.FONT_SIZE_ITEM), chartfonts.FONT_STYLE_REGULAR)
	valueFont := l.style.font(chartfonts.FONT_SIZE_ITEM, chartfonts.FONT_STYLE_BOLD)

	var ps []charttarget.Primitive
	top := float64(WIM_MARGIN)
	if wim.Title != "" {
		titleFont := l.style.font(o.TitleFontSize.Value(chartfonts.FONT_SIZE_L), chartfonts.FONT_STYLE_REGULAR)
		t := l.text("title", wim.Title, titleFont, textColor, width/2, top, charttarget.AnchorMiddle, charttarget.BaselineHanging)
		ps = append(ps, t)
		top += t.Height + WIM_TITLE_GAP
	}

	xs := l.columnPositions(wim.Columns, columnFont, width)
	for i, c := range wim.Columns {
		ps = append(ps, l.text("column", c, columnFont, textColor, xs[i], top+WIM_COLUMN_HEIGHT/2, charttarget.AnchorMiddle, charttarget.BaselineMiddle))
	}

	itemsTop := top + WIM_COLUMN_HEIGHT + WIM_COLUMN_GAP
	rows := make([]float64, len(wim.Transitions))
	y := itemsTop
	for i, t := range wim.Transitions {
		rows[i] = y
		if wim.ColumnIndex(t.From) == wim.ColumnIndex(t.To) {
			y += WIM_SAME_COLUMN_HEIGHT
		}
		y += WIM_ROW_HEIGHT
	}
	last := y - WIM_ROW_HEIGHT

	for _, x := range xs {
		ps = append(ps, &charttarget.Line{
			Class:       "guide",
			Points:      []geo.Point{{X: x, Y: itemsTop - WIM_CIRCLE_RADIUS - WIM_GUIDE_EXTENSION}, {X: x, Y: last + WIM_CIRCLE_RADIUS + WIM_GUIDE_EXTENSION}},
			Stroke:      l.style.guide(),
			StrokeWidth: 1,
			Dash:        []float64{4, 4},
		})
	}

	for i, t := range wim.Transitions {
		fromIdx, toIdx := wim.ColumnIndex(t.From), wim.ColumnIndex(t.To)
		from := geo.NewPoint(xs[fromIdx], rows[i])
		to := geo.NewPoint(xs[toIdx], rows[i])
		if fromIdx == toIdx {
			to.Y += WIM_SAME_COLUMN_HEIGHT
		}

		ps = append(ps, l.arrow(from, to, lineColor)...)
		ps = append(ps, l.valueCircle(from, t.FromValue, valueFont)...)
		ps = append(ps, l.valueCircle(to, t.ToValue, valueFont)...)

		label := transitionLabel(t)
		if fromIdx == toIdx {
			anchor, x := charttarget.AnchorStart, from.X+WIM_LABEL_OFFSET
			if len(xs) > 1 && fromIdx == len(xs)-1 {
				anchor, x = charttarget.AnchorEnd, from.X-WIM_LABEL_OFFSET
			}
			ps = append(ps, l.text("transition", label, itemFont, textColor, x, (from.Y+to.Y)/2, anchor, charttarget.BaselineMiddle))
		} else {
			_, h := l.ruler.Measure(itemFont, label)
			ps = append(ps, l.text("transition", label, itemFont, textColor, (from.X+to.X)/2, from.Y-WIM_LABEL_OFFSET-h/2, charttarget.AnchorMiddle, charttarget.BaselineMiddle))
		}
	}

	w, h := place(ps, width, 0, WIM_MARGIN)
	return l.finish(d, ps, w, h), ""
}

// columnPositions pins the first and last column so their labels touch the margin and spreads
// the rest evenly between them.
func (l *layouter) columnPositions(columns []string, font chartfonts.Font, width float64) []float64 {
	xs := make([]float64, len(columns))
	if len(columns) == 1 {
		xs[0] = width / 2
		return xs
	}
	firstW, _ := l.ruler.Measure(font, columns[0])
	lastW, _ := l.ruler.Measure(font, columns[len(columns)-1])
	first := WIM_MARGIN + firstW/2
	last := width - WIM_MARGIN - lastW/2
	gaps := float64(len(columns) - 1)
	last = math.Max(last, first+gaps*WIM_MIN_COLUMN_GAP)
	for i := range xs {
		xs[i] = first + (last-first)*float64(i)/gaps
	}
	return xs
}

// arrow runs from the edge of the circle at from to the edge of the circle at to and ends in a
// triangular head.
func (l *layouter) arrow(from, to *geo.Point, color string) []charttarget.Primitive {
	dir := from.VectorTo(to).Unit()
	start := from.AddVector(dir.Multiply(WIM_CIRCLE_RADIUS))
	tip := to.AddVector(dir.Multiply(-WIM_CIRCLE_RADIUS))
	base := tip.AddVector(dir.Multiply(-WIM_ARROW_SIZE))
	side := dir.Normal().Multiply(WIM_ARROW_SIZE / 2)
	left, right := base.AddVector(side), base.AddVector(side.Multiply(-1))

	line := &charttarget.Line{
		Class:       "arrow",
		Points:      []geo.Point{*start, *base},
		Stroke:      color,
		StrokeWidth: 1,
	}
	head := charttarget.NewPath("arrow-head").MoveTo(tip.X, tip.Y).LineTo(left.X, left.Y).LineTo(right.X, right.Y).Close()
	head.Fill = color
	return []charttarget.Primitive{line, head}
}

func (l *layouter) valueCircle(at *geo.Point, v float64, font chartfonts.Font) []charttarget.Primitive {
	fill := l.style.primary()
	c := charttarget.NewPath("value-circle").Circle(*at, WIM_CIRCLE_RADIUS)
	c.Fill = fill
	c.Stroke = l.style.darker(fill)
	c.StrokeWidth = 1
	t := l.text("value", formatNumber(v), font, l.style.primaryText(), at.X, at.Y, charttarget.AnchorMiddle, charttarget.BaselineMiddle)
	return []charttarget.Primitive{c, t}
}

// transitionLabel is the item id, followed by the signed change in value when there is one.
func transitionLabel(t chartgraph.Transition) string {
	delta := t.ToValue - t.FromValue
	if formatNumber(delta) == "0" {
		return t.ID
	}
	sign := ""
	if delta > 0 {
		sign = "+"
	}
	return t.ID + ": " + sign + formatNumber(delta)
}
