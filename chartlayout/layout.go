// chartlayout turns a parsed chart into positioned drawing primitives.
//
// Every size decision is driven by text measured through a TextMeasurer, so a deterministic
// measurer gives deterministic geometry. Content is laid out first, the canvas is then taken
// from the content's extents and finally fitted to the optional maxima with charttarget.Fit.
package chartlayout

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/geo"
	"oss.terrastruct.com/charts/lib/log"
)

const (
	DEFAULT_WIDTH  = 800
	DEFAULT_HEIGHT = 600

	TITLE_GAP = 10
)

// TextMeasurer reports the size of s drawn in font.
type TextMeasurer interface {
	Measure(font chartfonts.Font, s string) (width, height float64)
}

type Options struct {
	// Width and Height are the frame the content is laid out in. A width in the diagram's
	// directive takes precedence over Width.
	Width  float64
	Height float64

	MaxWidth  *float64
	MaxHeight *float64

	FontFamily chartfonts.FontFamily
	// ThemeID selects a theme from chartthemescatalog when the diagram names none.
	ThemeID *int64
}

func (opts *Options) withDefaults(cfg *chartgraph.Config) Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Width == 0 {
		o.Width = DEFAULT_WIDTH
	}
	if o.Height == 0 {
		o.Height = DEFAULT_HEIGHT
	}
	if cfg.Width != nil {
		o.Width = *cfg.Width
	}
	return o
}

// Layout lays out c. It only fails for a chart that does not satisfy chartgraph.Validate; input
// that cannot be drawn, like a pie whose values are all zero, gets a placeholder Diagram with
// Degenerate set.
func Layout(ctx context.Context, c chartgraph.Chart, ruler TextMeasurer, opts *Options) (_ *charttarget.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to lay out chart")

	err = chartgraph.Validate(c)
	if err != nil {
		return nil, err
	}

	o := opts.withDefaults(c.GetConfig())
	st := newStyle(c.GetConfig(), o)
	l := &layouter{
		ctx:   ctx,
		ruler: ruler,
		opts:  o,
		style: st,
	}

	var d *charttarget.Diagram
	var reason string
	if !(o.Width > 0) || !(o.Height > 0) {
		reason = fmt.Sprintf("zero-area frame %vx%v", o.Width, o.Height)
	} else {
		switch c := c.(type) {
		case *chartgraph.PieChart:
			d, reason = l.pie(c)
		case *chartgraph.XYChart:
			d, reason = l.xy(c)
		case *chartgraph.WorkItemMovement:
			d, reason = l.workItemMovement(c)
		default:
			return nil, fmt.Errorf("unknown chart type %T", c)
		}
	}
	if reason == "" && (!(d.Width > 0) || !(d.Height > 0)) {
		reason = fmt.Sprintf("zero-area canvas %vx%v after fitting", d.Width, d.Height)
	}
	if reason != "" {
		return l.degenerate(c, reason), nil
	}
	return d, nil
}

type layouter struct {
	ctx   context.Context
	ruler TextMeasurer
	opts  Options
	style *style
}

func (l *layouter) newDiagram(c chartgraph.Chart) *charttarget.Diagram {
	d := charttarget.NewDiagram(c.Kind())
	d.Title = c.GetTitle()
	d.FontFamily = l.style.family
	return d
}

// text builds a measured TextRun.
func (l *layouter) text(class, s string, font chartfonts.Font, fill string, x, y float64, anchor charttarget.Anchor, baseline charttarget.Baseline) *charttarget.TextRun {
	w, h := l.ruler.Measure(font, s)
	return &charttarget.TextRun{
		Class:    class,
		Text:     s,
		Pos:      geo.Point{X: x, Y: y},
		Anchor:   anchor,
		Baseline: baseline,
		Font:     font,
		Fill:     fill,
		Width:    w,
		Height:   h,
	}
}

// place shifts primitives so nothing lies above or left of margin, then returns the canvas
// size: at least minW by minH and large enough to keep margin around every primitive.
func place(ps []charttarget.Primitive, minW, minH, margin float64) (w, h float64) {
	var b *geo.Box
	for _, p := range ps {
		b = b.Union(p.Bounds())
	}
	if b == nil {
		return minW, minH
	}
	dx := math.Max(0, margin-b.TopLeft.X)
	dy := math.Max(0, margin-b.TopLeft.Y)
	if dx != 0 || dy != 0 {
		for _, p := range ps {
			p.Translate(dx, dy)
		}
	}
	w = math.Max(minW+dx, b.Right()+dx+margin)
	h = math.Max(minH+dy, b.Bottom()+dy+margin)
	return w, h
}

func (l *layouter) finish(d *charttarget.Diagram, ps []charttarget.Primitive, w, h float64) *charttarget.Diagram {
	d.Add(ps...)
	d.SetContentSize(w, h, l.opts.MaxWidth, l.opts.MaxHeight)
	return d
}

// degenerate draws the placeholder shown when c cannot be laid out.
func (l *layouter) degenerate(c chartgraph.Chart, cause string) *charttarget.Diagram {
	log.Warn(l.ctx, "chart could not be laid out, drawing a placeholder", slog.F("kind", c.Kind()), slog.F("reason", cause))

	d := l.newDiagram(c)
	d.Background = l.style.background()
	d.Degenerate = true
	d.DegenerateReason = fmt.Sprintf("%s chart: %s", c.Kind(), cause)

	const w, h = charttarget.DEGENERATE_WIDTH, charttarget.DEGENERATE_HEIGHT
	lines := []string{string(c.Kind()), cause}
	size := float64(chartfonts.FONT_SIZE_ITEM)
	for _, s := range lines {
		// Shrink until every line fits the placeholder.
		tw, _ := l.ruler.Measure(l.style.font(size, chartfonts.FONT_STYLE_REGULAR), s)
		if tw > w*0.9 {
			size *= w * 0.9 / tw
		}
	}
	font := l.style.font(size, chartfonts.FONT_STYLE_REGULAR)
	for i, s := range lines {
		y := h/2 + (float64(i)-0.5)*size*1.4
		d.Add(l.text("degenerate", s, font, l.style.text(), w/2, y, charttarget.AnchorMiddle, charttarget.BaselineMiddle))
	}
	d.SetContentSize(w, h, l.opts.MaxWidth, l.opts.MaxHeight)
	if !(d.Width > 0) || !(d.Height > 0) {
		d.Width, d.Height, d.Scale = w, h, 1
	}
	return d
}

// formatNumber prints v without exponent or trailing zeros, rounded to 6 decimals.
func formatNumber(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		// Avoid "-0".
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
