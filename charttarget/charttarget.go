// charttarget is the drawing vocabulary the layout engine produces and the renderers consume.
//
// A Diagram holds a flat, ordered list of primitives with absolute coordinates in content space
// (0,0 to ContentWidth,ContentHeight). List order is paint order.
package charttarget

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/lib/geo"
)

const (
	DEGENERATE_WIDTH  = 200
	DEGENERATE_HEIGHT = 100
)

type Diagram struct {
	Kind  chartgraph.Kind `json:"kind"`
	Title string          `json:"title,omitempty"`

	// Width and Height are the fitted output size.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// ContentWidth and ContentHeight are the size computed from the content, before fitting.
	ContentWidth  float64 `json:"contentWidth"`
	ContentHeight float64 `json:"contentHeight"`
	Scale         float64 `json:"scale"`

	Background string                `json:"background"`
	FontFamily chartfonts.FontFamily `json:"fontFamily"`

	Primitives []Primitive `json:"primitives"`

	// Degenerate is set when the chart could not be laid out and a placeholder was drawn instead.
	Degenerate       bool   `json:"degenerate,omitempty"`
	DegenerateReason string `json:"degenerateReason,omitempty"`
}

func NewDiagram(kind chartgraph.Kind) *Diagram {
	return &Diagram{
		Kind:  kind,
		Scale: 1,
	}
}

// Add appends primitives in paint order.
func (diagram *Diagram) Add(ps ...Primitive) {
	diagram.Primitives = append(diagram.Primitives, ps...)
}

// SetContentSize records the pre-fit size and fits it to the optional maxima.
func (diagram *Diagram) SetContentSize(w, h float64, maxW, maxH *float64) {
	diagram.ContentWidth = w
	diagram.ContentHeight = h
	diagram.Width, diagram.Height, diagram.Scale = Fit(w, h, maxW, maxH)
}

func (diagram Diagram) Bytes() ([]byte, error) {
	return json.Marshal(diagram)
}

func (diagram Diagram) HashID() (string, error) {
	bytes, err := diagram.Bytes()
	if err != nil {
		return "", err
	}
	h := fnv.New32a()
	h.Write(bytes)
	// CSS names can't start with numbers, so prepend a little something
	return fmt.Sprintf("charts-%d", h.Sum32()), nil
}

// Fit scales w by h so that it satisfies every given maximum. The scale is the smallest of
// maxW/w and maxH/h over the maxima that are set, and 1 when none are. Both sides use the same
// scale so nothing is padded.
func Fit(w, h float64, maxW, maxH *float64) (fw, fh, scale float64) {
	if w <= 0 || h <= 0 {
		return w, h, 1
	}
	scale = math.Inf(1)
	if maxW != nil {
		scale = math.Min(scale, *maxW/w)
	}
	if maxH != nil {
		scale = math.Min(scale, *maxH/h)
	}
	if math.IsInf(scale, 1) {
		return w, h, 1
	}
	fw, fh = w*scale, h*scale
	// The binding maximum is hit exactly, not off by a rounding error.
	if maxW != nil && scale == *maxW/w {
		fw = *maxW
	}
	if maxH != nil && scale == *maxH/h {
		fh = *maxH
	}
	return fw, fh, scale
}

// Primitive is one of *Path, *Line or *TextRun.
type Primitive interface {
	// Bounds is an approximation used for canvas sizing and tests.
	Bounds() *geo.Box
	Translate(dx, dy float64)

	primitive()
}

var _ Primitive = &Path{}
var _ Primitive = &Line{}
var _ Primitive = &TextRun{}

// marshalTagged wraps v with its primitive type name.
func marshalTagged(typ string, v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{typ, b})
}

type SegmentOp string

const (
	SegmentMove  SegmentOp = "M"
	SegmentLine  SegmentOp = "L"
	SegmentArc   SegmentOp = "A"
	SegmentClose SegmentOp = "Z"
)

// Segment is one path command. Arc angles are radians measured like geo.Polar: from the
// positive x axis, increasing clockwise on screen. An arc starts at the point at StartAngle,
// which must be the current point, and sweeps clockwise to EndAngle.
type Segment struct {
	Op     SegmentOp `json:"op"`
	Point  geo.Point `json:"point"`
	Center geo.Point `json:"center"`
	Radius float64   `json:"radius,omitempty"`

	StartAngle float64 `json:"startAngle,omitempty"`
	EndAngle   float64 `json:"endAngle,omitempty"`
}

type Path struct {
	Class       string    `json:"class,omitempty"`
	Segments    []Segment `json:"segments"`
	Fill        string    `json:"fill"`
	Stroke      string    `json:"stroke"`
	StrokeWidth float64   `json:"strokeWidth"`
	Opacity     float64   `json:"opacity"`
	Dash        []float64 `json:"dash,omitempty"`
}

func NewPath(class string) *Path {
	return &Path{
		Class:   class,
		Opacity: 1,
	}
}

func (p *Path) MoveTo(x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Op: SegmentMove, Point: geo.Point{X: x, Y: y}})
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Op: SegmentLine, Point: geo.Point{X: x, Y: y}})
	return p
}

// ArcTo sweeps clockwise around center from start to end. Point is the arc's end point.
func (p *Path) ArcTo(center geo.Point, r, start, end float64) *Path {
	p.Segments = append(p.Segments, Segment{
		Op:         SegmentArc,
		Point:      *geo.Polar(&center, r, end),
		Center:     center,
		Radius:     r,
		StartAngle: start,
		EndAngle:   end,
	})
	return p
}

func (p *Path) Close() *Path {
	p.Segments = append(p.Segments, Segment{Op: SegmentClose})
	return p
}

// Rect is a closed axis aligned rectangle.
func (p *Path) Rect(x, y, w, h float64) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Circle is a full clockwise circle made of two half arcs.
func (p *Path) Circle(center geo.Point, r float64) *Path {
	start := geo.Polar(&center, r, -math.Pi/2)
	return p.MoveTo(start.X, start.Y).
		ArcTo(center, r, -math.Pi/2, math.Pi/2).
		ArcTo(center, r, math.Pi/2, 3*math.Pi/2).
		Close()
}

func (p *Path) Bounds() *geo.Box {
	var pts geo.Points
	for _, s := range p.Segments {
		switch s.Op {
		case SegmentMove, SegmentLine:
			pts = append(pts, s.Point.Copy())
		case SegmentArc:
			// The circle's box contains any arc of it.
			pts = append(pts,
				geo.NewPoint(s.Center.X-s.Radius, s.Center.Y-s.Radius),
				geo.NewPoint(s.Center.X+s.Radius, s.Center.Y+s.Radius),
			)
		}
	}
	return pts.Bounds()
}

func (p *Path) Translate(dx, dy float64) {
	for i := range p.Segments {
		s := &p.Segments[i]
		if s.Op == SegmentClose {
			continue
		}
		s.Point.X += dx
		s.Point.Y += dy
		if s.Op == SegmentArc {
			s.Center.X += dx
			s.Center.Y += dy
		}
	}
}

func (p *Path) MarshalJSON() ([]byte, error) {
	type path Path
	return marshalTagged("path", (*path)(p))
}

// Line is an open polyline.
type Line struct {
	Class       string      `json:"class,omitempty"`
	Points      []geo.Point `json:"points"`
	Stroke      string      `json:"stroke"`
	StrokeWidth float64     `json:"strokeWidth"`
	Dash        []float64   `json:"dash,omitempty"`
}

func (l *Line) Bounds() *geo.Box {
	pts := make(geo.Points, 0, len(l.Points))
	for i := range l.Points {
		pts = append(pts, &l.Points[i])
	}
	return pts.Bounds()
}

func (l *Line) Translate(dx, dy float64) {
	for i := range l.Points {
		l.Points[i].X += dx
		l.Points[i].Y += dy
	}
}

func (l *Line) MarshalJSON() ([]byte, error) {
	type line Line
	return marshalTagged("line", (*line)(l))
}

type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

type Baseline string

const (
	// BaselineMiddle centers the text vertically on Pos.
	BaselineMiddle Baseline = "middle"
	// BaselineHanging puts the top of the text at Pos.
	BaselineHanging Baseline = "hanging"
)

type TextRun struct {
	Class    string          `json:"class,omitempty"`
	Text     string          `json:"text"`
	Pos      geo.Point       `json:"pos"`
	Anchor   Anchor          `json:"anchor"`
	Baseline Baseline        `json:"baseline"`
	Font     chartfonts.Font `json:"font"`
	Fill     string          `json:"fill"`
	// Rotation is in degrees, clockwise about Pos.
	Rotation float64 `json:"rotation,omitempty"`

	// Width and Height are the measured size of the unrotated text.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds places the measured box around Pos according to the anchor and baseline. Rotations
// by a multiple of 90 degrees are taken into account.
func (t *TextRun) Bounds() *geo.Box {
	w, h := t.Width, t.Height
	var dx, dy float64
	switch t.Anchor {
	case AnchorMiddle:
		dx = -w / 2
	case AnchorEnd:
		dx = -w
	}
	switch t.Baseline {
	case BaselineHanging:
	default:
		dy = -h / 2
	}
	box := geo.NewBox(geo.NewPoint(t.Pos.X+dx, t.Pos.Y+dy), w, h)

	quarter := int(math.Round(t.Rotation/90)) % 4
	if quarter < 0 {
		quarter += 4
	}
	if quarter == 0 {
		return box
	}
	// Rotate the corners about Pos.
	tl := box.TopLeft
	corners := geo.Points{
		tl, geo.NewPoint(tl.X+w, tl.Y), geo.NewPoint(tl.X, tl.Y+h), geo.NewPoint(tl.X+w, tl.Y+h),
	}
	rotated := make(geo.Points, 0, 4)
	for _, c := range corners {
		x, y := c.X-t.Pos.X, c.Y-t.Pos.Y
		for i := 0; i < quarter; i++ {
			x, y = -y, x
		}
		rotated = append(rotated, geo.NewPoint(t.Pos.X+x, t.Pos.Y+y))
	}
	return rotated.Bounds()
}

func (t *TextRun) Translate(dx, dy float64) {
	t.Pos.X += dx
	t.Pos.Y += dy
}

func (t *TextRun) MarshalJSON() ([]byte, error) {
	type textRun TextRun
	return marshalTagged("text", (*textRun)(t))
}

// ContentBounds is the union of every primitive's bounds, or nil for an empty diagram.
func (diagram Diagram) ContentBounds() *geo.Box {
	var b *geo.Box
	for _, p := range diagram.Primitives {
		b = b.Union(p.Bounds())
	}
	return b
}

func (p *Path) primitive()    {}
func (l *Line) primitive()    {}
func (t *TextRun) primitive() {}
