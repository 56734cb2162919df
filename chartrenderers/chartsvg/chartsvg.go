// chartsvg implements an SVG renderer for charts.
// The input is chartlayout's output. Rendering is a pure transcription: nothing is measured or
// moved, every primitive becomes one element in paint order.
package chartsvg

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/svg"
)

const SVG_NS = "http://www.w3.org/2000/svg"

// Emit builds the document for diagram. The viewBox spans the content size and the declared
// width and height are the fitted size, so a viewer scales the content by diagram.Scale.
func Emit(diagram *charttarget.Diagram) (*etree.Document, error) {
	id, err := diagram.HashID()
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", SVG_NS)
	root.CreateAttr("id", id)
	root.CreateAttr("class", string(diagram.Kind))
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", svg.Number(diagram.ContentWidth), svg.Number(diagram.ContentHeight)))
	root.CreateAttr("width", svg.Number(diagram.Width))
	root.CreateAttr("height", svg.Number(diagram.Height))
	root.CreateAttr("font-family", diagram.FontFamily.CSSFamily())
	if diagram.Degenerate {
		root.CreateAttr("data-degenerate", diagram.DegenerateReason)
	}

	if diagram.Title != "" {
		root.CreateElement("title").SetText(diagram.Title)
	}

	if diagram.Background != "" {
		bg := root.CreateElement("rect")
		bg.CreateAttr("class", "background")
		bg.CreateAttr("x", "0")
		bg.CreateAttr("y", "0")
		bg.CreateAttr("width", svg.Number(diagram.ContentWidth))
		bg.CreateAttr("height", svg.Number(diagram.ContentHeight))
		bg.CreateAttr("fill", diagram.Background)
	}

	for _, p := range diagram.Primitives {
		switch p := p.(type) {
		case *charttarget.Path:
			drawPath(root, p)
		case *charttarget.Line:
			drawLine(root, p)
		case *charttarget.TextRun:
			drawText(root, p, diagram.FontFamily)
		default:
			return nil, fmt.Errorf("unknown primitive %T", p)
		}
	}
	return doc, nil
}

// Render serializes Emit's document.
func Render(diagram *charttarget.Diagram) (_ []byte, err error) {
	defer xdefer.Errorf(&err, "failed to render svg")

	doc, err := Emit(diagram)
	if err != nil {
		return nil, err
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

func pathData(p *charttarget.Path) string {
	c := svg.NewPathContext()
	for _, s := range p.Segments {
		switch s.Op {
		case charttarget.SegmentMove:
			c.StartAt(s.Point)
		case charttarget.SegmentLine:
			c.L(s.Point)
		case charttarget.SegmentArc:
			c.A(s.Radius, s.EndAngle-s.StartAngle, s.Point)
		case charttarget.SegmentClose:
			c.Z()
		}
	}
	return c.PathData()
}

func drawPath(parent *etree.Element, p *charttarget.Path) {
	el := parent.CreateElement("path")
	setClass(el, p.Class)
	el.CreateAttr("d", pathData(p))
	fill := p.Fill
	if fill == "" {
		fill = "none"
	}
	el.CreateAttr("fill", fill)
	setStroke(el, p.Stroke, p.StrokeWidth, p.Dash)
	if p.Opacity != 1 {
		el.CreateAttr("opacity", svg.Number(p.Opacity))
	}
}

func drawLine(parent *etree.Element, l *charttarget.Line) {
	el := parent.CreateElement("polyline")
	setClass(el, l.Class)
	el.CreateAttr("points", svg.Points(l.Points))
	el.CreateAttr("fill", "none")
	setStroke(el, l.Stroke, l.StrokeWidth, l.Dash)
}

func drawText(parent *etree.Element, t *charttarget.TextRun, family chartfonts.FontFamily) {
	el := parent.CreateElement("text")
	setClass(el, t.Class)
	el.CreateAttr("x", svg.Number(t.Pos.X))
	el.CreateAttr("y", svg.Number(t.Pos.Y))
	el.CreateAttr("text-anchor", string(t.Anchor))
	el.CreateAttr("dominant-baseline", string(t.Baseline))
	if t.Font.Family != "" && t.Font.Family != family {
		el.CreateAttr("font-family", t.Font.Family.CSSFamily())
	}
	el.CreateAttr("font-size", svg.Number(t.Font.Size))
	switch t.Font.Style {
	case chartfonts.FONT_STYLE_BOLD:
		el.CreateAttr("font-weight", "bold")
	case chartfonts.FONT_STYLE_ITALIC:
		el.CreateAttr("font-style", "italic")
	}
	if t.Fill != "" {
		el.CreateAttr("fill", t.Fill)
	}
	if t.Rotation != 0 {
		el.CreateAttr("transform", fmt.Sprintf("rotate(%s %s %s)", svg.Number(t.Rotation), svg.Number(t.Pos.X), svg.Number(t.Pos.Y)))
	}
	el.SetText(t.Text)
}

func setClass(el *etree.Element, class string) {
	if class != "" {
		el.CreateAttr("class", class)
	}
}

func setStroke(el *etree.Element, stroke string, width float64, dash []float64) {
	if stroke == "" || width <= 0 {
		return
	}
	el.CreateAttr("stroke", stroke)
	el.CreateAttr("stroke-width", svg.Number(width))
	if len(dash) > 0 {
		parts := make([]string, 0, len(dash))
		for _, d := range dash {
			parts = append(parts, svg.Number(d))
		}
		el.CreateAttr("stroke-dasharray", strings.Join(parts, " "))
	}
}
