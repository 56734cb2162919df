// png rasterizes laid out charts.
package png

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"cdr.dev/slog"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/color"
	"oss.terrastruct.com/charts/lib/log"
	"oss.terrastruct.com/charts/lib/textmeasure"
)

// FaceProvider hands out the faces text is drawn with. *textmeasure.Ruler is one, so text is
// drawn with the same metrics it was laid out with.
type FaceProvider interface {
	Face(font chartfonts.Font) font.Face
}

// Rasterize paints diagram at the size charttarget.Fit gives its content size for maxW and
// maxH, and encodes it as PNG. faces may be nil, in which case the embedded fonts are used.
func Rasterize(ctx context.Context, diagram *charttarget.Diagram, faces FaceProvider, maxW, maxH *float64) (_ []byte, err error) {
	defer xdefer.Errorf(&err, "failed to rasterize")

	if faces == nil {
		faces, err = textmeasure.NewRuler()
		if err != nil {
			return nil, err
		}
	}

	w, h, scale := charttarget.Fit(diagram.ContentWidth, diagram.ContentHeight, maxW, maxH)
	pw, ph := int(math.Ceil(w)), int(math.Ceil(h))
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("cannot rasterize a %vx%v canvas", w, h)
	}
	log.Debug(ctx, "rasterizing", slog.F("width", pw), slog.F("height", ph), slog.F("scale", scale))

	dc := gg.NewContext(pw, ph)
	dc.Scale(scale, scale)

	if diagram.Background != "" {
		err = setColor(dc, diagram.Background, 1)
		if err != nil {
			return nil, err
		}
		dc.DrawRectangle(0, 0, diagram.ContentWidth, diagram.ContentHeight)
		dc.Fill()
	}

	for _, p := range diagram.Primitives {
		switch p := p.(type) {
		case *charttarget.Path:
			err = drawPath(dc, p)
		case *charttarget.Line:
			err = drawLine(dc, p)
		case *charttarget.TextRun:
			err = drawText(dc, p, faces)
		default:
			err = fmt.Errorf("unknown primitive %T", p)
		}
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	err = dc.EncodePNG(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, c string, opacity float64) error {
	rgba, err := color.RGBA(c)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", c, err)
	}
	rgba.A = uint8(math.Round(float64(rgba.A) * opacity))
	dc.SetColor(rgba)
	return nil
}

func tracePath(dc *gg.Context, p *charttarget.Path) {
	dc.NewSubPath()
	for _, s := range p.Segments {
		switch s.Op {
		case charttarget.SegmentMove:
			dc.MoveTo(s.Point.X, s.Point.Y)
		case charttarget.SegmentLine:
			dc.LineTo(s.Point.X, s.Point.Y)
		case charttarget.SegmentArc:
			dc.DrawArc(s.Center.X, s.Center.Y, s.Radius, s.StartAngle, s.EndAngle)
		case charttarget.SegmentClose:
			dc.ClosePath()
		}
	}
}

func drawPath(dc *gg.Context, p *charttarget.Path) error {
	if p.Fill != "" && p.Fill != color.None {
		tracePath(dc, p)
		if err := setColor(dc, p.Fill, p.Opacity); err != nil {
			return err
		}
		dc.Fill()
	}
	if p.Stroke != "" && p.Stroke != color.None && p.StrokeWidth > 0 {
		tracePath(dc, p)
		if err := setColor(dc, p.Stroke, p.Opacity); err != nil {
			return err
		}
		dc.SetLineWidth(p.StrokeWidth)
		dc.SetDash(p.Dash...)
		dc.Stroke()
	}
	return nil
}

func drawLine(dc *gg.Context, l *charttarget.Line) error {
	if len(l.Points) < 2 || l.Stroke == "" || l.Stroke == color.None {
		return nil
	}
	if err := setColor(dc, l.Stroke, 1); err != nil {
		return err
	}
	dc.NewSubPath()
	for i, pt := range l.Points {
		if i == 0 {
			dc.MoveTo(pt.X, pt.Y)
		} else {
			dc.LineTo(pt.X, pt.Y)
		}
	}
	dc.SetLineWidth(l.StrokeWidth)
	dc.SetDash(l.Dash...)
	dc.Stroke()
	return nil
}

// anchors maps text-anchor and dominant-baseline to gg's fractional anchors.
func anchors(t *charttarget.TextRun) (ax, ay float64) {
	switch t.Anchor {
	case charttarget.AnchorMiddle:
		ax = 0.5
	case charttarget.AnchorEnd:
		ax = 1
	}
	switch t.Baseline {
	case charttarget.BaselineHanging:
		ay = 1
	default:
		ay = 0.5
	}
	return ax, ay
}

func drawText(dc *gg.Context, t *charttarget.TextRun, faces FaceProvider) error {
	if t.Text == "" {
		return nil
	}
	fill := t.Fill
	if fill == "" {
		fill = color.Black
	}
	if err := setColor(dc, fill, 1); err != nil {
		return err
	}
	dc.SetFontFace(faces.Face(t.Font))

	dc.Push()
	defer dc.Pop()
	if t.Rotation != 0 {
		dc.RotateAbout(gg.Radians(t.Rotation), t.Pos.X, t.Pos.Y)
	}
	ax, ay := anchors(t)
	dc.DrawStringAnchored(t.Text, t.Pos.X, t.Pos.Y, ax, ay)
	return nil
}
