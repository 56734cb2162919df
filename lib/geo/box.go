package geo

import "math"

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Right() float64 {
	return b.TopLeft.X + b.Width
}

func (b *Box) Bottom() float64 {
	return b.TopLeft.Y + b.Height
}

// Union returns the smallest box containing both. A nil box is treated as empty.
func (b *Box) Union(b2 *Box) *Box {
	if b == nil {
		return b2.Copy()
	}
	if b2 == nil {
		return b.Copy()
	}
	x := math.Min(b.TopLeft.X, b2.TopLeft.X)
	y := math.Min(b.TopLeft.Y, b2.TopLeft.Y)
	return NewBox(NewPoint(x, y), math.Max(b.Right(), b2.Right())-x, math.Max(b.Bottom(), b2.Bottom())-y)
}
