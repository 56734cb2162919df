package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddVector(t *testing.T) {
	start := &Point{1.5, 5.3}
	c := NewVector(-3.5, -2.3)
	p2 := start.AddVector(c)

	if p2.X != -2 || p2.Y != 3 {
		t.Fatalf("Expected resulting point to be (-2, 3), got %+v", p2)
	}
}

func TestVectorTo(t *testing.T) {
	p1 := &Point{1.5, 5.3}
	p2 := &Point{-2, 3}
	c := p1.VectorTo(p2)
	assert.InDelta(t, -3.5, c[0], 1e-9)
	assert.InDelta(t, -2.3, c[1], 1e-9)
}

func TestUnit(t *testing.T) {
	v := NewVector(3, 4).Unit()
	assert.InDelta(t, 0.6, v[0], 1e-9)
	assert.InDelta(t, 0.8, v[1], 1e-9)
	assert.Equal(t, Vector{0, 0}, NewVector(0, 0).Unit())
}

func TestNormal(t *testing.T) {
	// Pointing right on screen, the normal points up.
	assert.Equal(t, Vector{0, -1}, NewVector(1, 0).Normal())
}

func TestPolar(t *testing.T) {
	c := NewPoint(100, 100)

	testCases := []struct {
		name  string
		angle float64
		exp   Point
	}{
		{name: "top", angle: -math.Pi / 2, exp: Point{100, 50}},
		{name: "right", angle: 0, exp: Point{150, 100}},
		{name: "bottom", angle: math.Pi / 2, exp: Point{100, 150}},
		{name: "left", angle: math.Pi, exp: Point{50, 100}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := Polar(c, 50, tc.angle)
			assert.InDelta(t, tc.exp.X, p.X, 1e-9)
			assert.InDelta(t, tc.exp.Y, p.Y, 1e-9)
		})
	}
}

func TestBounds(t *testing.T) {
	assert.Nil(t, Points{}.Bounds())

	b := Points{NewPoint(3, 4), NewPoint(-1, 10), NewPoint(5, 0)}.Bounds()
	assert.Equal(t, Point{-1, 0}, *b.TopLeft)
	assert.Equal(t, 6., b.Width)
	assert.Equal(t, 10., b.Height)
}

func TestBoxUnion(t *testing.T) {
	a := NewBox(NewPoint(0, 0), 10, 10)
	b := NewBox(NewPoint(10, 5), 10, 10)

	u := a.Union(b)
	assert.Equal(t, Point{0, 0}, *u.TopLeft)
	assert.Equal(t, 20., u.Width)
	assert.Equal(t, 15., u.Height)

	var empty *Box
	assert.Equal(t, a, empty.Union(a))
}
