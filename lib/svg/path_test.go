package svg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/charts/lib/geo"
	"oss.terrastruct.com/charts/lib/svg"
)

func TestPathData(t *testing.T) {
	t.Parallel()

	c := svg.NewPathContext()
	c.StartAt(geo.Point{X: 10, Y: 10})
	c.L(geo.Point{X: 10, Y: 0})
	c.A(10, math.Pi/2, geo.Point{X: 20, Y: 10.000000001})
	c.Z()
	assert.Equal(t, "M 10 10 L 10 0 A 10 10 0 0 1 20 10 Z", c.PathData())
	assert.Equal(t, geo.Point{X: 10, Y: 10}, *c.Current)

	c = svg.NewPathContext()
	c.StartAt(geo.Point{X: 0, Y: -5})
	c.A(5, 3*math.Pi/2, geo.Point{X: -5, Y: 0})
	assert.Equal(t, "M 0 -5 A 5 5 0 1 1 -5 0", c.PathData())
}

func TestPoints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0,0 1.5,2.3333", svg.Points([]geo.Point{{X: 0, Y: 0}, {X: 1.5, Y: 7. / 3}}))
	assert.Equal(t, "0", svg.Number(-0.00001))
}
