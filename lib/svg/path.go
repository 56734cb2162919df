package svg

import (
	"fmt"
	"math"
	"strings"

	"oss.terrastruct.com/charts/lib/geo"
)

// PathContext accumulates the commands of an SVG path's d attribute.
type PathContext struct {
	Commands []string
	Start    *geo.Point
	Current  *geo.Point
}

// TODO probably use math.Big
func chopPrecision(f float64) float64 {
	f = math.Round(f*10000) / 10000
	if f == 0 {
		return 0
	}
	return f
}

func NewPathContext() *PathContext {
	return &PathContext{}
}

func (c *PathContext) StartAt(p geo.Point) {
	c.Start = geo.NewPoint(chopPrecision(p.X), chopPrecision(p.Y))
	c.Commands = append(c.Commands, fmt.Sprintf("M %v %v", c.Start.X, c.Start.Y))
	c.Current = c.Start.Copy()
}

func (c *PathContext) L(p geo.Point) {
	endPoint := geo.NewPoint(chopPrecision(p.X), chopPrecision(p.Y))
	c.Commands = append(c.Commands, fmt.Sprintf("L %v %v", endPoint.X, endPoint.Y))
	c.Current = endPoint
}

// A draws a clockwise arc of radius r ending at end. sweep is the swept angle in radians and
// only decides the large-arc flag.
func (c *PathContext) A(r, sweep float64, end geo.Point) {
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	endPoint := geo.NewPoint(chopPrecision(end.X), chopPrecision(end.Y))
	r = chopPrecision(r)
	c.Commands = append(c.Commands, fmt.Sprintf("A %v %v 0 %d 1 %v %v", r, r, large, endPoint.X, endPoint.Y))
	c.Current = endPoint
}

func (c *PathContext) Z() {
	c.Commands = append(c.Commands, "Z")
	if c.Start != nil {
		c.Current = c.Start.Copy()
	}
}

func (c *PathContext) PathData() string {
	return strings.Join(c.Commands, " ")
}

// Number formats f for an attribute value.
func Number(f float64) string {
	return fmt.Sprintf("%v", chopPrecision(f))
}

// Points formats points for a polyline's points attribute.
func Points(points []geo.Point) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, Number(p.X)+","+Number(p.Y))
	}
	return strings.Join(parts, " ")
}
