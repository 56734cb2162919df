// chartgraph is the typed in-memory form of a parsed chart.
//
// A Chart is exactly one of *PieChart, *XYChart or *WorkItemMovement. Consumers switch on the
// concrete type; the unexported marker method keeps the set closed.
package chartgraph

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"oss.terrastruct.com/charts/chartast"
	"oss.terrastruct.com/charts/chartthemes"
)

type Kind string

const (
	KindPie              Kind = "pie"
	KindXY               Kind = "xychart-beta"
	KindWorkItemMovement Kind = "work-item-movement"
)

type Chart interface {
	Kind() Kind
	GetConfig() *Config
	GetTitle() string

	chart()
}

var _ Chart = &PieChart{}
var _ Chart = &XYChart{}
var _ Chart = &WorkItemMovement{}

// Config is what the leading %%{init}%% directive produced.
type Config struct {
	// ThemeName is empty when no theme was named.
	ThemeName string                `json:"themeName,omitempty"`
	Overrides chartthemes.Overrides `json:"overrides"`
	Width     *float64              `json:"width,omitempty"`

	// Warnings are non fatal problems found while reading the directive.
	Warnings []chartast.Error `json:"warnings,omitempty"`
}

type PieChart struct {
	Config   Config     `json:"config"`
	Title    string     `json:"title,omitempty"`
	ShowData bool       `json:"showData"`
	Slices   []PieSlice `json:"slices"`
}

type PieSlice struct {
	Label string         `json:"label"`
	Value float64        `json:"value"`
	Range chartast.Range `json:"range"`
}

// Total is the sum of all slice values.
func (pc *PieChart) Total() float64 {
	total := 0.
	for _, s := range pc.Slices {
		total += s.Value
	}
	return total
}

type SeriesType string

const (
	SeriesBar  SeriesType = "bar"
	SeriesLine SeriesType = "line"
)

type XYChart struct {
	Config Config   `json:"config"`
	Title  string   `json:"title,omitempty"`
	XAxis  XAxis    `json:"xAxis"`
	YAxis  YAxis    `json:"yAxis"`
	Series []Series `json:"series"`
	// Legend lines up with Series by index.
	Legend []string `json:"legend,omitempty"`
}

type XAxis struct {
	Labels []string `json:"labels"`
}

type YAxis struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type Series struct {
	Type   SeriesType `json:"type"`
	Values []float64  `json:"values"`
}

type WorkItemMovement struct {
	Config      Config       `json:"config"`
	Title       string       `json:"title,omitempty"`
	Columns     []string     `json:"columns"`
	Transitions []Transition `json:"transitions"`
}

type Transition struct {
	ID        string  `json:"id"`
	From      string  `json:"from"`
	FromValue float64 `json:"fromValue"`
	To        string  `json:"to"`
	ToValue   float64 `json:"toValue"`
}

// ColumnIndex finds status among the declared columns, ignoring case. It returns -1 when
// the status is not a column.
func (wim *WorkItemMovement) ColumnIndex(status string) int {
	status = strings.TrimSpace(status)
	for i, c := range wim.Columns {
		if strings.EqualFold(c, status) {
			return i
		}
	}
	return -1
}

func (pc *PieChart) Kind() Kind { return KindPie }
func (xy *XYChart) Kind() Kind { return KindXY }
func (wim *WorkItemMovement) Kind() Kind { return KindWorkItemMovement }
func (pc *PieChart) GetConfig() *Config { return &pc.Config }
func (xy *XYChart) GetConfig() *Config { return &xy.Config }
func (wim *WorkItemMovement) GetConfig() *Config { return &wim.Config }
func (pc *PieChart) GetTitle() string { return pc.Title }
func (xy *XYChart) GetTitle() string { return xy.Title }
func (wim *WorkItemMovement) GetTitle() string { return wim.Title }

func (pc *PieChart) chart() {}
func (xy *XYChart) chart() {}
func (wim *WorkItemMovement) chart() {}

// Validate checks the invariants the parser guarantees, for models built by hand.
func Validate(c Chart) error {
	switch c := c.(type) {
	case *PieChart:
		if len(c.Slices) == 0 {
			return errors.New("pie chart has no slices")
		}
		for i, s := range c.Slices {
			if !finite(s.Value) || s.Value < 0 {
				return fmt.Errorf("pie slice %d (%q) has invalid value %v", i, s.Label, s.Value)
			}
		}
	case *XYChart:
		if len(c.XAxis.Labels) == 0 {
			return errors.New("xy chart has no x-axis categories")
		}
		if len(c.Series) == 0 {
			return errors.New("xy chart has no series")
		}
		if !finite(c.YAxis.Min) || !finite(c.YAxis.Max) {
			return errors.New("xy chart y-axis range must be finite")
		}
		for i, s := range c.Series {
			if len(s.Values) != len(c.XAxis.Labels) {
				return fmt.Errorf("xy series %d has %d values but the x-axis has %d categories", i, len(s.Values), len(c.XAxis.Labels))
			}
			if s.Type != SeriesBar && s.Type != SeriesLine {
				return fmt.Errorf("xy series %d has unknown type %q", i, s.Type)
			}
			for _, v := range s.Values {
				if !finite(v) {
					return fmt.Errorf("xy series %d has non finite value", i)
				}
			}
		}
		if len(c.Legend) > len(c.Series) {
			return fmt.Errorf("xy legend has %d entries but there are %d series", len(c.Legend), len(c.Series))
		}
	case *WorkItemMovement:
		if len(c.Columns) == 0 {
			return errors.New("work item movement has no columns")
		}
		if len(c.Transitions) == 0 {
			return errors.New("work item movement has no transitions")
		}
		for _, t := range c.Transitions {
			if c.ColumnIndex(t.From) == -1 {
				return fmt.Errorf("transition %q references unknown column %q", t.ID, t.From)
			}
			if c.ColumnIndex(t.To) == -1 {
				return fmt.Errorf("transition %q references unknown column %q", t.ID, t.To)
			}
		}
	case nil:
		return errors.New("nil chart")
	default:
		return fmt.Errorf("unknown chart type %T", c)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
