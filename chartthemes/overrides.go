package chartthemes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/charts/lib/color"
)

// Overrides are the theme variables a diagram may set in its %%{init}%% directive.
// Keys that are not listed here are ignored.
type Overrides struct {
	FontFamily       *string `yaml:"fontFamily" json:"fontFamily,omitempty"`
	Background       *string `yaml:"background" json:"background,omitempty"`
	TextColor        *string `yaml:"textColor" json:"textColor,omitempty"`
	LineColor        *string `yaml:"lineColor" json:"lineColor,omitempty"`
	PrimaryColor     *string `yaml:"primaryColor" json:"primaryColor,omitempty"`
	PrimaryTextColor *string `yaml:"primaryTextColor" json:"primaryTextColor,omitempty"`
	TitleFontSize    *Length `yaml:"titleFontSize" json:"titleFontSize,omitempty"`
	LabelFontSize    *Length `yaml:"labelFontSize" json:"labelFontSize,omitempty"`

	Pie1  *string `yaml:"pie1" json:"pie1,omitempty"`
	Pie2  *string `yaml:"pie2" json:"pie2,omitempty"`
	Pie3  *string `yaml:"pie3" json:"pie3,omitempty"`
	Pie4  *string `yaml:"pie4" json:"pie4,omitempty"`
	Pie5  *string `yaml:"pie5" json:"pie5,omitempty"`
	Pie6  *string `yaml:"pie6" json:"pie6,omitempty"`
	Pie7  *string `yaml:"pie7" json:"pie7,omitempty"`
	Pie8  *string `yaml:"pie8" json:"pie8,omitempty"`
	Pie9  *string `yaml:"pie9" json:"pie9,omitempty"`
	Pie10 *string `yaml:"pie10" json:"pie10,omitempty"`
	Pie11 *string `yaml:"pie11" json:"pie11,omitempty"`
	Pie12 *string `yaml:"pie12" json:"pie12,omitempty"`

	PieStrokeColor      *string `yaml:"pieStrokeColor" json:"pieStrokeColor,omitempty"`
	PieStrokeWidth      *Length `yaml:"pieStrokeWidth" json:"pieStrokeWidth,omitempty"`
	PieOuterStrokeColor *string `yaml:"pieOuterStrokeColor" json:"pieOuterStrokeColor,omitempty"`
	PieOuterStrokeWidth *Length `yaml:"pieOuterStrokeWidth" json:"pieOuterStrokeWidth,omitempty"`
	PieOpacity          *Length `yaml:"pieOpacity" json:"pieOpacity,omitempty"`
	PieTitleTextSize    *Length `yaml:"pieTitleTextSize" json:"pieTitleTextSize,omitempty"`
	PieTitleTextColor   *string `yaml:"pieTitleTextColor" json:"pieTitleTextColor,omitempty"`
	PieSectionTextSize  *Length `yaml:"pieSectionTextSize" json:"pieSectionTextSize,omitempty"`
	PieSectionTextColor *string `yaml:"pieSectionTextColor" json:"pieSectionTextColor,omitempty"`
	PieLegendTextSize   *Length `yaml:"pieLegendTextSize" json:"pieLegendTextSize,omitempty"`
	PieLegendTextColor  *string `yaml:"pieLegendTextColor" json:"pieLegendTextColor,omitempty"`

	XYChart *XYOverrides `yaml:"xyChart" json:"xyChart,omitempty"`
}

type XYOverrides struct {
	TitleFontSize    *Length `yaml:"titleFontSize" json:"titleFontSize,omitempty"`
	LabelFontSize    *Length `yaml:"labelFontSize" json:"labelFontSize,omitempty"`
	LegendFontSize   *Length `yaml:"legendFontSize" json:"legendFontSize,omitempty"`
	TitleColor       *string `yaml:"titleColor" json:"titleColor,omitempty"`
	AxisLineColor    *string `yaml:"axisLineColor" json:"axisLineColor,omitempty"`
	BackgroundColor  *string `yaml:"backgroundColor" json:"backgroundColor,omitempty"`
	PlotColorPalette *List   `yaml:"plotColorPalette" json:"plotColorPalette,omitempty"`
	PlotPoints       *List   `yaml:"plotPoints" json:"plotPoints,omitempty"`
	StrokeStyles     *List   `yaml:"strokeStyles" json:"strokeStyles,omitempty"`
}

// PieSlot returns the pieN override for the zero indexed slot i, if any.
func (o *Overrides) PieSlot(i int) *string {
	if o == nil {
		return nil
	}
	slots := [...]*string{
		o.Pie1, o.Pie2, o.Pie3, o.Pie4, o.Pie5, o.Pie6,
		o.Pie7, o.Pie8, o.Pie9, o.Pie10, o.Pie11, o.Pie12,
	}
	if i < 0 || i >= len(slots) {
		return nil
	}
	return slots[i]
}

// Sanitize drops overrides that cannot be drawn and returns one message per dropped key:
// colors that are not valid CSS colors, font sizes that are not positive, negative stroke
// widths and an opacity outside [0, 1]. Non finite numbers are always dropped.
func (o *Overrides) Sanitize() []string {
	if o == nil {
		return nil
	}
	var msgs []string
	check := func(key string, v **string) {
		if *v == nil {
			return
		}
		if err := color.Valid(**v); err != nil {
			msgs = append(msgs, fmt.Sprintf("ignoring %s: invalid color %q", key, **v))
			*v = nil
		}
	}
	check("background", &o.Background)
	check("textColor", &o.TextColor)
	check("lineColor", &o.LineColor)
	check("primaryColor", &o.PrimaryColor)
	check("primaryTextColor", &o.PrimaryTextColor)
	pies := [...]**string{
		&o.Pie1, &o.Pie2, &o.Pie3, &o.Pie4, &o.Pie5, &o.Pie6,
		&o.Pie7, &o.Pie8, &o.Pie9, &o.Pie10, &o.Pie11, &o.Pie12,
	}
	for i, p := range pies {
		check(fmt.Sprintf("pie%d", i+1), p)
	}
	check("pieStrokeColor", &o.PieStrokeColor)
	check("pieOuterStrokeColor", &o.PieOuterStrokeColor)
	check("pieTitleTextColor", &o.PieTitleTextColor)
	check("pieSectionTextColor", &o.PieSectionTextColor)
	check("pieLegendTextColor", &o.PieLegendTextColor)

	checkLength := func(key string, v **Length, lo, hi float64, loInclusive bool, want string) {
		if *v == nil {
			return
		}
		f := float64(**v)
		ok := !math.IsNaN(f) && f <= hi && (f > lo || loInclusive && f == lo)
		if !ok {
			msgs = append(msgs, fmt.Sprintf("ignoring %s: expected %s, got %v", key, want, f))
			*v = nil
		}
	}
	size := func(key string, v **Length) {
		checkLength(key, v, 0, math.MaxFloat64, false, "a positive font size")
	}
	width := func(key string, v **Length) {
		checkLength(key, v, 0, math.MaxFloat64, true, "a non-negative stroke width")
	}
	size("titleFontSize", &o.TitleFontSize)
	size("labelFontSize", &o.LabelFontSize)
	size("pieTitleTextSize", &o.PieTitleTextSize)
	size("pieSectionTextSize", &o.PieSectionTextSize)
	size("pieLegendTextSize", &o.PieLegendTextSize)
	width("pieStrokeWidth", &o.PieStrokeWidth)
	width("pieOuterStrokeWidth", &o.PieOuterStrokeWidth)
	checkLength("pieOpacity", &o.PieOpacity, 0, 1, true, "an opacity between 0 and 1")

	if xy := o.XYChart; xy != nil {
		size("xyChart.titleFontSize", &xy.TitleFontSize)
		size("xyChart.labelFontSize", &xy.LabelFontSize)
		size("xyChart.legendFontSize", &xy.LegendFontSize)
		check("xyChart.titleColor", &xy.TitleColor)
		check("xyChart.axisLineColor", &xy.AxisLineColor)
		check("xyChart.backgroundColor", &xy.BackgroundColor)
		if xy.PlotColorPalette != nil {
			var kept List
			for _, c := range *xy.PlotColorPalette {
				if err := color.Valid(c); err != nil {
					msgs = append(msgs, fmt.Sprintf("ignoring xyChart.plotColorPalette entry %q: invalid color", c))
					continue
				}
				kept = append(kept, c)
			}
			xy.PlotColorPalette = &kept
		}
	}
	return msgs
}

// Length is a size or plain number. Both 20 and "20px" decode to 20.
type Length float64

func (l *Length) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number, got a %s", value.Line, kindName(value.Kind))
	}
	s := strings.TrimSpace(value.Value)
	s = strings.TrimSuffix(s, "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("line %d: expected a number, got %q", value.Line, value.Value)
	}
	*l = Length(f)
	return nil
}

func (l *Length) Value(fallback float64) float64 {
	if l == nil {
		return fallback
	}
	return float64(*l)
}

// List decodes from either a YAML sequence or a comma separated string.
type List []string

func (ls *List) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*ls = trimAll(items)
		return nil
	case yaml.ScalarNode:
		*ls = trimAll(strings.Split(value.Value, ","))
		return nil
	default:
		return fmt.Errorf("line %d: expected a list, got a %s", value.Line, kindName(value.Kind))
	}
}

// At returns the i-th entry or "" when the list is too short.
func (ls *List) At(i int) string {
	if ls == nil || i < 0 || i >= len(*ls) {
		return ""
	}
	return (*ls)[i]
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
