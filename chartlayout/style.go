package chartlayout

import (
	"strings"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/chartthemes"
	"oss.terrastruct.com/charts/chartthemes/chartthemescatalog"
	"oss.terrastruct.com/charts/lib/color"
)

// style resolves every styling value as: directive override, then the selected theme, then
// the base theme.
type style struct {
	theme  chartthemes.Theme
	o      *chartthemes.Overrides
	family chartfonts.FontFamily
}

func newStyle(cfg *chartgraph.Config, opts Options) *style {
	theme := chartthemescatalog.Default
	if opts.ThemeID != nil {
		if t := chartthemescatalog.Find(*opts.ThemeID); t.Name != "" {
			theme = t
		}
	}
	if cfg.ThemeName != "" {
		if t, ok := chartthemescatalog.FindByName(cfg.ThemeName); ok {
			theme = t
		}
	}

	family := opts.FontFamily
	if cfg.Overrides.FontFamily != nil {
		if f := firstFamily(*cfg.Overrides.FontFamily); f != "" {
			family = f
		}
	}
	if family == "" {
		family = chartfonts.DefaultFamily
	}

	return &style{
		theme:  theme,
		o:      &cfg.Overrides,
		family: family,
	}
}

// firstFamily takes the first entry of a CSS font-family list.
func firstFamily(list string) chartfonts.FontFamily {
	first := strings.Split(list, ",")[0]
	return chartfonts.FontFamily(strings.Trim(strings.TrimSpace(first), `"'`))
}

func pick(override *string, fallbacks ...string) string {
	if override != nil && *override != "" {
		return *override
	}
	for _, f := range fallbacks {
		if f != "" {
			return f
		}
	}
	return ""
}

func (s *style) colors() chartthemes.Palette {
	return s.theme.Colors
}

func (s *style) base() chartthemes.Palette {
	return chartthemescatalog.Base.Colors
}

func (s *style) font(size float64, fontStyle chartfonts.FontStyle) chartfonts.Font {
	return s.family.Font(size, fontStyle)
}

func (s *style) background() string {
	return pick(s.o.Background, s.colors().Background, s.base().Background)
}

func (s *style) text() string {
	return pick(s.o.TextColor, s.colors().Text, s.base().Text)
}

func (s *style) line() string {
	return pick(s.o.LineColor, s.colors().Line, s.base().Line)
}

func (s *style) guide() string {
	return pick(nil, s.colors().Guide, s.base().Guide)
}

func (s *style) primary() string {
	return pick(s.o.PrimaryColor, s.colors().Primary, s.base().Primary)
}

func (s *style) primaryText() string {
	return pick(s.o.PrimaryTextColor, s.colors().PrimaryText, s.base().PrimaryText)
}

// pieColor is the fill of the i-th slice: the pieN override for its slot, else the theme's pie
// palette, wrapping.
func (s *style) pieColor(i int) string {
	if len(s.colors().Pie) == 0 {
		return pick(s.o.PieSlot(i), s.base().PieColor(i))
	}
	return pick(s.o.PieSlot(i), s.colors().PieColor(i))
}

// seriesColor is the color of the i-th xy series, from plotColorPalette when set.
func (s *style) seriesColor(i int) string {
	if xy := s.o.XYChart; xy != nil && xy.PlotColorPalette != nil && len(*xy.PlotColorPalette) > 0 {
		palette := *xy.PlotColorPalette
		return palette[i%len(palette)]
	}
	if len(s.colors().XY) == 0 {
		return s.base().SeriesColor(i)
	}
	return s.colors().SeriesColor(i)
}

// textOn picks a readable text color for text drawn over bg.
func (s *style) textOn(bg string) string {
	return color.Contrast(bg)
}

// darker outlines a shape filled with c.
func (s *style) darker(c string) string {
	d, err := color.Darken(c)
	if err != nil {
		return c
	}
	return d
}

func (s *style) xy() *chartthemes.XYOverrides {
	if s.o.XYChart == nil {
		return &chartthemes.XYOverrides{}
	}
	return s.o.XYChart
}

// FontFamily is the family c will be measured and drawn in with opts.
func FontFamily(c chartgraph.Chart, opts *Options) chartfonts.FontFamily {
	cfg := c.GetConfig()
	return newStyle(cfg, opts.withDefaults(cfg)).family
}
