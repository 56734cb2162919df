// chartthemes defines the fixed set of themes charts can be drawn with and the theme variables
// a diagram may override.
package chartthemes

type Theme struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Colors Palette `json:"colors"`
}

type Palette struct {
	Background string `json:"background"`
	// Text is used for titles, labels and legends.
	Text string `json:"text"`
	// Line is used for axes, arrows and slice borders.
	Line string `json:"line"`
	// Guide is used for low emphasis lines like work item columns.
	Guide string `json:"guide"`

	Primary     string `json:"primary"`
	PrimaryText string `json:"primaryText"`

	Pie []string `json:"pie"`
	XY  []string `json:"xy"`
}

// PieColor returns the color of the i-th slice, wrapping around the palette.
func (p Palette) PieColor(i int) string {
	if len(p.Pie) == 0 {
		return p.Primary
	}
	return p.Pie[i%len(p.Pie)]
}

func (p Palette) SeriesColor(i int) string {
	if len(p.XY) == 0 {
		return p.Primary
	}
	return p.XY[i%len(p.XY)]
}
