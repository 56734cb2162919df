// Package charts compiles chart source text into a laid out charttarget.Diagram.
//
//	d, err := charts.Compile(ctx, src, nil)
//	svg, err := chartsvg.Render(d)
package charts

import (
	"context"
	"strings"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/chartlayout"
	"oss.terrastruct.com/charts/chartparser"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/log"
	"oss.terrastruct.com/charts/lib/textmeasure"
)

type CompileOptions struct {
	// Path is only used in error messages.
	Path  string
	UTF16 bool
	// Ruler measures text. When nil a *textmeasure.Ruler with the embedded fonts is used.
	// A *textmeasure.Ruler also gets the chart's font family loaded from the system.
	Ruler  chartlayout.TextMeasurer
	Layout chartlayout.Options
}

// Compile parses input and lays it out. Parse errors are returned as *chartparser.ParseError;
// input that parses but cannot be drawn yields a placeholder diagram, not an error.
func Compile(ctx context.Context, input string, opts *CompileOptions) (*charttarget.Diagram, error) {
	d, _, err := compile(ctx, input, opts)
	return d, err
}

// CompileChart is Compile that also returns the parsed chart.
func CompileChart(ctx context.Context, input string, opts *CompileOptions) (*charttarget.Diagram, chartgraph.Chart, error) {
	return compile(ctx, input, opts)
}

func compile(ctx context.Context, input string, opts *CompileOptions) (_ *charttarget.Diagram, _ chartgraph.Chart, err error) {
	if opts == nil {
		opts = &CompileOptions{}
	}

	c, err := chartparser.Parse(opts.Path, strings.NewReader(input), &chartparser.ParseOptions{
		UTF16Pos: opts.UTF16,
	})
	if err != nil {
		return nil, nil, err
	}
	for _, w := range c.GetConfig().Warnings {
		log.Warn(ctx, w.Message)
	}

	defer xdefer.Errorf(&err, "failed to compile %v", c.Kind())

	ruler := opts.Ruler
	if ruler == nil {
		r, err := textmeasure.NewRuler()
		if err != nil {
			return nil, nil, err
		}
		ruler = r
	}
	if r, ok := ruler.(*textmeasure.Ruler); ok {
		family := chartlayout.FontFamily(c, &opts.Layout)
		if !r.LoadFamily(ctx, family) {
			log.Info(ctx, "font family not found, falling back to the embedded font", slog.F("family", family))
		}
	}

	d, err := chartlayout.Layout(ctx, c, ruler, &opts.Layout)
	if err != nil {
		return nil, nil, err
	}
	return d, c, nil
}
