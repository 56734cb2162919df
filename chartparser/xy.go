package chartparser

import (
	"oss.terrastruct.com/charts/chartast"
	"oss.terrastruct.com/charts/chartgraph"
)

type xyState struct {
	xy *chartgraph.XYChart

	xAxis  *chartast.Range
	yAxis  *chartast.Range
	legend *chartast.Range
	// series holds the range of each series statement, index aligned with xy.Series.
	series []chartast.Range
}

// parseXY reads an xychart-beta body. Statements may come in any order:
//
//	title "<text>"
//	x-axis [a, "b c", d]
//	legend [s1, s2]
//	y-axis "<label>" <min> --> <max>
//	bar [1, 2, 3]
//	line [1, 2, 3]
func (p *parser) parseXY(header *scanner, cfg chartgraph.Config) chartgraph.Chart {
	st := &xyState{
		xy: &chartgraph.XYChart{Config: cfg},
	}
	header.expectEOL()

	for {
		s, ok := p.nextStatement()
		if !ok {
			break
		}
		p.parseXYStatement(s, st)
	}

	p.checkXY(st)
	return st.xy
}

func (p *parser) parseXYStatement(s *scanner, st *xyState) {
	start := s.i
	xy := st.xy
	lineRange := func() *chartast.Range {
		return &chartast.Range{Path: p.path, Start: s.pos(start), End: s.pos(len(s.s))}
	}

	switch {
	case s.keyword("title"):
		title, ok := s.quoted('"', "chart title")
		if ok && s.expectEOL() {
			xy.Title = title
		}
	case s.keyword("x-axis"):
		if st.xAxis != nil {
			s.errorf(chartast.KindSyntax, start, "expected a single x-axis, first declared at %v", st.xAxis)
			return
		}
		var labels []string
		ok := s.list("x-axis categories", func() bool {
			tok, ok := s.token("category label")
			labels = append(labels, tok)
			return ok
		})
		if ok && s.expectEOL() {
			xy.XAxis.Labels = labels
			st.xAxis = lineRange()
		}
	case s.keyword("legend"):
		if st.legend != nil {
			s.errorf(chartast.KindSyntax, start, "expected a single legend, first declared at %v", st.legend)
			return
		}
		var labels []string
		ok := s.list("legend", func() bool {
			tok, ok := s.token("legend label")
			labels = append(labels, tok)
			return ok
		})
		if ok && s.expectEOL() {
			xy.Legend = labels
			st.legend = lineRange()
		}
	case s.keyword("y-axis"):
		if st.yAxis != nil {
			s.errorf(chartast.KindSyntax, start, "expected a single y-axis, first declared at %v", st.yAxis)
			return
		}
		label, ok := s.quoted('"', "y-axis label")
		if !ok {
			return
		}
		min, ok := s.number("y-axis minimum")
		if !ok {
			return
		}
		if !s.consume("-->") {
			s.errorf(chartast.KindSyntax, s.i, `expected "-->" between y-axis minimum and maximum`)
			return
		}
		max, ok := s.number("y-axis maximum")
		if !ok || !s.expectEOL() {
			return
		}
		xy.YAxis = chartgraph.YAxis{Label: label, Min: min, Max: max}
		st.yAxis = lineRange()
	case s.keyword("bar"):
		p.parseSeries(s, st, chartgraph.SeriesBar, lineRange)
	case s.keyword("line"):
		p.parseSeries(s, st, chartgraph.SeriesLine, lineRange)
	default:
		w := s.word()
		s.errorf(chartast.KindSyntax, start, "expected title, x-axis, y-axis, legend, bar or line, got %q", w)
	}
}

func (p *parser) parseSeries(s *scanner, st *xyState, typ chartgraph.SeriesType, lineRange func() *chartast.Range) {
	var values []float64
	ok := s.list(string(typ)+" values", func() bool {
		v, ok := s.number(string(typ) + " value")
		values = append(values, v)
		return ok
	})
	if !ok || !s.expectEOL() {
		return
	}
	st.xy.Series = append(st.xy.Series, chartgraph.Series{Type: typ, Values: values})
	st.series = append(st.series, *lineRange())
}

// checkXY runs the checks that need the whole body.
func (p *parser) checkXY(st *xyState) {
	if !p.err.Empty() {
		// Missing statements are most likely a consequence of an earlier error.
		return
	}
	xy := st.xy
	if st.xAxis == nil {
		p.errorf(chartast.KindMissing, p.eof, p.eof, "expected x-axis [...] declaring the categories")
	}
	if st.yAxis == nil {
		p.errorf(chartast.KindMissing, p.eof, p.eof, `expected y-axis "<label>" <min> --> <max>`)
	}
	if len(xy.Series) == 0 {
		p.errorf(chartast.KindMissing, p.eof, p.eof, "expected at least one bar [...] or line [...] series")
	}
	if st.xAxis != nil {
		for i, s := range xy.Series {
			if len(s.Values) != len(xy.XAxis.Labels) {
				r := st.series[i]
				p.errorf(chartast.KindLengthMismatch, r.Start, r.End, "expected %d %s values to match the x-axis, got %d", len(xy.XAxis.Labels), s.Type, len(s.Values))
			}
		}
	}
	if st.legend != nil && len(xy.Series) > 0 && len(xy.Legend) > len(xy.Series) {
		p.errorf(chartast.KindLengthMismatch, st.legend.Start, st.legend.End, "expected at most %d legend entries (one per series), got %d", len(xy.Series), len(xy.Legend))
	}
}
