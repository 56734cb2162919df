package chartparser

import (
	"oss.terrastruct.com/charts/chartast"
	"oss.terrastruct.com/charts/chartgraph"
)

// parsePie reads
//
//	pie [showData] [title <rest of line>]
//	"<label>": <number>
//	...
func (p *parser) parsePie(header *scanner, cfg chartgraph.Config) chartgraph.Chart {
	pc := &chartgraph.PieChart{Config: cfg}

	header.skipSpace()
	if header.keyword("showData") {
		pc.ShowData = true
	}
	if header.keyword("title") {
		pc.Title = header.rest()
	}
	header.expectEOL()

	for {
		s, ok := p.nextStatement()
		if !ok {
			break
		}
		switch {
		case len(pc.Slices) == 0 && pc.Title == "" && s.keyword("title"):
			pc.Title = s.rest()
			continue
		case s.keyword("showData"):
			pc.ShowData = true
			s.expectEOL()
			continue
		}
		if slice, ok := p.parsePieSlice(s); ok {
			pc.Slices = append(pc.Slices, slice)
		}
	}

	if len(pc.Slices) == 0 && p.err.Empty() {
		p.errorf(chartast.KindMissing, p.eof, p.eof, `expected at least one "label": value entry`)
	}
	return pc
}

func (p *parser) parsePieSlice(s *scanner) (chartgraph.PieSlice, bool) {
	start := s.i
	label, ok := s.quoted('"', "slice label")
	if !ok {
		return chartgraph.PieSlice{}, false
	}
	if !s.consume(":") {
		s.errorf(chartast.KindSyntax, s.i, `expected ":" after slice label`)
		return chartgraph.PieSlice{}, false
	}
	s.skipSpace()
	valueStart := s.i
	v, ok := s.number("slice value")
	if !ok {
		return chartgraph.PieSlice{}, false
	}
	if v < 0 {
		s.errorf(chartast.KindNumber, valueStart, "expected non-negative slice value, got %v", v)
		return chartgraph.PieSlice{}, false
	}
	if !s.expectEOL() {
		return chartgraph.PieSlice{}, false
	}
	return chartgraph.PieSlice{
		Label: label,
		Value: v,
		Range: chartast.Range{
			Path:  p.path,
			Start: s.pos(start),
			End:   s.pos(s.i),
		},
	}, true
}
