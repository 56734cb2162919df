package chartparser

import (
	"strings"

	"oss.terrastruct.com/charts/chartast"
	"oss.terrastruct.com/charts/chartgraph"
)

// parseWorkItemMovement reads
//
//	work-item-movement
//	title '<text>'
//	columns [To Do, In Progress, Done]
//	<id> <status>: <value> -> <status>: <value>
func (p *parser) parseWorkItemMovement(header *scanner, cfg chartgraph.Config) chartgraph.Chart {
	wim := &chartgraph.WorkItemMovement{Config: cfg}
	header.expectEOL()

	var columns *chartast.Range
	for {
		s, ok := p.nextStatement()
		if !ok {
			break
		}
		start := s.i
		switch {
		case s.keyword("title"):
			title, ok := s.quoted('\'', "chart title")
			if ok && s.expectEOL() {
				wim.Title = title
			}
		case s.keyword("columns"):
			if columns != nil {
				s.errorf(chartast.KindSyntax, start, "expected a single columns list, first declared at %v", columns)
				continue
			}
			var cols []string
			ok := s.list("columns", func() bool {
				tok, ok := s.token("column name")
				cols = append(cols, tok)
				return ok
			})
			if ok && s.expectEOL() {
				wim.Columns = cols
				columns = &chartast.Range{Path: p.path, Start: s.pos(start), End: s.pos(len(s.s))}
			}
		default:
			if columns == nil {
				s.errorf(chartast.KindMissing, start, "expected columns [...] before the first transition")
				continue
			}
			if t, ok := p.parseTransition(s, wim); ok {
				wim.Transitions = append(wim.Transitions, t)
			}
		}
	}

	if p.err.Empty() {
		if columns == nil {
			p.errorf(chartast.KindMissing, p.eof, p.eof, "expected columns [...] declaring the statuses")
		} else if len(wim.Transitions) == 0 {
			p.errorf(chartast.KindMissing, p.eof, p.eof, "expected at least one transition <id> <status>: <value> -> <status>: <value>")
		}
	}
	return wim
}

func (p *parser) parseTransition(s *scanner, wim *chartgraph.WorkItemMovement) (chartgraph.Transition, bool) {
	var t chartgraph.Transition
	t.ID = s.word()

	from, ok := p.parseStatus(s, wim)
	if !ok {
		return t, false
	}
	t.From = from
	t.FromValue, ok = s.number("from value")
	if !ok {
		return t, false
	}
	if !s.consume("->") {
		s.errorf(chartast.KindSyntax, s.i, `expected "->" between the from and to statuses`)
		return t, false
	}
	to, ok := p.parseStatus(s, wim)
	if !ok {
		return t, false
	}
	t.To = to
	t.ToValue, ok = s.number("to value")
	if !ok || !s.expectEOL() {
		return t, false
	}
	return t, true
}

// parseStatus reads "<status>:" and returns the declared spelling of the column it names.
// Statuses may contain spaces; the colon ends them.
func (p *parser) parseStatus(s *scanner, wim *chartgraph.WorkItemMovement) (string, bool) {
	s.skipSpace()
	start := s.i
	j := strings.IndexByte(s.s[s.i:], ':')
	if j == -1 {
		s.i = len(s.s)
		s.errorf(chartast.KindSyntax, start, `expected "<status>:"`)
		return "", false
	}
	status := strings.TrimSpace(s.s[s.i : s.i+j])
	if status == "" {
		s.errorf(chartast.KindSyntax, start, "expected status name before \":\"")
		return "", false
	}
	s.i += j
	i := wim.ColumnIndex(status)
	if i == -1 {
		s.errorf(chartast.KindUnknownColumn, start, "expected one of the declared columns [%s], got %q", strings.Join(wim.Columns, ", "), status)
		return "", false
	}
	s.i++
	return wim.Columns[i], true
}
