package chartparser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
	tunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/charts/chartast"
	"oss.terrastruct.com/charts/chartgraph"
)

type ParseOptions struct {
	// UTF16Pos records columns in UTF-16 code units, for browser and LSP clients.
	// It is switched on automatically for UTF-16LE input.
	UTF16Pos bool

	ParseError *ParseError
}

// Parse reads one diagram from r and returns its typed model.
//
// Every line is checked even after an error so the returned *ParseError lists all
// problems, each one positioned. On error no chart is returned.
func Parse(path string, r io.Reader, opts *ParseOptions) (_ chartgraph.Chart, err error) {
	if opts == nil {
		opts = &ParseOptions{}
	}

	p := &parser{
		path:     path,
		utf16Pos: opts.UTF16Pos,
		err:      opts.ParseError,
	}
	if p.err == nil {
		p.err = &ParseError{}
	}

	src, err := p.readAll(r)
	if err != nil {
		return nil, err
	}
	p.splitLines(src)

	c := p.parseChart()
	if !p.err.Empty() {
		// Whole body checks report after the line checks.
		slices.SortStableFunc(p.err.Errors, func(a, b chartast.Error) bool {
			return a.Range.Start.Before(b.Range.Start)
		})
		return nil, p.err
	}
	return c, nil
}

// ParseString is Parse for in memory input with no path.
func ParseString(src string) (chartgraph.Chart, error) {
	return Parse("", strings.NewReader(src), nil)
}

type ParseError struct {
	Errors []chartast.Error `json:"errs"`
}

func (pe *ParseError) Empty() bool {
	if pe == nil {
		return true
	}
	return len(pe.Errors) == 0
}

func (pe *ParseError) Error() string {
	var sb strings.Builder
	for i, err := range pe.Errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Has reports whether any collected error is of kind k.
func (pe *ParseError) Has(k chartast.ErrorKind) bool {
	if pe == nil {
		return false
	}
	for _, err := range pe.Errors {
		if err.Kind == k {
			return true
		}
	}
	return false
}

type line struct {
	text  string
	start chartast.Position
}

type parser struct {
	path     string
	utf16Pos bool

	lines []line
	// next is the index of the next unread line.
	next int
	eof  chartast.Position

	err *ParseError
}

func (p *parser) readAll(r io.Reader) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to read %s", p.pathOrStdin())

	br := bufio.NewReader(r)
	bom, err := br.Peek(2)
	if err == nil {
		// 0xFFFE is invalid UTF-8 so this is safe.
		if bom[0] == 0xFF && bom[1] == 0xFE {
			p.utf16Pos = true

			buf := make([]byte, br.Buffered())
			io.ReadFull(br, buf)

			mr := io.MultiReader(bytes.NewBuffer(buf), r)
			tr := transform.NewReader(mr, tunicode.UTF16(tunicode.LittleEndian, tunicode.UseBOM).NewDecoder())
			br.Reset(tr)
		}
	}

	b, err := io.ReadAll(br)
	if err != nil {
		return "", err
	}
	b = bytes.TrimPrefix(b, []byte("\xEF\xBB\xBF"))
	return string(b), nil
}

func (p *parser) pathOrStdin() string {
	if p.path == "" {
		return "input"
	}
	return p.path
}

func (p *parser) splitLines(src string) {
	pos := chartast.Position{}
	for _, s := range strings.Split(src, "\n") {
		p.lines = append(p.lines, line{
			text:  strings.TrimSuffix(s, "\r"),
			start: pos,
		})
		pos = pos.AdvanceString(s, p.utf16Pos).Advance('\n', p.utf16Pos)
	}
	last := p.lines[len(p.lines)-1]
	p.eof = last.start.AdvanceString(last.text, p.utf16Pos)
}

// nextStatement returns a scanner over the next line that is neither blank nor a %% comment.
func (p *parser) nextStatement() (*scanner, bool) {
	for p.next < len(p.lines) {
		l := p.lines[p.next]
		p.next++
		trimmed := strings.TrimSpace(l.text)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		s := &scanner{p: p, s: l.text, start: l.start}
		s.skipSpace()
		return s, true
	}
	return nil, false
}

func (p *parser) errorf(kind chartast.ErrorKind, start, end chartast.Position, f string, v ...interface{}) {
	r := chartast.Range{
		Path:  p.path,
		Start: start,
		End:   end,
	}
	f = "%v: " + f
	v = append([]interface{}{r}, v...)
	p.err.Errors = append(p.err.Errors, chartast.Error{
		Range:   r,
		Kind:    kind,
		Message: fmt.Sprintf(f, v...),
	})
}

func (p *parser) parseChart() chartgraph.Chart {
	cfg := p.parseDirective()

	s, ok := p.nextStatement()
	if !ok {
		p.errorf(chartast.KindUnknownChartType, p.eof, p.eof, "expected chart type (pie, xychart-beta or work-item-movement), got empty input")
		return nil
	}

	start := s.i
	kw := s.word()
	switch kw {
	case string(chartgraph.KindPie):
		return p.parsePie(s, cfg)
	case string(chartgraph.KindXY):
		return p.parseXY(s, cfg)
	case string(chartgraph.KindWorkItemMovement):
		return p.parseWorkItemMovement(s, cfg)
	default:
		s.errorf(chartast.KindUnknownChartType, start, "expected chart type (pie, xychart-beta or work-item-movement), got %q", kw)
		return nil
	}
}

// scanner reads one line. Backtracking is done by saving and restoring i.
type scanner struct {
	p     *parser
	s     string
	i     int
	start chartast.Position
}

func (s *scanner) pos(i int) chartast.Position {
	return s.start.AdvanceString(s.s[:i], s.p.utf16Pos)
}

// errorf reports an error spanning from byte offset from to the current offset.
func (s *scanner) errorf(kind chartast.ErrorKind, from int, f string, v ...interface{}) {
	to := s.i
	if to < from {
		to = from
	}
	s.p.errorf(kind, s.pos(from), s.pos(to), f, v...)
}

func (s *scanner) skipSpace() {
	for s.i < len(s.s) && (s.s[s.i] == ' ' || s.s[s.i] == '\t') {
		s.i++
	}
}

func (s *scanner) eol() bool {
	s.skipSpace()
	return s.i >= len(s.s)
}

func (s *scanner) peekByte() byte {
	if s.i >= len(s.s) {
		return 0
	}
	return s.s[s.i]
}

// word reads a run of non space characters.
func (s *scanner) word() string {
	start := s.i
	for s.i < len(s.s) && !isSpace(s.s[s.i]) {
		s.i++
	}
	return s.s[start:s.i]
}

// keyword consumes kw when it is followed by a space, an opening delimiter or the end of
// the line.
func (s *scanner) keyword(kw string) bool {
	if !strings.HasPrefix(s.s[s.i:], kw) {
		return false
	}
	j := s.i + len(kw)
	if j < len(s.s) {
		switch c := s.s[j]; {
		case isSpace(c), c == '[', c == '"', c == '\'':
		default:
			return false
		}
	}
	s.i = j
	s.skipSpace()
	return true
}

func (s *scanner) consume(lit string) bool {
	s.skipSpace()
	if strings.HasPrefix(s.s[s.i:], lit) {
		s.i += len(lit)
		return true
	}
	return false
}

func (s *scanner) rest() string {
	r := strings.TrimSpace(s.s[s.i:])
	s.i = len(s.s)
	return r
}

// expectEOL reports trailing garbage.
func (s *scanner) expectEOL() bool {
	if s.eol() {
		return true
	}
	start := s.i
	s.i = len(s.s)
	s.errorf(chartast.KindSyntax, start, "expected end of line, got %q", strings.TrimSpace(s.s[start:]))
	return false
}

// quoted reads a string delimited by q. Backslash escapes the next character when it is
// q or a backslash.
func (s *scanner) quoted(q byte, what string) (string, bool) {
	s.skipSpace()
	start := s.i
	if s.peekByte() != q {
		s.errorf(chartast.KindSyntax, start, "expected %s in %c quotes", what, q)
		return "", false
	}
	s.i++

	var sb strings.Builder
	for s.i < len(s.s) {
		c := s.s[s.i]
		switch {
		case c == '\\' && s.i+1 < len(s.s) && (s.s[s.i+1] == q || s.s[s.i+1] == '\\'):
			sb.WriteByte(s.s[s.i+1])
			s.i += 2
		case c == q:
			s.i++
			return sb.String(), true
		default:
			sb.WriteByte(c)
			s.i++
		}
	}
	s.p.errorf(chartast.KindUnterminatedString, s.pos(start), s.pos(s.i), "unterminated quoted string: expected closing %c", q)
	return "", false
}

// number reads a numeric literal: an optional minus, digits, and an optional fraction.
// Anything that looks like a number but is not one of those, exponents and NaN/Inf
// included, is reported.
func (s *scanner) number(what string) (float64, bool) {
	s.skipSpace()
	start := s.i
	if s.i < len(s.s) && s.s[s.i] == '-' {
		s.i++
	}
	for s.i < len(s.s) && isNumberByte(s.s[s.i]) {
		s.i++
	}
	lit := s.s[start:s.i]
	if lit == "" {
		s.errorf(chartast.KindNumber, start, "expected %s", what)
		return 0, false
	}
	f, ok := parseNumber(lit)
	if !ok {
		s.errorf(chartast.KindNumber, start, "expected %s, got %q", what, lit)
		return 0, false
	}
	return f, true
}

// list reads [item, item, ...], calling item with the scanner positioned on each entry.
func (s *scanner) list(what string, item func() bool) bool {
	s.skipSpace()
	start := s.i
	if s.peekByte() != '[' {
		s.errorf(chartast.KindSyntax, start, "expected [ to open %s", what)
		return false
	}
	s.i++
	if s.consume("]") {
		s.errorf(chartast.KindMissing, start, "expected at least one entry in %s", what)
		return false
	}
	for {
		if !item() {
			return false
		}
		s.skipSpace()
		switch s.peekByte() {
		case ',':
			s.i++
		case ']':
			s.i++
			return true
		default:
			at := s.i
			if s.i >= len(s.s) {
				s.errorf(chartast.KindSyntax, at, "expected ] to close %s", what)
			} else {
				s.i++
				s.errorf(chartast.KindSyntax, at, "expected , or ] in %s, got %q", what, s.s[at])
			}
			return false
		}
	}
}

// token reads a list entry: a double quoted string or bare text up to the next , or ].
func (s *scanner) token(what string) (string, bool) {
	s.skipSpace()
	if s.peekByte() == '"' {
		return s.quoted('"', what)
	}
	start := s.i
	for s.i < len(s.s) && s.s[s.i] != ',' && s.s[s.i] != ']' {
		s.i++
	}
	tok := strings.TrimSpace(s.s[start:s.i])
	if tok == "" {
		s.errorf(chartast.KindSyntax, start, "expected %s", what)
		return "", false
	}
	return tok, true
}

func isSpace(c byte) bool {
	return c < 0x80 && unicode.IsSpace(rune(c))
}

func isNumberByte(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
	case c == '.', c == '_', c == '+':
	default:
		return false
	}
	return true
}
