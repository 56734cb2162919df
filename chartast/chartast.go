// chartast holds the source positions shared by the chart parser and the errors it reports.
//
// The chart languages are line oriented so there is no tree here, only the
// Position/Range vocabulary used to point at a construct in the input.
package chartast

import (
	"encoding"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Range represents a range between Start and End in Path.
//
// It has a compact text encoding of the form path,start-end so it stays short in JSON.
type Range struct {
	Path  string
	Start Position
	End   Position
}

var _ fmt.Stringer = Range{}
var _ encoding.TextMarshaler = Range{}

// String returns path:line:column of the start of the range. The path is omitted when empty.
func (r Range) String() string {
	var s strings.Builder
	if r.Path != "" {
		s.WriteString(r.Path)
		s.WriteByte(':')
	}
	s.WriteString(r.Start.String())
	return s.String()
}

func (r Range) MarshalText() ([]byte, error) {
	start, _ := r.Start.MarshalText()
	end, _ := r.End.MarshalText()
	return []byte(fmt.Sprintf("%s,%s-%s", r.Path, start, end)), nil
}

// Position is a zero indexed line:column plus byte offset into a source file.
//
// Column and Byte count UTF-8 bytes unless the position was advanced byUTF16, in which case
// they count UTF-16 code units.
type Position struct {
	Line   int
	Column int
	Byte   int
}

var _ fmt.Stringer = Position{}
var _ encoding.TextMarshaler = Position{}

// String returns the one indexed line:column used in error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d:%d:%d", p.Line, p.Column, p.Byte)), nil
}

func runeSize(r rune, byUTF16 bool) int {
	if !byUTF16 {
		return utf8.RuneLen(r)
	}
	r1, r2 := utf16.EncodeRune(r)
	if r1 != '\uFFFD' && r2 != '\uFFFD' {
		return 2
	}
	return 1
}

// Advance returns p moved past r.
func (p Position) Advance(r rune, byUTF16 bool) Position {
	size := runeSize(r, byUTF16)
	if r == '\n' {
		p.Line++
		p.Column = 0
	} else {
		p.Column += size
	}
	p.Byte += size
	return p
}

func (p Position) AdvanceString(s string, byUTF16 bool) Position {
	for _, r := range s {
		p = p.Advance(r, byUTF16)
	}
	return p
}

func (p Position) Before(p2 Position) bool {
	if p.Byte != p2.Byte {
		return p.Byte < p2.Byte
	}
	if p.Line != p2.Line {
		return p.Line < p2.Line
	}
	return p.Column < p2.Column
}
