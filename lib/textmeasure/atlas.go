package textmeasure

import (
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// glyph describes one glyph in an atlas.
type glyph struct {
	advance float64
	// ok is false when the face has no glyph for the rune.
	ok bool
}

// atlas caches the metrics of one face at one size.
//
// Do not destroy or close the font.Face after creating the atlas. atlas still uses it.
type atlas struct {
	face       font.Face
	mapping    map[rune]glyph
	ascent     float64
	descent    float64
	lineHeight float64
}

// newAtlas creates an atlas with the given runes (plus unicode.ReplacementChar) measured up
// front. Other runes are measured on first use.
func newAtlas(face font.Face, runeSets ...[]rune) *atlas {
	a := &atlas{
		face:       face,
		mapping:    make(map[rune]glyph),
		ascent:     i2f(face.Metrics().Ascent),
		descent:    i2f(face.Metrics().Descent),
		lineHeight: i2f(face.Metrics().Height),
	}
	a.glyph(unicode.ReplacementChar)
	for _, set := range runeSets {
		for _, r := range set {
			a.glyph(r)
		}
	}
	return a
}

func (a *atlas) glyph(r rune) glyph {
	if g, ok := a.mapping[r]; ok {
		return g
	}
	advance, ok := a.face.GlyphAdvance(r)
	g := glyph{
		advance: i2f(advance),
		ok:      ok,
	}
	a.mapping[r] = g
	return g
}

func (a *atlas) contains(r rune) bool {
	return a.glyph(r).ok
}

// kern returns the kerning distance between runes r0 and r1. Positive distance means that the
// glyphs should be further apart.
func (a *atlas) kern(r0, r1 rune) float64 {
	return i2f(a.face.Kern(r0, r1))
}

// advance returns how far the dot moves for r after prevR, substituting the replacement
// character for runes the face lacks.
func (a *atlas) advance(prevR, r rune) float64 {
	if !a.contains(r) {
		r = unicode.ReplacementChar
	}
	adv := a.glyph(r).advance
	if prevR >= 0 {
		if !a.contains(prevR) {
			prevR = unicode.ReplacementChar
		}
		adv += a.kern(prevR, r)
	}
	return adv
}

func i2f(i fixed.Int26_6) float64 {
	return float64(i) / (1 << 6)
}
