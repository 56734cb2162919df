// textmeasure measures text with real font metrics.
//
// Glyph metrics come from truetype faces. Grapheme clusters the faces cannot draw, such as wide
// CJK characters and emoji, are approximated from their display width.
package textmeasure

import (
	"math"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"

	"oss.terrastruct.com/charts/chartfonts"
)

const TAB_SIZE = 4
const SIZELESS_FONT_SIZE = 0

// Runes encompasses ASCII, Latin-1, and geometric shapes like black square
var Runes []rune

func init() {
	// ASCII range (U+0000 to U+007F)
	for r := rune(0x0000); r <= rune(0x007F); r++ {
		Runes = append(Runes, r)
	}

	// Latin-1 Supplement (U+0080 to U+00FF)
	for r := rune(0x0080); r <= rune(0x00FF); r++ {
		Runes = append(Runes, r)
	}

	// Geometric Shapes (U+25A0 to U+25FF)
	for r := rune(0x25A0); r <= rune(0x25FF); r++ {
		Runes = append(Runes, r)
	}
}

// Ruler measures text in any loaded font family. Families that were never loaded, or failed to
// load, are measured with chartfonts.Go.
//
// A Ruler is safe for concurrent use. Results for a given font and string never change during
// the life of a Ruler.
type Ruler struct {
	// LineHeightFactor scales the distance between two lines of text.
	LineHeightFactor float64

	mu      sync.Mutex
	ttfs    map[chartfonts.Font]*truetype.Font
	atlases map[chartfonts.Font]*atlas
}

// NewRuler returns a Ruler with the embedded Go family loaded.
func NewRuler() (*Ruler, error) {
	r := &Ruler{
		LineHeightFactor: 1.,
		ttfs:             make(map[chartfonts.Font]*truetype.Font),
		atlases:          make(map[chartfonts.Font]*atlas),
	}

	for font, face := range chartfonts.FontFaces {
		ttf, err := truetype.Parse(face)
		if err != nil {
			return nil, err
		}
		r.ttfs[font] = ttf
	}

	return r, nil
}

func (r *Ruler) HasFontFamilyLoaded(fontFamily chartfonts.FontFamily) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ttfs[fontFamily.Font(SIZELESS_FONT_SIZE, chartfonts.FONT_STYLE_REGULAR)]
	return ok
}

// resolve maps font to the closest loaded one: the same family in regular style, then Go in
// the same style.
func (r *Ruler) resolve(font chartfonts.Font) chartfonts.Font {
	sizeless := font.Sizeless()
	if _, ok := r.ttfs[sizeless]; ok {
		return font
	}
	regular := sizeless
	regular.Style = chartfonts.FONT_STYLE_REGULAR
	if _, ok := r.ttfs[regular]; ok {
		return regular.Family.Font(font.Size, regular.Style)
	}
	style := font.Style
	if _, ok := r.ttfs[chartfonts.Go.Font(SIZELESS_FONT_SIZE, style)]; !ok {
		style = chartfonts.FONT_STYLE_REGULAR
	}
	return chartfonts.Go.Font(font.Size, style)
}

func (r *Ruler) atlas(font chartfonts.Font) *atlas {
	font = r.resolve(font)
	if a, ok := r.atlases[font]; ok {
		return a
	}
	face := truetype.NewFace(r.ttfs[font.Sizeless()], &truetype.Options{
		Size: font.Size,
	})
	a := newAtlas(face, Runes)
	r.atlases[font] = a
	return a
}

// Face returns a font.Face for drawing with font, after the same fallback Measure applies.
func (r *Ruler) Face(font chartfonts.Font) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()
	font = r.resolve(font)
	return truetype.NewFace(r.ttfs[font.Sizeless()], &truetype.Options{
		Size: font.Size,
	})
}

// Measure returns the advance width of the longest line of s and the height of all its lines.
func (r *Ruler) Measure(font chartfonts.Font, s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.atlas(font)
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		width = math.Max(width, r.lineWidth(a, font, line))
	}
	height = a.ascent + a.descent + float64(len(lines)-1)*r.LineHeightFactor*a.lineHeight
	return width, height
}

func (r *Ruler) lineWidth(a *atlas, font chartfonts.Font, line string) float64 {
	line = strings.TrimSuffix(line, "\r")
	w := 0.
	prevR := rune(-1)
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			tab := a.glyph(' ').advance * TAB_SIZE
			w += tab - math.Mod(w, tab)
			prevR = -1
			continue
		}
		if gr.Width() > 1 || !a.contains(runes[0]) {
			// The face has nothing to draw this cluster with, so approximate it with digit
			// widths the way a terminal would lay it out.
			cells := gr.Width()
			if cells < 1 {
				cells = 1
			}
			w += a.glyph('0').advance * float64(cells)
			prevR = -1
			continue
		}
		for _, rn := range runes {
			if !a.contains(rn) {
				// Combining marks and the like take no space.
				continue
			}
			w += a.advance(prevR, rn)
			prevR = rn
		}
	}
	return w
}
