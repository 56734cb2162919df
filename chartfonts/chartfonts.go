// chartfonts holds the fonts charts are measured and rasterized with.
package chartfonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

type FontFamily string
type FontStyle string

type Font struct {
	Family FontFamily
	Style  FontStyle
	Size   float64
}

func (f FontFamily) Font(size float64, style FontStyle) Font {
	return Font{
		Family: f,
		Style:  style,
		Size:   size,
	}
}

// Sizeless returns f keyed the way FontFaces is.
func (f Font) Sizeless() Font {
	f.Size = 0
	return f
}

const (
	FONT_SIZE_ITEM   = 14
	FONT_SIZE_M      = 16
	FONT_SIZE_LEGEND = 17
	FONT_SIZE_L      = 20
	FONT_SIZE_PIE    = 25

	FONT_STYLE_REGULAR FontStyle = "regular"
	FONT_STYLE_BOLD    FontStyle = "bold"
	FONT_STYLE_ITALIC  FontStyle = "italic"

	// Go is always available, every other family falls back to it.
	Go FontFamily = "Go"

	// DefaultFamily is what charts ask for when the caller names nothing.
	DefaultFamily FontFamily = "Liberation Sans"
)

var FontStyles = []FontStyle{
	FONT_STYLE_REGULAR,
	FONT_STYLE_BOLD,
	FONT_STYLE_ITALIC,
}

// FontFaces maps sizeless fonts to TTF data.
var FontFaces = map[Font][]byte{
	Go.Font(0, FONT_STYLE_REGULAR): goregular.TTF,
	Go.Font(0, FONT_STYLE_BOLD):    gobold.TTF,
	Go.Font(0, FONT_STYLE_ITALIC):  goitalic.TTF,
}

// CSSFamily is the font-family attribute value for f, with generic fallbacks.
func (f FontFamily) CSSFamily() string {
	if f == "" || f == Go {
		return `"Go", sans-serif`
	}
	return `"` + string(f) + `", sans-serif`
}
