package color

import (
	stdcolor "image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const (
	Black = "#000000"
	White = "#FFFFFF"

	// Special
	Empty = ""
	None  = "none"
)

// Valid reports whether colorString is a CSS color the renderers understand.
func Valid(colorString string) error {
	if colorString == None {
		return nil
	}
	_, err := csscolorparser.Parse(colorString)
	return err
}

// RGBA converts a CSS color to an image color. None and Empty are fully transparent.
func RGBA(colorString string) (stdcolor.NRGBA, error) {
	if colorString == None || colorString == Empty {
		return stdcolor.NRGBA{}, nil
	}
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return stdcolor.NRGBA{}, err
	}
	r, g, b, a := c.RGBA255()
	return stdcolor.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func Darken(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	// decrease luminance by 10%
	return strings.ToUpper(colorful.Hsl(h, s, l-.1).Clamped().Hex()), nil
}

func LuminanceCategory(colorString string) (string, error) {
	l, err := Luminance(colorString)
	if err != nil {
		return "", err
	}

	switch {
	case l >= .88:
		return "bright", nil
	case l >= .55:
		return "normal", nil
	case l >= .30:
		return "dark", nil
	default:
		return "darker", nil
	}
}

func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}

	l := float64(
		float64(0.299)*float64(c.R) +
			float64(0.587)*float64(c.G) +
			float64(0.114)*float64(c.B),
	)
	return l, nil
}

// Contrast returns black or white, whichever reads better on top of bg.
// Unparseable backgrounds get black.
func Contrast(bg string) string {
	cat, err := LuminanceCategory(bg)
	if err != nil {
		return Black
	}
	switch cat {
	case "bright", "normal":
		return Black
	default:
		return White
	}
}
