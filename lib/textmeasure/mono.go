package textmeasure

import (
	"strings"
	"unicode/utf8"

	"oss.terrastruct.com/charts/chartfonts"
)

// MonoRuler is a deterministic fake: every rune is 0.6 of the font size wide and every line
// is 1.2 of the font size tall. Tests use it so geometry does not depend on font files.
type MonoRuler struct{}

func NewMonoRuler() MonoRuler {
	return MonoRuler{}
}

func (MonoRuler) Measure(font chartfonts.Font, s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	lines := strings.Split(s, "\n")
	maxRunes := 0
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n > maxRunes {
			maxRunes = n
		}
	}
	return float64(maxRunes) * 0.6 * font.Size, float64(len(lines)) * 1.2 * font.Size
}
