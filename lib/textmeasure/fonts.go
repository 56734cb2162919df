package textmeasure

import (
	"context"
	"os"
	"strings"

	"cdr.dev/slog"
	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/lib/log"
)

// LoadFamily looks for the regular, bold and italic files of family among the system fonts.
// Missing styles fall back to the family's regular style. When the regular style itself cannot
// be found the family keeps being measured with chartfonts.Go; that is logged at debug level
// and reported as false, never as an error.
func (r *Ruler) LoadFamily(ctx context.Context, family chartfonts.FontFamily) bool {
	if family == "" || r.HasFontFamilyLoaded(family) {
		return true
	}

	loaded := make(map[chartfonts.Font]*truetype.Font)
	for _, style := range chartfonts.FontStyles {
		ttf, err := findFont(family, style)
		if err != nil {
			log.Debug(ctx, "font style unavailable", slog.F("family", family), slog.F("style", style), slog.Error(err))
			continue
		}
		loaded[family.Font(SIZELESS_FONT_SIZE, style)] = ttf
	}
	if _, ok := loaded[family.Font(SIZELESS_FONT_SIZE, chartfonts.FONT_STYLE_REGULAR)]; !ok {
		log.Debug(ctx, "font family unavailable, measuring with the default family", slog.F("family", family), slog.F("default", chartfonts.Go))
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for font, ttf := range loaded {
		r.ttfs[font] = ttf
	}
	return true
}

func findFont(family chartfonts.FontFamily, style chartfonts.FontStyle) (_ *truetype.Font, err error) {
	defer xdefer.Errorf(&err, "failed to load %s %s", family, style)

	var path string
	for _, name := range fontFileNames(family, style) {
		path, err = findfont.Find(name)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(b)
}

// fontFileNames lists the file names a family's style is commonly installed under, most
// specific first.
func fontFileNames(family chartfonts.FontFamily, style chartfonts.FontStyle) []string {
	base := strings.ReplaceAll(string(family), " ", "")
	switch style {
	case chartfonts.FONT_STYLE_BOLD:
		return []string{base + "-Bold.ttf", base + "Bold.ttf", base + "bd.ttf"}
	case chartfonts.FONT_STYLE_ITALIC:
		return []string{base + "-Italic.ttf", base + "Italic.ttf", base + "i.ttf"}
	default:
		return []string{base + "-Regular.ttf", base + "Regular.ttf", base + ".ttf"}
	}
}
