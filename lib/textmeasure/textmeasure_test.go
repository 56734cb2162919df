package textmeasure_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/lib/log"
	"oss.terrastruct.com/charts/lib/textmeasure"
)

var txts = []string{
	"Key elements in Product X",
	"Sales Revenue (in $)",
	"The quick brown fox jumps over the lazy dog",
	"Calcium, Potassium, Magnesium and Iron",
	"To Do -> In Progress -> Done",
}

var regular = chartfonts.Go.Font(chartfonts.FONT_SIZE_M, chartfonts.FONT_STYLE_REGULAR)

func TestTextMeasure(t *testing.T) {
	t.Parallel()

	ruler, err := textmeasure.NewRuler()
	require.NoError(t, err)

	// Each extra char increases width but not height.
	for _, txt := range txts {
		txt = strings.ReplaceAll(txt, " ", "")
		for i := 1; i < len(txt)-1; i++ {
			w1, h1 := ruler.Measure(regular, txt[:i])
			w2, h2 := ruler.Measure(regular, txt[:i+1])
			assert.Equal(t, h1, h2)
			assert.Less(t, w1, w2, fmt.Sprintf(`"%s" vs "%s"`, txt[:i], txt[:i+1]))
		}
	}

	// Each extra newline increases height and never increases width.
	for _, txt := range txts {
		spaces := strings.Count(txt, " ")
		for i := 0; i < spaces-1; i++ {
			txt1 := strings.Replace(txt, " ", "\n", i)
			txt2 := strings.Replace(txt, " ", "\n", i+1)

			w1, h1 := ruler.Measure(regular, txt1)
			w2, h2 := ruler.Measure(regular, txt2)

			assert.Less(t, h1, h2)
			assert.LessOrEqual(t, w2, w1)
		}
	}
}

func TestFontSizeAndStyle(t *testing.T) {
	t.Parallel()

	ruler, err := textmeasure.NewRuler()
	require.NoError(t, err)

	w1, h1 := ruler.Measure(chartfonts.Go.Font(chartfonts.FONT_SIZE_M, chartfonts.FONT_STYLE_REGULAR), "Revenue")
	w2, h2 := ruler.Measure(chartfonts.Go.Font(chartfonts.FONT_SIZE_L, chartfonts.FONT_STYLE_REGULAR), "Revenue")
	assert.Less(t, w1, w2)
	assert.Less(t, h1, h2)

	wb, _ := ruler.Measure(chartfonts.Go.Font(chartfonts.FONT_SIZE_M, chartfonts.FONT_STYLE_BOLD), "Revenue")
	assert.Less(t, w1, wb)
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	ruler, err := textmeasure.NewRuler()
	require.NoError(t, err)

	w1, h1 := ruler.Measure(regular, "Potassium")
	w2, h2 := ruler.Measure(regular, "Potassium")
	assert.Equal(t, w1, w2)
	assert.Equal(t, h1, h2)

	w0, h0 := ruler.Measure(regular, "")
	assert.Equal(t, 0., w0)
	assert.Equal(t, 0., h0)
}

func TestUnknownFamilyFallsBack(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	ruler, err := textmeasure.NewRuler()
	require.NoError(t, err)

	missing := chartfonts.FontFamily("No Such Family Anywhere")
	assert.False(t, ruler.LoadFamily(ctx, missing))
	assert.False(t, ruler.HasFontFamilyLoaded(missing))

	w1, h1 := ruler.Measure(missing.Font(chartfonts.FONT_SIZE_M, chartfonts.FONT_STYLE_BOLD), "Iron")
	w2, h2 := ruler.Measure(chartfonts.Go.Font(chartfonts.FONT_SIZE_M, chartfonts.FONT_STYLE_BOLD), "Iron")
	assert.Equal(t, w2, w1)
	assert.Equal(t, h2, h1)

	assert.NotNil(t, ruler.Face(missing.Font(12, chartfonts.FONT_STYLE_ITALIC)))
}

func TestWideGraphemes(t *testing.T) {
	t.Parallel()

	ruler, err := textmeasure.NewRuler()
	require.NoError(t, err)

	w1, _ := ruler.Measure(regular, "中")
	w2, _ := ruler.Measure(regular, "中文")
	assert.Greater(t, w1, 0.)
	assert.InDelta(t, 2*w1, w2, 1e-9)
}

func TestMonoRuler(t *testing.T) {
	t.Parallel()

	r := textmeasure.NewMonoRuler()
	w, h := r.Measure(chartfonts.Go.Font(10, chartfonts.FONT_STYLE_REGULAR), "abcd\nef")
	assert.InDelta(t, 24, w, 1e-9)
	assert.InDelta(t, 24, h, 1e-9)

	w, h = r.Measure(chartfonts.Go.Font(10, chartfonts.FONT_STYLE_REGULAR), "")
	assert.Equal(t, 0., w)
	assert.Equal(t, 0., h)
}
