package png_test

import (
	"bytes"
	"context"
	stdpng "image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/charts/chartlayout"
	"oss.terrastruct.com/charts/chartparser"
	"oss.terrastruct.com/charts/charttarget"
	"oss.terrastruct.com/charts/lib/log"
	"oss.terrastruct.com/charts/lib/png"
	"oss.terrastruct.com/charts/lib/textmeasure"
)

func ptr(f float64) *float64 {
	return &f
}

func TestRasterize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
		maxW *float64
		maxH *float64
	}{
		{
			name: "pie",
			src:  "pie showData title Pets\n\"Dogs\": 386\n\"Cats\": 85\n\"Rats\": 15\n",
		},
		{
			name: "xy_fitted",
			src:  "xychart-beta\ntitle \"Sales\"\nx-axis [jan, feb, mar]\ny-axis \"Revenue\" 0 --> 100\nbar [10, 50, 90]\nline [20, 40, 60]\n",
			maxW: ptr(300),
		},
		{
			name: "work_item",
			src:  "work-item-movement\ntitle 'Sprint'\ncolumns [To Do, Done]\nX To Do: 1 -> Done: 3\n",
			maxH: ptr(100),
		},
	}

	ruler, err := textmeasure.NewRuler()
	require.NoError(t, err)

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := log.WithTB(context.Background(), t, nil)
			c, err := chartparser.ParseString(tc.src)
			require.NoError(t, err)
			d, err := chartlayout.Layout(ctx, c, ruler, nil)
			require.NoError(t, err)

			b, err := png.Rasterize(ctx, d, ruler, tc.maxW, tc.maxH)
			require.NoError(t, err)
			img, err := stdpng.Decode(bytes.NewReader(b))
			require.NoError(t, err)

			w, h, _ := charttarget.Fit(d.ContentWidth, d.ContentHeight, tc.maxW, tc.maxH)
			assert.InDelta(t, w, float64(img.Bounds().Dx()), 1)
			assert.InDelta(t, h, float64(img.Bounds().Dy()), 1)

			// Something besides the background got painted.
			bg := img.At(0, 0)
			painted := false
			for y := 0; y < img.Bounds().Dy() && !painted; y += 2 {
				for x := 0; x < img.Bounds().Dx(); x += 2 {
					if img.At(x, y) != bg {
						painted = true
						break
					}
				}
			}
			assert.True(t, painted)
		})
	}
}

func TestRasterizeZeroArea(t *testing.T) {
	t.Parallel()

	d := charttarget.NewDiagram("pie")
	_, err := png.Rasterize(context.Background(), d, nil, nil, nil)
	assert.Error(t, err)
}
