package color_test

import (
	stdcolor "image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/charts/lib/color"
)

func TestRGBA(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in  string
		exp stdcolor.NRGBA
	}{
		{in: "#ff0000", exp: stdcolor.NRGBA{R: 255, A: 255}},
		{in: "white", exp: stdcolor.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "none", exp: stdcolor.NRGBA{}},
		{in: "", exp: stdcolor.NRGBA{}},
	}
	for _, tc := range testCases {
		c, err := color.RGBA(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.exp, c, tc.in)
	}

	_, err := color.RGBA("#zz")
	assert.Error(t, err)
}

func TestContrast(t *testing.T) {
	t.Parallel()

	assert.Equal(t, color.Black, color.Contrast("#FFFFFF"))
	assert.Equal(t, color.White, color.Contrast("#000000"))
	assert.Equal(t, color.White, color.Contrast("#333333"))
	assert.Equal(t, color.Black, color.Contrast("not a color"))
}

func TestDarken(t *testing.T) {
	t.Parallel()

	d, err := color.Darken("#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, "#E6E6E6", d)

	assert.NoError(t, color.Valid("none"))
	assert.Error(t, color.Valid("#12"))
}
