package go2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/charts/lib/go2"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0., go2.Clamp(-3., 0, 10))
	assert.Equal(t, 10., go2.Clamp(12., 0, 10))
	assert.Equal(t, 4, go2.Clamp(4, 0, 10))
}

func TestPointer(t *testing.T) {
	t.Parallel()

	p := go2.Pointer(int64(200))
	assert.Equal(t, int64(200), *p)
}
