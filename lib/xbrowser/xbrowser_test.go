package xbrowser_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/charts/lib/xbrowser"
)

func TestFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	assert.Equal(t, "file:///tmp/out%20dir/chart.svg", xbrowser.FileURL("/tmp/out dir/chart.svg"))
}

func TestBrowserEnv(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	env := xos.NewEnv([]string{"BROWSER=true"})
	require.NoError(t, xbrowser.OpenURL(context.Background(), env, "file:///tmp/chart.svg"))

	env = xos.NewEnv([]string{"BROWSER=false"})
	assert.Error(t, xbrowser.OpenURL(context.Background(), env, "file:///tmp/chart.svg"))
}
