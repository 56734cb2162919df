package log_test

import (
	"context"
	"testing"
	"time"

	"cdr.dev/slog"
	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/charts/lib/log"
)

func TestWithTimeout(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	t.Setenv("CHARTS_TIMEOUT", "")
	tctx, cancel := log.WithTimeout(ctx, time.Minute)
	deadline, ok := tctx.Deadline()
	cancel()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	t.Setenv("CHARTS_TIMEOUT", "0")
	tctx, cancel = log.WithTimeout(ctx, time.Minute)
	_, ok = tctx.Deadline()
	cancel()
	assert.False(t, ok)
}

func TestLeveled(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	ctx = log.Named(log.Leveled(ctx, slog.LevelDebug), "test")
	log.Debug(ctx, "visible at debug level")
	log.Info(ctx, "info")
}
