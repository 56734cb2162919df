package xmain_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/charts/lib/xmain"
)

func TestExitStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		err     error
		expCode int
		expMsg  string
	}{
		{
			name: "nil",
		},
		{
			name:    "exit",
			err:     fmt.Errorf("wrapped: %w", xmain.ExitErrorf(3, "failed to compile %v", "in.mmd")),
			expCode: 3,
			expMsg:  "failed to compile in.mmd",
		},
		{
			name:    "usage",
			err:     xmain.UsageErrorf("too many arguments passed"),
			expCode: 2,
			expMsg:  "bad usage: too many arguments passed\nRun with --help to see usage.",
		},
		{
			name:    "other",
			err:     errors.New("disk full"),
			expCode: 1,
			expMsg:  "disk full",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, msg := xmain.ExitStatus(tc.err)
			assert.Equal(t, tc.expCode, code)
			assert.Equal(t, tc.expMsg, msg)
		})
	}
}

func TestExitErrorString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exiting with code 1", xmain.ExitError{Code: 1}.Error())
	assert.Equal(t, "exiting with code 1: pie chart: no slices", xmain.ExitErrorf(1, "pie chart: %s", "no slices").Error())
}

func TestStateMainSignal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		sig    os.Signal
		runErr error
		exp    func(t *testing.T, err error)
	}{
		{
			name:   "sigterm",
			sig:    syscall.SIGTERM,
			runErr: context.Canceled,
			exp: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "interrupt",
			sig:    os.Interrupt,
			runErr: context.Canceled,
			exp: func(t *testing.T, err error) {
				var eerr xmain.ExitError
				require.True(t, errors.As(err, &eerr), "%T", err)
				assert.Equal(t, 1, eerr.Code)
			},
		},
		{
			name:   "run_fails",
			sig:    syscall.SIGTERM,
			runErr: errors.New("half written"),
			exp: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Equal(t, "failed to shutdown: half written", err.Error())
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ms := xmain.NewState("charts", nil, xos.NewEnv(nil))
			sigs := make(chan os.Signal, 1)
			sigs <- tc.sig
			err := ms.Main(context.Background(), sigs, func(ctx context.Context, ms *xmain.State) error {
				<-ctx.Done()
				if errors.Is(tc.runErr, context.Canceled) {
					return ctx.Err()
				}
				return tc.runErr
			})
			tc.exp(t, err)
		})
	}
}

func TestStateMainReturns(t *testing.T) {
	t.Parallel()

	ms := xmain.NewState("charts", []string{"in.mmd"}, xos.NewEnv(nil))
	assert.Equal(t, []string{"in.mmd"}, ms.Opts.Args)
	err := ms.Main(context.Background(), nil, func(ctx context.Context, ms *xmain.State) error {
		return xmain.UsageErrorf("no input")
	})
	var uerr xmain.UsageError
	assert.True(t, errors.As(err, &uerr), "%T", err)
}

func TestWritePathCreatesDir(t *testing.T) {
	t.Parallel()

	ms := xmain.NewState("charts", nil, xos.NewEnv(nil))
	fp := filepath.Join(t.TempDir(), "out", "pets.svg")
	require.NoError(t, ms.WritePath(fp, []byte("<svg/>\n")))

	b, err := ms.ReadPath(fp)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>\n", string(b))
}
