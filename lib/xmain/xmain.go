// Package xmain is the shared main of the charts commands: it builds the process State,
// runs the command under signal handling and turns the returned error into an exit status.
package xmain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"

	ctxlog "oss.terrastruct.com/charts/lib/log"
)

// SHUTDOWN_TIMEOUT bounds how long run may take to return after a signal cancels it.
const SHUTDOWN_TIMEOUT = time.Minute

type RunFunc func(context.Context, *State) error

func Main(run RunFunc) {
	name := ""
	args := []string(nil)
	if len(os.Args) > 0 {
		name = os.Args[0]
		args = os.Args[1:]
	}

	ms := NewState(name, args, xos.NewEnv(os.Environ()))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	ctx := ctxlog.Stderr(context.Background())
	err := ms.Main(ctx, sigs, run)
	if err != nil {
		code, msg := ExitStatus(err)
		if msg != "" {
			ms.Log.Error.Print(msg)
		}
		os.Exit(code)
	}
}

// NewState wires the standard streams and a cmdlog logger for the command called name.
func NewState(name string, args []string, env *xos.Env) *State {
	ms := &State{
		Name: name,

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,

		Env: env,
	}
	ms.Log = cmdlog.Log(ms.Env, ms.Stderr)
	ms.Opts = NewOpts(ms.Env, ms.Log, args)
	return ms
}

// ExitStatus maps an error returned by a RunFunc to the process exit code and the message
// to print. An ExitError carries both, a UsageError exits 2 with a hint to run --help and
// anything else exits 1 with its own text.
func ExitStatus(err error) (code int, msg string) {
	if err == nil {
		return 0, ""
	}
	var eerr ExitError
	if errors.As(err, &eerr) {
		return eerr.Code, eerr.Message
	}
	var uerr UsageError
	if errors.As(err, &uerr) {
		return 2, fmt.Sprintf("%s\nRun with --help to see usage.", err)
	}
	return 1, err.Error()
}

type State struct {
	Name string

	Stdin  io.Reader
	Stdout io.WriteCloser
	Stderr io.WriteCloser

	Log  *cmdlog.Logger
	Env  *xos.Env
	Opts *Opts
}

// Main runs run until it returns or a signal arrives. A signal cancels the context passed
// to run. SIGTERM followed by a clean return exits 0, an interrupt exits 1.
func (ms *State) Main(ctx context.Context, sigs <-chan os.Signal, run RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- run(ctx, ms)
	}()

	select {
	case err := <-done:
		return err
	case sig := <-sigs:
		ms.Log.Warn.Printf("received signal %v: shutting down...", sig)
		cancel()
		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("failed to shutdown: %w", err)
			}
			if sig == syscall.SIGTERM {
				return nil
			}
			return ExitError{Code: 1}
		case <-time.After(SHUTDOWN_TIMEOUT):
			return ExitErrorf(1, "took longer than %v to shutdown: exiting forcefully", SHUTDOWN_TIMEOUT)
		}
	}
}

// ExitError ends the process with Code after printing Message, if any.
type ExitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ExitErrorf(code int, msg string, v ...interface{}) ExitError {
	return ExitError{
		Code:    code,
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ee ExitError) Error() string {
	s := fmt.Sprintf("exiting with code %d", ee.Code)
	if ee.Message != "" {
		s += ": " + ee.Message
	}
	return s
}

// UsageError exits with code 2 and points at --help.
type UsageError struct {
	Message string `json:"message"`
}

func UsageErrorf(msg string, v ...interface{}) UsageError {
	return UsageError{
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ue UsageError) Error() string {
	return fmt.Sprintf("bad usage: %s", ue.Message)
}

// ReadPath reads fp, or stdin when fp is "-".
func (ms *State) ReadPath(fp string) ([]byte, error) {
	if fp == "-" {
		return io.ReadAll(ms.Stdin)
	}
	return os.ReadFile(fp)
}

// WritePath writes p to fp, creating its directory, or to stdout when fp is "-". Stdout is
// closed afterwards since a chart is the command's only output.
func (ms *State) WritePath(fp string, p []byte) error {
	if fp == "-" {
		_, err := ms.Stdout.Write(p)
		if err != nil {
			return err
		}
		return ms.Stdout.Close()
	}
	if dir := filepath.Dir(fp); dir != "." {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(fp, p, 0644)
}
