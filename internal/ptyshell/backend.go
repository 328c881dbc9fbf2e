//go:build unix

package ptyshell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joeycumines/go-prompt/termtest"

	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/shellsim"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// Terminal size the shell runs in. The picture is scaled to fit; the state
// line needs the width.
const (
	TerminalRows uint16 = 40
	TerminalCols uint16 = 240
)

// DefaultStartTimeout bounds how long Launch waits for the first state line.
const DefaultStartTimeout = 10 * time.Second

// exitTimeout bounds how long Close waits for the shell to quit.
const exitTimeout = 5 * time.Second

// Backend launches cmd/shellsim in a pseudo-terminal.
type Backend struct {
	// BinaryPath is the built cmd/shellsim program.
	BinaryPath string
	// StartTimeout defaults to DefaultStartTimeout. It is also the default
	// timeout of the termtest console.
	StartTimeout time.Duration
	// Animation is passed to the shell when non-zero.
	Animation time.Duration
	// Wait bounds the waits built into the proxies.
	Wait []eventually.Option
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

var _ shell.Backend = (*Backend)(nil)

// Args returns the command line arguments that start the shell with the
// given geometry and id.
func (b *Backend) Args(geometry shell.Geometry, id string) []string {
	args := []string{
		"-width", strconv.Itoa(geometry.Width),
		"-height", strconv.Itoa(geometry.Height),
		"-gu", strconv.Itoa(geometry.GridUnit),
		"-id", id,
	}
	if b.Animation > 0 {
		args = append(args, "-animation", b.Animation.String())
	}
	return args
}

// Launch implements shell.Backend.
func (b *Backend) Launch(ctx context.Context, geometry shell.Geometry) (shell.Instance, error) {
	if b.BinaryPath == "" {
		return nil, errors.New("ptyshell: no shellsim binary configured")
	}
	if err := geometry.Validate(); err != nil {
		return nil, err
	}

	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := b.StartTimeout
	if timeout <= 0 {
		timeout = DefaultStartTimeout
	}

	id := uuid.NewString()
	logger = logger.With("shell", id)

	cp, err := termtest.NewConsole(ctx,
		termtest.WithCommand(b.BinaryPath, b.Args(geometry, id)...),
		termtest.WithDefaultTimeout(timeout),
		termtest.WithSize(TerminalRows, TerminalCols),
		termtest.WithEnv(append(os.Environ(), "TERM=xterm-256color")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create console: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := cp.Expect(startCtx, cp.Snapshot(), termtest.Contains(shellsim.StatePrefix), "shell state line"); err != nil {
		_ = cp.Close()
		return nil, fmt.Errorf("shell did not start: %w", err)
	}

	console, err := New(WithTermtestConsole(cp), WithLogger(logger))
	if err != nil {
		_ = cp.Close()
		return nil, err
	}

	logger.Info("[PTY] shell started",
		"binary", b.BinaryPath,
		"width", geometry.Width,
		"height", geometry.Height,
		"gridUnit", geometry.GridUnit)

	return &instance{
		id:      id,
		console: console,
		window:  shellsim.NewMainWindow(console, logger, b.Wait...),
		logger:  logger,
	}, nil
}

type instance struct {
	id      string
	console *Console
	window  *shellsim.MainWindow
	logger  *slog.Logger
	closed  bool
}

func (i *instance) ID() string                   { return i.id }
func (i *instance) MainWindow() shell.MainWindow { return i.window }
func (i *instance) Sink() touch.Sink             { return i.console }

// Close asks the shell to quit, then tears down the console.
func (i *instance) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true

	cp := i.console.TermtestConsole()
	exited := false
	if _, err := cp.WriteString("q"); err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), exitTimeout)
		code, err := cp.WaitExit(ctx)
		cancel()
		exited = err == nil && code == 0
		if !exited {
			i.logger.Warn("[PTY] shell did not exit cleanly", "code", code, "error", err)
		}
	}

	if err := cp.Close(); err != nil {
		if !exited {
			return fmt.Errorf("failed to close console: %w", err)
		}
		i.logger.Debug("[PTY] console close after exit", "error", err)
	}
	i.logger.Info("[PTY] shell closed")
	return nil
}
