//go:build unix

// Package ptyshell runs the reference shell as a separate process inside a
// pseudo-terminal. Touch events reach it as SGR mouse sequences, and its
// state is read back from the last line it draws.
//
// Coordinates are passed through unscaled: the shell is started with an
// explicit device geometry, and an SGR sequence carries that geometry's
// pixel coordinates rather than the cell the terminal would report.
package ptyshell

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joeycumines/go-prompt/termtest"

	"github.com/joeycumines/hudcheck/internal/shellsim"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// ErrNoState is returned when the screen holds no state line.
var ErrNoState = errors.New("ptyshell: no state line on screen")

// readRetryInterval is the pause between screen reads while the state line
// is incomplete.
const readRetryInterval = 10 * time.Millisecond

// Console wraps a PTY console running cmd/shellsim. The termtest.Console is
// managed externally; Console adds event injection and state reads. It is
// a shellsim.Source.
type Console struct {
	cp          *termtest.Console
	sink        *touch.SGRSink
	logger      *slog.Logger
	readTimeout time.Duration
}

var _ shellsim.Source = (*Console)(nil)

// New creates a Console with the given options.
func New(options ...Option) (*Console, error) {
	cfg := defaultConfig()

	for _, opt := range options {
		if err := opt.applyOption(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.cp == nil {
		return nil, fmt.Errorf("WithTermtestConsole is required")
	}

	return &Console{
		cp:          cfg.cp,
		sink:        touch.NewSGRSink(cfg.cp),
		logger:      cfg.logger,
		readTimeout: cfg.readTimeout,
	}, nil
}

// Inject implements touch.Sink.
func (c *Console) Inject(ev touch.Event) error {
	c.logger.Debug("[PTY] inject", "kind", ev.Kind.String(), "x", ev.X, "y", ev.Y)
	return c.sink.Inject(ev)
}

// Sink returns c.
func (c *Console) Sink() touch.Sink { return c }

// Screen returns the current terminal screen, one string per row, with
// escape sequences applied and trailing spaces trimmed.
func (c *Console) Screen() []string {
	return parseScreen(c.cp.String())
}

// State implements shellsim.Source. A state line caught mid-draw is
// re-read until it is complete or the read timeout expires.
func (c *Console) State() (shellsim.State, error) {
	deadline := time.Now().Add(c.readTimeout)
	for {
		st, err := c.readState()
		if err == nil || time.Now().After(deadline) {
			return st, err
		}
		time.Sleep(readRetryInterval)
	}
}

func (c *Console) readState() (shellsim.State, error) {
	line, ok := lastLineWithPrefix(c.Screen(), shellsim.StatePrefix)
	if !ok {
		return shellsim.State{}, ErrNoState
	}
	return shellsim.ParseState(line)
}

// String returns the raw terminal output.
func (c *Console) String() string {
	return c.cp.String()
}

// Snapshot returns a snapshot for use with Expect.
func (c *Console) Snapshot() termtest.Snapshot {
	return c.cp.Snapshot()
}

// WriteString writes raw bytes to the console.
func (c *Console) WriteString(s string) (int, error) {
	return c.cp.WriteString(s)
}

// TermtestConsole returns the underlying termtest.Console.
func (c *Console) TermtestConsole() *termtest.Console {
	return c.cp
}
