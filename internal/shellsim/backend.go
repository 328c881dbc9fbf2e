package shellsim

import (
	"context"
	"log/slog"

	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// Backend launches in-process shells.
type Backend struct {
	// Options are applied to every Shell.
	Options []Option
	// Wait bounds the waits built into the proxies.
	Wait []eventually.Option
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

var _ shell.Backend = (*Backend)(nil)

// Launch implements shell.Backend.
func (b *Backend) Launch(ctx context.Context, geometry shell.Geometry) (shell.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	options := append([]Option{WithLogger(logger)}, b.Options...)
	s, err := New(geometry, options...)
	if err != nil {
		return nil, err
	}

	return &instance{
		shell:  s,
		window: NewMainWindow(s, logger, b.Wait...),
	}, nil
}

type instance struct {
	shell  *Shell
	window *MainWindow
}

func (i *instance) ID() string                   { return i.shell.ID() }
func (i *instance) MainWindow() shell.MainWindow { return i.window }
func (i *instance) Sink() touch.Sink             { return i.shell }
func (i *instance) Close() error                 { return i.shell.Close() }
