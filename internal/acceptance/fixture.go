// Package acceptance holds the HUD acceptance cases and the fixture they run
// in. A Fixture owns one freshly launched shell, the test's touch device and
// a stack of cleanups; every case first brings the shell to a known state by
// launching the test application from the dash, then drives gestures and
// asserts on the proxies with Eventually.
package acceptance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/scenario"
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// TestApplication is the dash icon launched before every case.
const TestApplication = "Camera"

// Option configures a Fixture.
type Option interface {
	applyOption(*fixtureConfig) error
}

type optionFunc func(*fixtureConfig) error

func (f optionFunc) applyOption(c *fixtureConfig) error { return f(c) }

type fixtureConfig struct {
	logger *slog.Logger
	wait   []eventually.Option
	touch  []touch.Option
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *fixtureConfig) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	})
}

// WithWait bounds every Expect made through the fixture.
func WithWait(options ...eventually.Option) Option {
	return optionFunc(func(c *fixtureConfig) error {
		c.wait = append(c.wait, options...)
		return nil
	})
}

// WithTouch configures the fixture's touch device. The sink is always the
// launched shell.
func WithTouch(options ...touch.Option) Option {
	return optionFunc(func(c *fixtureConfig) error {
		c.touch = append(c.touch, options...)
		return nil
	})
}

// Fixture is one test's shell, finger and cleanups.
type Fixture struct {
	Device scenario.Device
	// Touch is the test's finger on the shell.
	Touch *touch.Touch

	instance shell.Instance
	logger   *slog.Logger
	wait     []eventually.Option
	cleanups []func() error
}

// LaunchShell starts a fresh shell for device and returns its fixture. The
// caller must Close it.
func LaunchShell(ctx context.Context, backend shell.Backend, device scenario.Device, options ...Option) (*Fixture, error) {
	cfg := &fixtureConfig{logger: slog.Default()}
	for _, opt := range options {
		if err := opt.applyOption(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := device.Validate(); err != nil {
		return nil, err
	}

	instance, err := backend.Launch(ctx, device.Geometry())
	if err != nil {
		return nil, fmt.Errorf("failed to launch shell on %s: %w", device.Name, err)
	}

	f := &Fixture{
		Device:   device,
		instance: instance,
		logger:   cfg.logger.With("device", device.Name, "shell", instance.ID()),
		wait:     cfg.wait,
	}
	f.AddCleanup(instance.Close)

	touchOptions := append([]touch.Option{
		touch.WithSink(instance.Sink()),
		touch.WithLogger(f.logger),
	}, cfg.touch...)
	f.Touch, err = touch.New(touchOptions...)
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}
	f.AddCleanup(func() error {
		f.MaybeReleaseFinger()
		return nil
	})

	return f, nil
}

// MainWindow returns the proxy root of the fixture's shell.
func (f *Fixture) MainWindow() shell.MainWindow {
	return f.instance.MainWindow()
}

// Logger returns the fixture's logger.
func (f *Fixture) Logger() *slog.Logger { return f.logger }

// AddCleanup registers fn to run on Close. Cleanups run last-in first-out.
func (f *Fixture) AddCleanup(fn func() error) {
	f.cleanups = append(f.cleanups, fn)
}

// MaybeReleaseFinger lifts the finger if it is down. It never fails, and is
// safe to call repeatedly.
func (f *Fixture) MaybeReleaseFinger() {
	if f.Touch != nil {
		f.Touch.MaybeRelease()
	}
}

// Close runs every cleanup, most recent first, and returns their joined
// errors. The finger guard is one of them, so a finger left down by a
// failed step is lifted before the shell goes away.
func (f *Fixture) Close() error {
	var errs []error
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		if err := f.cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	f.cleanups = nil
	return errors.Join(errs...)
}

// LaunchTestAppFromAppScreen taps the test application's icon on the dash
// and waits until an application is in the foreground.
func (f *Fixture) LaunchTestAppFromAppScreen(ctx context.Context) error {
	mw := f.MainWindow()

	dash, err := mw.Dash()
	if err != nil {
		return err
	}
	icon, err := dash.ApplicationIcon(TestApplication)
	if err != nil {
		return err
	}
	if err := f.Touch.TapObject(icon); err != nil {
		return err
	}

	bottomBar, err := mw.BottomBar()
	if err != nil {
		return err
	}
	return Expect(ctx, f, bottomBar.ApplicationIsOnForeground(), eventually.Equals(true))
}

// Expect waits until obs matches m, within the fixture's wait bounds.
func Expect[T any](ctx context.Context, f *Fixture, obs eventually.Observable[T], m eventually.Matcher[T]) error {
	return eventually.Eventually(m, f.wait...).Check(ctx, obs)
}
