package touch

import (
	"fmt"
	"log/slog"
	"time"
)

// DefaultTapDelay is the hold time between the press and release of a Tap.
const DefaultTapDelay = 30 * time.Millisecond

// DefaultDragSteps is the number of move events a Drag emits.
const DefaultDragSteps = 10

// Option configures Touch creation.
type Option interface {
	applyOption(*touchConfig) error
}

// optionFunc is the concrete implementation of Option.
type optionFunc func(*touchConfig) error

func (f optionFunc) applyOption(c *touchConfig) error { return f(c) }

// touchConfig holds the internal configuration during construction.
type touchConfig struct {
	sink      Sink
	logger    *slog.Logger
	tapDelay  time.Duration
	dragSteps int
}

// defaultConfig returns a touchConfig with default values.
func defaultConfig() *touchConfig {
	return &touchConfig{
		logger:    slog.Default(),
		tapDelay:  DefaultTapDelay,
		dragSteps: DefaultDragSteps,
	}
}

// WithSink sets the destination for injected events.
// This is required.
func WithSink(sink Sink) Option {
	return optionFunc(func(c *touchConfig) error {
		if sink == nil {
			return fmt.Errorf("sink cannot be nil")
		}
		c.sink = sink
		return nil
	})
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *touchConfig) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	})
}

// WithTapDelay sets the hold time between press and release in Tap.
// Zero disables the delay.
func WithTapDelay(d time.Duration) Option {
	return optionFunc(func(c *touchConfig) error {
		if d < 0 {
			return fmt.Errorf("tap delay cannot be negative, got %v", d)
		}
		c.tapDelay = d
		return nil
	})
}

// WithDragSteps sets how many move events Drag emits between press and
// release.
func WithDragSteps(n int) Option {
	return optionFunc(func(c *touchConfig) error {
		if n <= 0 {
			return fmt.Errorf("drag steps must be positive, got %d", n)
		}
		c.dragSteps = n
		return nil
	})
}
