//go:build unix

package ptyshell

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joeycumines/go-prompt/termtest"
)

// DefaultReadTimeout bounds how long State waits for a complete state line.
const DefaultReadTimeout = 2 * time.Second

// Option configures Console creation.
type Option interface {
	applyOption(*consoleConfig) error
}

// optionFunc is the concrete implementation of Option.
type optionFunc func(*consoleConfig) error

func (f optionFunc) applyOption(c *consoleConfig) error { return f(c) }

// consoleConfig holds the internal configuration during construction.
type consoleConfig struct {
	cp          *termtest.Console
	logger      *slog.Logger
	readTimeout time.Duration
}

// defaultConfig returns a consoleConfig with default values.
func defaultConfig() *consoleConfig {
	return &consoleConfig{
		logger:      slog.Default(),
		readTimeout: DefaultReadTimeout,
	}
}

// WithTermtestConsole sets the externally-managed termtest console.
// This is required.
func WithTermtestConsole(cp *termtest.Console) Option {
	return optionFunc(func(c *consoleConfig) error {
		if cp == nil {
			return fmt.Errorf("termtest console cannot be nil")
		}
		c.cp = cp
		return nil
	})
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *consoleConfig) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	})
}

// WithReadTimeout sets how long State keeps re-reading the screen while the
// state line is missing or partially drawn.
func WithReadTimeout(d time.Duration) Option {
	return optionFunc(func(c *consoleConfig) error {
		if d <= 0 {
			return fmt.Errorf("read timeout must be positive, got %v", d)
		}
		c.readTimeout = d
		return nil
	})
}
