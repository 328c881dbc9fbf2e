package eventually

import (
	"fmt"
	"time"
)

// Option configures a Wait.
type Option interface {
	applyOption(*waitConfig) error
}

type optionFunc func(*waitConfig) error

func (f optionFunc) applyOption(c *waitConfig) error { return f(c) }

type waitConfig struct {
	timeout  time.Duration
	interval time.Duration
}

func newConfig(options []Option) (*waitConfig, error) {
	cfg := &waitConfig{
		timeout:  DefaultTimeout,
		interval: DefaultInterval,
	}
	for _, opt := range options {
		if err := opt.applyOption(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return cfg, nil
}

// WithTimeout sets the maximum wait. Zero means "sample twice, then fail".
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *waitConfig) error {
		if d < 0 {
			return fmt.Errorf("timeout cannot be negative, got %v", d)
		}
		c.timeout = d
		return nil
	})
}

// WithInterval sets the delay between samples.
func WithInterval(d time.Duration) Option {
	return optionFunc(func(c *waitConfig) error {
		if d <= 0 {
			return fmt.Errorf("interval must be positive, got %v", d)
		}
		c.interval = d
		return nil
	})
}
