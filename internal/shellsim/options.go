package shellsim

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultAnimation is how long every show, hide and fade animation takes.
const DefaultAnimation = 250 * time.Millisecond

// DefaultFrameInterval is the period of the animation loop.
const DefaultFrameInterval = 16 * time.Millisecond

// Option configures Shell creation.
type Option interface {
	applyOption(*shellConfig) error
}

// optionFunc is the concrete implementation of Option.
type optionFunc func(*shellConfig) error

func (f optionFunc) applyOption(c *shellConfig) error { return f(c) }

// shellConfig holds the internal configuration during construction.
type shellConfig struct {
	id        string
	logger    *slog.Logger
	animation time.Duration
	frame     time.Duration
	apps      []string
}

// defaultConfig returns a shellConfig with default values.
func defaultConfig() *shellConfig {
	return &shellConfig{
		logger:    slog.Default(),
		animation: DefaultAnimation,
		frame:     DefaultFrameInterval,
		apps:      DefaultApplications,
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *shellConfig) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	})
}

// WithAnimation sets the duration of every animation. Zero makes state
// changes settle on the next frame.
func WithAnimation(d time.Duration) Option {
	return optionFunc(func(c *shellConfig) error {
		if d < 0 {
			return fmt.Errorf("animation duration cannot be negative, got %v", d)
		}
		c.animation = d
		return nil
	})
}

// WithFrameInterval sets the period of the animation loop.
func WithFrameInterval(d time.Duration) Option {
	return optionFunc(func(c *shellConfig) error {
		if d <= 0 {
			return fmt.Errorf("frame interval must be positive, got %v", d)
		}
		c.frame = d
		return nil
	})
}

// WithApplications sets the icons on the dash, in grid order.
func WithApplications(apps ...string) Option {
	return optionFunc(func(c *shellConfig) error {
		if len(apps) == 0 {
			return fmt.Errorf("at least one application is required")
		}
		seen := make(map[string]struct{}, len(apps))
		for _, name := range apps {
			if name == "" || strings.ContainsAny(name, ", \t\n=") {
				return fmt.Errorf("invalid application name %q", name)
			}
			if _, ok := seen[name]; ok {
				return fmt.Errorf("duplicate application %q", name)
			}
			seen[name] = struct{}{}
		}
		c.apps = append([]string(nil), apps...)
		return nil
	})
}

// WithID sets the instance id. Default is a random UUID.
func WithID(id string) Option {
	return optionFunc(func(c *shellConfig) error {
		if id == "" {
			return fmt.Errorf("id cannot be empty")
		}
		c.id = id
		return nil
	})
}
