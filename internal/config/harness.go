package config

import (
	"errors"
	"fmt"
	"time"
)

// Harness is the resolved configuration of a test run.
type Harness struct {
	Timeout        time.Duration
	Interval       time.Duration
	TapDelay       time.Duration
	DragSteps      int
	Animation      time.Duration
	Backend        string
	ShellsimPath   string
	ScenarioFile   string
	ScenarioFilter string
}

// ResolveHarness resolves every harness option of c against s, applying
// environment overrides and defaults.
func ResolveHarness(c *Config, s *ConfigSchema) (Harness, error) {
	var (
		h    Harness
		errs []error
		err  error
	)

	if h.Timeout, err = s.ResolveDuration(c, "eventually.timeout"); err != nil {
		errs = append(errs, err)
	}
	if h.Interval, err = s.ResolveDuration(c, "eventually.interval"); err != nil {
		errs = append(errs, err)
	}
	if h.TapDelay, err = s.ResolveDuration(c, "touch.tap-delay"); err != nil {
		errs = append(errs, err)
	}
	if h.DragSteps, err = s.ResolveInt(c, "touch.drag-steps"); err != nil {
		errs = append(errs, err)
	}
	if h.Animation, err = s.ResolveDuration(c, "shell.animation"); err != nil {
		errs = append(errs, err)
	}

	h.Backend = s.Resolve(c, "backend")
	switch h.Backend {
	case "sim", "pty":
	default:
		errs = append(errs, fmt.Errorf("option %q: unknown backend %q", "backend", h.Backend))
	}

	h.ShellsimPath = s.Resolve(c, "shellsim.path")
	h.ScenarioFile = s.Resolve(c, "scenario.file")
	h.ScenarioFilter = s.Resolve(c, "scenario.filter")

	if err := errors.Join(errs...); err != nil {
		return Harness{}, err
	}
	return h, nil
}
