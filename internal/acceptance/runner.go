package acceptance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/joeycumines/hudcheck/internal/scenario"
	"github.com/joeycumines/hudcheck/internal/shell"
)

// Result is the outcome of one case on one device.
type Result struct {
	Case     string
	Device   scenario.Device
	Err      error
	Duration time.Duration
}

// Passed reports whether the case succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Runner runs cases over a device matrix, one fresh shell per run.
type Runner struct {
	Backend shell.Backend
	Devices []scenario.Device
	Cases   []Case
	// Options apply to every Fixture.
	Options []Option
	// FailFast stops after the first failure.
	FailFast bool
	// OnResult, if set, is called as each result is produced.
	OnResult func(Result)
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Run executes every case on every device, cases outermost. It returns early
// with the context's error if ctx is done.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var results []Result
	for _, c := range r.Cases {
		for _, d := range r.Devices {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			res := r.runOne(ctx, logger, c, d)
			results = append(results, res)
			if r.OnResult != nil {
				r.OnResult(res)
			}

			if res.Passed() {
				logger.Info("[Runner] pass", "case", c.Name, "device", d.Name, "duration", res.Duration)
				continue
			}
			logger.Warn("[Runner] fail", "case", c.Name, "device", d.Name, "error", res.Err)
			if r.FailFast {
				return results, nil
			}
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, logger *slog.Logger, c Case, d scenario.Device) Result {
	start := time.Now()
	res := Result{Case: c.Name, Device: d}

	options := append([]Option{WithLogger(logger.With("case", c.Name))}, r.Options...)
	f, err := LaunchShell(ctx, r.Backend, d, options...)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	err = Execute(ctx, c, f)
	res.Err = errors.Join(err, f.Close())
	res.Duration = time.Since(start)
	return res
}
