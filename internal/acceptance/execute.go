package acceptance

import (
	"context"
	"fmt"

	bt "github.com/joeycumines/go-behaviortree"
)

// Execute runs c against f as a behavior tree sequence: launch the test
// application, then the case body. The first failing step stops the case
// and its error is returned, prefixed with the step name.
func Execute(ctx context.Context, c Case, f *Fixture) error {
	root := bt.New(
		bt.Sequence,
		f.step(ctx, "launch test application", f.LaunchTestAppFromAppScreen),
		f.step(ctx, c.Name, func(ctx context.Context) error { return c.Body(ctx, f) }),
	)

	status, err := root.Tick()
	if err != nil {
		return err
	}
	if status != bt.Success {
		return fmt.Errorf("case %s finished with status %v", c.Name, status)
	}
	return nil
}

// step wraps fn as a leaf that succeeds or fails once.
func (f *Fixture) step(ctx context.Context, name string, fn func(ctx context.Context) error) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if err := ctx.Err(); err != nil {
			return bt.Failure, fmt.Errorf("%s: %w", name, err)
		}
		f.logger.Debug("[Runner] step", "step", name)
		if err := fn(ctx); err != nil {
			f.logger.Debug("[Runner] step failed", "step", name, "error", err)
			return bt.Failure, fmt.Errorf("%s: %w", name, err)
		}
		return bt.Success, nil
	})
}
