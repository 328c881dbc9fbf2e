// Package eventually provides polling assertions for state that changes
// asynchronously relative to the caller, such as UI properties that lag
// input by an animation.
//
// The core is Wait, a bounded retry loop parameterised by an Observable
// (the sample function), a Matcher (the predicate), an interval and a
// maximum wait. Eventually and AssertThat wrap it in the familiar
// assertThat(observable, Eventually(Equals(value))) form.
//
// Nothing in this package holds state between calls, so assertions may be
// issued back to back, or from different goroutines, freely.
package eventually

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout is the maximum time Wait polls before giving up.
//
// Rationale:
//   - Shell transitions take a few hundred milliseconds even on slow devices
//   - 10s leaves room for a cold application launch on top of that
//   - Longer values only delay the report of a genuinely stuck property
const DefaultTimeout = 10 * time.Second

// DefaultInterval is the delay between samples.
const DefaultInterval = 100 * time.Millisecond

// ErrTimeout matches any *TimeoutError via errors.Is.
var ErrTimeout = errors.New("eventually: timeout")

// Observable is a named, readable value, typically a property bound to a
// live UI proxy object.
type Observable[T any] interface {
	// Describe names the value in failure messages, e.g. "hud.shown".
	Describe() string
	// Get samples the current value.
	Get() (T, error)
}

// Of adapts a getter function to an Observable.
func Of[T any](name string, get func() (T, error)) Observable[T] {
	return funcObservable[T]{name: name, get: get}
}

type funcObservable[T any] struct {
	name string
	get  func() (T, error)
}

func (o funcObservable[T]) Describe() string { return o.name }
func (o funcObservable[T]) Get() (T, error)  { return o.get() }

// TimeoutError reports a property that never matched.
type TimeoutError struct {
	// Property is the Observable's description.
	Property string
	// Last is the last value observed.
	Last any
	// Expected describes the matcher.
	Expected string
	// Timeout is the bound that elapsed.
	Timeout time.Duration
	// Samples is how many times the property was read.
	Samples int
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %v waiting for %s: last observed %#v, expected %s (%d samples)",
		e.Timeout, e.Property, e.Last, e.Expected, e.Samples)
}

// Is makes errors.Is(err, ErrTimeout) hold.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Wait samples obs until m matches or the timeout elapses.
//
// The first sample is taken immediately, so an already-matching value returns
// without sleeping. Otherwise obs is re-sampled every interval; at least one
// re-sample always happens before a timeout is reported, even with a zero
// timeout. On success the matching value is returned. On timeout the last
// observed value is returned with a *TimeoutError. A getter error aborts the
// wait at once, as does cancellation of ctx.
func Wait[T any](ctx context.Context, obs Observable[T], m Matcher[T], options ...Option) (T, error) {
	cfg, err := newConfig(options)
	if err != nil {
		var zero T
		return zero, err
	}

	start := time.Now()
	var (
		last    T
		samples int
	)
	for {
		v, err := obs.Get()
		samples++
		if err != nil {
			return last, fmt.Errorf("failed to read %s: %w", obs.Describe(), err)
		}
		last = v

		if m.Match(v) {
			return v, nil
		}

		if samples > 1 && time.Since(start) >= cfg.timeout {
			return last, &TimeoutError{
				Property: obs.Describe(),
				Last:     last,
				Expected: m.String(),
				Timeout:  cfg.timeout,
				Samples:  samples,
			}
		}

		timer := time.NewTimer(cfg.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last, ctx.Err()
		case <-timer.C:
		}
	}
}

// Assertion is a matcher bound to polling options, built by Eventually.
type Assertion[T any] struct {
	matcher Matcher[T]
	options []Option
}

// Eventually builds an Assertion that polls until m matches.
func Eventually[T any](m Matcher[T], options ...Option) Assertion[T] {
	return Assertion[T]{matcher: m, options: options}
}

// String implements fmt.Stringer.
func (a Assertion[T]) String() string {
	return "Eventually(" + a.matcher.String() + ")"
}

// Check runs the assertion against obs, returning nil once it matches.
func (a Assertion[T]) Check(ctx context.Context, obs Observable[T]) error {
	_, err := Wait(ctx, obs, a.matcher, a.options...)
	return err
}

// TB is the subset of testing.TB used by AssertThat.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// AssertThat fails the test unless obs eventually satisfies a.
func AssertThat[T any](tb TB, obs Observable[T], a Assertion[T]) {
	tb.Helper()
	if err := a.Check(context.Background(), obs); err != nil {
		tb.Fatalf("assertThat(%s, %s): %v", obs.Describe(), a, err)
	}
}
