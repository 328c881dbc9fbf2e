package touch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrFingerDown is returned by Press when a touch session is already
	// active.
	ErrFingerDown = errors.New("touch: finger already down")

	// ErrNoFinger is returned by Move and Release when no touch session is
	// active.
	ErrNoFinger = errors.New("touch: no finger down")
)

// Point is a screen position in 0-indexed device pixels. SGRSink sends it
// unscaled, shifted to the 1-indexed form SGR sequences use.
type Point struct {
	X int
	Y int
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Swipe is a straight gesture path from Start to End.
type Swipe struct {
	Start Point
	End   Point
}

// EventKind identifies a synthetic hardware-level input event.
type EventKind int

const (
	EventPress EventKind = iota + 1
	EventMove
	EventRelease
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single synthetic input event.
type Event struct {
	Kind EventKind
	Point
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return e.Kind.String() + e.Point.String()
}

// Sink receives the events produced by a Touch.
type Sink interface {
	Inject(ev Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event) error

// Inject implements Sink.
func (f SinkFunc) Inject(ev Event) error { return f(ev) }

// Locatable is anything that can resolve to a point on screen, e.g. a UI
// proxy for an application icon.
type Locatable interface {
	Center() (Point, error)
}

type sessionState int

const (
	stateIdle sessionState = iota
	statePressed
)

// Touch is a synthetic single-finger touch device.
type Touch struct {
	sink      Sink
	logger    *slog.Logger
	tapDelay  time.Duration
	dragSteps int

	state sessionState
	pos   Point
}

// New creates a Touch with the given options. WithSink is required.
func New(options ...Option) (*Touch, error) {
	cfg := defaultConfig()

	for _, opt := range options {
		if err := opt.applyOption(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.sink == nil {
		return nil, fmt.Errorf("WithSink is required")
	}

	return &Touch{
		sink:      cfg.sink,
		logger:    cfg.logger,
		tapDelay:  cfg.tapDelay,
		dragSteps: cfg.dragSteps,
	}, nil
}

// Pressed reports whether a touch session is active.
func (t *Touch) Pressed() bool {
	return t.state == statePressed
}

// Position returns the point of the active session. The second result is
// false when no session is active.
func (t *Touch) Position() (Point, bool) {
	if t.state != statePressed {
		return Point{}, false
	}
	return t.pos, true
}

// Press begins a touch session at the given coordinates.
// It fails with ErrFingerDown if a session is already active. If the sink
// rejects the event, no session is started.
func (t *Touch) Press(x, y int) error {
	p := Point{X: x, Y: y}
	if t.state == statePressed {
		return fmt.Errorf("press at %v: %w", p, ErrFingerDown)
	}
	if err := t.inject(Event{Kind: EventPress, Point: p}); err != nil {
		return err
	}
	t.state = statePressed
	t.pos = p
	return nil
}

// Move relocates the active session without ending it.
// It fails with ErrNoFinger if no session is active.
func (t *Touch) Move(x, y int) error {
	p := Point{X: x, Y: y}
	if t.state != statePressed {
		return fmt.Errorf("move to %v: %w", p, ErrNoFinger)
	}
	if err := t.inject(Event{Kind: EventMove, Point: p}); err != nil {
		return err
	}
	t.pos = p
	return nil
}

// Release ends the active session at its current position.
// It fails with ErrNoFinger if no session is active. The session ends even
// if the sink rejects the event.
func (t *Touch) Release() error {
	if t.state != statePressed {
		return fmt.Errorf("release: %w", ErrNoFinger)
	}
	t.state = stateIdle
	return t.inject(Event{Kind: EventRelease, Point: t.pos})
}

// MaybeRelease releases the finger only if it is in fact down. It never
// fails: a sink error is logged and dropped, so a test cleanup calling it
// cannot mask the failure that caused the cleanup. Calling it repeatedly is
// harmless.
func (t *Touch) MaybeRelease() {
	if t.state != statePressed {
		return
	}
	if err := t.Release(); err != nil {
		t.logger.Warn("[Touch] release during cleanup failed", "error", err)
	}
}

// Tap presses and releases at the given coordinates.
func (t *Touch) Tap(x, y int) error {
	if err := t.Press(x, y); err != nil {
		return err
	}
	if t.tapDelay > 0 {
		time.Sleep(t.tapDelay)
	}
	return t.Release()
}

// TapObject resolves the object's location and taps it. Resolution errors
// are returned unmodified apart from wrapping.
func (t *Touch) TapObject(obj Locatable) error {
	p, err := obj.Center()
	if err != nil {
		return fmt.Errorf("failed to locate tap target: %w", err)
	}
	return t.Tap(p.X, p.Y)
}

// Drag presses at (x1, y1), moves in a straight line to (x2, y2) and
// releases there. The path is split into the configured number of steps;
// the last step always lands exactly on the end point. If a move fails the
// finger is still released.
func (t *Touch) Drag(x1, y1, x2, y2 int) error {
	if err := t.Press(x1, y1); err != nil {
		return err
	}
	for i := 1; i <= t.dragSteps; i++ {
		x := x1 + (x2-x1)*i/t.dragSteps
		y := y1 + (y2-y1)*i/t.dragSteps
		if err := t.Move(x, y); err != nil {
			return errors.Join(err, t.Release())
		}
	}
	return t.Release()
}

// Swipe is Drag along s.
func (t *Touch) Swipe(s Swipe) error {
	return t.Drag(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

func (t *Touch) inject(ev Event) error {
	t.logger.Debug("[Touch] inject", "event", ev.Kind.String(), "x", ev.X, "y", ev.Y)
	if err := t.sink.Inject(ev); err != nil {
		return fmt.Errorf("failed to inject %v: %w", ev, err)
	}
	return nil
}
