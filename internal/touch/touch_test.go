package touch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Sink that records every event and can be told to fail.
type recorder struct {
	events []Event
	fail   map[EventKind]error
}

func (r *recorder) Inject(ev Event) error {
	if err := r.fail[ev.Kind]; err != nil {
		return err
	}
	r.events = append(r.events, ev)
	return nil
}

func newTestTouch(t *testing.T, sink Sink, options ...Option) *Touch {
	t.Helper()
	tc, err := New(append([]Option{WithSink(sink), WithTapDelay(0)}, options...)...)
	require.NoError(t, err)
	return tc
}

type locatable struct {
	p   Point
	err error
}

func (l locatable) Center() (Point, error) { return l.p, l.err }

func TestNew_MissingSink(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WithSink is required")
}

func TestPress_SessionExclusivity(t *testing.T) {
	rec := &recorder{}
	tc := newTestTouch(t, rec)

	require.NoError(t, tc.Press(10, 20))
	assert.True(t, tc.Pressed())

	err := tc.Press(30, 40)
	require.ErrorIs(t, err, ErrFingerDown)

	// the rejected press must not reach the shell or move the finger
	assert.Equal(t, []Event{{Kind: EventPress, Point: Point{10, 20}}}, rec.events)
	pos, ok := tc.Position()
	assert.True(t, ok)
	assert.Equal(t, Point{10, 20}, pos)
}

func TestMoveAndRelease_RequireSession(t *testing.T) {
	rec := &recorder{}
	tc := newTestTouch(t, rec)

	require.ErrorIs(t, tc.Move(1, 1), ErrNoFinger)
	require.ErrorIs(t, tc.Release(), ErrNoFinger)
	assert.Empty(t, rec.events)

	_, ok := tc.Position()
	assert.False(t, ok)
}

func TestPressMoveRelease(t *testing.T) {
	rec := &recorder{}
	tc := newTestTouch(t, rec)

	require.NoError(t, tc.Press(5, 100))
	require.NoError(t, tc.Move(5, 60))
	require.NoError(t, tc.Release())
	assert.False(t, tc.Pressed())

	assert.Equal(t, []Event{
		{Kind: EventPress, Point: Point{5, 100}},
		{Kind: EventMove, Point: Point{5, 60}},
		{Kind: EventRelease, Point: Point{5, 60}},
	}, rec.events)
}

func TestPress_SinkFailureLeavesIdle(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{fail: map[EventKind]error{EventPress: boom}}
	tc := newTestTouch(t, rec)

	err := tc.Press(1, 2)
	require.ErrorIs(t, err, boom)
	assert.False(t, tc.Pressed())
}

func TestRelease_SinkFailureStillEndsSession(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{fail: map[EventKind]error{EventRelease: boom}}
	tc := newTestTouch(t, rec)

	require.NoError(t, tc.Press(1, 2))
	require.ErrorIs(t, tc.Release(), boom)
	assert.False(t, tc.Pressed())
}

func TestMaybeRelease(t *testing.T) {
	t.Run("idle is a no-op", func(t *testing.T) {
		rec := &recorder{}
		tc := newTestTouch(t, rec)

		assert.NotPanics(t, tc.MaybeRelease)
		assert.NotPanics(t, tc.MaybeRelease)
		assert.Empty(t, rec.events)
	})

	t.Run("pressed releases once", func(t *testing.T) {
		rec := &recorder{}
		tc := newTestTouch(t, rec)

		require.NoError(t, tc.Press(3, 4))
		tc.MaybeRelease()
		tc.MaybeRelease()

		assert.False(t, tc.Pressed())
		assert.Equal(t, []Event{
			{Kind: EventPress, Point: Point{3, 4}},
			{Kind: EventRelease, Point: Point{3, 4}},
		}, rec.events)
	})

	t.Run("sink failure is swallowed", func(t *testing.T) {
		rec := &recorder{fail: map[EventKind]error{EventRelease: errors.New("gone")}}
		tc := newTestTouch(t, rec)

		require.NoError(t, tc.Press(3, 4))
		assert.NotPanics(t, tc.MaybeRelease)
		assert.False(t, tc.Pressed())
	})
}

func TestTap(t *testing.T) {
	rec := &recorder{}
	tc := newTestTouch(t, rec)

	require.NoError(t, tc.Tap(7, 8))
	assert.False(t, tc.Pressed())
	assert.Equal(t, []Event{
		{Kind: EventPress, Point: Point{7, 8}},
		{Kind: EventRelease, Point: Point{7, 8}},
	}, rec.events)
}

func TestTapObject(t *testing.T) {
	t.Run("resolves location", func(t *testing.T) {
		rec := &recorder{}
		tc := newTestTouch(t, rec)

		require.NoError(t, tc.TapObject(locatable{p: Point{11, 12}}))
		require.Len(t, rec.events, 2)
		assert.Equal(t, Point{11, 12}, rec.events[0].Point)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		missing := errors.New("no such icon")
		rec := &recorder{}
		tc := newTestTouch(t, rec)

		err := tc.TapObject(locatable{err: missing})
		require.ErrorIs(t, err, missing)
		assert.Empty(t, rec.events)
		assert.False(t, tc.Pressed())
	})
}

func TestDrag(t *testing.T) {
	rec := &recorder{}
	tc := newTestTouch(t, rec, WithDragSteps(4))

	require.NoError(t, tc.Drag(0, 0, 10, 100))
	assert.False(t, tc.Pressed())

	require.Len(t, rec.events, 6)
	assert.Equal(t, Event{Kind: EventPress, Point: Point{0, 0}}, rec.events[0])
	assert.Equal(t, Event{Kind: EventMove, Point: Point{2, 25}}, rec.events[1])
	assert.Equal(t, Event{Kind: EventMove, Point: Point{10, 100}}, rec.events[4])
	assert.Equal(t, Event{Kind: EventRelease, Point: Point{10, 100}}, rec.events[5])
}

func TestDrag_MoveFailureReleases(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{fail: map[EventKind]error{EventMove: boom}}
	tc := newTestTouch(t, rec)

	err := tc.Drag(0, 0, 10, 10)
	require.ErrorIs(t, err, boom)
	assert.False(t, tc.Pressed())
	assert.Equal(t, EventRelease, rec.events[len(rec.events)-1].Kind)
}

func TestSwipe(t *testing.T) {
	rec := &recorder{}
	tc := newTestTouch(t, rec, WithDragSteps(1))

	require.NoError(t, tc.Swipe(Swipe{Start: Point{1, 9}, End: Point{1, 3}}))
	assert.Equal(t, []Event{
		{Kind: EventPress, Point: Point{1, 9}},
		{Kind: EventMove, Point: Point{1, 3}},
		{Kind: EventRelease, Point: Point{1, 3}},
	}, rec.events)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "press", EventPress.String())
	assert.Equal(t, "move", EventMove.String())
	assert.Equal(t, "release", EventRelease.String())
	assert.Equal(t, "EventKind(99)", EventKind(99).String())
	assert.Equal(t, "move(3,4)", Event{Kind: EventMove, Point: Point{3, 4}}.String())
}
