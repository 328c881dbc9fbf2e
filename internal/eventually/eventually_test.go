package eventually

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter returns an Observable that yields 0, 1, 2, ... on each sample.
func counter(name string) (Observable[int], *int) {
	calls := 0
	return Of(name, func() (int, error) {
		v := calls
		calls++
		return v, nil
	}), &calls
}

func TestWait_ImmediateMatch(t *testing.T) {
	obs, calls := counter("n")

	start := time.Now()
	v, err := Wait(context.Background(), obs, Equals(0), WithInterval(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, 1, *calls, "already matching value must not be re-sampled")
	assert.Less(t, time.Since(start), 500*time.Millisecond, "must not sleep before the first sample")
}

func TestWait_ConvergesAfterSeveralSamples(t *testing.T) {
	obs, calls := counter("n")

	v, err := Wait(context.Background(), obs, Equals(3), WithTimeout(5*time.Second), WithInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 4, *calls)
}

func TestWait_ResamplesBeforeTimeout(t *testing.T) {
	obs, calls := counter("n")

	// zero timeout: the first sample fails, a second is still taken
	_, err := Wait(context.Background(), obs, Equals(1), WithTimeout(0), WithInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestWait_TimeoutError(t *testing.T) {
	obs := Of("hud.shown", func() (bool, error) { return false, nil })

	v, err := Wait(context.Background(), obs, Equals(true), WithTimeout(50*time.Millisecond), WithInterval(5*time.Millisecond))
	require.Error(t, err)
	assert.False(t, v)
	require.ErrorIs(t, err, ErrTimeout)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "hud.shown", te.Property)
	assert.Equal(t, false, te.Last)
	assert.Equal(t, "Equals(true)", te.Expected)
	assert.GreaterOrEqual(t, te.Samples, 2)
	assert.Contains(t, err.Error(), "last observed false")
	assert.Contains(t, err.Error(), "expected Equals(true)")
}

func TestWait_GetterErrorAborts(t *testing.T) {
	gone := errors.New("proxy object destroyed")
	calls := 0
	obs := Of("hud.shown", func() (bool, error) {
		calls++
		return false, gone
	})

	_, err := Wait(context.Background(), obs, Equals(true), WithTimeout(5*time.Second), WithInterval(time.Millisecond))
	require.ErrorIs(t, err, gone)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "hud.shown")
	assert.Equal(t, 1, calls)
}

func TestWait_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	sampled := make(chan struct{})
	obs := Of("x", func() (int, error) {
		select {
		case <-sampled:
		default:
			close(sampled)
		}
		return 0, nil
	})

	go func() {
		<-sampled
		cancel()
	}()

	_, err := Wait(ctx, obs, Equals(1), WithTimeout(5*time.Second), WithInterval(10*time.Millisecond))
	require.ErrorIs(t, err, context.Canceled)
}

func TestWait_InvalidOption(t *testing.T) {
	obs, calls := counter("n")
	_, err := Wait(context.Background(), obs, Equals(0), WithInterval(0))
	require.Error(t, err)
	assert.Equal(t, 0, *calls)
}

func TestWait_Reentrant(t *testing.T) {
	obs, _ := counter("n")

	// sequential waits on the same observable share nothing but the source
	v, err := Wait(context.Background(), obs, Equals(2), WithInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = Wait(context.Background(), obs, Equals(5), WithInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

// fakeTB records Fatalf without stopping the goroutine.
type fakeTB struct {
	failed bool
	msg    string
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.failed = true
	f.msg = fmt.Sprintf(format, args...)
}

func TestAssertThat(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		opacity := 0.0
		obs := Of("hud_show_button.opacity", func() (float64, error) {
			opacity += 0.25
			if opacity > 1 {
				opacity = 1
			}
			return opacity, nil
		})

		AssertThat(t, obs, Eventually(Equals(1.0), WithInterval(time.Millisecond)))
	})

	t.Run("fails with description", func(t *testing.T) {
		tb := &fakeTB{}
		obs := Of("hud.shown", func() (bool, error) { return true, nil })

		AssertThat(tb, obs, Eventually(Equals(false), WithTimeout(10*time.Millisecond), WithInterval(time.Millisecond)))

		assert.True(t, tb.failed)
		assert.Contains(t, tb.msg, "assertThat(hud.shown, Eventually(Equals(false)))")
		assert.Contains(t, tb.msg, "last observed true")
	})
}
