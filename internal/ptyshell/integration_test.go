//go:build unix

package ptyshell

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/joeycumines/go-prompt/termtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/hudcheck/internal/acceptance"
	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/scenario"
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/shellsim"
	"github.com/joeycumines/hudcheck/internal/testutil"
	"github.com/joeycumines/hudcheck/internal/touch"
)

var nexus4 = shell.Geometry{Width: 768, Height: 1280, GridUnit: 18}

func testBackend(t *testing.T) *Backend {
	t.Helper()
	return &Backend{
		BinaryPath: getShellsimBinaryPath(t),
		Animation:  testutil.PTYAnimation,
		Wait:       []eventually.Option{eventually.WithTimeout(testutil.PTYWaitTimeout), eventually.WithInterval(testutil.PTYWaitInterval)},
		Logger:     testutil.Logger(t),
	}
}

func TestConsole_New(t *testing.T) {
	_, err := New()
	assert.ErrorContains(t, err, "WithTermtestConsole is required")

	_, err = New(WithTermtestConsole(nil))
	assert.ErrorContains(t, err, "cannot be nil")

	_, err = New(WithReadTimeout(0))
	assert.ErrorContains(t, err, "must be positive")
}

func TestBackend_Args(t *testing.T) {
	b := &Backend{Animation: 20 * time.Millisecond}
	assert.Equal(t,
		[]string{"-width", "768", "-height", "1280", "-gu", "18", "-id", "x", "-animation", "20ms"},
		b.Args(nexus4, "x"))

	b.Animation = 0
	assert.NotContains(t, b.Args(nexus4, "x"), "-animation")
}

func TestBackend_LaunchErrors(t *testing.T) {
	_, err := (&Backend{}).Launch(t.Context(), nexus4)
	assert.ErrorContains(t, err, "no shellsim binary")

	_, err = testBackend(t).Launch(t.Context(), shell.Geometry{Width: 10})
	assert.Error(t, err)
}

func TestConsole_Integration_State(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cp, err := termtest.NewConsole(ctx,
		termtest.WithCommand(getShellsimBinaryPath(t), "-width", "768", "-height", "1280", "-gu", "18", "-id", "fixed"),
		termtest.WithDefaultTimeout(10*time.Second),
		termtest.WithSize(TerminalRows, TerminalCols),
	)
	require.NoError(t, err)
	defer cp.Close()

	snap := cp.Snapshot()
	require.NoError(t, cp.Expect(ctx, snap, termtest.Contains(shellsim.StatePrefix), "wait for state line"))
	require.NoError(t, cp.Expect(ctx, snap, termtest.Contains("shellsim fixed"), "wait for title"))

	console, err := New(WithTermtestConsole(cp))
	require.NoError(t, err)

	st, err := console.State()
	require.NoError(t, err)
	assert.Equal(t, nexus4, st.Geometry())
	assert.Equal(t, "hidden", st.HUD)
	assert.Empty(t, st.Foreground)

	_, err = cp.WriteString("q")
	require.NoError(t, err)
}

func TestBackend_Integration_LaunchApplication(t *testing.T) {
	inst, err := testBackend(t).Launch(t.Context(), nexus4)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, inst.Close()) })

	d, err := inst.MainWindow().Dash()
	require.NoError(t, err)
	icon, err := d.ApplicationIcon("Camera")
	require.NoError(t, err)

	finger, err := touch.New(touch.WithSink(inst.Sink()), touch.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	require.NoError(t, finger.TapObject(icon))

	bb, err := inst.MainWindow().BottomBar()
	require.NoError(t, err)
	eventually.AssertThat(t, bb.ApplicationIsOnForeground(),
		eventually.Eventually(eventually.Equals(true), eventually.WithTimeout(testutil.PTYWaitTimeout)))
}

func TestRunner_Integration_AllCases(t *testing.T) {
	b := testBackend(t)
	device := scenario.Device{Name: "Desktop Nexus 4", Width: 768, Height: 1280, GridUnit: 18}

	r := &acceptance.Runner{
		Backend: b,
		Devices: []scenario.Device{device},
		Cases:   acceptance.Cases(),
		Options: []acceptance.Option{
			acceptance.WithLogger(b.Logger),
			acceptance.WithWait(b.Wait...),
		},
		Logger: b.Logger,
	}
	results, err := r.Run(t.Context())
	require.NoError(t, err)
	require.Len(t, results, len(acceptance.Cases()))
	for _, res := range results {
		assert.NoError(t, res.Err, res.Case)
	}
}
