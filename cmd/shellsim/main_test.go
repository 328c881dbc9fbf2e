package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/hudcheck/internal/shellsim"
	"github.com/joeycumines/hudcheck/internal/touch"
)

func TestTouchEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want touch.EventKind
		ok   bool
	}{
		{"press", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, touch.EventPress, true},
		{"motion", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, touch.EventMove, true},
		{"release", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, touch.EventRelease, true},
		{"hover", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}, 0, false},
		{"right", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonRight, Action: tea.MouseActionPress}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := touchEvent(tt.msg)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, ev.Kind)
				assert.Equal(t, touch.Point{X: 3, Y: 4}, ev.Point)
			}
		})
	}
}

func testState() shellsim.State {
	return shellsim.State{
		HUD:      "hidden",
		Launcher: "hidden",
		Width:    768,
		Height:   1280,
		GridUnit: 18,
		Apps:     shellsim.DefaultApplications,
	}
}

func TestClassify(t *testing.T) {
	st := testState()
	l := st.Layout()

	assert.Equal(t, byte('C'), classify(l, st, l.Icons[0].Rect.Center()))
	assert.Equal(t, byte(cellBottomEdge), classify(l, st, l.BottomEdge.Center()))
	assert.Equal(t, byte(cellEmpty), classify(l, st, l.ShowButton.Center()))

	st.Foreground = "Camera"
	assert.Equal(t, byte(cellApp), classify(l, st, l.Icons[0].Rect.Center()))

	st.ButtonOpacity = 0.5
	assert.Equal(t, byte(cellShowButton), classify(l, st, l.ShowButton.Center()))

	st.HUD = "shown"
	assert.Equal(t, byte(cellClose), classify(l, st, l.CloseButton.Center()))
	assert.Equal(t, byte(cellTopBar), classify(l, st, touch.Point{X: 700, Y: 1}))

	st.Launcher = "showing"
	assert.Equal(t, byte(cellLauncher), classify(l, st, l.LauncherPanel.Center()))
}

func TestPicture(t *testing.T) {
	rows := picture(testState(), 40, 40)
	require.Len(t, rows, 40)
	for _, row := range rows {
		assert.Len(t, row, 40)
	}
	assert.Contains(t, rows[39], string(rune(cellBottomEdge)))
	assert.Nil(t, picture(testState(), 0, 20))
}

func TestStyleRow(t *testing.T) {
	row := "CC  __"
	assert.Equal(t, row, stripStyles(styleRow(row)))
}

func stripStyles(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		out.WriteByte(s[i])
	}
	return out.String()
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-width", "768", "-height", "1280", "-gu", "18", "-id", "abc", "-animation", "20ms"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, o.animation)
	assert.Equal(t, "abc", o.id)

	g, err := o.geometry()
	require.NoError(t, err)
	assert.Equal(t, 768, g.Width)
	assert.Equal(t, 18, g.GridUnit)

	_, err = parseFlags([]string{"extra"}, io.Discard)
	assert.ErrorContains(t, err, "unexpected arguments")

	_, err = parseFlags([]string{"-width", "wide"}, io.Discard)
	assert.Error(t, err)
}

func TestModel_Update(t *testing.T) {
	s, err := shellsim.New(testState().Geometry(), shellsim.WithAnimation(0), shellsim.WithFrameInterval(time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	var m tea.Model = model{shell: s, logger: discardLogger()}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	center := shellsim.NewLayout(testState().Geometry(), shellsim.DefaultApplications).Icons[0].Rect.Center()
	m, _ = m.Update(tea.MouseMsg{X: center.X, Y: center.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = m.Update(tea.MouseMsg{X: center.X, Y: center.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	require.Eventually(t, func() bool {
		m, _ = m.Update(tickMsg(time.Now()))
		return m.(model).state.Foreground == "Camera"
	}, 2*time.Second, 5*time.Millisecond)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 24)
	st, err := shellsim.ParseState(lines[len(lines)-1])
	require.NoError(t, err)
	assert.Equal(t, "Camera", st.Foreground)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }
