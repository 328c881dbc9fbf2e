package shellsim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// Source is a shell the proxies can introspect and inject into. *Shell is a
// Source, as is a shell running behind a pseudo-terminal.
type Source interface {
	State() (State, error)
	Sink() touch.Sink
}

// MainWindow implements shell.MainWindow over a Source. Every read goes
// back to the source, so proxies never hold stale values.
type MainWindow struct {
	src    Source
	logger *slog.Logger
	wait   []eventually.Option
}

var _ shell.MainWindow = (*MainWindow)(nil)

// NewMainWindow returns the proxy tree for src. The wait options bound the
// built-in waits of HUD.Show and Launcher.Show. A nil logger means
// slog.Default().
func NewMainWindow(src Source, logger *slog.Logger, wait ...eventually.Option) *MainWindow {
	if logger == nil {
		logger = slog.Default()
	}
	return &MainWindow{src: src, logger: logger, wait: wait}
}

func (m *MainWindow) layout() (Layout, State, error) {
	st, err := m.src.State()
	if err != nil {
		return Layout{}, State{}, fmt.Errorf("failed to read shell state: %w", err)
	}
	return st.Layout(), st, nil
}

// View implements shell.MainWindow.
func (m *MainWindow) View() (shell.View, error) {
	if _, _, err := m.layout(); err != nil {
		return nil, err
	}
	return view{m}, nil
}

// HUD implements shell.MainWindow.
func (m *MainWindow) HUD() (shell.HUD, error) {
	if _, _, err := m.layout(); err != nil {
		return nil, err
	}
	return hud{m}, nil
}

// HUDShowButton implements shell.MainWindow.
func (m *MainWindow) HUDShowButton() (shell.HUDShowButton, error) {
	if _, _, err := m.layout(); err != nil {
		return nil, err
	}
	return showButton{m}, nil
}

// Launcher implements shell.MainWindow.
func (m *MainWindow) Launcher() (shell.Launcher, error) {
	if _, _, err := m.layout(); err != nil {
		return nil, err
	}
	return launcher{m}, nil
}

// Dash implements shell.MainWindow.
func (m *MainWindow) Dash() (shell.Dash, error) {
	if _, _, err := m.layout(); err != nil {
		return nil, err
	}
	return dash{m}, nil
}

// BottomBar implements shell.MainWindow.
func (m *MainWindow) BottomBar() (shell.BottomBar, error) {
	if _, _, err := m.layout(); err != nil {
		return nil, err
	}
	return bottomBar{m}, nil
}

// finger returns a private touch device on the source, for the proxies' own
// gestures.
func (m *MainWindow) finger() (*touch.Touch, error) {
	return touch.New(touch.WithSink(m.src.Sink()), touch.WithLogger(m.logger))
}

type view struct{ m *MainWindow }

func (v view) Geometry() (shell.Rect, error) {
	l, _, err := v.m.layout()
	if err != nil {
		return shell.Rect{}, err
	}
	return l.Screen, nil
}

type showButton struct{ m *MainWindow }

func (b showButton) Opacity() shell.Property[float64] {
	return shell.NewProperty("hudShowButton", "opacity", func() (float64, error) {
		_, st, err := b.m.layout()
		return st.ButtonOpacity, err
	})
}

func (b showButton) Geometry() (shell.Rect, error) {
	l, _, err := b.m.layout()
	if err != nil {
		return shell.Rect{}, err
	}
	return l.ShowButton, nil
}

type hud struct{ m *MainWindow }

func (h hud) Shown() shell.Property[bool] {
	return shell.NewProperty("hud", "shown", func() (bool, error) {
		_, st, err := h.m.layout()
		return st.HUDShown, err
	})
}

func (h hud) ButtonSwipeCoords(v shell.View, button shell.HUDShowButton) (touch.Swipe, error) {
	vr, err := v.Geometry()
	if err != nil {
		return touch.Swipe{}, fmt.Errorf("failed to get view geometry: %w", err)
	}
	br, err := button.Geometry()
	if err != nil {
		return touch.Swipe{}, fmt.Errorf("failed to get show button geometry: %w", err)
	}
	return shell.SwipeToButton(vr, br), nil
}

func (h hud) CloseButtonCoords() (touch.Point, error) {
	l, _, err := h.m.layout()
	if err != nil {
		return touch.Point{}, err
	}
	return l.CloseButton.Center(), nil
}

func (h hud) Show(ctx context.Context) error {
	l, st, err := h.m.layout()
	if err != nil {
		return err
	}
	if st.HUD != phaseHidden.String() && st.HUD != phaseShown.String() {
		// the reveal gesture only starts from a hidden HUD
		if err := eventually.Eventually(eventually.Equals(true), h.m.wait...).Check(ctx, h.settled()); err != nil {
			return fmt.Errorf("hud animation never settled: %w", err)
		}
		if l, st, err = h.m.layout(); err != nil {
			return err
		}
	}
	if st.HUD == phaseShown.String() {
		return nil
	}

	t, err := h.m.finger()
	if err != nil {
		return err
	}
	defer t.MaybeRelease()

	swipe := shell.SwipeToButton(l.Screen, l.ShowButton)
	if err := t.Press(swipe.Start.X, swipe.Start.Y); err != nil {
		return err
	}
	if err := t.Move(swipe.End.X, swipe.End.Y); err != nil {
		return err
	}
	opacity := showButton{h.m}.Opacity()
	if err := eventually.Eventually(eventually.Equals(1.0), h.m.wait...).Check(ctx, opacity); err != nil {
		return fmt.Errorf("show button never became visible: %w", err)
	}
	if err := t.Release(); err != nil {
		return err
	}
	if err := eventually.Eventually(eventually.Equals(true), h.m.wait...).Check(ctx, h.Shown()); err != nil {
		return fmt.Errorf("hud never shown: %w", err)
	}
	return nil
}

// settled is true while the HUD is fully hidden or fully shown.
func (h hud) settled() shell.Property[bool] {
	return shell.NewProperty("hud", "settled", func() (bool, error) {
		_, st, err := h.m.layout()
		return st.HUD == phaseHidden.String() || st.HUD == phaseShown.String(), err
	})
}

type launcher struct{ m *MainWindow }

func (l launcher) Shown() shell.Property[bool] {
	return shell.NewProperty("launcher", "shown", func() (bool, error) {
		_, st, err := l.m.layout()
		return st.LauncherShown, err
	})
}

func (l launcher) Show(ctx context.Context) error {
	lay, st, err := l.m.layout()
	if err != nil {
		return err
	}
	if st.Launcher == phaseShown.String() {
		return nil
	}

	t, err := l.m.finger()
	if err != nil {
		return err
	}
	defer t.MaybeRelease()

	y := lay.Screen.Height / 2
	endX := min(lay.LauncherPanel.Right(), lay.Screen.Right()-1)
	if err := t.Drag(lay.LeftEdge.Center().X, y, endX, y); err != nil {
		return err
	}
	if err := eventually.Eventually(eventually.Equals(true), l.m.wait...).Check(ctx, l.Shown()); err != nil {
		return fmt.Errorf("launcher never shown: %w", err)
	}
	return nil
}

type dash struct{ m *MainWindow }

func (d dash) ApplicationIcon(name string) (shell.Icon, error) {
	l, _, err := d.m.layout()
	if err != nil {
		return nil, err
	}
	if _, ok := l.Icon(name); !ok {
		return nil, fmt.Errorf("%w: %q", shell.ErrNoSuchIcon, name)
	}
	return icon{m: d.m, name: name}, nil
}

// icon re-resolves its position on every Center call.
type icon struct {
	m    *MainWindow
	name string
}

func (i icon) Name() string { return i.name }

func (i icon) Center() (touch.Point, error) {
	l, _, err := i.m.layout()
	if err != nil {
		return touch.Point{}, err
	}
	slot, ok := l.Icon(i.name)
	if !ok {
		return touch.Point{}, fmt.Errorf("%w: %q", shell.ErrNoSuchIcon, i.name)
	}
	return slot.Rect.Center(), nil
}

type bottomBar struct{ m *MainWindow }

func (b bottomBar) ApplicationIsOnForeground() shell.Property[bool] {
	return shell.NewProperty("bottomBar", "applicationIsOnForeground", func() (bool, error) {
		_, st, err := b.m.layout()
		return st.Foreground != "", err
	})
}
