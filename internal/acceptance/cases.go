package acceptance

import (
	"context"

	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// Case is one acceptance test. Body runs after the test application is in
// the foreground.
type Case struct {
	Name string
	Doc  string
	Body func(ctx context.Context, f *Fixture) error
}

// Cases returns every acceptance case, in run order.
func Cases() []Case {
	return []Case{
		{
			Name: "show_hud_button_appears",
			Doc:  "Swiping up from the bottom edge without releasing reveals the HUD show button.",
			Body: showHUDButtonAppears,
		},
		{
			Name: "show_hud_appears",
			Doc:  "Releasing the swipe on the show button shows the HUD, and not before.",
			Body: showHUDAppears,
		},
		{
			Name: "hide_hud_click",
			Doc:  "Tapping the HUD close button hides the HUD.",
			Body: hideHUDClick,
		},
		{
			Name: "hide_hud_dragging",
			Doc:  "Dragging the HUD top bar down to mid-screen hides the HUD.",
			Body: hideHUDDragging,
		},
		{
			Name: "launcher_hides_hud",
			Doc:  "Showing the launcher while the HUD is shown hides the HUD.",
			Body: launcherHidesHUD,
		},
	}
}

// Lookup returns the case with the given name.
func Lookup(name string) (Case, bool) {
	for _, c := range Cases() {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// buttonSwipe computes the HUD reveal gesture from the live proxies.
func buttonSwipe(mw shell.MainWindow) (shell.HUD, touch.Swipe, error) {
	view, err := mw.View()
	if err != nil {
		return nil, touch.Swipe{}, err
	}
	hud, err := mw.HUD()
	if err != nil {
		return nil, touch.Swipe{}, err
	}
	button, err := mw.HUDShowButton()
	if err != nil {
		return nil, touch.Swipe{}, err
	}
	swipe, err := hud.ButtonSwipeCoords(view, button)
	if err != nil {
		return nil, touch.Swipe{}, err
	}
	return hud, swipe, nil
}

// showHUDButtonAppears leaves the finger down; the fixture's guard lifts it.
func showHUDButtonAppears(ctx context.Context, f *Fixture) error {
	mw := f.MainWindow()
	_, swipe, err := buttonSwipe(mw)
	if err != nil {
		return err
	}

	if err := f.Touch.Press(swipe.Start.X, swipe.Start.Y); err != nil {
		return err
	}
	if err := f.Touch.Move(swipe.End.X, swipe.End.Y); err != nil {
		return err
	}

	button, err := mw.HUDShowButton()
	if err != nil {
		return err
	}
	return Expect(ctx, f, button.Opacity(), eventually.Equals(1.0))
}

func showHUDAppears(ctx context.Context, f *Fixture) error {
	hud, swipe, err := buttonSwipe(f.MainWindow())
	if err != nil {
		return err
	}

	if err := f.Touch.Press(swipe.Start.X, swipe.Start.Y); err != nil {
		return err
	}
	if err := f.Touch.Move(swipe.End.X, swipe.End.Y); err != nil {
		return err
	}

	// still held
	if err := Expect(ctx, f, hud.Shown(), eventually.Equals(false)); err != nil {
		return err
	}
	button, err := f.MainWindow().HUDShowButton()
	if err != nil {
		return err
	}
	if err := Expect(ctx, f, button.Opacity(), eventually.Equals(1.0)); err != nil {
		return err
	}

	if err := f.Touch.Release(); err != nil {
		return err
	}
	return Expect(ctx, f, hud.Shown(), eventually.Equals(true))
}

func hideHUDClick(ctx context.Context, f *Fixture) error {
	hud, err := f.MainWindow().HUD()
	if err != nil {
		return err
	}
	if err := hud.Show(ctx); err != nil {
		return err
	}

	p, err := hud.CloseButtonCoords()
	if err != nil {
		return err
	}
	if err := f.Touch.Tap(p.X, p.Y); err != nil {
		return err
	}
	return Expect(ctx, f, hud.Shown(), eventually.Equals(false))
}

func hideHUDDragging(ctx context.Context, f *Fixture) error {
	mw := f.MainWindow()
	hud, err := mw.HUD()
	if err != nil {
		return err
	}
	if err := hud.Show(ctx); err != nil {
		return err
	}

	p, err := hud.CloseButtonCoords()
	if err != nil {
		return err
	}
	view, err := mw.View()
	if err != nil {
		return err
	}
	r, err := view.Geometry()
	if err != nil {
		return err
	}
	if err := f.Touch.Drag(p.X, p.Y, p.X, r.Y+r.Height/2); err != nil {
		return err
	}
	return Expect(ctx, f, hud.Shown(), eventually.Equals(false))
}

func launcherHidesHUD(ctx context.Context, f *Fixture) error {
	mw := f.MainWindow()
	hud, err := mw.HUD()
	if err != nil {
		return err
	}
	if err := hud.Show(ctx); err != nil {
		return err
	}

	launcher, err := mw.Launcher()
	if err != nil {
		return err
	}
	if err := launcher.Show(ctx); err != nil {
		return err
	}
	return Expect(ctx, f, hud.Shown(), eventually.Equals(false))
}
