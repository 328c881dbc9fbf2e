// Package shell declares the page-object API through which acceptance
// scenarios see the shell under test: the main window and the HUD, HUD show
// button, launcher, dash and bottom bar it contains.
//
// Everything here is an interface or a plain value. Backends (the in-process
// reference shell, or a shell running in a pseudo-terminal) provide the
// implementations; scenarios only ever talk to these types.
package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeycumines/hudcheck/internal/touch"
)

// ErrNoSuchIcon is returned by Dash.ApplicationIcon for an unknown
// application.
var ErrNoSuchIcon = errors.New("shell: no such application icon")

// Geometry is the emulated screen of a shell instance.
type Geometry struct {
	Width    int
	Height   int
	GridUnit int
}

// Validate reports whether the geometry is usable.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", g.Width, g.Height)
	}
	if g.GridUnit <= 0 {
		return fmt.Errorf("invalid grid unit %d", g.GridUnit)
	}
	return nil
}

// Rect is an axis-aligned screen rectangle. X and Y are the top-left corner.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the middle of the rectangle, rounded down.
func (r Rect) Center() touch.Point {
	return touch.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p touch.Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Right returns the first column right of the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Property is a named observable property of a proxy object. It satisfies
// eventually.Observable.
type Property[T any] struct {
	owner string
	name  string
	get   func() (T, error)
}

// NewProperty binds a getter to an owner and property name.
func NewProperty[T any](owner, name string, get func() (T, error)) Property[T] {
	return Property[T]{owner: owner, name: name, get: get}
}

// Name returns the property name.
func (p Property[T]) Name() string { return p.name }

// Describe returns "owner.name".
func (p Property[T]) Describe() string { return p.owner + "." + p.name }

// Get reads the current value.
func (p Property[T]) Get() (T, error) { return p.get() }

// MainWindow is the root of the proxy tree.
type MainWindow interface {
	View() (View, error)
	HUD() (HUD, error)
	HUDShowButton() (HUDShowButton, error)
	Launcher() (Launcher, error)
	Dash() (Dash, error)
	BottomBar() (BottomBar, error)
}

// View is the shell's top-level view.
type View interface {
	Geometry() (Rect, error)
}

// HUD is the gesture-revealed overlay panel.
type HUD interface {
	Shown() Property[bool]
	// ButtonSwipeCoords returns the swipe that reveals and then hits the
	// show button: from the bottom edge of view, straight up to the
	// button's centre.
	ButtonSwipeCoords(view View, button HUDShowButton) (touch.Swipe, error)
	// CloseButtonCoords returns the centre of the close button in the HUD
	// top bar.
	CloseButtonCoords() (touch.Point, error)
	// Show reveals the HUD with the swipe gesture and waits until it is
	// shown.
	Show(ctx context.Context) error
}

// HUDShowButton is the affordance revealed by swiping up from the bottom
// edge.
type HUDShowButton interface {
	Opacity() Property[float64]
	Geometry() (Rect, error)
}

// Launcher is the left-edge application launcher.
type Launcher interface {
	Shown() Property[bool]
	// Show swipes the launcher in from the left edge and waits until it is
	// shown.
	Show(ctx context.Context) error
}

// Dash is the application grid shown when no application is in the
// foreground.
type Dash interface {
	// ApplicationIcon looks up the icon of the named application. It fails
	// with ErrNoSuchIcon if the dash does not expose one.
	ApplicationIcon(name string) (Icon, error)
}

// Icon is a tappable application icon.
type Icon interface {
	touch.Locatable
	Name() string
}

// BottomBar tracks the foreground application.
type BottomBar interface {
	ApplicationIsOnForeground() Property[bool]
}

// Instance is one running shell.
type Instance interface {
	ID() string
	MainWindow() MainWindow
	// Sink is where a test's touch device delivers events.
	Sink() touch.Sink
	Close() error
}

// Backend starts shell instances.
type Backend interface {
	Launch(ctx context.Context, geometry Geometry) (Instance, error)
}

// SwipeToButton returns the reveal gesture for the HUD show button: from the
// bottom row of view, horizontally centred, up to the button's centre.
func SwipeToButton(view, button Rect) touch.Swipe {
	x := view.X + view.Width/2
	return touch.Swipe{
		Start: touch.Point{X: x, Y: view.Bottom() - 1},
		End:   touch.Point{X: x, Y: button.Center().Y},
	}
}
