package shellsim

import (
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// Sizes in grid units.
const (
	edgeUnits         = 2
	buttonWidthUnits  = 8
	buttonHeightUnits = 4
	topBarUnits       = 3
	closeWidthUnits   = 6
	launcherUnits     = 10
	iconWidthUnits    = 12
	iconHeightUnits   = 5
	dashTopUnits      = 4
)

// DefaultApplications are the icons on the dash.
var DefaultApplications = []string{"Camera", "Gallery", "Browser", "Messaging", "Phone", "Music"}

// IconSlot is an application icon's position in the dash grid.
type IconSlot struct {
	Name string
	Rect shell.Rect
}

// Layout is the position of every interactive element for a given screen.
// Both backends derive it from the same geometry, so a proxy outside the
// shell process computes exactly the rectangles the shell hit-tests against.
type Layout struct {
	GridUnit int
	Screen   shell.Rect
	// BottomEdge is the strip a HUD reveal swipe starts in.
	BottomEdge shell.Rect
	// ShowButton sits centred just above BottomEdge.
	ShowButton shell.Rect
	// TopBar is the HUD's drag handle; CloseButton lies inside it.
	TopBar      shell.Rect
	CloseButton shell.Rect
	// LeftEdge is the strip a launcher swipe starts in.
	LeftEdge      shell.Rect
	LauncherPanel shell.Rect
	Icons         []IconSlot
}

// NewLayout lays out a screen of the given geometry.
func NewLayout(g shell.Geometry, apps []string) Layout {
	gu := g.GridUnit
	w, h := g.Width, g.Height
	edge := edgeUnits * gu

	l := Layout{
		GridUnit:   gu,
		Screen:     shell.Rect{Width: w, Height: h},
		BottomEdge: shell.Rect{Y: h - edge, Width: w, Height: edge},
		TopBar:     shell.Rect{Width: w, Height: topBarUnits * gu},
		CloseButton: shell.Rect{
			X:      gu,
			Width:  closeWidthUnits * gu,
			Height: topBarUnits * gu,
		},
		LeftEdge:      shell.Rect{Width: edge, Height: h},
		LauncherPanel: shell.Rect{Width: launcherUnits * gu, Height: h},
	}

	bw, bh := buttonWidthUnits*gu, buttonHeightUnits*gu
	l.ShowButton = shell.Rect{
		X:      w/2 - bw/2,
		Y:      h - edge - gu - bh,
		Width:  bw,
		Height: bh,
	}

	iw, ih := iconWidthUnits*gu, iconHeightUnits*gu
	stride := iw + gu
	cols := max(1, (w-gu)/stride)
	l.Icons = make([]IconSlot, 0, len(apps))
	for i, name := range apps {
		col, row := i%cols, i/cols
		l.Icons = append(l.Icons, IconSlot{
			Name: name,
			Rect: shell.Rect{
				X:      gu + col*stride,
				Y:      dashTopUnits*gu + row*(ih+gu),
				Width:  iw,
				Height: ih,
			},
		})
	}

	return l
}

// Icon returns the named icon, provided it lies entirely on screen.
func (l Layout) Icon(name string) (IconSlot, bool) {
	for _, icon := range l.Icons {
		if icon.Name == name {
			if icon.Rect.Right() > l.Screen.Right() || icon.Rect.Bottom() > l.Screen.Bottom() {
				return IconSlot{}, false
			}
			return icon, true
		}
	}
	return IconSlot{}, false
}

// IconAt returns the on-screen icon under p.
func (l Layout) IconAt(p touch.Point) (IconSlot, bool) {
	for _, icon := range l.Icons {
		if icon.Rect.Contains(p) {
			return l.Icon(icon.Name)
		}
	}
	return IconSlot{}, false
}
