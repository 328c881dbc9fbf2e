package shellsim

import (
	"time"

	"github.com/joeycumines/hudcheck/internal/touch"
)

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureHUDReveal
	gestureHUDBar
	gestureLauncherSwipe
	gestureLauncherDismiss
	gestureDashTap
)

func (k gestureKind) String() string {
	switch k {
	case gestureNone:
		return "none"
	case gestureHUDReveal:
		return "hud-reveal"
	case gestureHUDBar:
		return "hud-bar"
	case gestureLauncherSwipe:
		return "launcher-swipe"
	case gestureLauncherDismiss:
		return "launcher-dismiss"
	case gestureDashTap:
		return "dash-tap"
	default:
		return "unknown"
	}
}

// contact is the finger currently on the screen.
type contact struct {
	kind     gestureKind
	start    touch.Point
	last     touch.Point
	revealed bool
}

// isTap reports whether the contact stayed within one grid unit of where it
// started.
func (c *contact) isTap(gu int) bool {
	return abs(c.last.X-c.start.X) < gu && abs(c.last.Y-c.start.Y) < gu
}

// classify picks the gesture a press at p begins. The first match wins.
func (s *Shell) classify(p touch.Point) gestureKind {
	l := s.layout
	switch {
	case s.hud.phase == phaseShown && l.TopBar.Contains(p):
		return gestureHUDBar
	case l.LeftEdge.Contains(p):
		return gestureLauncherSwipe
	case l.BottomEdge.Contains(p) && s.foreground != "" && s.hud.phase == phaseHidden:
		return gestureHUDReveal
	case s.launcher.phase == phaseShown && !l.LauncherPanel.Contains(p):
		return gestureLauncherDismiss
	case s.foreground == "" && s.launching == "" && !s.hud.visible() && !s.launcher.visible():
		if _, ok := l.IconAt(p); ok {
			return gestureDashTap
		}
	}
	return gestureNone
}

func (s *Shell) press(p touch.Point) {
	s.contact = &contact{kind: s.classify(p), start: p, last: p}
	s.logger.Debug("[Shell] press", "point", p.String(), "gesture", s.contact.kind.String())
}

func (s *Shell) move(p touch.Point, now time.Time) {
	c := s.contact
	c.last = p
	if c.kind == gestureHUDReveal && !c.revealed && p.Y < s.layout.BottomEdge.Y {
		c.revealed = true
		s.button.animateTo(1, now)
		s.logger.Debug("[Shell] show button revealed")
	}
}

func (s *Shell) release(now time.Time) {
	c := s.contact
	s.contact = nil
	l := s.layout
	p := c.last

	s.logger.Debug("[Shell] release", "point", p.String(), "gesture", c.kind.String())

	switch c.kind {
	case gestureHUDReveal:
		if c.revealed && l.ShowButton.Contains(p) {
			s.showHUD(now)
		}
		s.button.animateTo(0, now)

	case gestureHUDBar:
		switch {
		case c.isTap(l.GridUnit):
			if l.CloseButton.Contains(c.start) && l.CloseButton.Contains(p) {
				s.hideHUD(now, "close button")
			}
		case p.Y >= l.Screen.Height/2:
			s.hideHUD(now, "dragged down")
		}

	case gestureLauncherSwipe:
		if p.X >= l.LauncherPanel.Width/2 {
			s.showLauncher(now)
		}

	case gestureLauncherDismiss:
		if c.isTap(l.GridUnit) {
			s.hideLauncher(now)
		}

	case gestureDashTap:
		if !c.isTap(l.GridUnit) {
			return
		}
		if icon, ok := l.IconAt(c.start); ok && icon.Rect.Contains(p) {
			s.launchApp(icon.Name, now)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
