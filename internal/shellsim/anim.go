package shellsim

import "time"

// animation moves a value linearly toward a target over a fixed duration.
type animation struct {
	duration time.Duration
	from     float64
	to       float64
	value    float64
	start    time.Time
}

func (a *animation) animateTo(to float64, now time.Time) {
	if a.to == to {
		return
	}
	a.from = a.value
	a.to = to
	a.start = now
}

// step advances the animation and reports whether it has settled. A settled
// value is exactly the target.
func (a *animation) step(now time.Time) bool {
	if a.value == a.to {
		return true
	}
	if a.duration <= 0 {
		a.value = a.to
		return true
	}
	f := float64(now.Sub(a.start)) / float64(a.duration)
	if f >= 1 {
		a.value = a.to
		return true
	}
	if f < 0 {
		f = 0
	}
	a.value = a.from + (a.to-a.from)*f
	return false
}

type phase int

const (
	phaseHidden phase = iota
	phaseShowing
	phaseShown
	phaseHiding
)

func (p phase) String() string {
	switch p {
	case phaseHidden:
		return "hidden"
	case phaseShowing:
		return "showing"
	case phaseShown:
		return "shown"
	case phaseHiding:
		return "hiding"
	default:
		return "unknown"
	}
}

func parsePhase(s string) (phase, bool) {
	for p := phaseHidden; p <= phaseHiding; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return phaseHidden, false
}

// overlay is an animated panel. Its "shown" flag only flips once the
// animation in either direction completes: a panel hidden before it finished
// appearing never reports shown.
type overlay struct {
	phase    phase
	progress animation
	wasShown bool
}

func (o *overlay) show(now time.Time) {
	if o.phase == phaseShowing || o.phase == phaseShown {
		return
	}
	o.phase = phaseShowing
	o.progress.animateTo(1, now)
}

func (o *overlay) hide(now time.Time) {
	if o.phase == phaseHiding || o.phase == phaseHidden {
		return
	}
	o.phase = phaseHiding
	o.progress.animateTo(0, now)
}

// step advances the animation and reports a phase change.
func (o *overlay) step(now time.Time) bool {
	if !o.progress.step(now) {
		return false
	}
	switch o.phase {
	case phaseShowing:
		o.phase = phaseShown
		o.wasShown = true
		return true
	case phaseHiding:
		o.phase = phaseHidden
		o.wasShown = false
		return true
	}
	return false
}

func (o *overlay) shown() bool {
	return o.wasShown
}

func (o *overlay) visible() bool {
	return o.phase != phaseHidden
}
