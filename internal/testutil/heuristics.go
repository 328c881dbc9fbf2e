// Package testutil holds the timing constants and small helpers shared by the
// hudcheck test suites.
package testutil

import "time"

// Animation is the shell animation duration used by in-process tests.
//
// Rationale:
//   - Long enough that a property read straight after an input still sees
//     the old value, so tests exercise the wait rather than a race
//   - Short enough that a full case stays well under a second
const Animation = 20 * time.Millisecond

// FrameInterval is the animation loop period used by in-process tests. It
// must stay well below Animation or animations settle in one frame.
const FrameInterval = 5 * time.Millisecond

// WaitTimeout bounds every Eventually in in-process tests.
//
// Rationale:
//   - 100x Animation absorbs scheduler stalls on loaded CI machines
//   - A genuinely broken gesture still fails in seconds, not the 10s default
const WaitTimeout = 2 * time.Second

// WaitInterval is the Eventually sample period in in-process tests.
const WaitInterval = 5 * time.Millisecond

// PTYAnimation is the shell animation duration for pseudo-terminal tests.
//
// Rationale:
//   - The TUI redraws every 50ms, so a shorter animation can complete
//     between two frames and intermediate phases are never drawn
const PTYAnimation = 50 * time.Millisecond

// PTYWaitTimeout bounds every Eventually in pseudo-terminal tests.
//
// Rationale:
//   - Covers process start, the redraw period and the PTY round-trip
//   - Measured Linux round-trip for a touch event to reach the state line is
//     under 100ms, so 5s leaves a wide margin
const PTYWaitTimeout = 5 * time.Second

// PTYWaitInterval is the Eventually sample period in pseudo-terminal tests.
// Every sample re-parses the whole terminal output, so it is coarser than
// WaitInterval.
const PTYWaitInterval = 20 * time.Millisecond
