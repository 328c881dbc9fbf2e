package shellsim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joeycumines/hudcheck/internal/shell"
)

// StatePrefix starts every encoded state line.
const StatePrefix = "state "

// stateEnd is the last field of every encoded state line, so a reader of a
// partially drawn line can tell it is incomplete.
const stateEnd = "$"

// State is a snapshot of a shell. Its String form is a single line of
// space separated key=value fields, and ParseState reads it back.
type State struct {
	// HUD is the HUD's animation phase: hidden, showing, shown or hiding.
	HUD string
	// HUDShown is true once the HUD has finished appearing, and stays true
	// until it has finished disappearing.
	HUDShown      bool
	ButtonOpacity float64
	Launcher      string
	LauncherShown bool
	// Foreground is the application in the foreground, if any.
	Foreground string
	// Contact reports a finger on the screen.
	Contact  bool
	Width    int
	Height   int
	GridUnit int
	Apps     []string
}

// Geometry returns the screen the state was taken on.
func (st State) Geometry() shell.Geometry {
	return shell.Geometry{Width: st.Width, Height: st.Height, GridUnit: st.GridUnit}
}

// Layout returns the element positions for the state's screen.
func (st State) Layout() Layout {
	return NewLayout(st.Geometry(), st.Apps)
}

// String implements fmt.Stringer.
func (st State) String() string {
	app := st.Foreground
	if app == "" {
		app = "-"
	}
	return fmt.Sprintf("%shud=%s shown=%t opacity=%.2f launcher=%s launcherShown=%t app=%s contact=%t w=%d h=%d gu=%d apps=%s %s",
		StatePrefix,
		st.HUD,
		st.HUDShown,
		st.ButtonOpacity,
		st.Launcher,
		st.LauncherShown,
		app,
		st.Contact,
		st.Width,
		st.Height,
		st.GridUnit,
		strings.Join(st.Apps, ","),
		stateEnd,
	)
}

// ErrTruncatedState is returned by ParseState for a line that stops short
// of its end marker.
var ErrTruncatedState = errors.New("shellsim: truncated state line")

// ParseState decodes a line produced by State.String. Unknown fields are
// ignored.
func ParseState(line string) (State, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), StatePrefix)
	if !ok {
		return State{}, fmt.Errorf("not a state line: %q", line)
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[len(fields)-1] != stateEnd {
		return State{}, ErrTruncatedState
	}

	var st State
	for _, field := range fields[:len(fields)-1] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return State{}, fmt.Errorf("malformed state field %q", field)
		}

		var err error
		switch key {
		case "hud":
			if _, ok := parsePhase(value); !ok {
				err = fmt.Errorf("unknown phase %q", value)
			}
			st.HUD = value
		case "shown":
			st.HUDShown, err = strconv.ParseBool(value)
		case "opacity":
			st.ButtonOpacity, err = strconv.ParseFloat(value, 64)
		case "launcher":
			if _, ok := parsePhase(value); !ok {
				err = fmt.Errorf("unknown phase %q", value)
			}
			st.Launcher = value
		case "launcherShown":
			st.LauncherShown, err = strconv.ParseBool(value)
		case "app":
			if value != "-" {
				st.Foreground = value
			}
		case "contact":
			st.Contact, err = strconv.ParseBool(value)
		case "w":
			st.Width, err = strconv.Atoi(value)
		case "h":
			st.Height, err = strconv.Atoi(value)
		case "gu":
			st.GridUnit, err = strconv.Atoi(value)
		case "apps":
			if value != "" {
				st.Apps = strings.Split(value, ",")
			}
		}
		if err != nil {
			return State{}, fmt.Errorf("invalid state field %s: %w", key, err)
		}
	}

	if err := st.Geometry().Validate(); err != nil {
		return State{}, fmt.Errorf("invalid state line: %w", err)
	}

	return st, nil
}
