// Command shellsim hosts the reference shell in a terminal. Mouse input is
// treated as touch input at the device geometry's pixel coordinates, and the
// last line of the screen is the shell's state, which the pseudo-terminal
// backend reads back.
//
// Run without geometry flags it sizes the shell to the terminal, with one
// pixel per cell.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/shellsim"
	"github.com/joeycumines/hudcheck/internal/touch"
)

const refreshInterval = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	shell  *shellsim.Shell
	logger *slog.Logger
	state  shellsim.State
	cols   int
	rows   int
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height

	case tea.MouseMsg:
		if ev, ok := touchEvent(msg); ok {
			if err := m.shell.Inject(ev); err != nil {
				m.logger.Warn("[Shell] rejected touch event", "kind", ev.Kind.String(), "error", err)
			}
		}
		m.refresh()

	case tickMsg:
		m.refresh()
		return m, tick()
	}

	return m, nil
}

func (m *model) refresh() {
	if st, err := m.shell.State(); err == nil {
		m.state = st
	}
}

// touchEvent maps left button mouse reports onto touch events. Coordinates
// are used as is.
func touchEvent(msg tea.MouseMsg) (touch.Event, bool) {
	if msg.Button != tea.MouseButtonLeft {
		return touch.Event{}, false
	}
	ev := touch.Event{Point: touch.Point{X: msg.X, Y: msg.Y}}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Kind = touch.EventPress
	case tea.MouseActionMotion:
		ev.Kind = touch.EventMove
	case tea.MouseActionRelease:
		ev.Kind = touch.EventRelease
	default:
		return touch.Event{}, false
	}
	return ev, true
}

func (m model) View() string {
	if m.state.Width == 0 {
		return ""
	}

	app := m.state.Foreground
	if app == "" {
		app = "dash"
	}
	lines := []string{titleStyle.Render(fmt.Sprintf("shellsim %s  %dx%d  %s", m.shell.ID(), m.state.Width, m.state.Height, app))}
	for _, row := range picture(m.state, m.cols, m.rows-2) {
		lines = append(lines, styleRow(row))
	}
	lines = append(lines, m.state.String())
	return strings.Join(lines, "\n")
}

type options struct {
	width     int
	height    int
	gridUnit  int
	id        string
	animation time.Duration
	apps      string
	logFile   string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("shellsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.width, "width", 0, "screen width in pixels (default: terminal width)")
	fs.IntVar(&o.height, "height", 0, "screen height in pixels (default: terminal height)")
	fs.IntVar(&o.gridUnit, "gu", 1, "grid unit in pixels")
	fs.StringVar(&o.id, "id", "", "instance id (default: random)")
	fs.DurationVar(&o.animation, "animation", shellsim.DefaultAnimation, "duration of every animation")
	fs.StringVar(&o.apps, "apps", "", "comma separated dash applications")
	fs.StringVar(&o.logFile, "log", "", "write JSON logs to this file")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

func (o options) geometry() (shell.Geometry, error) {
	g := shell.Geometry{Width: o.width, Height: o.height, GridUnit: o.gridUnit}
	if g.Width == 0 || g.Height == 0 {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return g, fmt.Errorf("no geometry given and terminal size unavailable: %w", err)
		}
		if g.Width == 0 {
			g.Width = cols
		}
		if g.Height == 0 {
			g.Height = rows - 1
		}
	}
	return g, g.Validate()
}

func (o options) logger() (*slog.Logger, func() error) {
	if o.logFile == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }
	}
	w := &lumberjack.Logger{Filename: o.logFile, MaxSize: 10, MaxBackups: 3}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})), w.Close
}

func run(args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	g, err := o.geometry()
	if err != nil {
		return err
	}

	logger, closeLog := o.logger()
	defer closeLog()

	shellOpts := []shellsim.Option{
		shellsim.WithLogger(logger),
		shellsim.WithAnimation(o.animation),
	}
	if o.id != "" {
		shellOpts = append(shellOpts, shellsim.WithID(o.id))
	}
	if o.apps != "" {
		shellOpts = append(shellOpts, shellsim.WithApplications(strings.Split(o.apps, ",")...))
	}

	s, err := shellsim.New(g, shellOpts...)
	if err != nil {
		return err
	}
	defer s.Close()

	m := model{shell: s, logger: logger}
	m.refresh()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "shellsim: %v\n", err)
		os.Exit(1)
	}
}
