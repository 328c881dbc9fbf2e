package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/joeycumines/hudcheck/internal/acceptance"
	"github.com/joeycumines/hudcheck/internal/config"
	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/scenario"
	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/shellsim"
	"github.com/joeycumines/hudcheck/internal/touch"
)

// ErrTestsFailed is returned by run when at least one case failed.
var ErrTestsFailed = errors.New("tests failed")

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*l = append(*l, s)
		}
	}
	return nil
}

// matrixFlags are shared by list and run.
type matrixFlags struct {
	filter       string
	scenarioFile string
	cases        stringList
}

func (m *matrixFlags) setup(fs *flag.FlagSet) {
	m.cases = nil
	fs.StringVar(&m.filter, "filter", "", "Device filter expression (overrides scenario.filter)")
	fs.StringVar(&m.scenarioFile, "scenario-file", "", "YAML device file (overrides scenario.file)")
	fs.Var(&m.cases, "case", "Case to run; repeatable or comma separated (default all)")
}

// resolve returns the harness settings with flag overrides applied, the
// selected cases and the device matrix.
func (m *matrixFlags) resolve(cfg *config.Config) (config.Harness, []acceptance.Case, []scenario.Device, error) {
	schema := config.DefaultSchema()
	h, err := config.ResolveHarness(cfg, schema)
	if err != nil {
		return h, nil, nil, err
	}
	if m.filter != "" {
		h.ScenarioFilter = m.filter
	}
	if m.scenarioFile != "" {
		h.ScenarioFile = m.scenarioFile
	}

	names := []string(m.cases)
	if len(names) == 0 {
		var fromConfig stringList
		_ = fromConfig.Set(schema.ResolveSection(cfg, "run", "cases"))
		names = fromConfig
	}
	cases, err := selectCases(names)
	if err != nil {
		return h, nil, nil, err
	}

	devices, err := scenario.Matrix(h.ScenarioFile, h.ScenarioFilter)
	if err != nil {
		return h, nil, nil, err
	}
	return h, cases, devices, nil
}

func selectCases(names []string) ([]acceptance.Case, error) {
	if len(names) == 0 {
		return acceptance.Cases(), nil
	}
	cases := make([]acceptance.Case, 0, len(names))
	for _, name := range names {
		c, ok := acceptance.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown case %q", name)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// RunCommand runs the acceptance cases over the device matrix.
type RunCommand struct {
	*BaseCommand
	config *config.Config

	matrix   matrixFlags
	backend  string
	shellsim string
	failFast bool
	color    string
	logFile  string
	logLevel string
}

// NewRunCommand creates a new run command.
func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Run the HUD acceptance cases on every device",
			"run [options]",
		),
		config: cfg,
	}
}

// SetupFlags configures the flags for the run command.
func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	c.matrix.setup(fs)
	fs.StringVar(&c.backend, "backend", "", "Shell backend: sim or pty (overrides backend)")
	fs.StringVar(&c.shellsim, "shellsim", "", "Path to the shellsim binary (overrides shellsim.path)")
	fs.BoolVar(&c.failFast, "fail-fast", false, "Stop after the first failure (overrides [run] fail-fast)")
	fs.StringVar(&c.color, "color", "", "Color mode: auto, always or never (overrides color)")
	fs.StringVar(&c.logFile, "log-file", "", "Write JSON logs to this file (overrides log.file)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log.level)")
}

// Execute runs the cases. It returns ErrTestsFailed, wrapped, if any case
// failed.
func (c *RunCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.run(ctx, stdout, stderr)
}

func (c *RunCommand) run(ctx context.Context, stdout, stderr io.Writer) error {
	schema := config.DefaultSchema()

	lc, err := resolveLogConfig(c.logFile, c.logLevel, c.config)
	if err != nil {
		return err
	}
	if lc.logFile != nil {
		defer lc.logFile.Close()
	}
	logger := lc.newLogger(stderr)

	h, cases, devices, err := c.matrix.resolve(c.config)
	if err != nil {
		return err
	}
	if c.backend != "" {
		h.Backend = c.backend
	}
	if c.shellsim != "" {
		h.ShellsimPath = c.shellsim
	}
	failFast := c.failFast
	if !failFast {
		if failFast, err = schema.ResolveBool(c.config, "run", "fail-fast"); err != nil {
			return err
		}
	}
	colorMode := c.color
	if colorMode == "" {
		colorMode = schema.Resolve(c.config, "color")
	}

	if len(devices) == 0 {
		_, _ = fmt.Fprintln(stdout, "No devices selected.")
		return nil
	}

	wait := []eventually.Option{
		eventually.WithTimeout(h.Timeout),
		eventually.WithInterval(h.Interval),
	}
	backend, err := newBackend(h, wait, logger)
	if err != nil {
		return err
	}

	report, err := newReporter(stdout, colorMode)
	if err != nil {
		return err
	}

	r := &acceptance.Runner{
		Backend: backend,
		Devices: devices,
		Cases:   cases,
		Options: []acceptance.Option{
			acceptance.WithLogger(logger),
			acceptance.WithWait(wait...),
			acceptance.WithTouch(touch.WithTapDelay(h.TapDelay), touch.WithDragSteps(h.DragSteps)),
		},
		FailFast: failFast,
		OnResult: report.result,
		Logger:   logger,
	}

	logger.Info("[Runner] starting", "backend", h.Backend, "cases", len(cases), "devices", len(devices))
	results, err := r.Run(ctx)
	report.summary(results)
	if err != nil {
		return err
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(results), ErrTestsFailed)
	}
	return nil
}

func countFailed(results []acceptance.Result) int {
	n := 0
	for _, res := range results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

// newBackend returns the shell backend named by h.Backend.
func newBackend(h config.Harness, wait []eventually.Option, logger *slog.Logger) (shell.Backend, error) {
	switch h.Backend {
	case "sim":
		return &shellsim.Backend{
			Options: []shellsim.Option{shellsim.WithAnimation(h.Animation)},
			Wait:    wait,
			Logger:  logger,
		}, nil
	case "pty":
		return newPTYBackend(h, wait, logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", h.Backend)
	}
}

// reporter prints one line per result.
type reporter struct {
	w    io.Writer
	pass lipgloss.Style
	fail lipgloss.Style
	dim  lipgloss.Style
}

// newReporter styles output for w. With mode auto, color is used only when
// w is a terminal.
func newReporter(w io.Writer, mode string) (*reporter, error) {
	renderer := lipgloss.NewRenderer(w)
	switch mode {
	case "always":
		renderer.SetColorProfile(termenv.ANSI)
	case "never":
		renderer.SetColorProfile(termenv.Ascii)
	case "auto", "":
		if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			renderer.SetColorProfile(termenv.Ascii)
		}
	default:
		return nil, fmt.Errorf("invalid color mode %q", mode)
	}

	return &reporter{
		w:    w,
		pass: renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		dim:  renderer.NewStyle().Faint(true),
	}, nil
}

func (r *reporter) result(res acceptance.Result) {
	status := r.pass.Render("PASS")
	if !res.Passed() {
		status = r.fail.Render("FAIL")
	}
	_, _ = fmt.Fprintf(r.w, "%s  %s  %s %s\n", status, res.Case, res.Device, r.dim.Render(res.Duration.Round(time.Millisecond).String()))
	if !res.Passed() {
		for _, line := range strings.Split(res.Err.Error(), "\n") {
			_, _ = fmt.Fprintf(r.w, "      %s\n", line)
		}
	}
}

func (r *reporter) summary(results []acceptance.Result) {
	failed := countFailed(results)
	line := fmt.Sprintf("%d passed, %d failed", len(results)-failed, failed)
	if failed > 0 {
		line = r.fail.Render(line)
	} else {
		line = r.pass.Render(line)
	}
	_, _ = fmt.Fprintln(r.w, line)
}
