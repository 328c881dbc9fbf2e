// Package shellsim is a reference model of the shell under test: a bottom
// edge swipe that reveals the HUD show button, the HUD with its close button
// and drag handle, the left-edge launcher and the application dash.
//
// A Shell is a touch.Sink, so a touch.Touch drives it directly, and it
// publishes its state as a State value that the proxies in this package turn
// into the shell package's page-object API. The same State is printed as a
// single line by cmd/shellsim, which is how the pseudo-terminal backend reads
// it back.
package shellsim

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joeycumines/hudcheck/internal/shell"
	"github.com/joeycumines/hudcheck/internal/touch"
)

var (
	// ErrClosed is returned once the shell has been closed.
	ErrClosed = errors.New("shellsim: shell closed")
	// ErrContactActive is returned for a press while a finger is already
	// down.
	ErrContactActive = errors.New("shellsim: contact already active")
	// ErrNoContact is returned for a move or release with no finger down.
	ErrNoContact = errors.New("shellsim: no active contact")
)

// Shell is one running instance of the reference shell.
type Shell struct {
	id       string
	logger   *slog.Logger
	geometry shell.Geometry
	layout   Layout
	apps     []string

	mu         sync.Mutex
	hud        overlay
	launcher   overlay
	button     animation
	launch     animation
	launching  string
	foreground string
	contact    *contact
	closed     bool

	stop chan struct{}
	done chan struct{}
}

// New starts a shell on a screen of the given geometry. Close must be called
// to stop its animation loop.
func New(geometry shell.Geometry, options ...Option) (*Shell, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range options {
		if err := opt.applyOption(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}

	s := &Shell{
		id:       cfg.id,
		geometry: geometry,
		layout:   NewLayout(geometry, cfg.apps),
		apps:     cfg.apps,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.logger = cfg.logger.With("shell", s.id)
	s.hud.progress.duration = cfg.animation
	s.launcher.progress.duration = cfg.animation
	s.button.duration = cfg.animation
	s.launch.duration = cfg.animation

	go s.run(cfg.frame)

	s.logger.Info("[Shell] started",
		"width", geometry.Width,
		"height", geometry.Height,
		"gridUnit", geometry.GridUnit)

	return s, nil
}

// ID returns the unique id of this instance.
func (s *Shell) ID() string { return s.id }

// Geometry returns the emulated screen.
func (s *Shell) Geometry() shell.Geometry { return s.geometry }

// Layout returns the element positions hit-tested by the shell.
func (s *Shell) Layout() Layout { return s.layout }

// Sink returns s.
func (s *Shell) Sink() touch.Sink { return s }

// Close stops the animation loop. It is safe to call more than once.
func (s *Shell) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stop)
	<-s.done

	s.logger.Info("[Shell] closed")
	return nil
}

// State returns a snapshot of the shell.
func (s *Shell) State() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return State{}, ErrClosed
	}
	s.advance(time.Now())

	return State{
		HUD:           s.hud.phase.String(),
		HUDShown:      s.hud.shown(),
		ButtonOpacity: s.button.value,
		Launcher:      s.launcher.phase.String(),
		LauncherShown: s.launcher.shown(),
		Foreground:    s.foreground,
		Contact:       s.contact != nil,
		Width:         s.geometry.Width,
		Height:        s.geometry.Height,
		GridUnit:      s.geometry.GridUnit,
		Apps:          append([]string(nil), s.apps...),
	}, nil
}

// Inject delivers one touch event. Events are hit-tested against the layout
// and drive the gesture state machine.
func (s *Shell) Inject(ev touch.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	now := time.Now()
	s.advance(now)

	switch ev.Kind {
	case touch.EventPress:
		if s.contact != nil {
			return ErrContactActive
		}
		s.press(ev.Point)
	case touch.EventMove:
		if s.contact == nil {
			return ErrNoContact
		}
		s.move(ev.Point, now)
	case touch.EventRelease:
		if s.contact == nil {
			return ErrNoContact
		}
		s.move(ev.Point, now)
		s.release(now)
	default:
		return fmt.Errorf("unknown event kind %v", ev.Kind)
	}

	return nil
}

func (s *Shell) run(frame time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.advance(now)
			s.mu.Unlock()
		}
	}
}

// advance steps every animation to now. Callers hold mu.
func (s *Shell) advance(now time.Time) {
	if s.hud.step(now) {
		s.logger.Debug("[Shell] hud", "phase", s.hud.phase.String())
	}
	if s.launcher.step(now) {
		s.logger.Debug("[Shell] launcher", "phase", s.launcher.phase.String())
	}
	s.button.step(now)
	if s.launching != "" && s.launch.step(now) {
		s.foreground = s.launching
		s.launching = ""
		s.logger.Info("[Shell] application in foreground", "app", s.foreground)
	}
}

func (s *Shell) showHUD(now time.Time) {
	s.launcher.hide(now)
	s.hud.show(now)
	s.logger.Debug("[Shell] showing hud")
}

func (s *Shell) hideHUD(now time.Time, reason string) {
	s.hud.hide(now)
	s.logger.Debug("[Shell] hiding hud", "reason", reason)
}

func (s *Shell) showLauncher(now time.Time) {
	s.hud.hide(now)
	s.launcher.show(now)
	s.logger.Debug("[Shell] showing launcher")
}

func (s *Shell) hideLauncher(now time.Time) {
	s.launcher.hide(now)
	s.logger.Debug("[Shell] hiding launcher")
}

func (s *Shell) launchApp(name string, now time.Time) {
	s.launching = name
	s.launch.value = 0
	s.launch.to = 0
	s.launch.animateTo(1, now)
	s.logger.Info("[Shell] launching application", "app", name)
}
