package config

import (
	"strings"
	"testing"
	"time"
)

func TestResolve_Precedence(t *testing.T) {
	s := DefaultSchema()
	c := NewConfig()

	if got := s.Resolve(c, "backend"); got != "sim" {
		t.Errorf("default: got %q", got)
	}

	c.SetGlobalOption("backend", "pty")
	if got := s.Resolve(c, "backend"); got != "pty" {
		t.Errorf("config: got %q", got)
	}

	t.Setenv("HUDCHECK_BACKEND", "sim")
	if got := s.Resolve(c, "backend"); got != "sim" {
		t.Errorf("env: got %q", got)
	}

	if got := s.Resolve(c, "no.such.key"); got != "" {
		t.Errorf("unknown: got %q", got)
	}
}

func TestResolveSection(t *testing.T) {
	s := DefaultSchema()
	c := NewConfig()
	c.SetGlobalOption("touch.drag-steps", "4")
	c.SetSectionOption("run", "touch.drag-steps", "8")

	if got := s.ResolveSection(c, "run", "touch.drag-steps"); got != "8" {
		t.Errorf("section: got %q", got)
	}
	if got := s.ResolveSection(c, "run", "fail-fast"); got != "false" {
		t.Errorf("section default: got %q", got)
	}

	b, err := s.ResolveBool(c, "run", "fail-fast")
	if err != nil || b {
		t.Errorf("ResolveBool = %v, %v", b, err)
	}
}

func TestResolveTyped(t *testing.T) {
	s := DefaultSchema()
	c := NewConfig()
	c.SetGlobalOption("eventually.interval", "250ms")
	c.SetGlobalOption("touch.drag-steps", "x")

	d, err := s.ResolveDuration(c, "eventually.interval")
	if err != nil || d != 250*time.Millisecond {
		t.Errorf("ResolveDuration = %v, %v", d, err)
	}

	if _, err := s.ResolveInt(c, "touch.drag-steps"); err == nil {
		t.Error("expected int parse error")
	}
}

func TestResolveHarness(t *testing.T) {
	s := DefaultSchema()

	h, err := ResolveHarness(NewConfig(), s)
	if err != nil {
		t.Fatalf("ResolveHarness returned error: %v", err)
	}
	want := Harness{
		Timeout:   10 * time.Second,
		Interval:  100 * time.Millisecond,
		TapDelay:  30 * time.Millisecond,
		DragSteps: 10,
		Animation: 250 * time.Millisecond,
		Backend:   "sim",
	}
	if h != want {
		t.Errorf("got %+v, want %+v", h, want)
	}

	c := NewConfig()
	c.SetGlobalOption("backend", "x11")
	c.SetGlobalOption("eventually.timeout", "soon")
	_, err = ResolveHarness(c, s)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"unknown backend", "eventually.timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestFormatHelp(t *testing.T) {
	help := DefaultSchema().FormatHelp()
	for _, want := range []string{
		"Global Options:",
		"eventually.timeout",
		"env: HUDCHECK_TIMEOUT",
		"one of: sim|pty",
		"[run] Options:",
		"fail-fast",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
