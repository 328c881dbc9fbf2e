package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/hudcheck/internal/config"
)

func TestHelpCommandExecute(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewVersionCommand("1.0.0"))
	registry.Register(NewRunCommand(config.NewConfig()))
	cmd := NewHelpCommand(registry)
	registry.Register(cmd)

	t.Run("general help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		output := stdout.String()
		for _, part := range []string{"hudcheck", "Usage: hudcheck <command>", "Available commands:", "run", "version"} {
			if !strings.Contains(output, part) {
				t.Errorf("Expected output to contain %q. Output: %s", part, output)
			}
		}
	})

	t.Run("command help includes flags", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if err := cmd.Execute([]string{"run"}, &stdout, &stderr); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		output := stdout.String()
		for _, part := range []string{"Command: run", "Usage: hudcheck run [options]", "Flags:", "-backend", "-case"} {
			if !strings.Contains(output, part) {
				t.Errorf("Expected output to contain %q. Output: %s", part, output)
			}
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if err := cmd.Execute([]string{"nope"}, &stdout, &stderr); err == nil {
			t.Fatal("Expected error for unknown command")
		}
		if !strings.Contains(stderr.String(), "Unknown command: nope") {
			t.Errorf("Expected unknown command message, got %q", stderr.String())
		}
	})
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	var stdout, stderr bytes.Buffer
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if stdout.String() != "hudcheck version 1.2.3\n" {
		t.Errorf("Unexpected output %q", stdout.String())
	}
	if err := cmd.Execute([]string{"extra"}, &stdout, &stderr); err == nil {
		t.Error("Expected error for unexpected arguments")
	}
}

func TestConfigCommand_Get(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetGlobalOption("touch.drag-steps", "4")
	cmd := NewConfigCommand(cfg, "")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"touch.drag-steps"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if stdout.String() != "touch.drag-steps: 4\n" {
		t.Errorf("Unexpected output %q", stdout.String())
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"touch.tap-delay"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if stdout.String() != "touch.tap-delay: 30ms\n" {
		t.Errorf("Expected schema default, got %q", stdout.String())
	}

	stdout.Reset()
	if err := cmd.Execute([]string{"nope"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(stdout.String(), "not found") {
		t.Errorf("Expected not found message, got %q", stdout.String())
	}
}

func TestConfigCommand_Set(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, path)

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"shell.animation", "100ms"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v, _ := cfg.GetGlobalOption("shell.animation"); v != "100ms" {
		t.Errorf("Expected in-memory value 100ms, got %q", v)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "shell.animation 100ms") {
		t.Errorf("Expected persisted value, got %q", string(data))
	}

	if err := cmd.Execute([]string{"nope", "1"}, &stdout, &stderr); err == nil {
		t.Error("Expected error for unknown key")
	}

	stderr.Reset()
	if err := cmd.Execute([]string{"backend", "real"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(stderr.String(), "Warning:") {
		t.Errorf("Expected validation warning, got %q", stderr.String())
	}
}

func TestConfigCommand_Validate(t *testing.T) {
	cfg := config.NewConfig()
	cmd := NewConfigCommand(cfg, "")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"validate"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(stdout.String(), "Configuration is valid.") {
		t.Errorf("Unexpected output %q", stdout.String())
	}

	cfg.SetGlobalOption("bogus", "1")
	stdout.Reset()
	if err := cmd.Execute([]string{"validate"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(stdout.String(), "1 issue(s)") {
		t.Errorf("Unexpected output %q", stdout.String())
	}
}

func TestConfigCommand_SchemaAndAll(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetSectionOption("run", "fail-fast", "true")
	cfg.SetGlobalOption("bogus", "1")
	cmd := NewConfigCommand(cfg, "")

	var stdout, stderr bytes.Buffer
	if err := cmd.Execute([]string{"schema"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(stdout.String(), "eventually.timeout") {
		t.Errorf("Expected schema help, got %q", stdout.String())
	}

	stdout.Reset()
	cmd.showAll = true
	if err := cmd.Execute(nil, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	output := stdout.String()
	for _, part := range []string{"Global configuration:", "[run]", "fail-fast", "true", "(unknown) bogus"} {
		if !strings.Contains(output, part) {
			t.Errorf("Expected output to contain %q. Output: %s", part, output)
		}
	}
}
