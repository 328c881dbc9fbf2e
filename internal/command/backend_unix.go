//go:build unix

package command

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/joeycumines/hudcheck/internal/config"
	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/ptyshell"
	"github.com/joeycumines/hudcheck/internal/shell"
)

func newPTYBackend(h config.Harness, wait []eventually.Option, logger *slog.Logger) (shell.Backend, error) {
	path := h.ShellsimPath
	if path == "" {
		var err error
		if path, err = exec.LookPath("shellsim"); err != nil {
			return nil, fmt.Errorf("pty backend needs shellsim.path or a shellsim binary on PATH: %w", err)
		}
	}
	return &ptyshell.Backend{
		BinaryPath: path,
		Animation:  h.Animation,
		Wait:       wait,
		Logger:     logger,
	}, nil
}
