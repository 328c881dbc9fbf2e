//go:build !unix

package command

import (
	"errors"
	"log/slog"

	"github.com/joeycumines/hudcheck/internal/config"
	"github.com/joeycumines/hudcheck/internal/eventually"
	"github.com/joeycumines/hudcheck/internal/shell"
)

func newPTYBackend(config.Harness, []eventually.Option, *slog.Logger) (shell.Backend, error) {
	return nil, errors.New("the pty backend is only available on unix")
}
