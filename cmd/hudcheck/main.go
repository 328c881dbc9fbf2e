// Command hudcheck runs the shell HUD touch acceptance cases.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joeycumines/hudcheck/internal/command"
	"github.com/joeycumines/hudcheck/internal/config"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.NewConfig()
	}

	registry := command.NewRegistry()
	registry.Register(command.NewHelpCommand(registry))
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(cfg, ""))
	registry.Register(command.NewListCommand(cfg))
	registry.Register(command.NewRunCommand(cfg))

	return registry.Dispatch(args, stdout, stderr)
}
