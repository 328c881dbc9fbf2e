package command

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joeycumines/hudcheck/internal/config"
)

// ListCommand prints the cases and devices a run would cover.
type ListCommand struct {
	*BaseCommand
	config *config.Config
	matrix matrixFlags
}

// NewListCommand creates a new list command.
func NewListCommand(cfg *config.Config) *ListCommand {
	return &ListCommand{
		BaseCommand: NewBaseCommand(
			"list",
			"List the cases and devices a run would cover",
			"list [options]",
		),
		config: cfg,
	}
}

// SetupFlags configures the flags for the list command.
func (c *ListCommand) SetupFlags(fs *flag.FlagSet) {
	c.matrix.setup(fs)
}

// Execute prints the matrix.
func (c *ListCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}

	_, cases, devices, err := c.matrix.resolve(c.config)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Cases:")
	for _, cs := range cases {
		_, _ = fmt.Fprintf(w, "  %s\t%s\n", cs.Name, cs.Doc)
	}
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Devices:")
	for _, d := range devices {
		_, _ = fmt.Fprintf(w, "  %s\t%dx%d\tgu=%d\n", d.Name, d.Width, d.Height, d.GridUnit)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\n%d runs\n", len(cases)*len(devices))
	return nil
}
