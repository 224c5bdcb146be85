// Package exportcmd implements the `spool export` command.
package exportcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spoolworks/spool/cmd/spool/shared"
	"github.com/spoolworks/spool/internal/service"
)

// Command implements `spool export`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the export command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "export <name> <path>",
		Short: "Resolve a profile and write the flattened JSON to a file",
		Args:  cobra.ExactArgs(2),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := service.New(c.ctx.Root)
	if err != nil {
		return err
	}

	outPath, err := svc.Export(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], outPath)
	return nil
}
