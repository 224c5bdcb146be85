// Package buildcmd implements the `spool build` command.
package buildcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spoolworks/spool/cmd/spool/shared"
	"github.com/spoolworks/spool/internal/service"
)

// Command implements `spool build`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	query string
}

// New creates the build command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "build <name>",
		Short: "Resolve a profile's inheritance chain and print the flattened JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	c.cmd.Flags().StringVar(&c.query, "query", "",
		"JSONPath expression to extract from the resolved profile (e.g. $.bed_temp)")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := service.New(c.ctx.Root)
	if err != nil {
		return err
	}

	var out string
	if c.query != "" {
		out, err = svc.Query(args[0], c.query)
	} else {
		out, err = svc.Build(args[0])
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
