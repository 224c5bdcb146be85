// Package listcmd implements the `spool list` command.
package listcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spoolworks/spool/cmd/spool/shared"
	"github.com/spoolworks/spool/internal/service"
)

// Command implements `spool list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	showSkipped bool
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List profile names in the user tier",
		RunE:  c.run,
	}

	c.cmd.Flags().BoolVar(&c.showSkipped, "skipped", false,
		"Also show files skipped during the scan and why")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(c.ctx.Root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	names := svc.ListProfiles()
	if len(names) == 0 {
		fmt.Fprintln(out, "No user profiles found.")
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}

	if c.showSkipped {
		for _, entry := range svc.ScanProfiles() {
			if entry.Skipped {
				fmt.Fprintf(out, "skipped %s: %s\n", entry.Path, entry.Reason)
			}
		}
	}
	return nil
}
