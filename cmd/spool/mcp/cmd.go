// Package mcpcmd implements the `spool mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/spoolworks/spool/cmd/spool/shared"
	internalmcp "github.com/spoolworks/spool/internal/mcp"
)

// Command implements `spool mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the spool MCP server (stdio transport)",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	return internalmcp.Serve(cmd.Context(), c.ctx.Root)
}
