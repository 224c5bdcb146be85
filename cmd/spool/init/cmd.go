// Package initcmd implements the `spool init` command.
package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spoolworks/spool/cmd/spool/shared"
	"github.com/spoolworks/spool/internal/config"
)

// Command implements `spool init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Create the user and system tier directories under the data root",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	root := c.ctx.Root
	if root == "" {
		root = config.GetDataRoot()
	}
	cfg, err := config.Load(filepath.Join(root, "config.yaml"))
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	for _, dir := range []string{
		filepath.Join(root, "user", "default", cfg.ProfileDir),
		filepath.Join(root, "system", cfg.ProfileDir, "base"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("init: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profile store initialized at %s\n", root)
	return nil
}
