// Package configcmd implements the `spool config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spoolworks/spool/cmd/spool/shared"
	"github.com/spoolworks/spool/internal/config"
)

const configTemplate = `# Spool configuration

# How the system tier is searched when a profile is not in any user directory.
# "fixed" probes system/<profile_dir> then its base/ subdirectory and is
# deterministic; "recursive" walks the whole system tree.
search: fixed                   # fixed | recursive

# Subdirectory of each tier that holds the profile files.
profile_dir: filament
`

// Command implements `spool config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(ctx),
		newSetRoot(ctx),
		newClearRoot(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	root, source := config.ResolveDataRoot()
	if c.ctx.Root != "" {
		root = c.ctx.Root
		source = "flag"
	}
	cfg, err := config.Load(filepath.Join(root, "config.yaml"))
	if err != nil {
		return err
	}
	data := map[string]any{
		"search":      cfg.Search,
		"profile_dir": cfg.ProfileDir,
		"root":        root,
		"root_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml under the data root",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := ctx.Root
			if root == "" {
				root = config.GetDataRoot()
			}
			cfgPath := filepath.Join(root, "config.yaml")
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-root / clear-root
// ---------------------------------------------------------------------------

func newSetRoot(_ *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "set-root <path>",
		Short: "Persist the data root location (used when SPOOL_ROOT is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedDataRoot(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data root set to %s\n", resolved)
			return nil
		},
	}
}

func newClearRoot(_ *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-root",
		Short: "Remove the persisted data root location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := config.ClearPersistedDataRoot()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if removed {
				fmt.Fprintln(out, "Persisted data root cleared.")
			} else {
				fmt.Fprintln(out, "No persisted data root was set.")
			}
			return nil
		},
	}
}
