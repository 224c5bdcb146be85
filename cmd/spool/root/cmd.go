// Package rootcmd wires the root cobra.Command for the spool CLI binary.
package rootcmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	buildcmd "github.com/spoolworks/spool/cmd/spool/build"
	configcmd "github.com/spoolworks/spool/cmd/spool/config"
	exportcmd "github.com/spoolworks/spool/cmd/spool/export"
	initcmd "github.com/spoolworks/spool/cmd/spool/init"
	listcmd "github.com/spoolworks/spool/cmd/spool/list"
	mcpcmd "github.com/spoolworks/spool/cmd/spool/mcp"
	"github.com/spoolworks/spool/cmd/spool/shared"
	"github.com/spoolworks/spool/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the spool CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "spool",
		Short:         "Spool — layered filament profile resolution",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if ctx.Verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.Root, "root", "",
		"Override profile data root (default: $SPOOL_ROOT env → persisted config → ~/.spool)",
	)
	root.PersistentFlags().BoolVar(
		&ctx.Verbose, "verbose", false,
		"Enable debug logging, including the locator probe trace",
	)

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		buildcmd.New(ctx).Cmd(),
		exportcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)

	return root
}
