package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/termsim/internal/app"
	"github.com/doeshing/termsim/internal/infrastructure/cli/commands"
	"github.com/doeshing/termsim/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. Without a subcommand it starts
// the interactive terminal, or the web interface when --web is given.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, opts.ConfigPath, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}

	var web bool

	root := &cobra.Command{
		Use:     "termsim",
		Short:   "termsim - simulated terminal",
		Long:    "termsim interprets a small shell command set against the real filesystem,\neither interactively or behind a JSON web endpoint.",
		Version: version.String(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if web {
				return commands.RunServer(cmd.Context(), container, container.Config.GetServerAddr(), cmd.OutOrStdout())
			}
			return commands.RunShell(cmd.Context(), container, cmd.InOrStdin(), cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVar(&web, "web", false, "Start the web interface instead of the terminal")

	root.AddCommand(commands.NewShellCommand(container))
	root.AddCommand(commands.NewServeCommand(container))
	root.AddCommand(commands.NewExecCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewAuditCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, container, nil
}
