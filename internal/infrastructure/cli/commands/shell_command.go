package commands

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/doeshing/termsim/internal/app"
	"github.com/doeshing/termsim/internal/infrastructure/repl"
)

// NewShellCommand creates the shell command, which starts the interactive loop.
func NewShellCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunShell(cmd.Context(), container, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// RunShell runs the REPL until exit or EOF. SIGINT is reported to the
// session instead of terminating the process.
func RunShell(ctx context.Context, container *app.Container, in io.Reader, out io.Writer) error {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	session := repl.NewSession(
		container.NewInterpreter(container.Config.GetDefaultSession()),
		in,
		out,
		repl.Options{
			PromptPrefix: container.Config.GetPromptPrefix(),
			Spinner:      repl.IsTerminal(out),
			Interrupts:   interrupts,
		},
	)
	return session.Run(ctx)
}
