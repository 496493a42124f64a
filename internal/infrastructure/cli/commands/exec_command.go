package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/termsim/internal/app"
	"github.com/doeshing/termsim/internal/domain"
)

// ExitError carries a process exit status without an extra message; the
// command already printed its output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExecCommand creates the exec command, which runs one interpreter line.
func NewExecCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run a single simulated command and print its result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := container.NewInterpreter(container.Config.GetDefaultSession())
			result := in.Parse(strings.Join(args, " "))
			return renderExecResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

// renderExecResult prints output to stdout on success and stderr on failure.
// Failures turn into exit status 1.
func renderExecResult(out, errOut io.Writer, result domain.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else if result.Output != "" {
		target := out
		if result.IsFailure() {
			target = errOut
		}
		fmt.Fprintln(target, result.Output)
	}

	if result.IsFailure() {
		return &ExitError{Code: 1}
	}
	return nil
}
