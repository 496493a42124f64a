package commands

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/termsim/internal/app"
)

// NewServeCommand creates the serve command, which starts the HTTP front end.
func NewServeCommand(container *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = container.Config.GetServerAddr()
			}
			return RunServer(cmd.Context(), container, addr, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config server.addr)")
	return cmd
}

// RunServer serves until SIGINT or SIGTERM.
func RunServer(ctx context.Context, container *app.Container, addr string, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Starting web interface on %s\n", displayURL(addr))
	fmt.Fprintln(out, "Press Ctrl+C to stop the server")
	return container.NewWebServer().ListenAndServe(ctx, addr)
}

// displayURL turns a listen address into something a browser can open.
func displayURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
