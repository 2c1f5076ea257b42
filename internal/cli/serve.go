package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/logger"
	"github.com/piwi3910/MillPool/internal/server"
)

func serveCmd(e *env) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the milling station API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = e.config.ListenAddr
			}
			if err := logger.IsReady(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: serving without a log file: %v\n", err)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Logging to %s\n", logger.Path())
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(e.backlog, e.config.Pool).Run(ctx, addr)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return c
}

