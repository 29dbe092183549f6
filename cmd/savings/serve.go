package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-calculator/internal/api"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.settings.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, cleanup := a.newService(ctx, 0)
			defer cleanup()

			srv := api.NewServer(svc, api.Options{
				CORSOrigins: a.settings.Server.CORSOrigins,
				Logger:      a.logger.With("api"),
				Version:     version,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings, :8080)")
	return cmd
}
