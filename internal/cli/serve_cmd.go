package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and /metrics until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.HTTP.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.New(app.Backlog, app.Planner,
				httpapi.WithGatherer(app.Gatherer),
				httpapi.WithLogger(app.Logger),
				httpapi.WithLocation(app.loc()),
			)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default http.addr)")
	return cmd
}
