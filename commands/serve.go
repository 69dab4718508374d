package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/penwyp/go-dive-monitor/internal/util"
	"github.com/penwyp/go-dive-monitor/internal/web"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *options) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard state as a JSON API",
		Long: `Runs the same polling session as top without a terminal UI and exposes it over HTTP:

  GET  /healthz
  GET  /api/state
  GET  /api/dates
  GET  /api/records[?date=]
  GET  /api/stats[?date=]
  GET  /api/summary[?date=]
  PUT  /api/selection   {"date": "2024-03-02"}
  POST /api/refresh
  POST /api/retry`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	serveCmd.Flags().StringVar(&opts.addr, "addr", top.DefaultServeAddr,
		"Listen address")

	return serveCmd
}

func runServe(cmd *cobra.Command, opts *options) error {
	initLogging(opts)

	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	dashboard, err := newDashboard(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(baseContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dashboard.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dashboard: %w", err)
	}
	defer dashboard.Stop()

	util.LogInfo("Serving dive log API", util.F("addr", cfg.ServeAddr), util.F("source", dashboard.Source()))
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", dashboard.Source(), cfg.ServeAddr)

	return web.NewServer(dashboard).Run(ctx, cfg.ServeAddr)
}
