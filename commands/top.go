package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/penwyp/go-dive-monitor/internal/presentation/display"
	"github.com/penwyp/go-dive-monitor/internal/presentation/interaction"
	"github.com/spf13/cobra"
)

func newTopCommand(opts *options) *cobra.Command {
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Live dive log dashboard",
		Long: `Similar to the Linux top command, keeps a dashboard of the logbook on screen and
polls the sheet in the background.

The most recent dive date is selected on first load. A refresh never moves a
selection that still exists; if the selected date disappears, the newest date
is selected instead.

Keys: ←/→ or p/n change date, r syncs now, s sorts the cards, t switches layout,
h shows help, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(cmd, opts)
		},
	}

	topCmd.Flags().StringVar(&opts.layout, "layout", "full",
		"Layout style (full, minimal)")
	topCmd.Flags().Float64Var(&opts.refreshPerSecond, "refresh-per-second", 1,
		"Display refresh rate (0.1-10 Hz)")

	return topCmd
}

func runTop(cmd *cobra.Command, opts *options) error {
	initLogging(opts)

	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	dashboard, err := newDashboard(cfg)
	if err != nil {
		return err
	}

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to read keyboard: %w", err)
	}

	ctx, stop := signal.NotifyContext(baseContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator := top.NewOrchestrator(cfg, dashboard, display.NewTerminalDisplay(nil), keyboard)
	return orchestrator.Run(ctx)
}

func baseContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
