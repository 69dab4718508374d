package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/analyzer"
	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/penwyp/go-dive-monitor/internal/core/summary"
	"github.com/penwyp/go-dive-monitor/internal/data/ingest"
	"github.com/penwyp/go-dive-monitor/internal/data/sheet"
	"github.com/penwyp/go-dive-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-dive-monitor/internal/util"
	"github.com/spf13/cobra"
)

const (
	defaultLogFile    = "~/.go-dive-monitor/logs/app.log"
	defaultConfigFile = "~/.go-dive-monitor/config.toml"
)

// options holds every command line value before it is merged with the config file
type options struct {
	// System and debugging
	configPath string
	debug      bool
	logFile    string

	// Data source
	sheetID  string
	gid      string
	baseURL  string
	file     string
	watch    bool
	interval time.Duration

	// Display
	timezone         string
	timeFormat       string
	layout           string
	refreshPerSecond float64

	// AI summary
	summaryProvider string
	summaryModel    string

	// Report
	format string
	date   string

	// Serve
	addr string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{})
}

func newRootCommand(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-dive-monitor [flags]",
		Short: "Dive logbook dashboard backed by a Google Sheet",
		Long: `go-dive-monitor reads a dive logbook published as a Google Sheet (or a local CSV
export), groups the dives by date and reports per-date statistics together with an
AI written summary of the conditions.

Examples:
  go-dive-monitor                                 # Report the most recent dive date
  go-dive-monitor --date 2024-03-02               # Report a specific date
  go-dive-monitor --format json                   # Machine readable report
  go-dive-monitor --file logbook.csv --format csv # Report from a local export
  go-dive-monitor top                             # Live dashboard, synced every minute
  go-dive-monitor serve --addr 127.0.0.1:8787     # JSON API over the same state`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()

	// Data source
	pf.StringVar(&opts.sheetID, "sheet-id", "",
		"Google Sheet id (default: the published demo logbook)")
	pf.StringVar(&opts.gid, "gid", "",
		"Sheet tab gid")
	pf.StringVar(&opts.baseURL, "base-url", "",
		"Spreadsheet export base URL (for mirrors and tests)")
	pf.StringVar(&opts.file, "file", "",
		"Read a local CSV export instead of the Google Sheet")
	pf.BoolVar(&opts.watch, "watch", false,
		"Refresh when the local CSV export changes (with --file)")
	pf.DurationVar(&opts.interval, "interval", top.DefaultPollInterval,
		"How often the sheet is polled for new dives")

	// Display
	pf.StringVar(&opts.timezone, "timezone", "Local",
		"Timezone setting (e.g., Pacific/Palau, UTC)")
	pf.StringVar(&opts.timeFormat, "time-format", "24h",
		"Time format (12h or 24h)")

	// AI summary
	pf.StringVar(&opts.summaryProvider, "summary-provider", summary.ProviderGemini,
		"AI summary provider (gemini, none)")
	pf.StringVar(&opts.summaryModel, "summary-model", summary.DefaultModel,
		"Model used for the AI condition report")

	// System and debugging
	pf.StringVar(&opts.configPath, "config", defaultConfigFile,
		"Config file path")
	pf.BoolVar(&opts.debug, "debug", false,
		"Enable debug mode")
	pf.StringVar(&opts.logFile, "log-file", defaultLogFile,
		"Log file path")

	// Report
	rootCmd.Flags().StringVarP(&opts.format, "format", "o", "table",
		"Output format ("+strings.Join(formatter.Formats, ", ")+")")
	rootCmd.Flags().StringVarP(&opts.date, "date", "d", "",
		"Dive date to report (default: most recent)")

	rootCmd.AddCommand(newTopCommand(opts), newServeCommand(opts))
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	defer util.CloseLogger()
	return NewRootCommand().Execute()
}

func initLogging(opts *options) {
	logLevel := "info"
	if opts.debug {
		logLevel = "debug"
	}

	logFile := expandPath(opts.logFile)
	if logFile != "" {
		if err := ensureDir(filepath.Dir(logFile)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
			logFile = ""
		}
	}
	if logFile == "" && !opts.debug {
		return
	}

	if err := util.InitLogger(util.LoggerOptions{Level: logLevel, File: logFile, Console: opts.debug}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
}

// newDashboard wires the ingestion pipeline and the summarizer for cfg
func newDashboard(cfg *top.TopConfig) (*top.Dashboard, error) {
	loader := ingest.NewService(sheet.NewFetcher(cfg.SheetConfig()))

	provider, err := summary.NewProvider(cfg.Summary)
	if err != nil && !errors.Is(err, summary.ErrMissingAPIKey) {
		return nil, err
	}
	summarizer := summary.NewSummarizer(provider, cfg.Summary.Prompt, cfg.Summary.Timeout)

	return top.NewDashboard(cfg, loader, summarizer), nil
}

func runReport(cmd *cobra.Command, opts *options) error {
	initLogging(opts)

	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	dashboard, err := newDashboard(cfg)
	if err != nil {
		return err
	}

	return analyzer.New(cfg, dashboard, cmd.OutOrStdout()).Run(baseContext(cmd))
}

// Helper functions

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
