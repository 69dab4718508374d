package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/spf13/cobra"
)

// fileConfig mirrors ~/.go-dive-monitor/config.toml
type fileConfig struct {
	Sheet struct {
		ID      string `toml:"id"`
		GID     string `toml:"gid"`
		BaseURL string `toml:"base_url"`
		File    string `toml:"file"`
		Watch   bool   `toml:"watch"`
	} `toml:"sheet"`

	Poll struct {
		Interval string `toml:"interval"`
	} `toml:"poll"`

	Display struct {
		Timezone   string `toml:"timezone"`
		TimeFormat string `toml:"time_format"`
		Layout     string `toml:"layout"`
	} `toml:"display"`

	Summary struct {
		Provider  string `toml:"provider"`
		Model     string `toml:"model"`
		APIKeyEnv string `toml:"api_key_env"`
		BaseURL   string `toml:"base_url"`
		Prompt    string `toml:"prompt"`
		Timeout   string `toml:"timeout"`
	} `toml:"summary"`

	Serve struct {
		Addr string `toml:"addr"`
	} `toml:"serve"`
}

// loadFileConfig reads path. A missing file is only an error when the
// path was given explicitly.
func loadFileConfig(path string, explicit bool) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}

	if _, err := toml.DecodeFile(expandPath(path), fc); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return fc, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

// pick applies flag > config file > built-in default. An unchanged flag
// still carries the built-in default.
func pick(changed bool, flagValue, fileValue string) string {
	if changed || fileValue == "" {
		return flagValue
	}
	return fileValue
}

// buildConfig merges the config file and the command line into a validated TopConfig
func buildConfig(cmd *cobra.Command, opts *options) (*top.TopConfig, error) {
	flags := cmd.Flags()
	fc, err := loadFileConfig(opts.configPath, flags.Changed("config"))
	if err != nil {
		return nil, err
	}

	fileInterval, err := parseDuration("poll.interval", fc.Poll.Interval)
	if err != nil {
		return nil, err
	}
	summaryTimeout, err := parseDuration("summary.timeout", fc.Summary.Timeout)
	if err != nil {
		return nil, err
	}

	cfg := &top.TopConfig{
		SheetID:       pick(flags.Changed("sheet-id"), opts.sheetID, fc.Sheet.ID),
		GID:           pick(flags.Changed("gid"), opts.gid, fc.Sheet.GID),
		BaseURL:       pick(flags.Changed("base-url"), opts.baseURL, fc.Sheet.BaseURL),
		LocalFile:     expandPath(pick(flags.Changed("file"), opts.file, fc.Sheet.File)),
		Watch:         opts.watch || (fc.Sheet.Watch && !flags.Changed("watch")),
		PollInterval:  opts.interval,
		UIRefreshRate: opts.refreshPerSecond,
		Timezone:      pick(flags.Changed("timezone"), opts.timezone, fc.Display.Timezone),
		TimeFormat:    pick(flags.Changed("time-format"), opts.timeFormat, fc.Display.TimeFormat),
		Layout:        pick(flags.Changed("layout"), opts.layout, fc.Display.Layout),
		OutputFormat:  opts.format,
		Date:          opts.date,
		ServeAddr:     pick(flags.Changed("addr"), opts.addr, fc.Serve.Addr),
	}
	if !flags.Changed("interval") && fileInterval != 0 {
		cfg.PollInterval = fileInterval
	}

	cfg.Summary.Provider = pick(flags.Changed("summary-provider"), opts.summaryProvider, fc.Summary.Provider)
	cfg.Summary.Model = pick(flags.Changed("summary-model"), opts.summaryModel, fc.Summary.Model)
	cfg.Summary.APIKeyEnv = fc.Summary.APIKeyEnv
	cfg.Summary.BaseURL = fc.Summary.BaseURL
	cfg.Summary.Prompt = fc.Summary.Prompt
	cfg.Summary.Timeout = summaryTimeout

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
