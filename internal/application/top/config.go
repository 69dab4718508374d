package top

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/penwyp/go-dive-monitor/internal/core/summary"
	"github.com/penwyp/go-dive-monitor/internal/data/sheet"
)

var validate = validator.New()

// TopConfig contains configuration shared by the report, top and serve commands
type TopConfig struct {
	// Data source
	SheetID   string `validate:"required_without=LocalFile"`
	GID       string
	BaseURL   string `validate:"omitempty,url"`
	LocalFile string
	Watch     bool

	// Refresh settings
	PollInterval  time.Duration `validate:"gte=1s"`
	UIRefreshRate float64       `validate:"gt=0,lte=10"`

	// Display settings
	Timezone   string
	TimeFormat string `validate:"oneof=12h 24h"`
	Layout     string `validate:"oneof=full minimal"`

	// Report settings
	OutputFormat string `validate:"oneof=table json csv summary"`
	Date         string

	// HTTP API
	ServeAddr string `validate:"hostname_port"`

	Summary summary.Config
}

// Validate fills defaults and checks the configuration
func (c *TopConfig) Validate() error {
	if c.SheetID == "" && c.LocalFile == "" {
		c.SheetID = sheet.DefaultSheetID
		if c.GID == "" {
			c.GID = sheet.DefaultGID
		}
	}
	if c.BaseURL == "" {
		c.BaseURL = sheet.DefaultBaseURL
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.UIRefreshRate == 0 {
		c.UIRefreshRate = 1
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "24h"
	}
	if c.Layout == "" {
		c.Layout = "full"
	}
	if c.OutputFormat == "" {
		c.OutputFormat = "table"
	}
	if c.ServeAddr == "" {
		c.ServeAddr = DefaultServeAddr
	}
	c.Summary.ApplyDefaults()

	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// SheetConfig returns the fetch configuration
func (c *TopConfig) SheetConfig() sheet.Config {
	return sheet.Config{
		BaseURL:   c.BaseURL,
		SheetID:   c.SheetID,
		GID:       c.GID,
		LocalFile: c.LocalFile,
	}
}
