// Package analyzer produces the one-shot logbook report printed by the root command.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/penwyp/go-dive-monitor/internal/data/aggregator"
	"github.com/penwyp/go-dive-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

type Analyzer struct {
	config    *top.TopConfig
	dashboard *top.Dashboard
	out       io.Writer
	now       func() time.Time
}

func New(config *top.TopConfig, dashboard *top.Dashboard, out io.Writer) *Analyzer {
	return &Analyzer{
		config:    config,
		dashboard: dashboard,
		out:       out,
		now:       time.Now,
	}
}

// Run loads the logbook once and writes the report in the configured format
func (a *Analyzer) Run(ctx context.Context) error {
	f, err := formatter.New(a.config.OutputFormat, a.out)
	if err != nil {
		return err
	}

	report, err := a.BuildReport(ctx)
	if err != nil {
		return err
	}
	return f.Format(report)
}

// BuildReport runs one ingestion cycle and assembles the report for the
// configured date, or the most recent date when none is set
func (a *Analyzer) BuildReport(ctx context.Context) (formatter.Report, error) {
	start := a.now()
	util.LogInfo("Building dive log report...", util.F("source", a.dashboard.Source()))

	v, err := a.dashboard.LoadOnce(ctx)
	if err != nil {
		return formatter.Report{}, err
	}

	if a.config.Date != "" {
		if err := a.dashboard.Select(a.config.Date); err != nil {
			return formatter.Report{}, fmt.Errorf("no dives logged on %s", a.config.Date)
		}
		v = a.dashboard.View()
	}

	report := formatter.Report{
		Source:      a.dashboard.Source(),
		GeneratedAt: a.now(),
		LastSync:    v.LastSync,
		Date:        v.SelectedDate,
		Dates:       v.Dates,
		TotalDives:  v.TotalDives,
		Stats:       v.Stats,
		Dives:       v.Selected,
		Days:        aggregator.ByDate(v.Dates, v.Records),
		Overall:     aggregator.Overall(v.Records),
	}

	if a.dashboard.Summarizer().Enabled() {
		if _, text, err := a.dashboard.Summary(ctx, v.SelectedDate); err == nil {
			report.Summary = text
		}
	}

	util.LogDebug("Report ready",
		util.F("date", report.Date),
		util.F("dives", len(report.Dives)),
		util.F("duration", time.Since(start).String()))
	return report, nil
}
