package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/util"
)

// SummaryFormatter is responsible for formatting and outputting summary reports.
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// Format writes the logbook rollup followed by the selected date's aggregates.
func (f *SummaryFormatter) Format(r Report) error {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("Dive Log Summary Report\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(r.Dates) == 0 {
		b.WriteString("No data to summarize\n\n")
		b.WriteString(strings.Repeat("=", 60) + "\n")
		_, err := io.WriteString(f.w, b.String())
		return err
	}

	newest, oldest := r.Dates[0], r.Dates[len(r.Dates)-1]
	if newest == oldest {
		b.WriteString(fmt.Sprintf("Date Range: %s\n", newest))
	} else {
		b.WriteString(fmt.Sprintf("Date Range: %s to %s\n", oldest, newest))
	}
	b.WriteString(fmt.Sprintf("Total Dives: %s\n", util.FormatNumber(r.TotalDives)))
	b.WriteString(fmt.Sprintf("Dive Days: %d\n", len(r.Dates)))
	if r.Overall.Dives > 0 {
		b.WriteString(fmt.Sprintf("Dive Sites: %d\n", r.Overall.Sites))
		b.WriteString(fmt.Sprintf("Bottom Time: %s\n", util.FormatDuration(time.Duration(r.Overall.BottomTime*float64(time.Minute)))))
		if r.Overall.DeepestDive > 0 {
			b.WriteString(fmt.Sprintf("Deepest Dive: %s (%s)\n",
				util.FormatMaxMetric(r.Overall.DeepestDive, "m"), util.OrDefault(r.Overall.DeepestSite, "unknown site")))
		}
	}
	if !r.LastSync.IsZero() {
		b.WriteString(fmt.Sprintf("Synced: %s\n", util.FormatSince(r.LastSync, r.GeneratedAt)))
	}
	b.WriteString("\n")

	if len(r.Days) > 0 {
		b.WriteString("Dives per Day:\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, day := range r.Days {
			b.WriteString(fmt.Sprintf("  %s  %3d dives  %2d sites  max %s\n",
				util.PadRight(day.Date, 12), day.Dives, day.Sites, util.FormatMaxMetric(day.MaxDepth, "m")))
		}
		b.WriteString("\n")
	}

	if r.Date != "" {
		b.WriteString(fmt.Sprintf("Selected Date: %s\n", r.Date))
		b.WriteString(fmt.Sprintf("  Dives:      %d\n", r.Stats.TotalDives))
		b.WriteString(fmt.Sprintf("  Avg Depth:  %s\n", util.FormatMetric(r.Stats.AvgDepth, "m")))
		b.WriteString(fmt.Sprintf("  Max Depth:  %s\n", util.FormatMaxMetric(r.Stats.MaxDepth, "m")))
		b.WriteString(fmt.Sprintf("  Avg Temp:   %s\n", util.FormatMetric(r.Stats.AvgTemp, "°C")))
		if r.Summary != "" {
			b.WriteString("\nAI Conditions:\n  " + r.Summary + "\n")
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	_, err := io.WriteString(f.w, b.String())
	return err
}
