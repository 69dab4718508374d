package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/data/aggregator"
)

// Report is one rendered date of the logbook
type Report struct {
	Source      string                 `json:"source"`
	GeneratedAt time.Time              `json:"generatedAt"`
	LastSync    time.Time              `json:"lastSync"`
	Date        string                 `json:"date"`
	Dates       []string               `json:"dates"`
	TotalDives  int                    `json:"totalDives"`
	Stats       model.DiveStats        `json:"stats"`
	Summary     string                 `json:"summary,omitempty"`
	Dives       []model.DiveLog        `json:"dives"`
	Days        []aggregator.DailyData `json:"days,omitempty"`
	Overall     aggregator.Totals      `json:"overall"`
}

// Formatter writes a report in one output format
type Formatter interface {
	Format(r Report) error
}

// Formats lists the accepted --format values
var Formats = []string{"table", "json", "csv", "summary"}

// New returns the formatter for format writing to w
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
