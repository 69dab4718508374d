package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNumber renders large counts compactly (1.2K, 3.4M)
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatMetric formats a computed aggregate with one decimal and a unit suffix
func FormatMetric(value float64, unit string) string {
	return strconv.FormatFloat(value, 'f', 1, 64) + unit
}

// FormatMaxMetric formats a maximum the way the dashboard shows it: no forced decimals
func FormatMaxMetric(value float64, unit string) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + unit
}

// WithUnit appends unit to a raw sheet value unless it already ends with it.
// Empty values render as "-".
func WithUnit(raw, unit string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "-"
	}
	if unit == "" || strings.HasSuffix(strings.ToLower(raw), strings.ToLower(unit)) {
		return raw
	}
	return raw + unit
}

// OrDefault returns fallback when s is blank
func OrDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// FormatSince renders how long before now t happened ("2 minutes ago"), or "never" for the zero time
func FormatSince(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if now.IsZero() {
		return humanize.Time(t)
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
