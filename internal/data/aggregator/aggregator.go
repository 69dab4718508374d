package aggregator

import (
	"strings"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

// DailyData holds aggregated statistics for one dive date.
type DailyData struct {
	Date       string  `json:"date"`
	Dives      int     `json:"dives"`
	Sites      int     `json:"sites"`
	MaxDepth   float64 `json:"maxDepth"`
	AvgDepth   float64 `json:"avgDepth"`
	AvgTemp    float64 `json:"avgTemp"`
	BottomTime float64 `json:"bottomTimeMinutes"`
}

// Totals summarises the whole logbook.
type Totals struct {
	Dives       int     `json:"dives"`
	Days        int     `json:"days"`
	Sites       int     `json:"sites"`
	BottomTime  float64 `json:"bottomTimeMinutes"`
	DeepestDive float64 `json:"deepestDive"`
	DeepestSite string  `json:"deepestSite,omitempty"`
}

// ByDate aggregates records per date, in the order of dates.
// Dates without records still produce an entry with zero dives.
func ByDate(dates []string, records []model.DiveLog) []DailyData {
	grouped := make(map[string][]model.DiveLog, len(dates))
	for _, r := range records {
		grouped[r.Date] = append(grouped[r.Date], r)
	}

	days := make([]DailyData, 0, len(dates))
	for _, date := range dates {
		logs := grouped[date]
		stats := model.ComputeStats(logs)

		days = append(days, DailyData{
			Date:       date,
			Dives:      stats.TotalDives,
			Sites:      countSites(logs),
			MaxDepth:   stats.MaxDepth,
			AvgDepth:   stats.AvgDepth,
			AvgTemp:    stats.AvgTemp,
			BottomTime: bottomTime(logs),
		})
	}
	return days
}

// Overall computes logbook-wide totals. Records without a date are ignored.
func Overall(records []model.DiveLog) Totals {
	var t Totals
	days := make(map[string]struct{})
	var dated []model.DiveLog

	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		dated = append(dated, r)
		days[r.Date] = struct{}{}

		if depth := model.ParseNumeric(r.MaxDepth); depth > t.DeepestDive {
			t.DeepestDive = depth
			t.DeepestSite = strings.TrimSpace(r.SiteName)
		}
	}

	t.Dives = len(dated)
	t.Days = len(days)
	t.Sites = countSites(dated)
	t.BottomTime = bottomTime(dated)
	return t
}

func countSites(logs []model.DiveLog) int {
	sites := make(map[string]struct{}, len(logs))
	for _, l := range logs {
		name := strings.ToLower(strings.TrimSpace(l.SiteName))
		if name == "" {
			continue
		}
		sites[name] = struct{}{}
	}
	return len(sites)
}

func bottomTime(logs []model.DiveLog) float64 {
	var total float64
	for _, l := range logs {
		total += model.ParseNumeric(l.DiveTime)
	}
	return total
}
