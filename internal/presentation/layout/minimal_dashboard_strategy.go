package layout

import (
	"fmt"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

// MinimalLayoutStrategy implements the minimal dashboard layout
type MinimalLayoutStrategy struct {
	BaseStrategy
}

func (s *MinimalLayoutStrategy) GetName() string {
	return "Minimal Dashboard"
}

func (s *MinimalLayoutStrategy) Render(data model.DashboardData, param model.LayoutParam) string {
	date := util.OrDefault(data.SelectedDate, "-")
	if idx := data.DateIndex(); idx >= 0 {
		date = fmt.Sprintf("%s (%d/%d)", date, idx+1, len(data.Dates))
	}

	dives := fmt.Sprintf("🤿 %d", data.Stats.TotalDives)
	if !data.HasSelection() {
		dives = emptyMessage
	}

	line := fmt.Sprintf("Dives: 📅 %s | %s | ⬇ %s avg %s max | 🌡 %s | %s | %s",
		date,
		dives,
		util.FormatMetric(data.Stats.AvgDepth, "m"),
		util.FormatMaxMetric(data.Stats.MaxDepth, "m"),
		util.FormatMetric(data.Stats.AvgTemp, "°C"),
		s.SyncStatus(data, param),
		s.Clock(param))

	return line + "\n"
}
