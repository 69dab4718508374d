package layout

import (
	"strings"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

// Layout styles selectable from the dashboard
const (
	StyleFull = iota
	StyleMinimal
)

// LayoutStrategy defines the interface for different layout rendering strategies
type LayoutStrategy interface {
	Render(data model.DashboardData, param model.LayoutParam) string
	GetName() string
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int) LayoutStrategy {
	strategies := map[int]LayoutStrategy{
		StyleFull:    &FullLayoutStrategy{},
		StyleMinimal: &MinimalLayoutStrategy{},
	}

	if strategy, exists := strategies[layoutStyle]; exists {
		return strategy
	}

	// Default to full dashboard if invalid style
	return &FullLayoutStrategy{}
}

// StyleFromName maps a config value ("full", "minimal") to a layout style
func StyleFromName(name string) int {
	if strings.EqualFold(strings.TrimSpace(name), "minimal") {
		return StyleMinimal
	}
	return StyleFull
}

// NextStyle cycles through the available styles
func NextStyle(current int) int {
	return (current + 1) % 2
}
