package layout

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// NewBaseStrategy creates a new BaseStrategy instance
func NewBaseStrategy() *BaseStrategy {
	return &BaseStrategy{}
}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

func (b *BaseStrategy) TopBorder(width int) string {
	return "╭" + strings.Repeat("─", width-2) + "╮"
}

func (b *BaseStrategy) BottomBorder(width int) string {
	return "╰" + strings.Repeat("─", width-2) + "╯"
}

// SeparatorLine creates a separator line
func (b *BaseStrategy) SeparatorLine(width int) string {
	return "├" + strings.Repeat("─", width-2) + "┤"
}

// BoxLine places content between side borders, truncating what does not fit
func (b *BaseStrategy) BoxLine(content string, width int) string {
	inner := width - 4
	return "│ " + util.PadRight(util.Truncate(content, inner), inner) + " │"
}

// SplitLine puts left and right on one boxed line, right-aligned
func (b *BaseStrategy) SplitLine(left, right string, width int) string {
	inner := width - 4
	rw := util.GetDisplayWidth(right)
	if rw >= inner {
		return b.BoxLine(right, width)
	}
	left = util.Truncate(left, inner-rw-1)
	gap := inner - util.GetDisplayWidth(left) - rw
	return "│ " + left + strings.Repeat(" ", gap) + right + " │"
}

// CenterText centers text within the given width
func (b *BaseStrategy) CenterText(text string, width int) string {
	return util.CenterText(text, width)
}

// Clock formats now in the configured timezone and clock style
func (b *BaseStrategy) Clock(param model.LayoutParam) string {
	tp, err := util.NewTimeProvider(param.Timezone)
	if err != nil {
		tp, _ = util.NewTimeProvider("")
	}
	return tp.FormatClock(param.Now, param.TimeFormat)
}

// SyncStatus describes the background sync for headers
func (b *BaseStrategy) SyncStatus(data model.DashboardData, param model.LayoutParam) string {
	if data.Syncing {
		return "⟳ Syncing"
	}
	return "✓ synced " + util.FormatSince(data.LastSync, param.Now)
}

// StatsLine renders the aggregates for the selected date
func (b *BaseStrategy) StatsLine(stats model.DiveStats) string {
	return fmt.Sprintf("Dives %d · Avg depth %s · Max depth %s · Avg temp %s",
		stats.TotalDives,
		util.FormatMetric(stats.AvgDepth, "m"),
		util.FormatMaxMetric(stats.MaxDepth, "m"),
		util.FormatMetric(stats.AvgTemp, "°C"))
}

// DateBar renders a window of dates around the selection that fits width.
// Newer dates are on the left.
func (b *BaseStrategy) DateBar(data model.DashboardData, width int) string {
	if len(data.Dates) == 0 {
		return "No dates"
	}

	idx := data.DateIndex()
	if idx < 0 {
		idx = 0
	}

	counter := fmt.Sprintf("(%d/%d)", idx+1, len(data.Dates))
	budget := width - util.GetDisplayWidth(counter) - 6

	label := func(i int) string {
		if i == idx {
			return "[" + data.Dates[i] + "]"
		}
		return data.Dates[i]
	}

	lo, hi := idx, idx
	used := util.GetDisplayWidth(label(idx))
	for {
		grew := false
		if hi+1 < len(data.Dates) {
			w := util.GetDisplayWidth(label(hi+1)) + 1
			if used+w <= budget {
				hi++
				used += w
				grew = true
			}
		}
		if lo-1 >= 0 {
			w := util.GetDisplayWidth(label(lo-1)) + 1
			if used+w <= budget {
				lo--
				used += w
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	parts := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		parts = append(parts, label(i))
	}

	left, right := " ", " "
	if lo > 0 {
		left = "‹"
	}
	if hi < len(data.Dates)-1 {
		right = "›"
	}
	return fmt.Sprintf("%s %s %s %s", left, strings.Join(parts, " "), right, counter)
}

// Wrap breaks text into lines no wider than width, splitting on spaces
func (b *BaseStrategy) Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if util.GetDisplayWidth(line)+1+util.GetDisplayWidth(word) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}
