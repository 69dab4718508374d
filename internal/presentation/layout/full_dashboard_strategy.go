package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/core/summary"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const (
	cardWidth    = 34
	emptyMessage = "Zero Entries Found"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1)

	bannerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("141"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1).
			Width(cardWidth)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// FullLayoutStrategy implements the full dashboard layout
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Dashboard"
}

func (s *FullLayoutStrategy) Render(data model.DashboardData, param model.LayoutParam) string {
	width := s.GetSizer().GetMaxWidth(param.Width)

	var b strings.Builder
	b.WriteString(s.TopBorder(width) + "\n")
	b.WriteString(s.SplitLine("🤿 Dive Log Dashboard", s.SyncStatus(data, param)+"  "+s.Clock(param), width) + "\n")
	b.WriteString(s.SplitLine("Source: "+util.OrDefault(data.Source, "-"), fmt.Sprintf("Total dives: %d", data.TotalDives), width) + "\n")
	b.WriteString(s.SeparatorLine(width) + "\n")
	b.WriteString(s.BoxLine(s.DateBar(data, width-4), width) + "\n")
	b.WriteString(s.SeparatorLine(width) + "\n")
	b.WriteString(s.BoxLine(s.StatsLine(data.Stats), width) + "\n")
	b.WriteString(s.BottomBorder(width) + "\n")

	b.WriteString(s.banner(data, width) + "\n")
	b.WriteString(s.cards(data, width) + "\n")
	return b.String()
}

func (s *FullLayoutStrategy) banner(data model.DashboardData, width int) string {
	title := "✨ AI Condition Report"
	if data.SelectedDate != "" {
		title += " · " + data.SelectedDate
	}

	var text string
	switch {
	case !data.HasSelection():
		text = summary.PlaceholderText
	case data.SummaryPending || data.Summary == "":
		text = "Analyzing dive conditions..."
	default:
		text = data.Summary
	}

	body := strings.Join(s.Wrap(text, width-4), "\n")
	return bannerStyle.Width(width - 2).Render(bannerTitleStyle.Render(title) + "\n" + body)
}

func (s *FullLayoutStrategy) cards(data model.DashboardData, width int) string {
	if !data.HasSelection() {
		empty := bannerStyle.Width(width - 2).Render(
			s.CenterText(emptyMessage, width-4) + "\n" +
				mutedStyle.Render(s.CenterText("No dives logged for this date", width-4)))
		return empty
	}

	perRow := width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	rows := make([]string, 0, len(data.Selected)/perRow+1)
	for i := 0; i < len(data.Selected); i += perRow {
		end := i + perRow
		if end > len(data.Selected) {
			end = len(data.Selected)
		}
		row := make([]string, 0, end-i)
		for _, dive := range data.Selected[i:end] {
			row = append(row, RenderCard(dive))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderCard draws one dive as a bordered card
func RenderCard(dive model.DiveLog) string {
	lines := []string{
		cardTitleStyle.Render("🤿 " + util.OrDefault(dive.SiteName, "Unknown site")),
		mutedStyle.Render("Guide: " + util.OrDefault(dive.Guide, "N/A")),
		fmt.Sprintf("⏱ %s min · %s", util.OrDefault(dive.DiveTime, "-"), dive.Date),
		fmt.Sprintf("Max %s · Avg %s", util.WithUnit(dive.MaxDepth, "m"), util.WithUnit(dive.AvgDepth, "m")),
		fmt.Sprintf("Temp %s · Vis %s", util.WithUnit(dive.WaterTemp, "°C"), util.WithUnit(dive.Visibility, "m")),
		fmt.Sprintf("Current %s · Waves %s", util.OrDefault(dive.Current, "-"), util.OrDefault(dive.Waves, "-")),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
