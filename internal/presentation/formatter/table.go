package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const emptyMessage = "Zero Entries Found"

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w: w,
		headers: []string{
			"Site", "Guide", "Time", "Max", "Avg",
			"Temp", "Vis", "Current", "Waves",
		},
	}
}

func (f *TableFormatter) Format(r Report) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Dive Log · %s\n", util.OrDefault(r.Date, "no date selected")))
	b.WriteString(fmt.Sprintf("Source: %s · Total dives: %d · Dates: %d\n", util.OrDefault(r.Source, "-"), r.TotalDives, len(r.Dates)))
	b.WriteString(fmt.Sprintf("Dives %d · Avg depth %s · Max depth %s · Avg temp %s\n\n",
		r.Stats.TotalDives,
		util.FormatMetric(r.Stats.AvgDepth, "m"),
		util.FormatMaxMetric(r.Stats.MaxDepth, "m"),
		util.FormatMetric(r.Stats.AvgTemp, "°C")))

	if len(r.Dives) == 0 {
		b.WriteString(emptyMessage + "\n")
	} else {
		rows := make([][]string, 0, len(r.Dives))
		for _, d := range r.Dives {
			rows = append(rows, f.rowValues(d))
		}
		widths := f.calculateColumnWidths(rows)

		f.printBorder(&b, widths, "top")
		f.printRow(&b, f.headers, widths)
		f.printBorder(&b, widths, "middle")
		for _, row := range rows {
			f.printRow(&b, row, widths)
		}
		f.printBorder(&b, widths, "bottom")
	}

	if r.Summary != "" {
		b.WriteString("\nAI Conditions: " + r.Summary + "\n")
	}

	_, err := io.WriteString(f.w, b.String())
	return err
}

func (f *TableFormatter) rowValues(d model.DiveLog) []string {
	return []string{
		util.OrDefault(d.SiteName, "-"),
		util.OrDefault(d.Guide, "N/A"),
		util.WithUnit(d.DiveTime, " min"),
		util.WithUnit(d.MaxDepth, "m"),
		util.WithUnit(d.AvgDepth, "m"),
		util.WithUnit(d.WaterTemp, "°C"),
		util.WithUnit(d.Visibility, "m"),
		util.OrDefault(d.Current, "-"),
		util.OrDefault(d.Waves, "-"),
	}
}

// calculateColumnWidths determines optimal width for each column based on content
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right + "\n")
}

// printRow prints a row; measurement columns are right-aligned
func (f *TableFormatter) printRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		if i >= 2 && i <= 6 {
			b.WriteString(" " + util.PadLeft(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + util.PadRight(value, widths[i]) + " │")
		}
	}
	b.WriteString("\n")
}
