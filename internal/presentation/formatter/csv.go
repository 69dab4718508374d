package formatter

import (
	"encoding/csv"
	"io"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

// CSVHeader mirrors the sheet export, so the output can be fed back with --file
var CSVHeader = []string{
	"Timestamp", "Date", "Dive Site", "Dive Time (min)", "Max Depth",
	"Avg Depth", "Water Temp", "Visibility", "Current", "Waves", "Guide",
}

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(r Report) error {
	w := csv.NewWriter(f.w)

	if err := w.Write(CSVHeader); err != nil {
		return err
	}

	for _, d := range r.Dives {
		record := make([]string, model.ColumnCount)
		record[model.ColTimestamp] = d.Timestamp
		record[model.ColDate] = d.Date
		record[model.ColSiteName] = d.SiteName
		record[model.ColDiveTime] = d.DiveTime
		record[model.ColMaxDepth] = d.MaxDepth
		record[model.ColAvgDepth] = d.AvgDepth
		record[model.ColWaterTemp] = d.WaterTemp
		record[model.ColVisibility] = d.Visibility
		record[model.ColCurrent] = d.Current
		record[model.ColWaves] = d.Waves
		record[model.ColGuide] = d.Guide
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
