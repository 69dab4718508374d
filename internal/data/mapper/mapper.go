// Package mapper turns parsed CSV rows into dive log records by column position.
package mapper

import (
	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

// MapRows drops the header row, maps the rest by fixed column index and
// discards rows without a date. Missing trailing columns become empty
// strings. Input order is preserved.
func MapRows(rows [][]string) []model.DiveLog {
	if len(rows) <= 1 {
		return []model.DiveLog{}
	}

	logs := make([]model.DiveLog, 0, len(rows)-1)
	for _, row := range rows[1:] {
		log := MapRow(row)
		if !log.HasDate() {
			continue
		}
		logs = append(logs, log)
	}
	return logs
}

// MapRow maps one data row without validating it
func MapRow(row []string) model.DiveLog {
	return model.DiveLog{
		Timestamp:  cell(row, model.ColTimestamp),
		Date:       cell(row, model.ColDate),
		SiteName:   cell(row, model.ColSiteName),
		DiveTime:   cell(row, model.ColDiveTime),
		MaxDepth:   cell(row, model.ColMaxDepth),
		AvgDepth:   cell(row, model.ColAvgDepth),
		WaterTemp:  cell(row, model.ColWaterTemp),
		Visibility: cell(row, model.ColVisibility),
		Current:    cell(row, model.ColCurrent),
		Waves:      cell(row, model.ColWaves),
		Guide:      cell(row, model.ColGuide),
	}
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
