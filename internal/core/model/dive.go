package model

import "strings"

// DiveLog is one logged dive as it appears in the sheet export.
// Every field keeps the raw text of its cell; numbers are extracted only when aggregating.
type DiveLog struct {
	Timestamp  string `json:"timestamp"`
	Date       string `json:"date"`
	SiteName   string `json:"siteName"`
	DiveTime   string `json:"diveTimeMinutes"`
	MaxDepth   string `json:"maxDepth"`
	AvgDepth   string `json:"avgDepth"`
	WaterTemp  string `json:"waterTemp"`
	Visibility string `json:"visibility"`
	Current    string `json:"current"`
	Waves      string `json:"waves"`
	Guide      string `json:"guide"`
}

// Column positions in the export, header row excluded
const (
	ColTimestamp = iota
	ColDate
	ColSiteName
	ColDiveTime
	ColMaxDepth
	ColAvgDepth
	ColWaterTemp
	ColVisibility
	ColCurrent
	ColWaves
	ColGuide

	ColumnCount
)

// HasDate reports whether the record carries a usable grouping key
func (d DiveLog) HasDate() bool {
	return strings.TrimSpace(d.Date) != ""
}

// FilterByDate returns the records whose date equals date exactly, in input order
func FilterByDate(logs []DiveLog, date string) []DiveLog {
	filtered := make([]DiveLog, 0)
	for _, l := range logs {
		if l.Date == date {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
