package model

import "time"

// DashboardData is everything a layout needs to draw one screen
type DashboardData struct {
	Source       string
	Dates        []string
	SelectedDate string
	Selected     []DiveLog
	Stats        DiveStats
	TotalDives   int
	LastSync     time.Time
	Syncing      bool

	// Summary is the AI condition report for SelectedDate; empty while pending
	Summary        string
	SummaryPending bool
}

// HasSelection reports whether a date is selected and carries dives
func (d DashboardData) HasSelection() bool {
	return d.SelectedDate != "" && len(d.Selected) > 0
}

// DateIndex returns the position of the selected date, or -1
func (d DashboardData) DateIndex() int {
	for i, date := range d.Dates {
		if date == d.SelectedDate {
			return i
		}
	}
	return -1
}

// LayoutParam carries rendering preferences
type LayoutParam struct {
	TimeFormat string
	Timezone   string
	Width      int
	Now        time.Time
}
