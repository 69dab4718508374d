package interaction

import (
	"sort"
	"strings"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

// SortField represents the field to sort dive cards by
type SortField int

const (
	SortByEntry SortField = iota
	SortByDepth
	SortByDuration
	SortBySite
)

func (f SortField) String() string {
	switch f {
	case SortByDepth:
		return "max depth"
	case SortByDuration:
		return "dive time"
	case SortBySite:
		return "site"
	default:
		return "log order"
	}
}

// DiveSorter orders the cards of the selected date
type DiveSorter struct {
	field SortField
}

// NewDiveSorter creates a sorter that keeps log order
func NewDiveSorter() *DiveSorter {
	return &DiveSorter{field: SortByEntry}
}

// Field returns the active sort field
func (s *DiveSorter) Field() SortField {
	return s.field
}

// Next switches to the following sort field and returns it
func (s *DiveSorter) Next() SortField {
	s.field = (s.field + 1) % 4
	return s.field
}

// Sort returns a sorted copy of logs. Numeric fields sort deepest or
// longest first; ties keep log order.
func (s *DiveSorter) Sort(logs []model.DiveLog) []model.DiveLog {
	sorted := make([]model.DiveLog, len(logs))
	copy(sorted, logs)

	sort.SliceStable(sorted, func(i, j int) bool {
		switch s.field {
		case SortByDepth:
			return model.ParseNumeric(sorted[i].MaxDepth) > model.ParseNumeric(sorted[j].MaxDepth)
		case SortByDuration:
			return model.ParseNumeric(sorted[i].DiveTime) > model.ParseNumeric(sorted[j].DiveTime)
		case SortBySite:
			return strings.ToLower(sorted[i].SiteName) < strings.ToLower(sorted[j].SiteName)
		default:
			return false
		}
	})
	return sorted
}
