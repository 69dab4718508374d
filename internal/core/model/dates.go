package model

import (
	"sort"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// dateLayouts are tried in order before falling back to natural-language parsing.
// US month-first slashes win over day-first, matching how browsers read "3/5/2024".
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006. 1. 2",
	"2006. 1. 2.",
	"1/2/2006",
	"01/02/2006",
	"1/2/2006 15:04:05",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
}

// DateParser turns the free-form date cells of the sheet into calendar times
type DateParser struct {
	w   *when.Parser
	now func() time.Time
}

// NewDateParser creates a parser. now anchors relative phrases such as "yesterday".
func NewDateParser(now func() time.Time) *DateParser {
	if now == nil {
		now = time.Now
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DateParser{w: w, now: now}
}

// Parse returns the calendar time of a date cell and whether it could be understood.
// The natural-language fallback only counts when it consumes the whole cell.
func (p *DateParser) Parse(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	r, err := p.w.Parse(s, p.now())
	if err != nil || r == nil {
		return time.Time{}, false
	}
	if r.Index != 0 || len(strings.TrimSpace(r.Text)) != len(s) {
		return time.Time{}, false
	}
	return r.Time, true
}

// UniqueDates returns the distinct dates of logs, newest first.
// Pairs where either side cannot be parsed compare equal, so they keep
// their first-seen relative order.
func (p *DateParser) UniqueDates(logs []DiveLog) []string {
	seen := make(map[string]struct{}, len(logs))
	dates := make([]string, 0)
	for _, l := range logs {
		if _, ok := seen[l.Date]; ok {
			continue
		}
		seen[l.Date] = struct{}{}
		dates = append(dates, l.Date)
	}

	type parsed struct {
		t  time.Time
		ok bool
	}
	keys := make(map[string]parsed, len(dates))
	for _, d := range dates {
		t, ok := p.Parse(d)
		keys[d] = parsed{t: t, ok: ok}
	}

	sort.SliceStable(dates, func(i, j int) bool {
		a, b := keys[dates[i]], keys[dates[j]]
		if !a.ok || !b.ok {
			return false
		}
		return a.t.After(b.t)
	})
	return dates
}

// ContainsDate reports whether date is one of dates
func ContainsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
