package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider handles timezone-aware time operations for display
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

// NewTimeProvider creates a provider for the given timezone ("" or "Local" for the host zone)
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return provider, nil
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Seoul, Europe/London, Australia/Sydney", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the configured location
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.Now().In(tp.location)
}

// Format formats a time according to the layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location).Format(layout)
}

// FormatClock formats t as a wall clock in 12h or 24h style
func (tp *TimeProvider) FormatClock(t time.Time, timeFormat string) string {
	if timeFormat == "12h" {
		return tp.Format(t, "3:04:05 PM")
	}
	return tp.Format(t, "15:04:05")
}
