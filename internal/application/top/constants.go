package top

import "time"

const (
	// DefaultPollInterval is how often the sheet is checked for new dives
	DefaultPollInterval = 60 * time.Second

	DefaultServeAddr = "127.0.0.1:8787"

	watchDebounce = 250 * time.Millisecond
)
