package summary

import (
	"context"
	"sync"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const (
	// FallbackText replaces the summary whenever generation fails
	FallbackText = "Dive summary currently unavailable."
	// PlaceholderText is shown when the selected date has no dives
	PlaceholderText = "Select a date to see the AI analysis of the conditions."
)

type memoKey struct {
	date        string
	fingerprint string
}

// Summarizer generates condition reports and remembers them per date and content
type Summarizer struct {
	provider Provider
	template string
	timeout  time.Duration

	mu   sync.RWMutex
	memo map[memoKey]string
}

// NewSummarizer creates a summarizer. A nil provider always yields FallbackText.
func NewSummarizer(provider Provider, template string, timeout time.Duration) *Summarizer {
	if template == "" {
		template = DefaultPromptTemplate
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Summarizer{
		provider: provider,
		template: template,
		timeout:  timeout,
		memo:     make(map[memoKey]string),
	}
}

// Enabled reports whether a provider is configured
func (s *Summarizer) Enabled() bool {
	return s.provider != nil
}

// Cached returns a previously generated summary for exactly these dives
func (s *Summarizer) Cached(date string, logs []model.DiveLog) (string, bool) {
	if len(logs) == 0 {
		return PlaceholderText, true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.memo[keyFor(date, logs)]
	return text, ok
}

// Summarize returns the report for the dives of date. It never fails:
// errors are logged and replaced with FallbackText, which is not memoised.
func (s *Summarizer) Summarize(ctx context.Context, date string, logs []model.DiveLog) string {
	if len(logs) == 0 {
		return PlaceholderText
	}

	key := keyFor(date, logs)
	s.mu.RLock()
	text, ok := s.memo[key]
	s.mu.RUnlock()
	if ok {
		return text
	}

	if s.provider == nil {
		return FallbackText
	}

	prompt, err := BuildPrompt(s.template, date, logs)
	if err != nil {
		util.LogError("Failed to render summary prompt", util.F("error", err.Error()))
		return FallbackText
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err = s.provider.GenerateText(callCtx, prompt)
	if err != nil {
		util.LogWarn("AI analysis failed",
			util.F("provider", s.provider.Name()),
			util.F("date", date),
			util.F("error", err.Error()))
		return FallbackText
	}

	s.mu.Lock()
	s.memo[key] = text
	s.mu.Unlock()
	return text
}

// Key identifies a date and its dives for memoisation and change detection
func Key(date string, logs []model.DiveLog) string {
	k := keyFor(date, logs)
	return k.date + "#" + k.fingerprint
}

func keyFor(date string, logs []model.DiveLog) memoKey {
	parts := make([]string, 0, len(logs)*model.ColumnCount)
	for _, l := range logs {
		parts = append(parts,
			l.Timestamp, l.Date, l.SiteName, l.DiveTime, l.MaxDepth, l.AvgDepth,
			l.WaterTemp, l.Visibility, l.Current, l.Waves, l.Guide)
	}
	return memoKey{date: date, fingerprint: util.Fingerprint(parts...)}
}
