package top

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/core/summary"
	"github.com/penwyp/go-dive-monitor/internal/data/ingest"
	"github.com/penwyp/go-dive-monitor/internal/data/sheet"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

// Dashboard is the session controller shared by every presentation surface.
// It owns one StateManager, its RefreshController and the Poller.
type Dashboard struct {
	config     *TopConfig
	source     string
	state      *StateManager
	refresh    *RefreshController
	poller     *Poller
	summarizer *summary.Summarizer

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	watcher ChangeNotifier
	started bool
}

// NewDashboard wires a dashboard around loader. summarizer may be nil.
func NewDashboard(config *TopConfig, loader ingest.Loader, summarizer *summary.Summarizer) *Dashboard {
	state := NewStateManager(time.Now)
	refresh := NewRefreshController(loader, state)

	if summarizer == nil {
		summarizer = summary.NewSummarizer(nil, "", 0)
	}

	source := ""
	if s, ok := loader.(interface{ Source() string }); ok {
		source = s.Source()
	}

	return &Dashboard{
		config:     config,
		source:     source,
		state:      state,
		refresh:    refresh,
		poller:     NewPoller(config.PollInterval, refresh),
		summarizer: summarizer,
	}
}

// Start kicks off the initial load, the poller and, for watched local
// files, the file watcher. It returns once everything is running.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return nil
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	if d.config.LocalFile != "" && d.config.Watch {
		watcher, err := sheet.NewFileWatcher(d.config.LocalFile, watchDebounce)
		if err != nil {
			d.cancel()
			return fmt.Errorf("failed to watch %s: %w", d.config.LocalFile, err)
		}
		d.watcher = watcher
		go d.forwardChanges(d.ctx, watcher)
	}

	util.LogInfo("Starting dive log sync",
		util.F("source", d.source),
		util.F("interval", d.config.PollInterval.String()))

	d.refresh.Start(d.ctx, TriggerInitial)
	d.poller.Start(d.ctx)
	d.started = true
	return nil
}

func (d *Dashboard) forwardChanges(ctx context.Context, watcher ChangeNotifier) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-watcher.Changes():
			if !ok {
				return
			}
			util.LogDebug("Local export changed, refreshing", util.F("file", d.config.LocalFile))
			d.refresh.Start(ctx, TriggerWatch)
		}
	}
}

// Stop halts polling and watching, then waits for in-flight cycles
func (d *Dashboard) Stop() {
	d.poller.Stop()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	watcher := d.watcher
	d.mu.Unlock()

	if watcher != nil {
		if err := watcher.Close(); err != nil {
			util.LogWarn("Failed to close file watcher", util.F("error", err.Error()))
		}
	}
	d.refresh.Wait()
}

// LoadOnce runs a single synchronous cycle, for one-shot reports
func (d *Dashboard) LoadOnce(ctx context.Context) (View, error) {
	d.refresh.Refresh(ctx, TriggerInitial)

	v := d.state.View()
	if v.Error != "" {
		return v, errors.New(v.Error)
	}
	return v, nil
}

func (d *Dashboard) runContext() context.Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctx != nil {
		return d.ctx
	}
	return context.Background()
}

// Source describes the data source
func (d *Dashboard) Source() string {
	return d.source
}

// View returns the current snapshot
func (d *Dashboard) View() View {
	return d.state.View()
}

// Updates signals whenever the state may have changed
func (d *Dashboard) Updates() <-chan struct{} {
	return d.refresh.Updates()
}

// Select changes the selected date
func (d *Dashboard) Select(date string) error {
	return d.state.Select(date)
}

// Step moves the selection to an older (positive) or newer (negative) date
func (d *Dashboard) Step(delta int) bool {
	return d.state.Step(delta)
}

// RequestRefresh starts a manual sync; false means one is already running
func (d *Dashboard) RequestRefresh() bool {
	return d.refresh.Start(d.runContext(), TriggerManual)
}

// Retry resets to the initial-load path, including auto-selection of the newest date.
// With records held it behaves like RequestRefresh.
func (d *Dashboard) Retry() bool {
	return d.refresh.Start(d.runContext(), TriggerRetry)
}

// SelectDate resolves an explicit date or falls back to the current selection
func (d *Dashboard) SelectDate(v View, date string) (string, []model.DiveLog, error) {
	if date == "" {
		return v.SelectedDate, v.Selected, nil
	}
	if !model.ContainsDate(v.Dates, date) {
		return "", nil, ErrUnknownDate
	}
	return date, model.FilterByDate(v.Records, date), nil
}

// Summary returns the condition report for date, or the selection when date is empty
func (d *Dashboard) Summary(ctx context.Context, date string) (string, string, error) {
	resolved, logs, err := d.SelectDate(d.View(), date)
	if err != nil {
		return "", "", err
	}
	return resolved, d.summarizer.Summarize(ctx, resolved, logs), nil
}

// CachedSummary returns a memoised report without calling the provider
func (d *Dashboard) CachedSummary(date string, logs []model.DiveLog) (string, bool) {
	return d.summarizer.Cached(date, logs)
}

// Summarizer exposes the summarizer for asynchronous generation
func (d *Dashboard) Summarizer() *summary.Summarizer {
	return d.summarizer
}
