package top

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/penwyp/go-dive-monitor/internal/data/ingest"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

// RefreshController runs ingestion cycles and applies their results to the StateManager
type RefreshController struct {
	loader  ingest.Loader
	state   *StateManager
	updates chan struct{}
	wg      sync.WaitGroup
}

// NewRefreshController creates a new RefreshController instance
func NewRefreshController(loader ingest.Loader, state *StateManager) *RefreshController {
	return &RefreshController{
		loader:  loader,
		state:   state,
		updates: make(chan struct{}, 1),
	}
}

// Updates signals after every state transition caused by a refresh.
// Signals coalesce; readers should re-read the state.
func (rc *RefreshController) Updates() <-chan struct{} {
	return rc.updates
}

// Refresh runs one cycle synchronously. The bool is false when the trigger was ignored.
func (rc *RefreshController) Refresh(ctx context.Context, trigger Trigger) (Completion, bool) {
	seq, ok := rc.state.BeginLoad(trigger)
	if !ok {
		util.LogDebug("Refresh already in progress, ignoring trigger", util.F("trigger", trigger.String()))
		return Completion{}, false
	}
	rc.notify()
	return rc.run(ctx, trigger, seq), true
}

// Start runs one cycle in the background and reports whether it started
func (rc *RefreshController) Start(ctx context.Context, trigger Trigger) bool {
	seq, ok := rc.state.BeginLoad(trigger)
	if !ok {
		util.LogDebug("Refresh already in progress, ignoring trigger", util.F("trigger", trigger.String()))
		return false
	}
	rc.notify()

	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()
		rc.run(ctx, trigger, seq)
	}()
	return true
}

// Wait blocks until every background cycle has completed
func (rc *RefreshController) Wait() {
	rc.wg.Wait()
}

func (rc *RefreshController) run(ctx context.Context, trigger Trigger, seq uint64) Completion {
	cycle := uuid.NewString()
	logger := util.Log().With(util.F("cycle", cycle), util.F("trigger", trigger.String()))
	start := time.Now()

	logger.Debug("Ingestion cycle started", util.F("seq", seq))

	logs, err := rc.loader.LoadLogs(ctx)
	result := rc.state.Complete(seq, cycle, logs, err)
	elapsed := time.Since(start).Round(time.Millisecond).String()

	switch {
	case result.Stale:
		logger.Debug("Discarded out-of-order ingestion result", util.F("seq", seq), util.F("elapsed", elapsed))
	case err != nil && result.Surfaced:
		logger.Error("Failed to load dive logs",
			util.F("kind", ingest.Classify(err).String()),
			util.F("error", err.Error()),
			util.F("elapsed", elapsed))
	case err != nil:
		logger.Warn("Background refresh failed, keeping existing data",
			util.F("kind", ingest.Classify(err).String()),
			util.F("error", err.Error()),
			util.F("records", result.Records),
			util.F("elapsed", elapsed))
	default:
		logger.Info("Dive logs loaded",
			util.F("records", result.Records),
			util.F("selected", result.Selected),
			util.F("elapsed", elapsed))
		if result.SelectionChanged && trigger != TriggerInitial && trigger != TriggerRetry {
			logger.Info("Selected date no longer present, moved to newest", util.F("selected", result.Selected))
		}
	}

	rc.notify()
	return result
}

func (rc *RefreshController) notify() {
	select {
	case rc.updates <- struct{}{}:
	default:
	}
}
