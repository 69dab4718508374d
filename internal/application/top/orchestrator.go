package top

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/core/summary"
	"github.com/penwyp/go-dive-monitor/internal/presentation/display"
	"github.com/penwyp/go-dive-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-dive-monitor/internal/presentation/layout"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const statusTTL = 3 * time.Second

type summaryResult struct {
	key  string
	text string
}

// Orchestrator drives the interactive dashboard: it renders frames from
// the Dashboard state and turns key presses into dashboard actions.
type Orchestrator struct {
	config    *TopConfig
	dashboard *Dashboard
	display   DisplayController
	input     InputHandler
	sorter    *interaction.DiveSorter

	showHelp    bool
	layoutStyle int
	status      string
	statusUntil time.Time

	summaries   chan summaryResult
	pendingKey  string
	summaryKey  string
	summaryText string

	now func() time.Time
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *TopConfig, dashboard *Dashboard, display DisplayController, input InputHandler) *Orchestrator {
	return &Orchestrator{
		config:      config,
		dashboard:   dashboard,
		display:     display,
		input:       input,
		sorter:      interaction.NewDiveSorter(),
		layoutStyle: layout.StyleFromName(config.Layout),
		summaries:   make(chan summaryResult, 1),
		now:         time.Now,
	}
}

// Run starts the dashboard and the main loop until quit or ctx is done
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting Dive Monitor Top...", util.F("source", o.dashboard.Source()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	defer func() {
		if err := o.input.Close(); err != nil {
			util.LogWarn("Failed to close keyboard", util.F("error", err.Error()))
		}
	}()

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	if err := o.dashboard.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dashboard: %w", err)
	}
	defer o.dashboard.Stop()

	interval := time.Duration(float64(time.Second) / o.config.UIRefreshRate)
	uiTicker := time.NewTicker(interval)
	defer uiTicker.Stop()

	o.updateDisplay(ctx)

	events := o.input.Events()
	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down Dive Monitor Top...")
			return nil

		case <-uiTicker.C:
			o.updateDisplay(ctx)

		case <-o.dashboard.Updates():
			o.updateDisplay(ctx)

		case res := <-o.summaries:
			if res.key == o.pendingKey {
				o.summaryKey, o.summaryText = res.key, res.text
				o.pendingKey = ""
			}
			o.updateDisplay(ctx)

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if o.handleKeyboard(ev) {
				util.LogInfo("Quit requested")
				return nil
			}
			o.updateDisplay(ctx)
		}
	}
}

// handleKeyboard applies one key press and reports whether to quit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	v := o.dashboard.View()

	if event.Type == interaction.KeyChar && (event.Key == 'q' || event.Key == 'Q' || event.Key == interaction.KeyCtrlC) {
		return true
	}

	if event.Type == interaction.KeyEscape {
		if o.showHelp {
			o.showHelp = false
			return false
		}
		return true
	}

	// The blocking error screen only offers retry
	if v.Error != "" && !o.showHelp {
		if event.Type == interaction.KeyChar && (event.Key == 'r' || event.Key == 'R') {
			o.dashboard.Retry()
		}
		return false
	}

	switch event.Type {
	case interaction.KeyLeft, interaction.KeyUp:
		o.dashboard.Step(-1)
	case interaction.KeyRight, interaction.KeyDown:
		o.dashboard.Step(1)
	case interaction.KeyChar:
		switch event.Key {
		case 'p', 'P':
			o.dashboard.Step(-1)
		case 'n', 'N':
			o.dashboard.Step(1)
		case 'r', 'R':
			if o.dashboard.RequestRefresh() {
				o.setStatus("Sync started")
			} else {
				o.setStatus("Sync already in progress")
			}
		case 's', 'S':
			o.setStatus("Cards sorted by " + o.sorter.Next().String())
		case 'h', 'H':
			o.showHelp = !o.showHelp
		case 't', 'T':
			o.layoutStyle = layout.NextStyle(o.layoutStyle)
		}
	}
	return false
}

func (o *Orchestrator) setStatus(msg string) {
	o.status = msg
	o.statusUntil = o.now().Add(statusTTL)
}

func (o *Orchestrator) updateDisplay(ctx context.Context) {
	o.display.Render(o.buildFrame(ctx, o.dashboard.View()))
}

// buildFrame converts a state snapshot into a frame, requesting the
// AI summary for the selected date when it is not known yet
func (o *Orchestrator) buildFrame(ctx context.Context, v View) display.Frame {
	now := o.now()

	data := model.DashboardData{
		Source:       o.dashboard.Source(),
		Dates:        v.Dates,
		SelectedDate: v.SelectedDate,
		Selected:     o.sorter.Sort(v.Selected),
		Stats:        v.Stats,
		TotalDives:   v.TotalDives,
		LastSync:     v.LastSync,
		Syncing:      v.Refreshing,
	}
	data.Summary, data.SummaryPending = o.summaryFor(ctx, v.SelectedDate, v.Selected)

	frame := display.Frame{
		Loading:     v.Loading,
		Error:       v.Error,
		ShowHelp:    o.showHelp,
		LayoutStyle: o.layoutStyle,
		Data:        data,
		Param: model.LayoutParam{
			TimeFormat: o.config.TimeFormat,
			Timezone:   o.config.Timezone,
			Now:        now,
		},
	}
	if o.config.LocalFile != "" {
		frame.LoadingDetail = "Reading " + filepath.Base(o.config.LocalFile) + "..."
	}
	if o.status != "" && now.Before(o.statusUntil) {
		frame.StatusMessage = o.status
	}
	return frame
}

func (o *Orchestrator) summaryFor(ctx context.Context, date string, logs []model.DiveLog) (string, bool) {
	if date == "" || len(logs) == 0 {
		return "", false
	}

	key := summary.Key(date, logs)
	if key == o.summaryKey {
		return o.summaryText, false
	}
	if text, ok := o.dashboard.CachedSummary(date, logs); ok {
		o.summaryKey, o.summaryText = key, text
		return text, false
	}
	if o.pendingKey == key {
		return "", true
	}

	o.pendingKey = key
	summarizer := o.dashboard.Summarizer()
	go func() {
		text := summarizer.Summarize(ctx, date, logs)
		select {
		case o.summaries <- summaryResult{key: key, text: text}:
		case <-ctx.Done():
		}
	}()
	return "", true
}
