package top

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/summary"
	"github.com/penwyp/go-dive-monitor/internal/data/ingest"
	"github.com/penwyp/go-dive-monitor/internal/data/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "Timestamp,Date,Point,DiveTime,MaxDepth,AvgDepth,WaterTemp,Visibility,Current,Waves,Guide\n"

func testConfig(t *testing.T) *TopConfig {
	t.Helper()
	cfg := &TopConfig{PollInterval: time.Hour, Summary: summary.Config{Provider: summary.ProviderNone}}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestDashboard_LoadOnce(t *testing.T) {
	loader := &scriptedLoader{results: []result{{logs: dives("2024-01-01", "2024-01-02")}}}
	d := NewDashboard(testConfig(t), loader, nil)

	v, err := d.LoadOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", v.SelectedDate)
	assert.Equal(t, "scripted", d.Source())
}

func TestDashboard_LoadOnceFailure(t *testing.T) {
	loader := &scriptedLoader{results: []result{{err: ingest.ErrEmptyDataset}}}
	d := NewDashboard(testConfig(t), loader, nil)

	_, err := d.LoadOnce(context.Background())

	require.Error(t, err)
	assert.Equal(t, "No dive logs found in the sheet.", err.Error())
}

func TestDashboard_StartRefreshRetryStop(t *testing.T) {
	loader := &scriptedLoader{results: []result{{logs: dives("2024-01-01", "2024-01-02")}}}
	d := NewDashboard(testConfig(t), loader, nil)

	require.NoError(t, d.Start(context.Background()))
	require.NoError(t, d.Start(context.Background()))

	assert.Eventually(t, func() bool { return d.View().Phase == PhaseReady }, time.Second, 5*time.Millisecond)

	require.NoError(t, d.Select("2024-01-01"))
	assert.True(t, d.RequestRefresh())
	assert.Eventually(t, func() bool { return d.View().Phase == PhaseReady }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "2024-01-01", d.View().SelectedDate)

	assert.True(t, d.Retry())
	assert.False(t, d.View().Loading, "retry with data held does not bring back the loading screen")
	assert.Eventually(t, func() bool { return d.View().Phase == PhaseReady }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "2024-01-01", d.View().SelectedDate)

	d.Stop()
	assert.Equal(t, int32(3), loader.calls.Load())
}

func TestDashboard_Summary(t *testing.T) {
	loader := &scriptedLoader{results: []result{{logs: dives("2024-01-01", "2024-01-02")}}}
	d := NewDashboard(testConfig(t), loader, nil)
	_, err := d.LoadOnce(context.Background())
	require.NoError(t, err)

	date, text, err := d.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", date)
	assert.Equal(t, summary.FallbackText, text)

	_, _, err = d.Summary(context.Background(), "1999-01-01")
	assert.ErrorIs(t, err, ErrUnknownDate)
}

func TestDashboard_WatchedFileTriggersRefresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvHeader+"1,2024-01-01,Reef\n"), 0644))

	cfg := &TopConfig{LocalFile: path, Watch: true, PollInterval: time.Hour, Summary: summary.Config{Provider: summary.ProviderNone}}
	require.NoError(t, cfg.Validate())

	d := NewDashboard(cfg, ingest.NewService(sheet.NewFetcher(cfg.SheetConfig())), nil)
	require.NoError(t, d.Start(context.Background()))
	defer d.Stop()

	assert.Eventually(t, func() bool { return d.View().TotalDives == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(csvHeader+"1,2024-01-01,Reef\n2,2024-01-02,Wall\n"), 0644))

	assert.Eventually(t, func() bool { return d.View().TotalDives == 2 }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, "2024-01-01", d.View().SelectedDate, "a newer date does not move an existing selection")
}
