package top

import (
	"errors"
	"testing"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/data/ingest"
	"github.com/penwyp/go-dive-monitor/internal/data/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
}

func dives(dates ...string) []model.DiveLog {
	logs := make([]model.DiveLog, 0, len(dates))
	for i, d := range dates {
		logs = append(logs, model.DiveLog{Date: d, SiteName: "site" + string(rune('A'+i)), MaxDepth: "20m"})
	}
	return logs
}

func load(t *testing.T, sm *StateManager, trigger Trigger, logs []model.DiveLog, err error) Completion {
	t.Helper()
	seq, ok := sm.BeginLoad(trigger)
	require.True(t, ok)
	return sm.Complete(seq, "cycle", logs, err)
}

func TestStateManager_InitialLoadSelectsNewestDate(t *testing.T) {
	sm := NewStateManager(fixedClock)
	assert.Equal(t, PhaseIdle, sm.View().Phase)

	seq, ok := sm.BeginLoad(TriggerInitial)
	require.True(t, ok)
	v := sm.View()
	assert.True(t, v.Loading)
	assert.False(t, v.Refreshing)

	sm.Complete(seq, "c1", dives("2024-01-01", "2024-03-05", "2024-02-10"), nil)

	v = sm.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Equal(t, []string{"2024-03-05", "2024-02-10", "2024-01-01"}, v.Dates)
	assert.Equal(t, "2024-03-05", v.SelectedDate)
	assert.Len(t, v.Selected, 1)
	assert.Equal(t, 3, v.TotalDives)
	assert.Equal(t, fixedClock(), v.LastSync)
	assert.Equal(t, "c1", v.CycleID)
	assert.Empty(t, v.Error)
}

func TestStateManager_SelectionSelfHeals(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01", "2024-01-02"), nil)
	require.NoError(t, sm.Select("2024-01-01"))

	c := load(t, sm, TriggerPoll, dives("2024-01-02", "2024-01-03"), nil)

	assert.True(t, c.SelectionChanged)
	assert.Equal(t, "2024-01-03", sm.View().SelectedDate)
}

func TestStateManager_AutoSelectOnlyOnFirstLoad(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01", "2024-01-02"), nil)
	require.NoError(t, sm.Select("2024-01-01"))

	c := load(t, sm, TriggerPoll, dives("2024-01-01", "2024-01-02", "2024-01-09"), nil)

	assert.False(t, c.SelectionChanged)
	v := sm.View()
	assert.Equal(t, "2024-01-01", v.SelectedDate)
	assert.Equal(t, "2024-01-09", v.Dates[0])
}

func TestStateManager_BackgroundFailureIsSilent(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01", "2024-01-02"), nil)
	require.NoError(t, sm.Select("2024-01-01"))
	before := sm.View()

	seq, ok := sm.BeginLoad(TriggerPoll)
	require.True(t, ok)
	during := sm.View()
	assert.True(t, during.Refreshing)
	assert.False(t, during.Loading)
	assert.Equal(t, before.Records, during.Records)

	c := sm.Complete(seq, "c2", nil, &sheet.NetworkError{Err: errors.New("offline")})

	assert.False(t, c.Surfaced)
	after := sm.View()
	assert.Equal(t, PhaseReady, after.Phase)
	assert.Empty(t, after.Error)
	assert.Equal(t, before.Records, after.Records)
	assert.Equal(t, before.SelectedDate, after.SelectedDate)
	assert.Equal(t, before.Selected, after.Selected)
	assert.Equal(t, before.LastSync, after.LastSync)
}

func TestStateManager_EmptyDatasetWithDataKeepsData(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01"), nil)

	c := load(t, sm, TriggerPoll, nil, ingest.ErrEmptyDataset)

	assert.False(t, c.Surfaced)
	v := sm.View()
	assert.Equal(t, 1, v.TotalDives)
	assert.Empty(t, v.Error)
}

func TestStateManager_FirstLoadFailureIsErrored(t *testing.T) {
	sm := NewStateManager(fixedClock)

	c := load(t, sm, TriggerInitial, nil, &sheet.NetworkError{Err: errors.New("dial")})

	assert.True(t, c.Surfaced)
	v := sm.View()
	assert.Equal(t, PhaseErrored, v.Phase)
	assert.False(t, v.Loading)
	assert.Equal(t, "Failed to connect to the Google Sheet.", v.Error)
	assert.Equal(t, ingest.FailureNetwork, v.ErrorKind)
}

func TestStateManager_EmptyDatasetMessageDiffersFromError(t *testing.T) {
	sm := NewStateManager(fixedClock)

	load(t, sm, TriggerInitial, nil, ingest.ErrEmptyDataset)

	v := sm.View()
	assert.Equal(t, PhaseErrored, v.Phase)
	assert.Equal(t, "No dive logs found in the sheet.", v.Error)
	assert.Equal(t, ingest.FailureEmptyDataset, v.ErrorKind)
}

func TestStateManager_RetryReenablesAutoSelect(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, nil, &sheet.NotFoundError{Resource: "x"})

	seq, ok := sm.BeginLoad(TriggerRetry)
	require.True(t, ok)
	v := sm.View()
	assert.True(t, v.Loading)
	assert.Empty(t, v.Error)

	sm.Complete(seq, "c", dives("2024-01-01", "2024-05-01"), nil)
	assert.Equal(t, "2024-05-01", sm.View().SelectedDate)
}

func TestStateManager_RetryWithDataIsPlainRefresh(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01", "2024-01-02"), nil)
	require.NoError(t, sm.Select("2024-01-01"))

	seq, ok := sm.BeginLoad(TriggerRetry)
	require.True(t, ok)
	v := sm.View()
	assert.False(t, v.Loading)
	assert.True(t, v.Refreshing)
	assert.Equal(t, PhaseRefreshing, v.Phase)

	_, ok = sm.BeginLoad(TriggerRetry)
	assert.False(t, ok, "a second retry while syncing is ignored like a manual refresh")

	sm.Complete(seq, "c", dives("2024-01-01", "2024-01-02", "2024-01-03"), nil)

	v = sm.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.False(t, v.Loading)
	assert.Equal(t, "2024-01-01", v.SelectedDate)
}

func TestStateManager_ManualIgnoredWhileInFlight(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01"), nil)

	seq, ok := sm.BeginLoad(TriggerPoll)
	require.True(t, ok)

	_, ok = sm.BeginLoad(TriggerManual)
	assert.False(t, ok)
	assert.Equal(t, 1, sm.InFlight())

	_, ok = sm.BeginLoad(TriggerPoll)
	assert.True(t, ok, "periodic polls always start")
	assert.Equal(t, 2, sm.InFlight())

	sm.Complete(seq, "c", dives("2024-01-01"), nil)
	assert.True(t, sm.View().Refreshing)
}

func TestStateManager_StaleCompletionDiscarded(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01"), nil)

	slow, _ := sm.BeginLoad(TriggerPoll)
	fast, _ := sm.BeginLoad(TriggerPoll)

	sm.Complete(fast, "fast", dives("2024-01-01", "2024-02-01"), nil)
	c := sm.Complete(slow, "slow", dives("2023-12-31"), nil)

	assert.True(t, c.Stale)
	v := sm.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Equal(t, []string{"2024-02-01", "2024-01-01"}, v.Dates)
	assert.Equal(t, "fast", v.CycleID)
}

func TestStateManager_NewerFailureKeepsOlderSuccess(t *testing.T) {
	t.Run("first load", func(t *testing.T) {
		sm := NewStateManager(fixedClock)
		initial, _ := sm.BeginLoad(TriggerInitial)
		poll, _ := sm.BeginLoad(TriggerPoll)

		sm.Complete(poll, "poll", nil, &sheet.NetworkError{Err: errors.New("reset")})
		assert.True(t, sm.View().Loading, "the first load is still in flight")

		c := sm.Complete(initial, "initial", dives("2024-01-01"), nil)

		assert.False(t, c.Stale)
		assert.True(t, c.Applied)
		v := sm.View()
		assert.Equal(t, PhaseReady, v.Phase)
		assert.Empty(t, v.Error)
		assert.Equal(t, "2024-01-01", v.SelectedDate)
		assert.Len(t, v.Records, 1)
	})

	t.Run("data held", func(t *testing.T) {
		sm := NewStateManager(fixedClock)
		load(t, sm, TriggerInitial, dives("2024-01-01"), nil)

		slow, _ := sm.BeginLoad(TriggerPoll)
		fast, _ := sm.BeginLoad(TriggerPoll)

		sm.Complete(fast, "fast", nil, &sheet.HTTPError{Status: 500})
		c := sm.Complete(slow, "slow", dives("2024-01-01", "2024-02-01"), nil)

		assert.False(t, c.Stale)
		v := sm.View()
		assert.Equal(t, PhaseReady, v.Phase)
		assert.Equal(t, []string{"2024-02-01", "2024-01-01"}, v.Dates)
		assert.Empty(t, v.Error)
	})
}

func TestStateManager_FailureOlderThanSuccessIsStale(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01"), nil)

	slow, _ := sm.BeginLoad(TriggerPoll)
	fast, _ := sm.BeginLoad(TriggerPoll)

	sm.Complete(fast, "fast", dives("2024-01-01", "2024-02-01"), nil)
	c := sm.Complete(slow, "slow", nil, &sheet.HTTPError{Status: 500})

	assert.True(t, c.Stale)
	assert.Equal(t, "fast", sm.View().CycleID)
}

func TestStateManager_LoadingStaysUntilFirstData(t *testing.T) {
	sm := NewStateManager(fixedClock)

	initial, _ := sm.BeginLoad(TriggerInitial)
	_, ok := sm.BeginLoad(TriggerPoll)
	require.True(t, ok)
	assert.True(t, sm.View().Loading, "a poll during the first load does not hide the loading screen")

	sm.Complete(initial, "c", dives("2024-01-01"), nil)
	v := sm.View()
	assert.False(t, v.Loading)
	assert.True(t, v.Refreshing)
}

func TestStateManager_PollDuringErrorKeepsError(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, nil, &sheet.HTTPError{Status: 500})

	_, ok := sm.BeginLoad(TriggerPoll)
	require.True(t, ok)

	v := sm.View()
	assert.True(t, v.Refreshing)
	assert.Equal(t, "Google Sheets error: 500", v.Error)
}

func TestStateManager_Select(t *testing.T) {
	sm := NewStateManager(fixedClock)
	assert.ErrorIs(t, sm.Select("2024-01-01"), ErrUnknownDate)

	load(t, sm, TriggerInitial, dives("2024-01-01", "2024-01-02"), nil)
	assert.NoError(t, sm.Select("2024-01-01"))
	assert.ErrorIs(t, sm.Select("1999-01-01"), ErrUnknownDate)
	assert.Equal(t, "2024-01-01", sm.View().SelectedDate)
}

func TestStateManager_Step(t *testing.T) {
	sm := NewStateManager(fixedClock)
	assert.False(t, sm.Step(1))

	load(t, sm, TriggerInitial, dives("2024-01-01", "2024-01-02", "2024-01-03"), nil)

	assert.False(t, sm.Step(-1), "already at newest")
	assert.True(t, sm.Step(1))
	assert.Equal(t, "2024-01-02", sm.View().SelectedDate)
	assert.True(t, sm.Step(5))
	assert.Equal(t, "2024-01-01", sm.View().SelectedDate)
	assert.False(t, sm.Step(1))
}

func TestStateManager_ViewIsACopy(t *testing.T) {
	sm := NewStateManager(fixedClock)
	load(t, sm, TriggerInitial, dives("2024-01-01"), nil)

	v := sm.View()
	v.Records[0].SiteName = "mutated"
	v.Dates[0] = "mutated"

	fresh := sm.View()
	assert.Equal(t, "siteA", fresh.Records[0].SiteName)
	assert.Equal(t, "2024-01-01", fresh.Dates[0])
}

func TestPhaseAndTriggerStrings(t *testing.T) {
	assert.Equal(t, "refreshing", PhaseRefreshing.String())
	b, err := PhaseErrored.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "errored", string(b))
	assert.Equal(t, "manual", TriggerManual.String())
	assert.Equal(t, "watch", TriggerWatch.String())
}
