package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockDashboard implements Dashboard with overridable behaviour
type mockDashboard struct {
	view        top.View
	SelectFunc  func(date string) error
	RefreshFunc func() bool
	RetryFunc   func() bool
	SummaryFunc func(ctx context.Context, date string) (string, string, error)
}

func (m *mockDashboard) Source() string { return "sheet 123" }
func (m *mockDashboard) View() top.View { return m.view }

func (m *mockDashboard) Select(date string) error {
	if m.SelectFunc != nil {
		return m.SelectFunc(date)
	}
	if !model.ContainsDate(m.view.Dates, date) {
		return top.ErrUnknownDate
	}
	m.view.SelectedDate = date
	m.view.Selected = model.FilterByDate(m.view.Records, date)
	return nil
}

func (m *mockDashboard) RequestRefresh() bool {
	if m.RefreshFunc != nil {
		return m.RefreshFunc()
	}
	return true
}

func (m *mockDashboard) Retry() bool {
	if m.RetryFunc != nil {
		return m.RetryFunc()
	}
	return true
}

func (m *mockDashboard) Summary(ctx context.Context, date string) (string, string, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, date)
	}
	return date, "Calm seas.", nil
}

func readyDashboard() *mockDashboard {
	records := []model.DiveLog{
		{Date: "2024-03-02", SiteName: "Blue Corner", MaxDepth: "28", AvgDepth: "18", WaterTemp: "27"},
		{Date: "2024-03-02", SiteName: "German Channel", MaxDepth: "22", AvgDepth: "14", WaterTemp: "28"},
		{Date: "2024-03-01", SiteName: "Ulong Wall", MaxDepth: "30", AvgDepth: "20", WaterTemp: "26"},
	}
	selected := model.FilterByDate(records, "2024-03-02")
	return &mockDashboard{view: top.View{
		Phase:        top.PhaseReady,
		Records:      records,
		Dates:        []string{"2024-03-02", "2024-03-01"},
		SelectedDate: "2024-03-02",
		Selected:     selected,
		Stats:        model.ComputeStats(selected),
		TotalDives:   len(records),
	}}
}

func do(t *testing.T, s *Server, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestHealth(t *testing.T) {
	s := NewServer(readyDashboard())
	w, out := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", out["status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := NewServer(readyDashboard())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestState(t *testing.T) {
	s := NewServer(readyDashboard())
	w, out := do(t, s, http.MethodGet, "/api/state", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sheet 123", out["source"])
	assert.Equal(t, "ready", out["phase"])
	assert.Equal(t, "2024-03-02", out["selectedDate"])
	assert.Equal(t, float64(3), out["totalDives"])
	assert.NotContains(t, out, "records", "raw records are served by /api/records")
}

func TestState_Errored(t *testing.T) {
	d := &mockDashboard{view: top.View{Phase: top.PhaseErrored, Error: "Sheet not found."}}
	_, out := do(t, NewServer(d), http.MethodGet, "/api/state", nil)
	assert.Equal(t, "errored", out["phase"])
	assert.Equal(t, "Sheet not found.", out["error"])
}

func TestDates(t *testing.T) {
	_, out := do(t, NewServer(readyDashboard()), http.MethodGet, "/api/dates", nil)
	assert.Equal(t, []interface{}{"2024-03-02", "2024-03-01"}, out["dates"])

	_, out = do(t, NewServer(&mockDashboard{}), http.MethodGet, "/api/dates", nil)
	assert.Equal(t, []interface{}{}, out["dates"])
}

func TestRecords(t *testing.T) {
	s := NewServer(readyDashboard())

	tests := []struct {
		name  string
		path  string
		code  int
		date  string
		count float64
	}{
		{"current selection", "/api/records", http.StatusOK, "2024-03-02", 2},
		{"explicit date", "/api/records?date=2024-03-01", http.StatusOK, "2024-03-01", 1},
		{"unknown date", "/api/records?date=1999-01-01", http.StatusNotFound, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := do(t, s, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.code, w.Code)
			if tt.code != http.StatusOK {
				assert.Contains(t, out["error"], "1999-01-01")
				return
			}
			assert.Equal(t, tt.date, out["date"])
			assert.Equal(t, tt.count, out["count"])
		})
	}
}

func TestRecords_NoSelection(t *testing.T) {
	_, out := do(t, NewServer(&mockDashboard{}), http.MethodGet, "/api/records", nil)
	assert.Equal(t, []interface{}{}, out["records"])
	assert.Equal(t, float64(0), out["count"])
}

func TestStats(t *testing.T) {
	s := NewServer(readyDashboard())

	_, out := do(t, s, http.MethodGet, "/api/stats", nil)
	stats := out["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["totalDives"])
	assert.Equal(t, float64(28), stats["maxDepth"])
	assert.Equal(t, float64(16), stats["avgDepth"])

	_, out = do(t, s, http.MethodGet, "/api/stats?date=2024-03-01", nil)
	stats = out["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalDives"])
	assert.Equal(t, float64(26), stats["avgTemp"])
}

func TestSummary(t *testing.T) {
	var asked string
	d := readyDashboard()
	d.SummaryFunc = func(ctx context.Context, date string) (string, string, error) {
		asked = date
		if date == "" {
			date = d.view.SelectedDate
		}
		return date, "Strong current at the wall.", nil
	}
	s := NewServer(d)

	_, out := do(t, s, http.MethodGet, "/api/summary", nil)
	assert.Empty(t, asked)
	assert.Equal(t, "2024-03-02", out["date"])
	assert.Equal(t, "Strong current at the wall.", out["summary"])

	_, _ = do(t, s, http.MethodGet, "/api/summary?date=2024-03-01", nil)
	assert.Equal(t, "2024-03-01", asked)
}

func TestSummary_UnknownDate(t *testing.T) {
	d := readyDashboard()
	d.SummaryFunc = func(context.Context, string) (string, string, error) {
		return "", "", top.ErrUnknownDate
	}
	w, _ := do(t, NewServer(d), http.MethodGet, "/api/summary?date=2000-01-01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelection(t *testing.T) {
	d := readyDashboard()
	s := NewServer(d)

	w, out := do(t, s, http.MethodPut, "/api/selection", []byte(`{"date":"2024-03-01"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-01", out["selectedDate"])
	assert.Equal(t, "2024-03-01", d.view.SelectedDate)

	w, out = do(t, s, http.MethodPut, "/api/selection", []byte(`{"date":"1999-01-01"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, top.ErrUnknownDate.Error(), out["error"])
	assert.Equal(t, "2024-03-01", d.view.SelectedDate, "a rejected selection leaves state alone")

	w, _ = do(t, s, http.MethodPut, "/api/selection", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh(t *testing.T) {
	d := readyDashboard()
	running := false
	d.RefreshFunc = func() bool {
		if running {
			return false
		}
		running = true
		return true
	}
	s := NewServer(d)

	w, out := do(t, s, http.MethodPost, "/api/refresh", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, true, out["started"])

	w, out = do(t, s, http.MethodPost, "/api/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["started"])
}

func TestRetry(t *testing.T) {
	retried := false
	d := &mockDashboard{view: top.View{Phase: top.PhaseErrored, Error: "Sheet not found."}}
	d.RetryFunc = func() bool { retried = true; return true }

	w, out := do(t, NewServer(d), http.MethodPost, "/api/retry", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, retried)
	assert.Equal(t, true, out["started"])
}

func TestRetry_NotStarted(t *testing.T) {
	d := readyDashboard()
	d.RetryFunc = func() bool { return false }

	w, out := do(t, NewServer(d), http.MethodPost, "/api/retry", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["started"])
	assert.Equal(t, "ready", out["phase"])
}
