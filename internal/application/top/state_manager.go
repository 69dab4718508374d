package top

import (
	"errors"
	"sync"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/data/ingest"
)

// ErrUnknownDate is returned when selecting a date that no record carries
var ErrUnknownDate = errors.New("date not present in dive logs")

// Phase is the lifecycle state of the dashboard data
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseRefreshing
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseRefreshing:
		return "refreshing"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Trigger names what started an ingestion attempt
type Trigger int

const (
	TriggerInitial Trigger = iota
	TriggerPoll
	TriggerManual
	TriggerRetry
	TriggerWatch
)

func (t Trigger) String() string {
	switch t {
	case TriggerInitial:
		return "initial"
	case TriggerPoll:
		return "poll"
	case TriggerManual:
		return "manual"
	case TriggerRetry:
		return "retry"
	case TriggerWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// View is an immutable snapshot of the dashboard state
type View struct {
	Phase        Phase              `json:"phase"`
	Loading      bool               `json:"loading"`
	Refreshing   bool               `json:"refreshing"`
	Error        string             `json:"error,omitempty"`
	ErrorKind    ingest.FailureKind `json:"errorKind,omitempty"`
	Records      []model.DiveLog    `json:"-"`
	Dates        []string           `json:"dates"`
	SelectedDate string             `json:"selectedDate"`
	Selected     []model.DiveLog    `json:"-"`
	Stats        model.DiveStats    `json:"stats"`
	TotalDives   int                `json:"totalDives"`
	LastSync     time.Time          `json:"lastSync,omitempty"`
	CycleID      string             `json:"cycleId,omitempty"`
}

// HasData reports whether any records are held
func (v View) HasData() bool {
	return len(v.Records) > 0
}

// Completion describes how one finished attempt was applied
type Completion struct {
	Applied          bool
	Stale            bool
	Surfaced         bool
	SelectionChanged bool
	Selected         string
	Records          int
}

// StateManager owns the record collection and the selected date.
// Every method is one critical section, so readers never observe a half-applied update.
type StateManager struct {
	mu sync.RWMutex

	phase      Phase
	records    []model.DiveLog
	dates      []string
	selected   string
	lastError  error
	autoSelect bool

	nextSeq    uint64
	appliedSeq uint64
	inFlight   int

	lastSync time.Time
	cycleID  string

	dateParser *model.DateParser
	now        func() time.Time
}

// NewStateManager creates an idle state. now anchors date parsing and sync times.
func NewStateManager(now func() time.Time) *StateManager {
	if now == nil {
		now = time.Now
	}
	return &StateManager{
		phase:      PhaseIdle,
		records:    make([]model.DiveLog, 0),
		dates:      make([]string, 0),
		autoSelect: true,
		dateParser: model.NewDateParser(now),
		now:        now,
	}
}

// BeginLoad registers a new attempt and returns its sequence number.
// A manual trigger while another attempt is in flight does not start.
// Retry only resets to the initial-load path while no records are held.
func (sm *StateManager) BeginLoad(trigger Trigger) (uint64, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	// A retry with records held is an ordinary manual refresh
	if trigger == TriggerRetry && len(sm.records) > 0 {
		trigger = TriggerManual
	}
	if trigger == TriggerManual && sm.inFlight > 0 {
		return 0, false
	}

	sm.nextSeq++
	sm.inFlight++

	switch trigger {
	case TriggerInitial, TriggerRetry:
		if trigger == TriggerRetry {
			sm.autoSelect = true
			sm.lastError = nil
		}
		sm.phase = PhaseLoading
	default:
		if sm.phase != PhaseLoading {
			sm.phase = PhaseRefreshing
		}
	}

	return sm.nextSeq, true
}

// Complete applies the outcome of attempt seq. Completions older than the
// last applied success are discarded; a failure never makes an older success
// stale. Failures with data present leave records and selection untouched.
func (sm *StateManager) Complete(seq uint64, cycleID string, logs []model.DiveLog, err error) Completion {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.inFlight > 0 {
		sm.inFlight--
	}
	defer sm.settle()

	if seq < sm.appliedSeq {
		return Completion{Stale: true, Selected: sm.selected, Records: len(sm.records)}
	}
	sm.cycleID = cycleID

	if err != nil {
		if len(sm.records) > 0 {
			return Completion{Selected: sm.selected, Records: len(sm.records)}
		}
		sm.lastError = err
		return Completion{Surfaced: true, Selected: sm.selected}
	}

	sm.appliedSeq = seq
	previous := sm.selected
	sm.records = logs
	sm.dates = sm.dateParser.UniqueDates(logs)
	sm.lastError = nil
	sm.lastSync = sm.now()

	switch {
	case len(sm.dates) == 0:
		sm.selected = ""
	case sm.autoSelect:
		sm.selected = sm.dates[0]
		sm.autoSelect = false
	case !model.ContainsDate(sm.dates, sm.selected):
		sm.selected = sm.dates[0]
	}

	return Completion{
		Applied:          true,
		SelectionChanged: previous != sm.selected,
		Selected:         sm.selected,
		Records:          len(sm.records),
	}
}

// settle derives the phase after a completion; caller holds the lock
func (sm *StateManager) settle() {
	if sm.inFlight > 0 {
		if sm.phase == PhaseLoading && len(sm.records) == 0 {
			return
		}
		sm.phase = PhaseRefreshing
		return
	}

	switch {
	case len(sm.records) > 0:
		sm.phase = PhaseReady
	case sm.lastError != nil:
		sm.phase = PhaseErrored
	default:
		sm.phase = PhaseIdle
	}
}

// Select makes date the current selection
func (sm *StateManager) Select(date string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !model.ContainsDate(sm.dates, date) {
		return ErrUnknownDate
	}
	sm.selected = date
	return nil
}

// Step moves the selection by delta positions in the date list, where
// positive values move to older dates. It reports whether the selection moved.
func (sm *StateManager) Step(delta int) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.dates) == 0 {
		return false
	}

	idx := 0
	for i, d := range sm.dates {
		if d == sm.selected {
			idx = i
			break
		}
	}

	next := idx + delta
	if next < 0 {
		next = 0
	}
	if next >= len(sm.dates) {
		next = len(sm.dates) - 1
	}
	if sm.dates[next] == sm.selected {
		return false
	}
	sm.selected = sm.dates[next]
	return true
}

// InFlight returns the number of attempts started but not completed
func (sm *StateManager) InFlight() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.inFlight
}

// View returns a snapshot for presentation
func (sm *StateManager) View() View {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	records := make([]model.DiveLog, len(sm.records))
	copy(records, sm.records)
	dates := make([]string, len(sm.dates))
	copy(dates, sm.dates)

	selected := model.FilterByDate(records, sm.selected)

	v := View{
		Phase:        sm.phase,
		Loading:      sm.phase == PhaseLoading,
		Refreshing:   sm.phase == PhaseRefreshing,
		Records:      records,
		Dates:        dates,
		SelectedDate: sm.selected,
		Selected:     selected,
		Stats:        model.ComputeStats(selected),
		TotalDives:   len(records),
		LastSync:     sm.lastSync,
		CycleID:      sm.cycleID,
	}

	if len(records) == 0 && sm.lastError != nil {
		v.Error = ingest.UserMessage(sm.lastError)
		v.ErrorKind = ingest.Classify(sm.lastError)
	}
	return v
}
