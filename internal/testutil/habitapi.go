package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
)

// FakeHabitAPI serves /day, /summary and /habits/{id}/toggle from memory.
// Toggles apply to Today, like the real service.
type FakeHabitAPI struct {
	mu sync.Mutex

	Location *time.Location
	Today    calendar.Day
	Days     map[calendar.Day]habitapi.DayHabits
	Summary  []habitapi.DaySummary

	// FailDay, FailSummary and FailToggle make the endpoint answer 500.
	FailDay     bool
	FailSummary bool
	FailToggle  bool

	Toggles []string
	Server  *httptest.Server
}

// NewFakeHabitAPI starts a fake API server closed at test cleanup.
func NewFakeHabitAPI(t *testing.T, today calendar.Day) *FakeHabitAPI {
	t.Helper()

	fake := &FakeHabitAPI{
		Location: time.UTC,
		Today:    today,
		Days:     make(map[calendar.Day]habitapi.DayHabits),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /day", fake.handleDay)
	mux.HandleFunc("GET /summary", fake.handleSummary)
	mux.HandleFunc("PATCH /habits/{id}/toggle", fake.handleToggle)

	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Server.Close)
	return fake
}

func (f *FakeHabitAPI) URL() string {
	return f.Server.URL
}

// SetDay replaces the habits for day.
func (f *FakeHabitAPI) SetDay(day calendar.Day, habits habitapi.DayHabits) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Days[day] = habits
}

// Day returns the current stored habits for day.
func (f *FakeHabitAPI) Day(day calendar.Day) habitapi.DayHabits {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Days[day]
}

func (f *FakeHabitAPI) SetFailures(day, summary, toggle bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailDay = day
	f.FailSummary = summary
	f.FailToggle = toggle
}

func (f *FakeHabitAPI) ToggleCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.Toggles)
}

func (f *FakeHabitAPI) handleDay(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailDay {
		http.Error(w, "day unavailable", http.StatusInternalServerError)
		return
	}
	date, err := time.Parse(time.RFC3339, r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	day := f.Days[calendar.DayOf(date.In(f.Location))]
	writeFakeJSON(w, day)
}

func (f *FakeHabitAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailSummary {
		http.Error(w, "summary unavailable", http.StatusInternalServerError)
		return
	}
	summary := f.Summary
	if summary == nil {
		summary = []habitapi.DaySummary{}
	}
	writeFakeJSON(w, summary)
}

func (f *FakeHabitAPI) handleToggle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := r.PathValue("id")
	f.Toggles = append(f.Toggles, id)
	if f.FailToggle {
		http.Error(w, "toggle failed", http.StatusInternalServerError)
		return
	}

	day := f.Days[f.Today]
	if slices.Contains(day.CompletedHabits, id) {
		day.CompletedHabits = slices.DeleteFunc(slices.Clone(day.CompletedHabits), func(c string) bool { return c == id })
	} else {
		day.CompletedHabits = append(slices.Clone(day.CompletedHabits), id)
	}
	f.Days[f.Today] = day
	w.WriteHeader(http.StatusOK)
}

func writeFakeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
