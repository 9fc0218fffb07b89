package habitapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, opts Options) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts.BaseURL = server.URL + "/api"
	client, err := New(opts)
	require.NoError(t, err)
	return client
}

func TestGetDay(t *testing.T) {
	var gotDate, gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/day", r.URL.Path)
		gotDate = r.URL.Query().Get("date")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"possibleHabits": [
				{"id": "h1", "title": "Drink water", "created_at": "2024-01-01T03:00:00.000Z"},
				{"id": "h2", "title": "Read", "created_at": "2024-01-02T03:00:00.000Z"}
			],
			"completedHabits": ["h2"]
		}`))
	}), Options{Token: "secret"})

	loc := time.FixedZone("BRT", -3*60*60)
	day, err := client.GetDay(context.Background(), time.Date(2024, time.March, 1, 0, 0, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01T03:00:00.000Z", gotDate)
	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, day.PossibleHabits, 2)
	assert.Equal(t, "Drink water", day.PossibleHabits[0].Title)
	assert.Equal(t, []string{"h2"}, day.CompletedHabits)
}

func TestGetDay_NullListsNormalized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"possibleHabits": null}`))
	}), Options{})

	day, err := client.GetDay(context.Background(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, day.PossibleHabits)
	assert.NotNil(t, day.CompletedHabits)
	assert.Empty(t, day.PossibleHabits)
}

func TestGetSummary(t *testing.T) {
	summaries := []DaySummary{
		{ID: "s1", Date: time.Date(2024, time.January, 2, 3, 0, 0, 0, time.UTC), Amount: 3, Completed: 2},
		{ID: "s2", Date: time.Date(2024, time.January, 3, 3, 0, 0, 0, time.UTC), Amount: 4, Completed: 0},
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/summary", r.URL.Path)
		_ = json.NewEncoder(w).Encode(summaries)
	}), Options{})

	got, err := client.GetSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(summaries))
	for i := range summaries {
		assert.Equal(t, summaries[i].ID, got[i].ID)
		assert.True(t, summaries[i].Date.Equal(got[i].Date), "date %d", i)
		assert.Equal(t, summaries[i].Amount, got[i].Amount)
		assert.Equal(t, summaries[i].Completed, got[i].Completed)
	}
}

func TestToggleHabit(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), Options{})

	require.NoError(t, client.ToggleHabit(context.Background(), "h1"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/habits/h1/toggle", gotPath)

	assert.ErrorIs(t, client.ToggleHabit(context.Background(), "  "), ErrEmptyHabitID)
}

func TestAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "habit not found", http.StatusNotFound)
	}), Options{})

	err := client.ToggleHabit(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "habit not found", apiErr.Body)
	assert.True(t, IsNotFound(err))
}

func TestDecodeError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}), Options{})

	_, err := client.GetSummary(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestTimeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}), Options{Timeout: 50 * time.Millisecond})

	_, err := client.GetSummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimitHonorsContext(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}), Options{RequestsPerSecond: 0.01, Burst: 1})

	_, err := client.GetSummary(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.GetSummary(ctx)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://example.com", "://bad"} {
		_, err := New(Options{BaseURL: raw})
		assert.Error(t, err, "base url %q", raw)
	}
}

func TestRegisterMetricsTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterMetrics(reg))
	require.NoError(t, RegisterMetrics(reg))
}
