//go:build smoke

package smoke

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
	"github.com/codr1/habitgrid/internal/testutil"
)

func TestHabitFlowSmoke(t *testing.T) {
	today := calendar.DayOf(time.Now().UTC())
	fake := testutil.NewFakeHabitAPI(t, today)
	fake.SetDay(today, habitapi.DayHabits{
		PossibleHabits: []habitapi.Habit{{ID: "h1", Title: "Walk"}},
	})
	fake.Summary = []habitapi.DaySummary{
		{ID: "s1", Date: today.Time(time.UTC), Amount: 1, Completed: 0},
	}

	server := startServer(t, fake.URL())
	client := &http.Client{Timeout: 5 * time.Second}

	body := get(t, client, server, "/", http.StatusOK)
	if !strings.Contains(body, `data-date="`+today.String()+`"`) {
		t.Fatalf("summary page missing today's cell\n%s", body)
	}

	body = get(t, client, server, "/day?date="+today.String(), http.StatusOK)
	if !strings.Contains(body, `data-habit-id="h1"`) {
		t.Fatalf("day page missing habit\n%s", body)
	}

	req, err := http.NewRequest(http.MethodPost, server.url("/habits/h1/toggle?date="+today.String()), nil)
	if err != nil {
		t.Fatalf("build toggle request: %v", err)
	}
	req.Header.Set("HX-Request", "true")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("toggle request failed: %v", err)
	}
	toggled, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(toggled), `aria-valuenow="100"`) {
		t.Fatalf("toggle status %d\n%s", resp.StatusCode, toggled)
	}
	if calls := fake.ToggleCalls(); len(calls) != 1 || calls[0] != "h1" {
		t.Fatalf("toggle calls = %v", calls)
	}

	metrics := get(t, client, server, "/metrics", http.StatusOK)
	for _, want := range []string{"habitapi_requests_total", "http_requests_total"} {
		if !strings.Contains(metrics, want) {
			t.Fatalf("metrics missing %s", want)
		}
	}

	server.assertRunning(t)
}

func get(t *testing.T, client *http.Client, server *serverProcess, path string, wantStatus int) string {
	t.Helper()

	resp, err := client.Get(server.url(path))
	if err != nil {
		t.Fatalf("GET %s failed: %v\nstderr:\n%s", path, err, server.stderr.String())
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status: got %d want %d\n%s", path, resp.StatusCode, wantStatus, body)
	}
	return string(body)
}
