package summary

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
	gridmodel "github.com/codr1/habitgrid/internal/summary"
)

func renderGrid(t *testing.T, view GridView) string {
	t.Helper()
	var buf bytes.Buffer
	if err := SummaryPage(view).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestSummaryPageRendersCellsAndFillers(t *testing.T) {
	today := calendar.Day{Year: 2024, Month: time.January, Day: 3}
	days := []calendar.Day{
		{Year: 2024, Month: time.January, Day: 1},
		{Year: 2024, Month: time.January, Day: 2},
		today,
	}
	summaries := []habitapi.DaySummary{
		{ID: "s1", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Amount: 4, Completed: 3},
	}
	grid := gridmodel.BuildGrid(days, summaries, time.UTC, today, 10)

	out := renderGrid(t, GridView{Grid: grid})

	if got := strings.Count(out, `data-filler="true"`); got != 7 {
		t.Fatalf("filler cells = %d, want 7", got)
	}
	if got := strings.Count(out, "data-weekday="); got != 7 {
		t.Fatalf("weekday labels = %d, want 7", got)
	}
	if !strings.Contains(out, `href="/day?date=2024-01-02"`) {
		t.Fatal("missing link to 2024-01-02")
	}
	if !strings.Contains(out, "3/4 completed (75%)") {
		t.Fatal("missing completion title")
	}
	if !strings.Contains(out, `data-date="2024-01-02" data-level="4"`) {
		t.Fatal("expected level 4 for 75%")
	}
	if !strings.Contains(out, "border-color: var(--grid-today)") {
		t.Fatal("today not highlighted")
	}
	if strings.Contains(out, `role="status"`) {
		t.Fatal("fresh grid rendered stale banner")
	}
}

func TestSummaryGridStaleBanner(t *testing.T) {
	grid := gridmodel.Grid{Stale: true, FetchedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}
	var buf bytes.Buffer
	if err := SummaryGrid(GridView{Grid: grid}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Showing saved data from Mar 1 09:30") {
		t.Fatalf("missing stale banner: %s", buf.String())
	}
}

func TestSummaryGridAlert(t *testing.T) {
	out := renderGrid(t, GridView{Alert: LoadErrorMessage})
	if !strings.Contains(out, `role="alert">Could not load your habits.</div>`) {
		t.Fatalf("missing alert: %s", out)
	}
	if strings.Contains(out, "data-weekday") {
		t.Fatal("grid rendered alongside alert")
	}
}
