package summary

import (
	"testing"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
)

func TestBuildGrid(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, loc)
	days := calendar.Collect(calendar.DaysFromYearStart(now))

	summaries := []habitapi.DaySummary{
		// Midnight in BRT is 03:00 UTC.
		{ID: "a", Date: time.Date(2024, time.January, 1, 3, 0, 0, 0, time.UTC), Amount: 4, Completed: 1},
		{ID: "b", Date: time.Date(2024, time.February, 29, 3, 0, 0, 0, time.UTC), Amount: 3, Completed: 3},
		{ID: "c", Date: time.Date(2024, time.March, 1, 3, 0, 0, 0, time.UTC), Amount: 0, Completed: 0},
	}

	grid := BuildGrid(days, summaries, loc, calendar.DayOf(now), calendar.SummaryGridSize)

	if grid.DayCount != 61 {
		t.Fatalf("DayCount = %d, want 61", grid.DayCount)
	}
	if grid.FillerCount != 29 {
		t.Fatalf("FillerCount = %d, want 29", grid.FillerCount)
	}
	if len(grid.Cells) != 90 {
		t.Fatalf("len(Cells) = %d, want 90", len(grid.Cells))
	}

	first := grid.Cells[0]
	if !first.HasSummary || first.Percentage != 25 || first.Level != 2 {
		t.Fatalf("first cell = %+v", first)
	}

	leap := grid.Cells[59]
	if leap.Day != (calendar.Day{Year: 2024, Month: time.February, Day: 29}) {
		t.Fatalf("cell 59 day = %v", leap.Day)
	}
	if leap.Percentage != 100 || leap.Level != MaxLevel {
		t.Fatalf("leap cell = %+v", leap)
	}

	today := grid.Cells[60]
	if !today.IsToday || !today.HasSummary || today.Percentage != 0 || today.Level != 0 {
		t.Fatalf("today cell = %+v", today)
	}

	if grid.Cells[1].HasSummary {
		t.Fatalf("cell without summary marked as having one: %+v", grid.Cells[1])
	}
	for i := 61; i < len(grid.Cells); i++ {
		if !grid.Cells[i].Filler || !grid.Cells[i].Day.IsZero() {
			t.Fatalf("cell %d should be an empty filler: %+v", i, grid.Cells[i])
		}
	}
}

func TestBuildGrid_NoFillerWhenYearOutgrowsGrid(t *testing.T) {
	now := time.Date(2024, time.April, 29, 12, 0, 0, 0, time.UTC)
	days := calendar.Collect(calendar.DaysFromYearStart(now))

	grid := BuildGrid(days, nil, time.UTC, calendar.DayOf(now), calendar.SummaryGridSize)
	if grid.DayCount != 120 {
		t.Fatalf("DayCount = %d, want 120", grid.DayCount)
	}
	if grid.FillerCount != 0 || len(grid.Cells) != 120 {
		t.Fatalf("FillerCount = %d, len(Cells) = %d", grid.FillerCount, len(grid.Cells))
	}
}

func TestBuildGrid_FirstSummaryWinsForDuplicateDay(t *testing.T) {
	now := time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC)
	days := calendar.Collect(calendar.DaysFromYearStart(now))
	summaries := []habitapi.DaySummary{
		{ID: "first", Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Amount: 2, Completed: 2},
		{ID: "second", Date: time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC), Amount: 2, Completed: 0},
	}

	grid := BuildGrid(days, summaries, time.UTC, calendar.DayOf(now), 0)
	if grid.Cells[0].Completed != 2 {
		t.Fatalf("first cell = %+v, want first summary", grid.Cells[0])
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		percentage int
		want       int
	}{
		{0, 0},
		{1, 1},
		{19, 1},
		{20, 2},
		{39, 2},
		{40, 3},
		{59, 3},
		{60, 4},
		{79, 4},
		{80, 5},
		{100, 5},
		{150, 5},
	}

	for _, test := range tests {
		if got := Level(test.percentage); got != test.want {
			t.Fatalf("Level(%d) = %d, want %d", test.percentage, got, test.want)
		}
	}
}
