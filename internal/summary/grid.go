// Package summary builds the year-to-date heat-map grid from the API's
// per-day summaries.
package summary

import (
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
	"github.com/codr1/habitgrid/internal/progress"
)

// WeekDays labels the grid columns, Sunday first.
var WeekDays = []string{"S", "M", "T", "W", "T", "F", "S"}

// MaxLevel is the highest heat level a cell can have.
const MaxLevel = 5

type Cell struct {
	Day        calendar.Day `json:"date"`
	Filler     bool         `json:"filler,omitempty"`
	HasSummary bool         `json:"hasSummary"`
	Amount     int          `json:"amount"`
	Completed  int          `json:"completed"`
	Percentage int          `json:"percentage"`
	Level      int          `json:"level"`
	IsToday    bool         `json:"isToday,omitempty"`
}

type Grid struct {
	WeekDays    []string `json:"weekDays"`
	Cells       []Cell   `json:"cells"`
	DayCount    int      `json:"dayCount"`
	FillerCount int      `json:"fillerCount"`
	// Stale is set when the summaries came from the local cache because the
	// API could not be reached.
	Stale     bool      `json:"stale"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// BuildGrid lays out one cell per day followed by filler cells up to
// targetGridSize. Summaries are matched to days by calendar day in loc.
func BuildGrid(days []calendar.Day, summaries []habitapi.DaySummary, loc *time.Location, today calendar.Day, targetGridSize int) Grid {
	if loc == nil {
		loc = time.UTC
	}

	byDay := make(map[calendar.Day]habitapi.DaySummary, len(summaries))
	for _, s := range summaries {
		day := calendar.DayOf(s.Date.In(loc))
		if _, exists := byDay[day]; exists {
			continue
		}
		byDay[day] = s
	}

	fillerCount := calendar.FillerCount(targetGridSize, len(days))
	cells := make([]Cell, 0, len(days)+fillerCount)
	for _, day := range days {
		cell := Cell{Day: day, IsToday: day == today}
		if s, ok := byDay[day]; ok {
			cell.HasSummary = true
			cell.Amount = s.Amount
			cell.Completed = s.Completed
			cell.Percentage = progress.Guarded(s.Completed, s.Amount)
			cell.Level = Level(cell.Percentage)
		}
		cells = append(cells, cell)
	}
	for range fillerCount {
		cells = append(cells, Cell{Filler: true})
	}

	return Grid{
		WeekDays:    WeekDays,
		Cells:       cells,
		DayCount:    len(days),
		FillerCount: fillerCount,
	}
}

// Level maps a completion percentage to a heat level in [0, MaxLevel].
func Level(percentage int) int {
	switch {
	case percentage <= 0:
		return 0
	case percentage < 20:
		return 1
	case percentage < 40:
		return 2
	case percentage < 60:
		return 3
	case percentage < 80:
		return 4
	default:
		return MaxLevel
	}
}
