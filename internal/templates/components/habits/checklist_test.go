package habits

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
	"github.com/codr1/habitgrid/internal/habits"
)

func newState() *habits.DayState {
	return habits.NewDayState(
		calendar.Day{Year: 2024, Month: time.March, Day: 1},
		habitapi.DayHabits{
			PossibleHabits: []habitapi.Habit{
				{ID: "h1", Title: "Drink <water>"},
				{ID: "h2", Title: "Read"},
			},
			CompletedHabits: []string{"h2"},
		},
	)
}

func render(t *testing.T, view DayView) string {
	t.Helper()
	var buf bytes.Buffer
	if err := DayPage(view).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestDayPageEditable(t *testing.T) {
	out := render(t, NewDayView(newState(), false, ""))

	checks := []string{
		`<p class="font-semibold lowercase text-zinc-400">Friday</p>`,
		`<p class="text-3xl font-extrabold">01/03</p>`,
		`aria-valuenow="50"`,
		`hx-post="/habits/h1/toggle?date=2024-03-01"`,
		`Drink &lt;water&gt;`,
		`aria-checked="true" class="group flex items-center gap-3 disabled:cursor-not-allowed" data-habit-id="h2"`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
	if strings.Contains(out, pastDateNotice) {
		t.Fatal("editable day shows past notice")
	}
	if strings.Contains(out, `role="alert"`) {
		t.Fatal("unexpected alert")
	}
}

func TestDayPageReadOnly(t *testing.T) {
	out := render(t, NewDayView(newState(), true, ""))

	if !strings.Contains(out, pastDateNotice) {
		t.Fatal("missing past notice")
	}
	if strings.Contains(out, "hx-post") {
		t.Fatal("read-only day exposes toggles")
	}
	if !strings.Contains(out, "opacity-40") {
		t.Fatal("read-only list not dimmed")
	}
}

func TestChecklistEmptyAndAlert(t *testing.T) {
	state := habits.NewDayState(calendar.Day{Year: 2024, Month: time.March, Day: 1}, habitapi.DayHabits{})
	var buf bytes.Buffer
	if err := Checklist(NewDayView(state, false, ToggleErrorMessage)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `data-empty="true"`) {
		t.Fatal("missing empty state")
	}
	if !strings.Contains(out, "Could not update habit status.") {
		t.Fatal("missing alert")
	}
	if !strings.Contains(out, `aria-valuenow="0"`) {
		t.Fatal("empty day should show 0%")
	}
}

func TestProgressBarClampsWidth(t *testing.T) {
	out := buildProgressBarHTML(125)
	if !strings.Contains(out, `aria-valuenow="125"`) || !strings.Contains(out, "width: 100%;") {
		t.Fatalf("unexpected bar: %s", out)
	}
}
