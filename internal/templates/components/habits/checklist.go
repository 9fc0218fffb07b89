package habits

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const (
	// ToggleErrorMessage is the alert shown when a toggle is rolled back.
	ToggleErrorMessage = "Could not update habit status."
	// LoadErrorMessage is the alert shown when a day cannot be fetched.
	LoadErrorMessage = "Could not load your habits."
	pastDateNotice   = "You cannot edit habits from a past date."
	emptyStateText   = "You are not tracking any habits on this day yet."
)

// DayPage is the /day body.
func DayPage(view DayView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		header := fmt.Sprintf(
			`<section class="space-y-6"><a href="/" hx-get="/" hx-target="#content" hx-push-url="true" class="text-sm text-zinc-400">&larr; Back</a><div><p class="font-semibold lowercase text-zinc-400">%s</p><p class="text-3xl font-extrabold">%s</p></div>`,
			html.EscapeString(view.WeekdayLabel()),
			html.EscapeString(view.DateLabel()),
		)
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if err := Checklist(view).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// LoadError is the /day body when the day could not be fetched.
func LoadError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildAlertHTML(LoadErrorMessage))
		return err
	})
}

// ChecklistError stands in for the checklist when the day could not be
// reloaded.
func ChecklistError(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="day-checklist" class="space-y-6">`+buildAlertHTML(message)+`</div>`)
		return err
	})
}

// Checklist is the swappable partial returned by toggles.
func Checklist(view DayView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildChecklistHTML(view))
		return err
	})
}

func buildChecklistHTML(view DayView) string {
	var builder strings.Builder
	builder.WriteString(`<div id="day-checklist" class="space-y-6">`)
	if view.Alert != "" {
		builder.WriteString(buildAlertHTML(view.Alert))
	}
	builder.WriteString(buildProgressBarHTML(view.Percentage))

	listClass := "flex flex-col gap-3"
	if view.ReadOnly {
		listClass += " opacity-40"
	}
	builder.WriteString(fmt.Sprintf(`<div class="%s">`, listClass))
	if len(view.Items) == 0 {
		builder.WriteString(fmt.Sprintf(`<p class="text-zinc-400" data-empty="true">%s</p>`, emptyStateText))
	}
	for _, item := range view.Items {
		builder.WriteString(buildHabitCheckboxHTML(view, item))
	}
	builder.WriteString(`</div>`)

	if view.ReadOnly {
		builder.WriteString(fmt.Sprintf(`<p class="mt-10 text-center">%s</p>`, pastDateNotice))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildProgressBarHTML(percentage int) string {
	width := min(max(percentage, 0), 100)
	return fmt.Sprintf(
		`<div class="h-3 w-full rounded-xl bg-zinc-700" role="progressbar" aria-label="Completed habits" aria-valuenow="%d" aria-valuemin="0" aria-valuemax="100"><div class="h-3 rounded-xl bg-violet-600 transition-all" style="width: %d%%;"></div></div>`,
		percentage,
		width,
	)
}

func buildHabitCheckboxHTML(view DayView, item HabitItem) string {
	boxStyle := "background-color: var(--grid-empty); border-color: var(--grid-filler);"
	titleClass := "text-xl font-semibold leading-tight"
	checkMark := ""
	if item.Completed {
		boxStyle = "background-color: var(--grid-checked); border-color: var(--grid-checked);"
		titleClass += " line-through text-zinc-400"
		checkMark = `<span aria-hidden="true">&#10003;</span>`
	}

	attrs := fmt.Sprintf(
		`hx-post="%s" hx-target="#day-checklist" hx-swap="outerHTML"`,
		html.EscapeString(view.ToggleURL(item.ID)),
	)
	if view.ReadOnly {
		attrs = `disabled`
	}

	return fmt.Sprintf(
		`<button type="button" role="checkbox" aria-checked="%t" class="group flex items-center gap-3 disabled:cursor-not-allowed" data-habit-id="%s" %s><span class="flex h-8 w-8 items-center justify-center rounded-lg border-2" style="%s">%s</span><span class="%s">%s</span></button>`,
		item.Completed,
		html.EscapeString(item.ID),
		attrs,
		boxStyle,
		checkMark,
		titleClass,
		html.EscapeString(item.Title),
	)
}

func buildAlertHTML(message string) string {
	return fmt.Sprintf(
		`<div class="rounded border border-red-500 px-4 py-3 text-sm text-red-400" role="alert">%s</div>`,
		html.EscapeString(message),
	)
}
