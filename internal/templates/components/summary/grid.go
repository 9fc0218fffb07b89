package summary

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// LoadErrorMessage is the alert shown when the summary cannot be fetched.
const LoadErrorMessage = "Could not load your habits."

// SummaryPage is the home page body: heading, weekday header and grid.
func SummaryPage(view GridView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="space-y-4"">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h1 class="text-xl font-semibold">Year so far</h1>`); err != nil {
			return err
		}
		if err := SummaryGrid(view).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// SummaryGrid is the swappable grid partial.
func SummaryGrid(view GridView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildSummaryGridHTML(view))
		return err
	})
}

func buildSummaryGridHTML(view GridView) string {
	var builder strings.Builder
	builder.WriteString(`<div id="summary-grid">`)

	if view.Alert != "" {
		builder.WriteString(buildAlertHTML(view.Alert))
		builder.WriteString(`</div>`)
		return builder.String()
	}

	if view.Grid.Stale {
		builder.WriteString(fmt.Sprintf(
			`<div class="mb-4 rounded border border-amber-500 px-4 py-2 text-sm text-amber-400" role="status">Showing saved data from %s. The habit service is unreachable.</div>`,
			html.EscapeString(view.Grid.FetchedAt.Format("Jan 2 15:04")),
		))
	}

	builder.WriteString(`<div class="grid grid-flow-row grid-cols-7 gap-2">`)
	for i, label := range view.Grid.WeekDays {
		builder.WriteString(fmt.Sprintf(
			`<div class="flex h-10 w-10 items-center justify-center text-xl font-bold text-zinc-400" data-weekday="%d">%s</div>`,
			i,
			html.EscapeString(label),
		))
	}
	for _, cell := range view.Grid.Cells {
		builder.WriteString(buildCellHTML(NewCellView(cell)))
	}
	builder.WriteString(`</div></div>`)
	return builder.String()
}

func buildCellHTML(cell CellView) string {
	if cell.Filler {
		return `<div class="h-10 w-10 rounded-lg border-2 opacity-40" style="background-color: var(--grid-filler); border-color: var(--grid-filler);" data-filler="true"></div>`
	}

	border := levelVar(cell.Level)
	if cell.IsToday {
		border = "var(--grid-today)"
	}
	href := html.EscapeString(cell.Href)
	return fmt.Sprintf(
		`<a href="%s" hx-get="%s" hx-target="#content" hx-push-url="true" class="h-10 w-10 rounded-lg border-2" style="background-color: %s; border-color: %s;" title="%s" data-date="%s" data-level="%d"></a>`,
		href,
		href,
		levelVar(cell.Level),
		border,
		html.EscapeString(cell.Title),
		cell.Day.String(),
		cell.Level,
	)
}

func buildAlertHTML(message string) string {
	return fmt.Sprintf(
		`<div class="rounded border border-red-500 px-4 py-3 text-sm text-red-400" role="alert">%s</div>`,
		html.EscapeString(message),
	)
}
