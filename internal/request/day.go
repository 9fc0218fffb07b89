package request

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/habitgrid/internal/api/htmx"
	"github.com/codr1/habitgrid/internal/calendar"
)

const dateQueryKey = "date"

// ParseDay parses a YYYY-MM-DD query value.
func ParseDay(value string) (calendar.Day, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return calendar.Day{}, false
	}

	day, err := calendar.ParseDay(value)
	if err != nil {
		return calendar.Day{}, false
	}
	return day, true
}

// DayFromRequest parses date from the query or, for htmx requests, from
// the HX-Current-URL header.
func DayFromRequest(r *http.Request) (calendar.Day, bool) {
	if day, ok := ParseDay(r.URL.Query().Get(dateQueryKey)); ok {
		return day, true
	}

	currentURL := htmx.CurrentURL(r)
	if currentURL == "" {
		return calendar.Day{}, false
	}

	parsed, err := url.Parse(currentURL)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Err(err).
			Str("hx_current_url", currentURL).
			Msg("Failed to parse HX-Current-URL")
		return calendar.Day{}, false
	}

	return ParseDay(parsed.Query().Get(dateQueryKey))
}
