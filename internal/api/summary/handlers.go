// internal/api/summary/handlers.go
package summary

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/habitgrid/internal/api/apiutil"
	"github.com/codr1/habitgrid/internal/api/htmx"
	"github.com/codr1/habitgrid/internal/cache"
	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/models"
	gridmodel "github.com/codr1/habitgrid/internal/summary"
	summarytempl "github.com/codr1/habitgrid/internal/templates/components/summary"
	"github.com/codr1/habitgrid/internal/templates/layouts"
)

const (
	summaryTimeout = 15 * time.Second
	pageTitle      = "habitgrid"
)

// SummarySource yields the per-day summaries, live or cached.
type SummarySource interface {
	Summary(ctx context.Context) (cache.Result, error)
}

type Deps struct {
	Source   SummarySource
	Location *time.Location
	Palette  models.Palette
	// Now defaults to time.Now.
	Now func() time.Time
}

var (
	deps   Deps
	depsMu sync.RWMutex
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Deps) {
	if d.Source == nil {
		return
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	depsMu.Lock()
	deps = d
	depsMu.Unlock()
}

// GET /
func HandleSummaryPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	d, ok := loadDeps()
	if !ok {
		logger.Error().Msg("Summary handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := summarytempl.GridView{}
	status := http.StatusOK
	grid, err := buildGrid(r.Context(), d)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load summary")
		view.Alert = summarytempl.LoadErrorMessage
		status = http.StatusBadGateway
	} else {
		view.Grid = grid
	}

	// htmx only swaps 2xx responses
	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, summarytempl.SummaryPage(view), nil, "Failed to render summary", "Failed to render summary")
		return
	}

	page := layouts.Base(pageTitle, summarytempl.SummaryPage(view), d.Palette)
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, page, nil, "Failed to render summary page", "Failed to render page")
}

// GET /api/v1/summary/grid
func HandleSummaryGrid(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	d, ok := loadDeps()
	if !ok {
		logger.Error().Msg("Summary handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	grid, err := buildGrid(r.Context(), d)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load summary")
		if err := apiutil.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": summarytempl.LoadErrorMessage}); err != nil {
			logger.Error().Err(err).Msg("Failed to write summary error")
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, grid); err != nil {
		logger.Error().Err(err).Msg("Failed to write summary grid")
	}
}

func buildGrid(ctx context.Context, d Deps) (gridmodel.Grid, error) {
	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	result, err := d.Source.Summary(ctx)
	if err != nil {
		return gridmodel.Grid{}, err
	}

	now := d.Now().In(d.Location)
	days := calendar.Collect(calendar.DaysFromYearStart(now))
	grid := gridmodel.BuildGrid(days, result.Summaries, d.Location, calendar.DayOf(now), calendar.SummaryGridSize)
	grid.Stale = result.Stale
	grid.FetchedAt = result.FetchedAt
	return grid, nil
}

func loadDeps() (Deps, bool) {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps, deps.Source != nil
}
