// internal/api/habits/handlers.go
package habits

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/habitgrid/internal/api/apiutil"
	"github.com/codr1/habitgrid/internal/api/htmx"
	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
	habitstate "github.com/codr1/habitgrid/internal/habits"
	"github.com/codr1/habitgrid/internal/models"
	"github.com/codr1/habitgrid/internal/request"
	habitstempl "github.com/codr1/habitgrid/internal/templates/components/habits"
	"github.com/codr1/habitgrid/internal/templates/layouts"
)

const (
	dayTimeout   = 15 * time.Second
	habitIDParam = "id"
	dateQueryKey = "date"
	pageTitle    = "habitgrid"
	toggledEvent = "habitToggled"
)

var errFutureDate = errors.New("habits can only be toggled for today")

// DayAPI is the part of the habit API the day view needs.
type DayAPI interface {
	GetDay(ctx context.Context, date time.Time) (habitapi.DayHabits, error)
	ToggleHabit(ctx context.Context, habitID string) error
}

type Deps struct {
	API      DayAPI
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
	if d.API == nil {
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

// GET /day?date=YYYY-MM-DD
func HandleDayPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	d, ok := loadDeps()
	if !ok {
		logger.Error().Msg("Habit handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	day, err := apiutil.ParseDayField(r.URL.Query().Get(dateQueryKey), dateQueryKey)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dayTimeout)
	defer cancel()

	content := habitstempl.LoadError()
	status := http.StatusOK
	dayHabits, err := d.API.GetDay(ctx, day.Time(d.Location))
	if err != nil {
		logger.Error().Err(err).Str("date", day.String()).Msg("Failed to load day")
		status = http.StatusBadGateway
	} else {
		state := habitstate.NewDayState(day, dayHabits)
		readOnly := habitstate.IsPast(day, d.Now().In(d.Location))
		content = habitstempl.DayPage(habitstempl.NewDayView(state, readOnly, ""))
	}

	// htmx only swaps 2xx responses
	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, content, nil, "Failed to render day", "Failed to render day")
		return
	}

	page := layouts.Base(day.String()+" | "+pageTitle, content, d.Palette)
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, page, nil, "Failed to render day page", "Failed to render page")
}

// POST /habits/{id}/toggle?date=YYYY-MM-DD
func HandleToggleHabit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	d, ok := loadDeps()
	if !ok {
		logger.Error().Msg("Habit handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	habitID, err := apiutil.ParseIDField(r.PathValue(habitIDParam), habitIDParam)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	now := d.Now().In(d.Location)
	today := calendar.DayOf(now)
	day, ok := request.DayFromRequest(r)
	if !ok {
		day = today
	}
	if err := checkEditable(day, now); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusConflict, Message: err.Error(), Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dayTimeout)
	defer cancel()

	dayHabits, err := d.API.GetDay(ctx, day.Time(d.Location))
	if err != nil {
		logger.Error().Err(err).Str("date", day.String()).Msg("Failed to load day before toggle")
		renderChecklistAlert(w, r, habitstempl.ChecklistError(habitstempl.ToggleErrorMessage))
		return
	}

	state := habitstate.NewDayState(day, dayHabits)
	pending, err := state.Toggle(ctx, habitID, d.API.ToggleHabit)
	switch {
	case errors.Is(err, habitstate.ErrUnknownHabit):
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Habit not found", Err: err})
		return
	case err != nil:
		logger.Error().Err(err).Str("habit_id", habitID).Msg("Failed to toggle habit, rolled back")
		renderChecklistAlert(w, r, habitstempl.Checklist(habitstempl.NewDayView(state, false, habitstempl.ToggleErrorMessage)))
		return
	}

	logger.Info().
		Str("habit_id", habitID).
		Bool("completed", pending.Completed).
		Str("date", day.String()).
		Msg("Habit toggled")

	component := habitstempl.Checklist(habitstempl.NewDayView(state, false, ""))
	apiutil.RenderHTMLComponent(r.Context(), w, component, htmx.TriggerHeader(toggledEvent), "Failed to render checklist", "Failed to render checklist")
}

// checkEditable rejects past days and, since the remote toggle always acts
// on the current day, future ones too.
func checkEditable(day calendar.Day, now time.Time) error {
	if habitstate.IsPast(day, now) {
		return habitstate.ErrPastDate
	}
	if day != calendar.DayOf(now) {
		return errFutureDate
	}
	return nil
}

// renderChecklistAlert answers 200 to htmx so the alert is swapped in, and
// 502 to everything else.
func renderChecklistAlert(w http.ResponseWriter, r *http.Request, component templ.Component) {
	status := http.StatusBadGateway
	if htmx.IsRequest(r) {
		status = http.StatusOK
	}
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, component, nil, "Failed to render checklist", "Failed to render checklist")
}

func loadDeps() (Deps, bool) {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps, deps.API != nil
}
