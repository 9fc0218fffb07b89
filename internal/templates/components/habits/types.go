package habits

import (
	"net/url"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habits"
)

type HabitItem struct {
	ID        string
	Title     string
	Completed bool
}

type DayView struct {
	Date       calendar.Day
	Items      []HabitItem
	Completed  int
	Total      int
	Percentage int
	// ReadOnly disables the checkboxes for past days.
	ReadOnly bool
	Alert    string
}

func NewDayView(state *habits.DayState, readOnly bool, alert string) DayView {
	items := make([]HabitItem, len(state.Habits))
	for i, habit := range state.Habits {
		items[i] = HabitItem{
			ID:        habit.ID,
			Title:     habit.Title,
			Completed: state.IsCompleted(habit.ID),
		}
	}
	return DayView{
		Date:       state.Date,
		Items:      items,
		Completed:  state.CompletedCount(),
		Total:      len(state.Habits),
		Percentage: state.Percentage(),
		ReadOnly:   readOnly,
		Alert:      alert,
	}
}

func (v DayView) WeekdayLabel() string {
	return v.Date.Weekday().String()
}

func (v DayView) DateLabel() string {
	return v.Date.Time(time.UTC).Format("02/01")
}

func (v DayView) ToggleURL(habitID string) string {
	return "/habits/" + url.PathEscape(habitID) + "/toggle?date=" + v.Date.String()
}
