// Package habits holds the per-request view state of a single day's habit
// checklist and the two-phase toggle applied to it.
package habits

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/codr1/habitgrid/internal/calendar"
	"github.com/codr1/habitgrid/internal/habitapi"
	"github.com/codr1/habitgrid/internal/progress"
)

var (
	ErrUnknownHabit   = errors.New("habit is not available on this day")
	ErrPastDate       = errors.New("habits from past dates cannot be edited")
	ErrToggleSettled  = errors.New("toggle already committed or rolled back")
	ErrToggleInFlight = errors.New("another toggle is still pending")
)

// DayState is the checklist for one day. It is owned by a single request
// and is not safe for concurrent use.
type DayState struct {
	Date      calendar.Day
	Habits    []habitapi.Habit
	Completed []string

	pending *PendingToggle
}

func NewDayState(date calendar.Day, day habitapi.DayHabits) *DayState {
	return &DayState{
		Date:      date,
		Habits:    slices.Clone(day.PossibleHabits),
		Completed: slices.Clone(day.CompletedHabits),
	}
}

func (s *DayState) IsCompleted(habitID string) bool {
	return slices.Contains(s.Completed, habitID)
}

func (s *DayState) CompletedCount() int {
	return len(s.Completed)
}

// Percentage is the day's completion percentage, 0 when the day has no
// habits.
func (s *DayState) Percentage() int {
	return progress.Guarded(s.CompletedCount(), len(s.Habits))
}

func (s *DayState) hasHabit(habitID string) bool {
	return slices.ContainsFunc(s.Habits, func(h habitapi.Habit) bool {
		return h.ID == habitID
	})
}

// PendingToggle is a toggle applied tentatively to a DayState. Exactly one
// of Commit or Rollback settles it.
type PendingToggle struct {
	state     *DayState
	HabitID   string
	Completed bool
	previous  []string
	settled   bool
}

// BeginToggle flips habitID in the local state before the remote call and
// returns the handle used to confirm or undo it.
func (s *DayState) BeginToggle(habitID string) (*PendingToggle, error) {
	if !s.hasHabit(habitID) {
		return nil, ErrUnknownHabit
	}
	if s.pending != nil {
		return nil, ErrToggleInFlight
	}

	previous := slices.Clone(s.Completed)
	completed := !s.IsCompleted(habitID)
	if completed {
		s.Completed = append(s.Completed, habitID)
	} else {
		s.Completed = slices.DeleteFunc(slices.Clone(s.Completed), func(id string) bool {
			return id == habitID
		})
	}

	s.pending = &PendingToggle{
		state:     s,
		HabitID:   habitID,
		Completed: completed,
		previous:  previous,
	}
	return s.pending, nil
}

// Commit keeps the tentative state.
func (p *PendingToggle) Commit() error {
	if p.settled {
		return ErrToggleSettled
	}
	p.settled = true
	p.state.pending = nil
	return nil
}

// Rollback restores the completion set captured by BeginToggle.
func (p *PendingToggle) Rollback() error {
	if p.settled {
		return ErrToggleSettled
	}
	p.settled = true
	p.state.Completed = p.previous
	p.state.pending = nil
	return nil
}

// Toggle runs a full two-phase toggle: tentative apply, remote call, then
// commit on success or rollback on failure. The remote error is returned
// unchanged after rollback.
func (s *DayState) Toggle(ctx context.Context, habitID string, remote func(ctx context.Context, habitID string) error) (*PendingToggle, error) {
	pending, err := s.BeginToggle(habitID)
	if err != nil {
		return nil, err
	}
	if err := remote(ctx, habitID); err != nil {
		_ = pending.Rollback()
		return pending, err
	}
	return pending, pending.Commit()
}

// IsPast reports whether every instant of day lies before now, evaluated
// in now's location. Past days are read-only.
func IsPast(day calendar.Day, now time.Time) bool {
	nextMidnight := day.Next().Time(now.Location())
	return !now.Before(nextMidnight)
}
