// Package calendar builds the year-to-date day sequence behind the summary grid.
package calendar

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// DateLayout is the wire and URL format for a Day.
const DateLayout = "2006-01-02"

// SummaryGridSize is the minimum number of cells the summary grid renders.
const SummaryGridSize = 18 * 5

// Day is a calendar date with no time-of-day component.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(value string) (Day, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", value, err)
	}
	return DayOf(t), nil
}

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return DayOf(time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, time.UTC))
}

func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) YearDay() int {
	return d.Time(time.UTC).YearDay()
}

func (d Day) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes the zero Day as an empty string.
func (d Day) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysFromYearStart yields every day from January 1 of today's year through
// today, inclusive. The sequence can be ranged over any number of times.
func DaysFromYearStart(today time.Time) iter.Seq[Day] {
	last := DayOf(today)
	first := Day{Year: last.Year, Month: time.January, Day: 1}
	return func(yield func(Day) bool) {
		for d := first; !last.Before(d); d = d.Next() {
			if !yield(d) {
				return
			}
		}
	}
}

// Collect materializes a day sequence.
func Collect(days iter.Seq[Day]) []Day {
	return slices.Collect(days)
}

// FillerCount returns how many placeholder cells pad generated days up to
// targetGridSize. It is never negative.
func FillerCount(targetGridSize, generated int) int {
	return max(0, targetGridSize-generated)
}
