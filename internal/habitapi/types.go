package habitapi

import "time"

type Habit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// DayHabits is the GET /day response: habits possible on a date and the
// IDs of those already completed.
type DayHabits struct {
	PossibleHabits  []Habit  `json:"possibleHabits"`
	CompletedHabits []string `json:"completedHabits"`
}

// DaySummary is one GET /summary entry: possible (Amount) vs completed
// habits on a date.
type DaySummary struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Amount    int       `json:"amount"`
	Completed int       `json:"completed"`
}
