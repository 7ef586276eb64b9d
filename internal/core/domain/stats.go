package domain

import (
	"math"
	"time"
)

// StatsSnapshot is a derived completion summary for one scope: a day, a
// week window or a calendar month. Rate is a whole percentage, rounded
// half-up, and 0 whenever Possible is 0.
type StatsSnapshot struct {
	Completed int `json:"completed"`
	Possible  int `json:"possible"`
	Rate      int `json:"completion_rate"`
}

func NewStatsSnapshot(completed, possible int) StatsSnapshot {
	s := StatsSnapshot{Completed: completed, Possible: possible}
	if possible > 0 {
		s.Rate = int(math.Round(float64(completed) / float64(possible) * 100))
	}
	return s
}

// WeekStats pairs a week window with its snapshot for rendering.
type WeekStats struct {
	WeekIndex int           `json:"week_index"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Stats     StatsSnapshot `json:"stats"`
}

type DayStats struct {
	Date  string        `json:"date"`
	Stats StatsSnapshot `json:"stats"`
}

// MonthOverview is the full derived state for one calendar month: the
// padded week grid, the month snapshot, and per-week and per-day rollups.
type MonthOverview struct {
	Month   string        `json:"month"`
	Weeks   [][]string    `json:"weeks"`
	Monthly StatsSnapshot `json:"monthly"`
	Weekly  []WeekStats   `json:"weekly"`
	Days    []DayStats    `json:"days"`
}

// activeOnly filters records down to habits currently present in the
// active set. Records left behind by a deleted habit never count.
func activeOnly(habits []*Habit, records []*CompletionRecord) []*CompletionRecord {
	if len(habits) == 0 || len(records) == 0 {
		return nil
	}

	ids := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		ids[h.ID] = struct{}{}
	}

	var active []*CompletionRecord
	for _, r := range records {
		if _, ok := ids[r.HabitID]; ok {
			active = append(active, r)
		}
	}
	return active
}

// DailySnapshot counts active habits completed on one day. The ledger
// holds at most one record per (habit, day), so records on the day map
// one-to-one to habits.
func DailySnapshot(habits []*Habit, records []*CompletionRecord, day time.Time) StatsSnapshot {
	day = NormalizeDay(day)

	completed := 0
	for _, r := range activeOnly(habits, records) {
		if r.Completed && r.Day.Equal(day) {
			completed++
		}
	}

	return NewStatsSnapshot(completed, len(habits))
}

// WeeklySnapshot counts completions across all seven days of the window.
// Padding days from a neighboring month still count toward the
// denominator: the week is a fixed seven-day unit.
func WeeklySnapshot(habits []*Habit, records []*CompletionRecord, week WeekWindow) StatsSnapshot {
	completed := 0
	for _, r := range activeOnly(habits, records) {
		if r.Completed && week.Contains(r.Day) {
			completed++
		}
	}

	return NewStatsSnapshot(completed, len(habits)*7)
}

// MonthlySnapshot counts completions falling strictly inside ref's month.
// Unlike WeeklySnapshot, padding days are excluded from both counts: the
// month scope describes the named month, not the visual grid.
func MonthlySnapshot(habits []*Habit, records []*CompletionRecord, ref time.Time) StatsSnapshot {
	first, last := MonthBounds(ref)
	daysInMonth := last.Day()

	completed := 0
	for _, r := range activeOnly(habits, records) {
		if r.Completed && SameMonth(r.Day, first) {
			completed++
		}
	}

	return NewStatsSnapshot(completed, len(habits)*daysInMonth)
}
