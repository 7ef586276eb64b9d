package domain

import "time"

// WeekWindow is seven consecutive calendar days, Sunday through Saturday,
// each anchored to midnight UTC.
type WeekWindow [7]time.Time

func (w WeekWindow) Start() time.Time { return w[0] }
func (w WeekWindow) End() time.Time   { return w[6] }

func (w WeekWindow) Contains(day time.Time) bool {
	day = NormalizeDay(day)
	return !day.Before(w[0]) && !day.After(w[6])
}

// MonthWeeks partitions the month containing ref into Sunday-start weeks.
// The first and last windows are padded with days from the neighboring
// months so every window holds exactly seven days. The result always has
// 4, 5 or 6 windows and depends only on ref's year and month.
func MonthWeeks(ref time.Time) []WeekWindow {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var weeks []WeekWindow
	var current WeekWindow
	i := 0

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		current[i] = day
		i++
		if i == 7 {
			weeks = append(weeks, current)
			i = 0
		}
	}

	return weeks
}

// MonthBounds returns the first and last calendar day of ref's month.
func MonthBounds(ref time.Time) (time.Time, time.Time) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// SameMonth reports whether day falls strictly inside ref's month.
func SameMonth(day, ref time.Time) bool {
	return day.Year() == ref.Year() && day.Month() == ref.Month()
}
