package overview

import "time"

// Period boundaries are computed in UTC and returned as inclusive
// [start, end] unix second ranges.

// dayRange returns the bounds of the calendar day containing t
func dayRange(t time.Time) (int64, int64) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start.Unix(), start.AddDate(0, 0, 1).Unix() - 1
}

// weekRange returns the bounds of the week containing t, where the week
// begins on firstDay
func weekRange(t time.Time, firstDay time.Weekday) (int64, int64) {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	offset := (int(day.Weekday()) - int(firstDay) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return start.Unix(), start.AddDate(0, 0, 7).Unix() - 1
}

// monthRange returns the bounds of the calendar month containing t
func monthRange(t time.Time) (int64, int64) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start.Unix(), start.AddDate(0, 1, 0).Unix() - 1
}

// yearRange returns the bounds of the calendar year containing t
func yearRange(t time.Time) (int64, int64) {
	t = t.UTC()
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return start.Unix(), start.AddDate(1, 0, 0).Unix() - 1
}
