package forecast

import "fmt"

// dayPosition classifies a day of the series against the "today" anchor
type dayPosition int

const (
	dayPast dayPosition = iota
	dayCurrent
	dayFuture
)

func classifyDay(fullIdx, todayIdx int) dayPosition {
	switch {
	case fullIdx < todayIdx:
		return dayPast
	case fullIdx == todayIdx:
		return dayCurrent
	default:
		return dayFuture
	}
}

// extract clips the full-window balance series down to the display window
// and emits one point per day, or one point per calendar month when the
// display window exceeds the monthly aggregation threshold.
func extract(in Input, totals []int64, deltas ledgerDeltas, totalDays int) []Point {
	displayStartIdx := dayIndex(in.DisplayWindow.Start, in.DataWindow.Start)
	if displayStartIdx < 0 {
		displayStartIdx = 0
	}

	displayDays := int((in.DisplayWindow.End-in.DisplayWindow.Start)/secondsPerDay) + 1
	if displayDays < 1 {
		displayDays = 1
	}

	todayIdx := clampInt(dayIndex(in.Now, in.DataWindow.Start), -1, totalDays-1)

	format := in.FormatDateLabel
	if format == nil {
		format = defaultDateLabel
	}

	if displayDays > monthlyThresholdDays {
		return extractMonthly(in, totals, deltas, totalDays, displayStartIdx, displayDays, todayIdx, format)
	}
	return extractDaily(in, totals, deltas, totalDays, displayStartIdx, displayDays, todayIdx, format)
}

func extractDaily(in Input, totals []int64, deltas ledgerDeltas, totalDays, displayStartIdx, displayDays, todayIdx int, format func(int64) string) []Point {
	points := make([]Point, 0, displayDays)

	for d := 0; d < displayDays; d++ {
		fullIdx := displayStartIdx + d
		dayUnix := in.DisplayWindow.Start + int64(d)*secondsPerDay
		_, month, day := calendarDate(dayUnix)

		points = append(points, Point{
			Date:         fmt.Sprintf("%02d.%02d", day, month),
			DateLabel:    format(dayUnix),
			Balance:      totals[clampInt(fullIdx, 0, totalDays-1)],
			IsFuture:     classifyDay(fullIdx, todayIdx) == dayFuture,
			DailyIncome:  deltas.income[fullIdx],
			DailyExpense: deltas.expense[fullIdx],
		})
	}

	return points
}

// extractMonthly walks the display window day by day and emits a point
// per calendar month representing the last day observed in it: the
// end-of-month balance plus the income and expense accumulated over the
// month. The trailing month is flushed after the walk whether or not it
// ends on a month boundary.
func extractMonthly(in Input, totals []int64, deltas ledgerDeltas, totalDays, displayStartIdx, displayDays, todayIdx int, format func(int64) string) []Point {
	var points []Point

	currentYear, currentMonth := 0, 0
	var monthIncome, monthExpense int64
	lastIdx := displayStartIdx
	lastUnix := in.DisplayWindow.Start
	lastFuture := false

	flush := func() {
		lastYear, lastMonth, _ := calendarDate(lastUnix)
		points = append(points, Point{
			Date:         fmt.Sprintf("%02d.%02d", lastMonth, lastYear%100),
			DateLabel:    format(lastUnix),
			Balance:      totals[clampInt(lastIdx, 0, totalDays-1)],
			IsFuture:     lastFuture,
			DailyIncome:  monthIncome,
			DailyExpense: monthExpense,
		})
		monthIncome, monthExpense = 0, 0
	}

	for d := 0; d < displayDays; d++ {
		dayUnix := in.DisplayWindow.Start + int64(d)*secondsPerDay
		year, month, _ := calendarDate(dayUnix)

		if (month != currentMonth || year != currentYear) && currentMonth != 0 {
			flush()
		}

		currentYear, currentMonth = year, month
		lastIdx = displayStartIdx + d
		lastUnix = dayUnix
		lastFuture = classifyDay(lastIdx, todayIdx) == dayFuture
		monthIncome += deltas.income[lastIdx]
		monthExpense += deltas.expense[lastIdx]
	}

	if currentMonth != 0 {
		flush()
	}

	return points
}
