package calendar

import "time"

const (
	daysPerWeek = 7
	// gridWeeks is the fixed canvas height. Empty rows are pruned afterwards.
	gridWeeks = 6
)

// Week holds the day-of-month for each column; 0 marks an empty cell.
type Week [daysPerWeek]int

// Empty reports whether the week has no real day.
func (w Week) Empty() bool {
	for _, d := range w {
		if d != 0 {
			return false
		}
	}
	return true
}

// Grid is the week layout of a single month.
type Grid struct {
	Year     int
	Month    time.Month
	FirstDay time.Weekday
	Weeks    []Week
}

// DaysIn returns the Gregorian day count of the month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildGrid lays out the month over a 6x7 canvas starting at firstDay and
// keeps only the weeks that contain at least one day. Out-of-range months are
// folded into the neighbouring years first.
func BuildGrid(year int, month time.Month, firstDay time.Weekday) Grid {
	ref := Normalize(year, int(month))
	firstDay = time.Weekday((int(firstDay)%daysPerWeek + daysPerWeek) % daysPerWeek)

	first := time.Date(ref.Year, ref.Month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) - int(firstDay) + daysPerWeek) % daysPerWeek
	days := DaysIn(ref.Year, ref.Month)

	grid := Grid{Year: ref.Year, Month: ref.Month, FirstDay: firstDay}

	day := 1
	for w := 0; w < gridWeeks; w++ {
		var week Week
		for i := 0; i < daysPerWeek; i++ {
			cell := w*daysPerWeek + i
			if cell < lead || day > days {
				continue
			}
			week[i] = day
			day++
		}
		if !week.Empty() {
			grid.Weeks = append(grid.Weeks, week)
		}
	}

	return grid
}

// Key returns the date key of day within the grid's month.
func (g Grid) Key(day int) string {
	return FormatKey(g.Year, int(g.Month), day)
}

// DayCount returns the number of non-empty cells.
func (g Grid) DayCount() int {
	n := 0
	for _, w := range g.Weeks {
		for _, d := range w {
			if d != 0 {
				n++
			}
		}
	}
	return n
}

// WeekdayHeaders returns short weekday names ordered from the grid's first day.
func (g Grid) WeekdayHeaders() []string {
	headers := make([]string, daysPerWeek)
	for i := range headers {
		headers[i] = time.Weekday((int(g.FirstDay) + i) % daysPerWeek).String()[:3]
	}
	return headers
}
