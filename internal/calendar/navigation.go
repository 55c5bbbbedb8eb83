package calendar

import (
	"strconv"
	"time"
)

// MonthRef identifies a displayed month.
type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Normalize folds an arbitrary month number into a valid MonthRef the way
// date arithmetic does: month 13 of 2024 is January 2025, month 0 is the
// December before.
func Normalize(year, month int) MonthRef {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return MonthRef{Year: t.Year(), Month: t.Month()}
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) MonthRef {
	return MonthRef{Year: t.Year(), Month: t.Month()}
}

// Next returns the following month, wrapping December into January.
func (m MonthRef) Next() MonthRef {
	if m.Month == time.December {
		return MonthRef{Year: m.Year + 1, Month: time.January}
	}
	return MonthRef{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding month, wrapping January into December.
func (m MonthRef) Prev() MonthRef {
	if m.Month == time.January {
		return MonthRef{Year: m.Year - 1, Month: time.December}
	}
	return MonthRef{Year: m.Year, Month: m.Month - 1}
}

// Title renders e.g. "March 2025".
func (m MonthRef) Title() string {
	return MonthName(m.Month) + " " + strconv.Itoa(m.Year)
}

// MonthName returns the English month name, empty for invalid months.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return m.String()
}
