package calendar

import (
	"strings"

	"github.com/nekogravitycat/banquet-calendar/internal/booking"
)

// Fill is the shaded portion of a day cell.
type Fill string

const (
	FillNone  Fill = "none"
	FillUpper Fill = "upper" // first half of the day
	FillLower Fill = "lower" // second half of the day
	FillFull  Fill = "full"
)

// eveningHour splits the day into the morning and evening shifts.
const eveningHour = 16

// Label returns the shift name shown in the cell tooltip.
func (f Fill) Label() string {
	switch f {
	case FillUpper:
		return "First Half"
	case FillLower:
		return "Second Half"
	case FillFull:
		return "Full Day"
	default:
		return ""
	}
}

// ParseHour extracts an hour from a free-form time string.
//
// "18:30" gives 18, "4pm" gives 16, "12 pm" gives 12 and "9" gives 9.
// ok is false when no leading integer can be read.
func ParseHour(s string) (hour int, ok bool) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return booking.LeadingInt(s[:i])
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "pm") && !strings.Contains(lower, "12") {
		h, ok := booking.LeadingInt(s)
		if !ok {
			return 0, false
		}
		return h + 12, true
	}

	return booking.LeadingInt(s)
}

// Classify decides the fill of a day from its bookings.
//
// Two or more bookings fill the whole day. A single booking fills the upper
// half before 16:00 and the lower half from 16:00 on; a booking without a
// readable time defaults to the upper half.
func Classify(bookings []booking.Booking) Fill {
	switch len(bookings) {
	case 0:
		return FillNone
	case 1:
	default:
		return FillFull
	}

	tod := bookings[0].TimeOfDay()
	if tod == "" {
		return FillUpper
	}
	hour, ok := ParseHour(tod)
	if !ok || hour < eveningHour {
		return FillUpper
	}
	return FillLower
}

// ClassifyDate classifies the bookings grouped under key.
func ClassifyDate(key string, byDate booking.ByDate) Fill {
	return Classify(byDate[key])
}
