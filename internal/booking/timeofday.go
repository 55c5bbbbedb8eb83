package booking

import (
	"fmt"
	"strings"
)

// TimeOfDay returns the first populated time field, checked in the order
// eventTime, startTime, timeSlot, time, slot.
func (b Booking) TimeOfDay() string {
	for _, v := range []string{b.EventTime, b.StartTime, b.TimeSlot, b.Time, b.Slot} {
		if v != "" {
			return v
		}
	}
	return ""
}

// LeadingInt reads the integer at the start of s, skipping leading blanks
// and accepting a sign. Trailing text is ignored: "10pm" gives 10.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")

	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
		if n > 1<<30 {
			break
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// FormatTime12 converts a 24-hour time to 12-hour display text.
//
// "18:30" gives "6:30 PM", "0" gives "12 AM". Values already carrying
// AM/PM and values without a readable hour are returned unchanged.
func FormatTime12(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "am") || strings.Contains(lower, "pm") {
		return s
	}

	if parts := strings.Split(s, ":"); len(parts) > 1 {
		hour, ok := LeadingInt(parts[0])
		if !ok {
			return s
		}
		min := parts[1]
		if min == "" {
			min = "00"
		}
		h, suffix := to12(hour)
		return fmt.Sprintf("%d:%s %s", h, min, suffix)
	}

	hour, ok := LeadingInt(s)
	if !ok {
		return s
	}
	h, suffix := to12(hour)
	return fmt.Sprintf("%d %s", h, suffix)
}

func to12(hour int) (int, string) {
	switch {
	case hour == 0:
		return 12, "AM"
	case hour < 12:
		return hour, "AM"
	case hour == 12:
		return 12, "PM"
	default:
		return hour - 12, "PM"
	}
}
