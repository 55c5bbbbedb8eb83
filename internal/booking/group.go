package booking

import (
	"strings"
	"time"
)

// DateKey derives the canonical YYYY-MM-DD key from eventDate, falling back
// to startDate. The value is cut at the 'T' separator and re-padded so that
// "2025-1-5" and "2025-01-05T10:00:00Z" land on the same key. ok is false
// when neither field holds a usable date.
func (b Booking) DateKey() (string, bool) {
	raw := b.EventDate
	if raw == "" {
		raw = b.StartDate
	}
	return ParseDateKey(raw)
}

// ParseDateKey canonicalises a date or date-time string.
func ParseDateKey(raw string) (string, bool) {
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	t, err := time.Parse("2006-1-2", raw)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

// GroupByDate buckets the bookings passing filter by date key. Bookings
// without a usable date are skipped. Order within a day is preserved.
func GroupByDate(bookings []Booking, filter Filter) ByDate {
	grouped := make(ByDate)
	for _, b := range bookings {
		if !filter.Match(b) {
			continue
		}
		key, ok := b.DateKey()
		if !ok {
			continue
		}
		grouped[key] = append(grouped[key], b)
	}
	return grouped
}
