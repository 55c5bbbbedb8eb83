package calendar

import (
	"fmt"
	"strconv"
)

// monthDay is a fixed calendar position independent of year.
type monthDay struct {
	month int
	day   int
}

// auspiciousTable lists the recognised auspicious month/day pairs.
// It is calendar data, not computed.
var auspiciousTable = []monthDay{
	{1, 16}, {1, 17}, {1, 18}, {1, 19}, {1, 21}, {1, 22}, {1, 24}, {1, 25}, {1, 30},
	{2, 3}, {2, 4}, {2, 6}, {2, 7}, {2, 13}, {2, 14}, {2, 15}, {2, 18}, {2, 19}, {2, 20}, {2, 21}, {2, 25},
	{3, 1}, {3, 2}, {3, 3}, {3, 5}, {3, 6},
	{4, 14}, {4, 16}, {4, 17}, {4, 18}, {4, 19}, {4, 20}, {4, 21}, {4, 22}, {4, 23}, {4, 25}, {4, 29}, {4, 30},
	{5, 1}, {5, 5}, {5, 6}, {5, 7}, {5, 8}, {5, 10}, {5, 15}, {5, 17}, {5, 18}, {5, 19}, {5, 24}, {5, 28},
	{6, 2}, {6, 4}, {6, 7}, {6, 8},
	{7, 11}, {7, 12}, {7, 13}, {7, 17}, {7, 20}, {7, 21}, {7, 22}, {7, 26}, {7, 28}, {7, 29}, {7, 31},
	{8, 1}, {8, 3}, {8, 4}, {8, 7}, {8, 8}, {8, 9}, {8, 13}, {8, 14}, {8, 17}, {8, 24}, {8, 25}, {8, 28}, {8, 29}, {8, 30}, {8, 31},
	{9, 1}, {9, 2}, {9, 3}, {9, 4}, {9, 5}, {9, 26}, {9, 27}, {9, 28},
	{10, 1}, {10, 2}, {10, 3}, {10, 4}, {10, 7}, {10, 8}, {10, 10}, {10, 11}, {10, 12},
	{10, 22}, {10, 23}, {10, 24}, {10, 25}, {10, 26}, {10, 27}, {10, 28}, {10, 29}, {10, 30}, {10, 31},
	{11, 2}, {11, 3}, {11, 4}, {11, 7}, {11, 8}, {11, 12}, {11, 13},
	{11, 22}, {11, 23}, {11, 24}, {11, 25}, {11, 26}, {11, 27}, {11, 29}, {11, 30},
	{12, 4}, {12, 5}, {12, 6},
}

// Day-of-month sets for the tier breakdown. Kept verbatim.
var (
	heavyDays  = map[int]bool{1: true, 5: true, 10: true, 15: true, 20: true, 25: true, 30: true}
	mediumDays = map[int]bool{2: true, 4: true, 7: true, 9: true, 17: true, 22: true, 27: true}
)

// Tier is the informational weight of an auspicious date.
type Tier string

const (
	TierNone   Tier = ""
	TierHeavy  Tier = "heavy"
	TierMedium Tier = "medium"
	TierLight  Tier = "light"
)

// Tooltip returns the hover text for the tier.
func (t Tier) Tooltip() string {
	switch t {
	case TierHeavy:
		return "Heavy Booking"
	case TierMedium:
		return "Medium Booking"
	case TierLight:
		return "Light Booking"
	default:
		return ""
	}
}

// auspiciousDays indexes auspiciousTable for lookups.
var auspiciousDays = func() map[monthDay]bool {
	m := make(map[monthDay]bool, len(auspiciousTable))
	for _, md := range auspiciousTable {
		m[md] = true
	}
	return m
}()

// AuspiciousSet is the set of auspicious date keys for one year.
type AuspiciousSet struct {
	Year int
}

// Auspicious returns the set for year.
func Auspicious(year int) AuspiciousSet {
	return AuspiciousSet{Year: year}
}

// Has reports whether key is in the set. Only canonical YYYY-MM-DD keys
// of the set's year match.
func (s AuspiciousSet) Has(key string) bool {
	year, md, ok := splitKey(key)
	return ok && year == s.Year && auspiciousDays[md]
}

// Keys returns the dates in table order.
func (s AuspiciousSet) Keys() []string {
	keys := make([]string, 0, len(auspiciousTable))
	for _, md := range auspiciousTable {
		keys = append(keys, FormatKey(s.Year, md.month, md.day))
	}
	return keys
}

// Tier classifies key within the set.
func (s AuspiciousSet) Tier(key string) Tier {
	if !s.Has(key) {
		return TierNone
	}
	_, md, _ := splitKey(key)
	switch day := md.day; {
	case heavyDays[day]:
		return TierHeavy
	case mediumDays[day]:
		return TierMedium
	default:
		return TierLight
	}
}

// IsAuspicious reports whether the date key is auspicious in year.
func IsAuspicious(key string, year int) bool {
	return Auspicious(year).Has(key)
}

// TierOf returns the tier of key in year, TierNone when not auspicious.
func TierOf(key string, year int) Tier {
	return Auspicious(year).Tier(key)
}

// FormatKey renders a zero-padded YYYY-MM-DD key. month is 1-based.
func FormatKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// splitKey parses a zero-padded YYYY-MM-DD key.
func splitKey(key string) (int, monthDay, bool) {
	if len(key) != 10 || key[4] != '-' || key[7] != '-' {
		return 0, monthDay{}, false
	}
	for i := 0; i < len(key); i++ {
		if i != 4 && i != 7 && (key[i] < '0' || key[i] > '9') {
			return 0, monthDay{}, false
		}
	}
	year, _ := strconv.Atoi(key[:4])
	month, _ := strconv.Atoi(key[5:7])
	day, _ := strconv.Atoi(key[8:])
	return year, monthDay{month: month, day: day}, true
}
