package calendar

// Selection holds at most one selected date key.
// The zero value has nothing selected.
type Selection struct {
	key string
}

// Select marks key as the selected date, replacing any earlier selection.
func (s *Selection) Select(key string) {
	s.key = key
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.key = ""
}

// Selected returns the selected key and whether one is set.
func (s *Selection) Selected() (string, bool) {
	return s.key, s.key != ""
}

// IsSelected reports whether key is the selected date.
func (s *Selection) IsSelected(key string) bool {
	return s.key != "" && s.key == key
}
