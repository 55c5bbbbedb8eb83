package booking

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nekogravitycat/banquet-calendar/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidDate       = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrInvalidInput      = apperror.New(http.StatusBadRequest, "invalid input parameters")
	ErrMalformedResponse = apperror.New(http.StatusBadGateway, "unexpected response from booking service")
)

// DateLayout is the canonical date key layout.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusTentative Status = "Tentative"
	StatusEnquiry   Status = "Enquiry"
	StatusPending   Status = "Pending"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Statuses lists every known booking status.
var Statuses = []Status{
	StatusConfirmed, StatusTentative, StatusEnquiry,
	StatusPending, StatusCancelled, StatusCompleted,
}

// ParseStatus matches s against the known statuses, ignoring case.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Booking is a banquet booking as served by the booking API. Date and time
// fields are kept as the free-form strings the API returns.
type Booking struct {
	ID        string `json:"_id"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Number    string `json:"number,omitempty"`
	Contact   string `json:"contact,omitempty"`
	EventDate string `json:"eventDate,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EventTime string `json:"eventTime,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	TimeSlot  string `json:"timeSlot,omitempty"`
	Time      string `json:"time,omitempty"`
	Slot      string `json:"slot,omitempty"`
	Status    Status `json:"bookingStatus,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ContactNumber returns the first populated contact field.
func (b Booking) ContactNumber() string {
	for _, v := range []string{b.Phone, b.Number, b.Contact} {
		if v != "" {
			return v
		}
	}
	return ""
}

// wireBooking accepts both id spellings and numeric contact fields.
type wireBooking struct {
	ID        looseString `json:"id"`
	MongoID   looseString `json:"_id"`
	Name      looseString `json:"name"`
	Phone     looseString `json:"phone"`
	Number    looseString `json:"number"`
	Contact   looseString `json:"contact"`
	EventDate looseString `json:"eventDate"`
	StartDate looseString `json:"startDate"`
	EventTime looseString `json:"eventTime"`
	StartTime looseString `json:"startTime"`
	TimeSlot  looseString `json:"timeSlot"`
	Time      looseString `json:"time"`
	Slot      looseString `json:"slot"`
	Status    looseString `json:"bookingStatus"`
	Notes     looseString `json:"notes"`
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var w wireBooking
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := string(w.MongoID)
	if id == "" {
		id = string(w.ID)
	}

	*b = Booking{
		ID:        id,
		Name:      string(w.Name),
		Phone:     string(w.Phone),
		Number:    string(w.Number),
		Contact:   string(w.Contact),
		EventDate: string(w.EventDate),
		StartDate: string(w.StartDate),
		EventTime: string(w.EventTime),
		StartTime: string(w.StartTime),
		TimeSlot:  string(w.TimeSlot),
		Time:      string(w.Time),
		Slot:      string(w.Slot),
		Status:    Status(w.Status),
		Notes:     string(w.Notes),
	}
	return nil
}

// looseString decodes a JSON string, number or boolean as text. Objects,
// arrays and null decode to the empty string.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "" || raw == "null":
		*s = ""
	case raw[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case raw[0] == '{' || raw[0] == '[':
		*s = ""
	default:
		*s = looseString(raw)
	}
	return nil
}

// ByDate groups bookings under their canonical date key.
type ByDate map[string][]Booking

// Count returns the number of bookings on key.
func (g ByDate) Count(key string) int {
	return len(g[key])
}

// Filter narrows the bookings shown on the calendar.
type Filter struct {
	Search string // matched against name and contact fields
	Status string // "All" or empty disables the status filter
}

// Validate rejects a status that is neither a known booking status nor "All".
func (f Filter) Validate() error {
	if f.Status == "" || strings.EqualFold(f.Status, "All") {
		return nil
	}
	if _, ok := ParseStatus(f.Status); !ok {
		return ErrInvalidStatus
	}
	return nil
}

// Match reports whether b passes the filter.
func (f Filter) Match(b Booking) bool {
	return f.matchesSearch(b) && f.matchesStatus(b)
}

func (f Filter) matchesSearch(b Booking) bool {
	term := f.Search
	if term == "" {
		return true
	}
	if b.Name != "" && strings.Contains(strings.ToLower(b.Name), strings.ToLower(term)) {
		return true
	}
	for _, v := range []string{b.Phone, b.Number, b.Contact} {
		if v != "" && strings.Contains(v, term) {
			return true
		}
	}
	return false
}

func (f Filter) matchesStatus(b Booking) bool {
	if f.Status == "" || strings.EqualFold(f.Status, "All") {
		return true
	}
	return strings.EqualFold(string(b.Status), f.Status)
}

// UpdateRequest carries the fields to change. Nil fields are left untouched.
type UpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	EventDate *string `json:"eventDate,omitempty"`
	EventTime *string `json:"eventTime,omitempty"`
	Status    *Status `json:"bookingStatus,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UpdateRequest) Empty() bool {
	return r.Name == nil && r.Phone == nil && r.EventDate == nil &&
		r.EventTime == nil && r.Status == nil && r.Notes == nil
}

// Apply patches b in place with the populated fields.
func (r UpdateRequest) Apply(b *Booking) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Phone != nil {
		b.Phone = *r.Phone
	}
	if r.EventDate != nil {
		b.EventDate = *r.EventDate
	}
	if r.EventTime != nil {
		b.EventTime = *r.EventTime
	}
	if r.Status != nil {
		b.Status = *r.Status
	}
	if r.Notes != nil {
		b.Notes = *r.Notes
	}
}

// CreateRequest carries a new booking. Name and EventDate are required.
type CreateRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	EventDate string `json:"eventDate"`
	EventTime string `json:"eventTime,omitempty"`
	Status    Status `json:"bookingStatus,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
