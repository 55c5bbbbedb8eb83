package http

import (
	"time"

	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
	"github.com/nekogravitycat/banquet-calendar/internal/pkg/request"
)

// MonthURI addresses a displayed month. Months are 1-based.
type MonthURI struct {
	Year  int `uri:"year" binding:"required,min=1,max=9999"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}

// MonthQuery defines query parameters for the month view.
type MonthQuery struct {
	request.FilterParams
	Selected string `form:"selected" binding:"omitempty,datetime=2006-01-02"`
	Width    int    `form:"width" binding:"omitempty,min=0,max=10000"`
	FirstDay *int   `form:"first_day" binding:"omitempty,min=0,max=6"`
}

// YearURI addresses a calendar year.
type YearURI struct {
	Year int `uri:"year" binding:"required,min=1,max=9999"`
}

type NavResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func newNav(m calendar.MonthRef) NavResponse {
	return NavResponse{Year: m.Year, Month: int(m.Month)}
}

type MonthResponse struct {
	calendar.MonthView
	Prev      NavResponse `json:"prev"`
	Next      NavResponse `json:"next"`
	Mobile    bool        `json:"mobile"`
	RoleBadge string      `json:"role_badge,omitempty"`
}

type AuspiciousDateResponse struct {
	Date    string        `json:"date"`
	Weekday string        `json:"weekday"`
	Tier    calendar.Tier `json:"tier"`
	Tooltip string        `json:"tooltip"`
}

func NewAuspiciousResponses(set calendar.AuspiciousSet) []AuspiciousDateResponse {
	keys := set.Keys()
	items := make([]AuspiciousDateResponse, 0, len(keys))
	for _, k := range keys {
		tier := set.Tier(k)
		weekday := ""
		if t, err := time.Parse("2006-01-02", k); err == nil {
			weekday = t.Weekday().String()
		}
		items = append(items, AuspiciousDateResponse{
			Date:    k,
			Weekday: weekday,
			Tier:    tier,
			Tooltip: tier.Tooltip(),
		})
	}
	return items
}
