package http

import (
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/pkg/request"
)

// ListForDateRequest defines query parameters for a single day's bookings.
type ListForDateRequest struct {
	request.FilterParams
}

// ListRequest defines query parameters for the paginated booking list.
type ListRequest struct {
	request.FilterParams
	request.PageParams
}

// ExportRequest defines query parameters for the spreadsheet download.
type ExportRequest struct {
	request.FilterParams
	Format string `form:"format,default=csv" binding:"oneof=csv xlsx"`
}

// SearchRequest defines query parameters for the remote search.
type SearchRequest struct {
	Query string `form:"q" binding:"max=100"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Contact     string `json:"contact,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	DisplayTime string `json:"display_time,omitempty"`
	Status      string `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func NewBookingResponse(b booking.Booking) BookingResponse {
	date, _ := b.DateKey()
	tod := b.TimeOfDay()
	return BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		Contact:     b.ContactNumber(),
		Date:        date,
		Time:        tod,
		DisplayTime: booking.FormatTime12(tod),
		Status:      string(b.Status),
		Notes:       b.Notes,
	}
}

func NewBookingResponses(list []booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(list))
	for i, b := range list {
		items[i] = NewBookingResponse(b)
	}
	return items
}

type UpdateBookingBody struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	EventDate *string `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	EventTime *string `json:"event_time" binding:"omitempty,max=32"`
	Status    *string `json:"status" binding:"omitempty,oneof=Confirmed Tentative Enquiry Pending Cancelled Completed"`
	Notes     *string `json:"notes" binding:"omitempty,max=2000"`
}

// Validate performs custom validation for UpdateBookingBody.
func (r *UpdateBookingBody) Validate() error {
	if r.Name == nil && r.Phone == nil && r.EventDate == nil &&
		r.EventTime == nil && r.Status == nil && r.Notes == nil {
		return booking.ErrInvalidInput
	}
	return nil
}

func (r *UpdateBookingBody) ToRequest() booking.UpdateRequest {
	req := booking.UpdateRequest{
		Name:      r.Name,
		Phone:     r.Phone,
		EventDate: r.EventDate,
		EventTime: r.EventTime,
		Notes:     r.Notes,
	}
	if r.Status != nil {
		st := booking.Status(*r.Status)
		req.Status = &st
	}
	return req
}

type CreateBookingBody struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	EventDate string `json:"event_date" binding:"required,datetime=2006-01-02"`
	EventTime string `json:"event_time" binding:"omitempty,max=32"`
	Status    string `json:"status" binding:"omitempty,oneof=Confirmed Tentative Enquiry Pending Cancelled Completed"`
	Notes     string `json:"notes" binding:"omitempty,max=2000"`
}

func (r *CreateBookingBody) ToRequest() booking.CreateRequest {
	return booking.CreateRequest{
		Name:      r.Name,
		Phone:     r.Phone,
		EventDate: r.EventDate,
		EventTime: r.EventTime,
		Status:    booking.Status(r.Status),
		Notes:     r.Notes,
	}
}
