package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
// Booking IDs are opaque strings issued by the booking API.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,max=64"`
}

// ByDateRequest is used by endpoints addressing a single calendar day.
type ByDateRequest struct {
	Date string `uri:"date" binding:"required,datetime=2006-01-02"`
}

// FilterParams are the shared calendar search and status filter parameters.
type FilterParams struct {
	Query  string `form:"q" binding:"omitempty,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=All Confirmed Tentative Enquiry Pending Cancelled Completed"`
}

// PageParams are the shared pagination parameters.
type PageParams struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}
