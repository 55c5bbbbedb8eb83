package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/banquet-calendar/internal/auth"
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
	"github.com/nekogravitycat/banquet-calendar/internal/pkg/response"
)

type Handler struct {
	engine     *calendar.Engine
	bookings   booking.Service
	breakpoint int
}

func NewHandler(engine *calendar.Engine, bookings booking.Service, mobileBreakpoint int) *Handler {
	return &Handler{
		engine:     engine,
		bookings:   bookings,
		breakpoint: mobileBreakpoint,
	}
}

// Month returns the decorated grid for the requested month.
func (h *Handler) Month(c *gin.Context) {
	view, vp, ok := h.buildView(c)
	if !ok {
		return
	}

	ref := view.Month
	resp := MonthResponse{
		MonthView: view,
		Prev:      newNav(ref.Prev()),
		Next:      newNav(ref.Next()),
		Mobile:    vp.Mobile(),
	}
	if vp.Mobile() {
		resp.RoleBadge = auth.GetSession(c).Badge()
	}

	c.JSON(http.StatusOK, resp)
}

// Image renders the month as PNG.
func (h *Handler) Image(c *gin.Context) {
	view, vp, ok := h.buildView(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := calendar.RenderPNG(&buf, view, vp); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Auspicious lists the auspicious dates of a year with their tiers.
func (h *Handler) Auspicious(c *gin.Context) {
	var uri YearURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year", "details": err.Error()})
		return
	}

	items := NewAuspiciousResponses(calendar.Auspicious(uri.Year))
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

// buildView binds the request, loads bookings and decorates the grid. It
// writes the error response itself and returns ok=false on failure.
func (h *Handler) buildView(c *gin.Context) (calendar.MonthView, calendar.ViewportInfo, bool) {
	var uri MonthURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month", "details": err.Error()})
		return calendar.MonthView{}, calendar.ViewportInfo{}, false
	}

	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return calendar.MonthView{}, calendar.ViewportInfo{}, false
	}

	filter := booking.Filter{Search: q.Query, Status: q.Status}
	byDate, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return calendar.MonthView{}, calendar.ViewportInfo{}, false
	}

	engine := h.engine
	if q.FirstDay != nil {
		opts := engine.Options()
		opts.FirstDay = time.Weekday(*q.FirstDay)
		engine = calendar.NewEngine(opts)
	}

	view := engine.Month(uri.Year, time.Month(uri.Month), byDate, q.Selected)
	vp := calendar.ViewportInfo{Width: q.Width, Breakpoint: h.breakpoint}
	return view, vp, true
}
