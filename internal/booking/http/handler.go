package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/auth"
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/pkg/request"
	"github.com/nekogravitycat/banquet-calendar/internal/pkg/response"
)

type Handler struct {
	service booking.Service
	log     *zap.Logger
}

func NewHandler(service booking.Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{Search: req.Query, Status: req.Status}
	list, total, err := h.service.Page(c.Request.Context(), filter, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewBookingResponses(list), req.Page, req.PageSize, total))
}

func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{Search: req.Query, Status: req.Status}
	list, err := h.service.Sorted(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch req.Format {
	case "xlsx":
		err = booking.WriteXLSX(&buf, list)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		err = booking.WriteCSV(&buf, list)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	name := fmt.Sprintf("Booking-List-%s.%s", time.Now().Format(booking.DateLayout), req.Format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), body.ToRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("user_id", auth.GetUserID(c)),
	)
	c.JSON(http.StatusCreated, NewBookingResponse(*b))
}

func (h *Handler) ListForDate(c *gin.Context) {
	var uri request.ByDateRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	var req ListForDateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{Search: req.Query, Status: req.Status}
	list, err := h.service.ForDate(c.Request.Context(), uri.Date, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewListResponse(NewBookingResponses(list)))
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	list, err := h.service.Search(c.Request.Context(), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewListResponse(NewBookingResponses(list)))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(*b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, body.ToRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.log.Info("booking updated",
		zap.String("booking_id", uri.ID),
		zap.String("user_id", auth.GetUserID(c)),
	)
	c.JSON(http.StatusOK, NewBookingResponse(*b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.log.Info("booking deleted",
		zap.String("booking_id", uri.ID),
		zap.String("user_id", auth.GetUserID(c)),
	)
	c.Status(http.StatusNoContent)
}
