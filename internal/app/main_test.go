package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/banquet-calendar/internal/app"
	"github.com/nekogravitycat/banquet-calendar/internal/auth"
	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
	"github.com/nekogravitycat/banquet-calendar/internal/metrics"
)

var (
	testRouter *gin.Engine
	testRepo   *memoryRepository
	jwtManager *auth.JWTManager
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	metrics.Register()

	testRepo = &memoryRepository{}

	appContainer := app.NewContainer(app.Config{
		JWTSecret:   "test-secret",
		JWTTTL:      30 * time.Minute,
		BookingRepo: testRepo,
		Calendar: calendar.Options{
			FirstDay:       time.Sunday,
			ShowAuspicious: true,
			BadgeCap:       9,
		},
		MobileBreakpoint: calendar.DefaultMobileBreakpoint,
	})

	testRouter = appContainer.Router
	jwtManager = appContainer.JWTManager

	os.Exit(m.Run())
}

// memoryRepository is a booking.Repository over a slice.
type memoryRepository struct {
	mu       sync.Mutex
	bookings []booking.Booking
	err      error
}

func (r *memoryRepository) reset(list ...booking.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append([]booking.Booking(nil), list...)
	r.err = nil
}

func (r *memoryRepository) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *memoryRepository) List(ctx context.Context) ([]booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]booking.Booking(nil), r.bookings...), nil
}

func (r *memoryRepository) Search(ctx context.Context, query string) ([]booking.Booking, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	f := booking.Filter{Search: query}
	var out []booking.Booking
	for _, b := range list {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (r *memoryRepository) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b := booking.Booking{
		ID:        fmt.Sprintf("new-%d", len(r.bookings)+1),
		Name:      req.Name,
		Phone:     req.Phone,
		EventDate: req.EventDate,
		EventTime: req.EventTime,
		Status:    req.Status,
		Notes:     req.Notes,
	}
	r.bookings = append(r.bookings, b)
	return &b, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, req booking.UpdateRequest) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			req.Apply(&r.bookings[i])
			return nil, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return booking.ErrNotFound
}

var errUpstreamDown = &booking.NetworkError{Op: "list", Err: errors.New("dial tcp: connection refused")}

func seedBookings() {
	testRepo.reset(
		booking.Booking{ID: "a", Name: "Asha Rao", Phone: "98765", EventDate: "2025-03-14T00:00:00.000Z", EventTime: "11:00", Status: booking.StatusConfirmed},
		booking.Booking{ID: "b", Name: "Meera Iyer", Phone: "91234", EventDate: "2025-03-14", EventTime: "19:00", Status: booking.StatusTentative},
		booking.Booking{ID: "c", Name: "Ravi Kumar", Number: "99887", StartDate: "2025-3-20", TimeSlot: "6pm", Status: booking.StatusConfirmed},
		booking.Booking{ID: "d", Name: "Undated", Status: booking.StatusEnquiry},
	)
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func generateToken(userID string, role auth.Role) string {
	token, _ := jwtManager.GenerateAccessToken(userID, role)
	return token
}
