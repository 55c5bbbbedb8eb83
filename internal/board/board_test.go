package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
)

// gatedService answers List calls in an order chosen by the test.
type gatedService struct {
	booking.Service

	mu    sync.Mutex
	calls []*pendingList

	// started receives one value per List call once it is registered.
	started chan struct{}

	createErr error
	updateErr error
	deleteErr error
	updated   *booking.Booking
}

type pendingList struct {
	filter booking.Filter
	reply  chan listReply
}

type listReply struct {
	byDate booking.ByDate
	err    error
}

func newGatedService() *gatedService {
	return &gatedService{started: make(chan struct{}, 16)}
}

func (s *gatedService) List(ctx context.Context, f booking.Filter) (booking.ByDate, error) {
	p := &pendingList{filter: f, reply: make(chan listReply, 1)}
	s.mu.Lock()
	s.calls = append(s.calls, p)
	s.mu.Unlock()
	s.started <- struct{}{}

	r := <-p.reply
	return r.byDate, r.err
}

func (s *gatedService) call(t *testing.T, i int) *pendingList {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Greater(t, len(s.calls), i)
	return s.calls[i]
}

func (s *gatedService) waitStarted(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("list call %d never started", i)
		}
	}
}

func (s *gatedService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &booking.Booking{
		ID:        "new",
		Name:      req.Name,
		EventDate: req.EventDate,
		EventTime: req.EventTime,
		Status:    req.Status,
	}, nil
}

func (s *gatedService) Update(ctx context.Context, id string, req booking.UpdateRequest) (*booking.Booking, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updated, nil
}

func (s *gatedService) Delete(ctx context.Context, id string) error {
	return s.deleteErr
}

func newBoard(svc booking.Service, start calendar.MonthRef) *Board {
	engine := calendar.NewEngine(calendar.Options{FirstDay: time.Sunday, ShowAuspicious: true, BadgeCap: 9})
	return New(svc, engine, start, zap.NewNop())
}

func marchBookings() booking.ByDate {
	return booking.GroupByDate([]booking.Booking{
		{ID: "a", Name: "Asha", EventDate: "2025-03-14", EventTime: "11:00", Status: booking.StatusConfirmed},
		{ID: "b", Name: "Meera", EventDate: "2025-03-14", EventTime: "19:00", Status: booking.StatusTentative},
		{ID: "c", Name: "Ravi", EventDate: "2025-03-20", EventTime: "18:00", Status: booking.StatusConfirmed},
	}, booking.Filter{})
}

func TestBoard_StaleResponseIsDiscarded(t *testing.T) {
	svc := newGatedService()
	b := newBoard(svc, calendar.MonthRef{Year: 2025, Month: time.March})

	first := make(chan error, 1)
	go func() { first <- b.Refresh(context.Background()) }()
	svc.waitStarted(t, 1)

	second := make(chan error, 1)
	go func() { second <- b.SetFilter(context.Background(), booking.Filter{Status: "Confirmed"}) }()
	svc.waitStarted(t, 1)

	// The newer request answers first.
	svc.call(t, 1).reply <- listReply{byDate: booking.ByDate{
		"2025-03-20": {{ID: "c", EventDate: "2025-03-20"}},
	}}
	require.NoError(t, <-second)

	// The older answer arrives late and must not win.
	svc.call(t, 0).reply <- listReply{byDate: marchBookings()}
	assert.ErrorIs(t, <-first, ErrStale)

	view := b.View()
	for _, c := range view.Cells() {
		if c.Date == "2025-03-20" {
			assert.Equal(t, 1, c.BookingCount)
		} else {
			assert.Zero(t, c.BookingCount, c.Date)
		}
	}
	assert.Equal(t, "Confirmed", svc.call(t, 1).filter.Status)
}

func TestBoard_StaleErrorDoesNotClobber(t *testing.T) {
	svc := newGatedService()
	b := newBoard(svc, calendar.MonthRef{Year: 2025, Month: time.March})

	first := make(chan error, 1)
	go func() { first <- b.Refresh(context.Background()) }()
	svc.waitStarted(t, 1)

	second := make(chan error, 1)
	go func() { second <- b.Refresh(context.Background()) }()
	svc.waitStarted(t, 1)

	svc.call(t, 1).reply <- listReply{byDate: marchBookings()}
	require.NoError(t, <-second)

	svc.call(t, 0).reply <- listReply{err: &booking.NetworkError{Op: "list", Err: errors.New("timeout")}}
	assert.ErrorIs(t, <-first, ErrStale)

	assert.Len(t, b.SelectedBookings(), 0)
	b.Select("2025-03-14")
	assert.Len(t, b.SelectedBookings(), 2)
}

func TestBoard_NetworkErrorKeepsPreviousData(t *testing.T) {
	svc := newGatedService()
	b := newBoard(svc, calendar.MonthRef{Year: 2025, Month: time.March})

	done := make(chan error, 1)
	go func() { done <- b.Refresh(context.Background()) }()
	svc.waitStarted(t, 1)
	svc.call(t, 0).reply <- listReply{byDate: marchBookings()}
	require.NoError(t, <-done)

	go func() { done <- b.Refresh(context.Background()) }()
	svc.waitStarted(t, 1)
	svc.call(t, 1).reply <- listReply{err: &booking.NetworkError{Op: "list", Err: errors.New("refused")}}
	err := <-done
	assert.True(t, booking.IsNetworkError(err))

	b.Select("2025-03-20")
	assert.Len(t, b.SelectedBookings(), 1)
}

func TestBoard_Navigation(t *testing.T) {
	svc := newGatedService()
	b := newBoard(svc, calendar.MonthRef{Year: 2024, Month: time.December})

	run := func(op func(context.Context) error) {
		done := make(chan error, 1)
		go func() { done <- op(context.Background()) }()
		svc.waitStarted(t, 1)
		svc.mu.Lock()
		last := svc.calls[len(svc.calls)-1]
		svc.mu.Unlock()
		last.reply <- listReply{byDate: booking.ByDate{}}
		require.NoError(t, <-done)
	}

	run(b.Next)
	assert.Equal(t, calendar.MonthRef{Year: 2025, Month: time.January}, b.Month())
	assert.Equal(t, "January 2025", b.View().Title)

	run(b.Prev)
	run(b.Prev)
	assert.Equal(t, calendar.MonthRef{Year: 2024, Month: time.November}, b.Month())

	run(func(ctx context.Context) error {
		return b.Goto(ctx, calendar.MonthRef{Year: 2025, Month: 14})
	})
	assert.Equal(t, calendar.MonthRef{Year: 2026, Month: time.February}, b.Month())

	// The auspicious set follows the displayed year.
	run(func(ctx context.Context) error {
		return b.Goto(ctx, calendar.MonthRef{Year: 2026, Month: time.January})
	})
	for _, c := range b.View().Cells() {
		if c.Date == "2026-01-16" {
			assert.True(t, c.Auspicious)
		}
	}
}

func TestBoard_Selection(t *testing.T) {
	b := newBoard(newGatedService(), calendar.MonthRef{Year: 2025, Month: time.March})

	_, ok := b.Selected()
	assert.False(t, ok)
	assert.Nil(t, b.SelectedBookings())

	b.Select("2025-03-14")
	b.Select("2025-03-15")
	key, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "2025-03-15", key)

	selected := 0
	for _, c := range b.View().Cells() {
		if c.Selected {
			selected++
			assert.Equal(t, "2025-03-15", c.Date)
		}
	}
	assert.Equal(t, 1, selected)

	b.ClearSelection()
	_, ok = b.Selected()
	assert.False(t, ok)
}

func loadedBoard(t *testing.T, svc *gatedService) *Board {
	t.Helper()
	b := newBoard(svc, calendar.MonthRef{Year: 2025, Month: time.March})
	done := make(chan error, 1)
	go func() { done <- b.Refresh(context.Background()) }()
	svc.waitStarted(t, 1)
	svc.call(t, 0).reply <- listReply{byDate: marchBookings()}
	require.NoError(t, <-done)
	return b
}

func TestBoard_UpdateBooking(t *testing.T) {
	t.Run("Success moves the booking", func(t *testing.T) {
		svc := newGatedService()
		b := loadedBoard(t, svc)
		svc.updated = &booking.Booking{ID: "b", Name: "Meera", EventDate: "2025-03-21", EventTime: "19:00"}

		date := "2025-03-21"
		got, err := b.UpdateBooking(context.Background(), "b", booking.UpdateRequest{EventDate: &date})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-21", got.EventDate)

		b.Select("2025-03-14")
		assert.Len(t, b.SelectedBookings(), 1)
		b.Select("2025-03-21")
		assert.Len(t, b.SelectedBookings(), 1)
	})

	t.Run("Network failure leaves local state alone", func(t *testing.T) {
		svc := newGatedService()
		b := loadedBoard(t, svc)
		svc.updateErr = &booking.NetworkError{Op: "update", Err: errors.New("refused")}

		status := booking.StatusCancelled
		req := booking.UpdateRequest{Status: &status}
		_, err := b.UpdateBooking(context.Background(), "a", req)
		require.True(t, booking.IsNetworkError(err))

		b.Select("2025-03-14")
		assert.Equal(t, booking.StatusConfirmed, b.SelectedBookings()[0].Status)

		// The caller opts in to the local change.
		require.True(t, b.PatchLocal("a", req))
		assert.Equal(t, booking.StatusCancelled, b.SelectedBookings()[0].Status)
		assert.False(t, b.PatchLocal("zzz", req))
	})
}

func TestBoard_CreateBooking(t *testing.T) {
	svc := newGatedService()
	b := loadedBoard(t, svc)

	created, err := b.CreateBooking(context.Background(), booking.CreateRequest{
		Name: "Kiran", EventDate: "2025-03-20", EventTime: "10:00", Status: booking.StatusEnquiry,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	b.Select("2025-03-20")
	assert.Len(t, b.SelectedBookings(), 2)

	svc.createErr = &booking.NetworkError{Op: "create", Err: errors.New("refused")}
	_, err = b.CreateBooking(context.Background(), booking.CreateRequest{Name: "Lata", EventDate: "2025-03-20"})
	require.True(t, booking.IsNetworkError(err))
	assert.Len(t, b.SelectedBookings(), 2)
}

func TestBoard_DeleteBooking(t *testing.T) {
	svc := newGatedService()
	b := loadedBoard(t, svc)

	require.NoError(t, b.DeleteBooking(context.Background(), "c"))
	b.Select("2025-03-20")
	assert.Empty(t, b.SelectedBookings())

	svc.deleteErr = &booking.NetworkError{Op: "delete", Err: errors.New("refused")}
	err := b.DeleteBooking(context.Background(), "a")
	require.True(t, booking.IsNetworkError(err))
	b.Select("2025-03-14")
	assert.Len(t, b.SelectedBookings(), 2)

	require.True(t, b.RemoveLocal("a"))
	assert.Len(t, b.SelectedBookings(), 1)
	assert.False(t, b.RemoveLocal("a"))
}

func TestBoard_InvalidFilterIsRejected(t *testing.T) {
	svc := newGatedService()
	b := loadedBoard(t, svc)
	active := booking.Filter{Search: "Asha"}

	done := make(chan error, 1)
	go func() { done <- b.SetFilter(context.Background(), active) }()
	svc.waitStarted(t, 1)
	svc.call(t, 1).reply <- listReply{byDate: marchBookings()}
	require.NoError(t, <-done)

	err := b.SetFilter(context.Background(), booking.Filter{Status: "Bogus"})
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	assert.Equal(t, active, b.Filter())

	svc.mu.Lock()
	assert.Len(t, svc.calls, 2)
	svc.mu.Unlock()

	// Later loads still run with the kept filter.
	go func() { done <- b.Next(context.Background()) }()
	svc.waitStarted(t, 1)
	svc.call(t, 2).reply <- listReply{byDate: booking.ByDate{}}
	require.NoError(t, <-done)
	assert.Equal(t, active, svc.call(t, 2).filter)

	go func() { done <- b.Refresh(context.Background()) }()
	svc.waitStarted(t, 1)
	svc.call(t, 3).reply <- listReply{byDate: booking.ByDate{}}
	require.NoError(t, <-done)
	assert.Equal(t, active, svc.call(t, 3).filter)
	assert.Equal(t, calendar.MonthRef{Year: 2025, Month: time.April}, b.Month())
}
