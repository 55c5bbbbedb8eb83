package board

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/booking"
	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
	"github.com/nekogravitycat/banquet-calendar/internal/metrics"
)

// ErrStale is returned by a load whose result was superseded by a newer one.
var ErrStale = errors.New("board: response superseded by a newer request")

// Board is the state behind one open calendar page: the displayed month,
// the active filter, the selected day and the bookings last loaded.
//
// Every reload is tagged with a generation number and cancels the reload
// before it. A result is applied only if its generation is still current,
// so a slow response can never overwrite a newer one.
type Board struct {
	svc    booking.Service
	engine *calendar.Engine
	log    *zap.Logger

	mu         sync.Mutex
	month      calendar.MonthRef
	filter     booking.Filter
	selection  calendar.Selection
	auspicious calendar.AuspiciousSet
	byDate     booking.ByDate
	gen        uint64
	cancel     context.CancelFunc
}

// New creates a board showing start. Call Refresh to load bookings.
func New(svc booking.Service, engine *calendar.Engine, start calendar.MonthRef, log *zap.Logger) *Board {
	start = calendar.Normalize(start.Year, int(start.Month))
	return &Board{
		svc:        svc,
		engine:     engine,
		log:        log,
		month:      start,
		auspicious: calendar.Auspicious(start.Year),
		byDate:     booking.ByDate{},
	}
}

// Month returns the displayed month.
func (b *Board) Month() calendar.MonthRef {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.month
}

// Filter returns the active filter.
func (b *Board) Filter() booking.Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Next moves to the following month and reloads.
func (b *Board) Next(ctx context.Context) error {
	return b.navigate(ctx, func(m calendar.MonthRef) calendar.MonthRef { return m.Next() })
}

// Prev moves to the preceding month and reloads.
func (b *Board) Prev(ctx context.Context) error {
	return b.navigate(ctx, func(m calendar.MonthRef) calendar.MonthRef { return m.Prev() })
}

// Goto jumps to ref and reloads.
func (b *Board) Goto(ctx context.Context, ref calendar.MonthRef) error {
	ref = calendar.Normalize(ref.Year, int(ref.Month))
	return b.navigate(ctx, func(calendar.MonthRef) calendar.MonthRef { return ref })
}

// SetFilter replaces the filter and reloads. An invalid filter is rejected
// and the active one is kept.
func (b *Board) SetFilter(ctx context.Context, f booking.Filter) error {
	if err := f.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	b.filter = f
	gen, loadCtx := b.beginLocked(ctx)
	b.mu.Unlock()

	return b.load(loadCtx, gen, f)
}

// Refresh reloads the current month.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	f := b.filter
	gen, loadCtx := b.beginLocked(ctx)
	b.mu.Unlock()

	return b.load(loadCtx, gen, f)
}

func (b *Board) navigate(ctx context.Context, step func(calendar.MonthRef) calendar.MonthRef) error {
	b.mu.Lock()
	next := step(b.month)
	if next.Year != b.month.Year {
		b.auspicious = calendar.Auspicious(next.Year)
	}
	b.month = next
	f := b.filter
	gen, loadCtx := b.beginLocked(ctx)
	b.mu.Unlock()

	return b.load(loadCtx, gen, f)
}

// beginLocked starts a new generation and cancels the in-flight one.
func (b *Board) beginLocked(ctx context.Context) (uint64, context.Context) {
	if b.cancel != nil {
		b.cancel()
	}
	b.gen++
	loadCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	return b.gen, loadCtx
}

func (b *Board) load(ctx context.Context, gen uint64, f booking.Filter) error {
	byDate, err := b.svc.List(ctx, f)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		metrics.IncStaleResponse()
		b.log.Debug("discarding stale booking response", zap.Uint64("generation", gen), zap.Uint64("current", b.gen))
		return ErrStale
	}

	b.cancel()
	b.cancel = nil

	if err != nil {
		return err
	}
	b.byDate = byDate
	return nil
}

// Select marks key as the selected day, clearing any earlier selection.
func (b *Board) Select(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection.Select(key)
}

// ClearSelection drops the selected day.
func (b *Board) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection.Clear()
}

// Selected returns the selected day.
func (b *Board) Selected() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection.Selected()
}

// SelectedBookings returns the bookings on the selected day.
func (b *Board) SelectedBookings() []booking.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()
	key, ok := b.selection.Selected()
	if !ok {
		return nil
	}
	return append([]booking.Booking(nil), b.byDate[key]...)
}

// View renders the current state through the engine.
func (b *Board) View() calendar.MonthView {
	b.mu.Lock()
	defer b.mu.Unlock()

	selected, _ := b.selection.Selected()
	grid := calendar.BuildGrid(b.month.Year, b.month.Month, b.engine.Options().FirstDay)
	return b.engine.MonthWith(grid, b.auspicious, b.byDate, selected)
}

// CreateBooking sends the new booking to the booking API and adds the
// created booking to the loaded copy when it passes the active filter.
func (b *Board) CreateBooking(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	created, err := b.svc.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if key, ok := created.DateKey(); ok && b.filter.Match(*created) {
		b.byDate[key] = append(b.byDate[key], *created)
	}
	return created, nil
}

// UpdateBooking sends the change to the booking API. On success the echoed
// booking replaces the local copy. On failure nothing local changes and the
// error is returned; the caller may still choose PatchLocal.
func (b *Board) UpdateBooking(ctx context.Context, id string, req booking.UpdateRequest) (*booking.Booking, error) {
	updated, err := b.svc.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.rewriteLocked(id, func(bk *booking.Booking) bool {
		*bk = *updated
		return true
	})
	return updated, nil
}

// DeleteBooking removes the booking remotely and then locally.
func (b *Board) DeleteBooking(ctx context.Context, id string) error {
	if err := b.svc.Delete(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.rewriteLocked(id, func(*booking.Booking) bool { return false })
	return nil
}

// PatchLocal applies req to the loaded copy only. It reports whether the
// booking was found.
func (b *Board) PatchLocal(id string, req booking.UpdateRequest) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rewriteLocked(id, func(bk *booking.Booking) bool {
		req.Apply(bk)
		return true
	})
}

// RemoveLocal drops the booking from the loaded copy only.
func (b *Board) RemoveLocal(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rewriteLocked(id, func(*booking.Booking) bool { return false })
}

// rewriteLocked runs fn on the booking with id and regroups. fn returns
// false to drop the booking.
func (b *Board) rewriteLocked(id string, fn func(*booking.Booking) bool) bool {
	keys := make([]string, 0, len(b.byDate))
	for k := range b.byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	found := false
	var all []booking.Booking
	for _, k := range keys {
		for _, bk := range b.byDate[k] {
			if bk.ID == id && !found {
				found = true
				if !fn(&bk) {
					continue
				}
			}
			all = append(all, bk)
		}
	}

	if found {
		b.byDate = booking.GroupByDate(all, b.filter)
	}
	return found
}
