package booking

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeRepository is an in-memory Repository that counts calls.
type fakeRepository struct {
	mu       sync.Mutex
	bookings []Booking
	err      error

	// echo controls whether Update returns the patched booking.
	echo bool

	listCalls   int
	searchQuery string
	created     []CreateRequest
	updated     map[string]UpdateRequest
	deleted     []string
}

func (r *fakeRepository) List(ctx context.Context) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return append([]Booking(nil), r.bookings...), nil
}

func (r *fakeRepository) Search(ctx context.Context, query string) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchQuery = query
	if r.err != nil {
		return nil, r.err
	}
	f := Filter{Search: query}
	var out []Booking
	for _, b := range r.bookings {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.created = append(r.created, req)
	b := Booking{
		ID:        fmt.Sprintf("new-%d", len(r.created)),
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

func (r *fakeRepository) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.updated == nil {
		r.updated = map[string]UpdateRequest{}
	}
	r.updated[id] = req
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			req.Apply(&r.bookings[i])
			if r.echo {
				b := r.bookings[i]
				return &b, nil
			}
			return nil, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return ErrNotFound
}

// memoryCache is an in-memory Cache ignoring expiry.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
