package booking

import (
	"context"
	"sort"
	"strings"
)

type Service interface {
	// List returns every booking passing filter, grouped by date.
	List(ctx context.Context, filter Filter) (ByDate, error)
	ForDate(ctx context.Context, key string, filter Filter) ([]Booking, error)
	Search(ctx context.Context, query string) ([]Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)

	// Sorted returns every booking passing filter ordered by date and time.
	// Bookings without a usable date are left out.
	Sorted(ctx context.Context, filter Filter) ([]Booking, error)
	// Page returns one page of Sorted together with the total count.
	Page(ctx context.Context, filter Filter, page, pageSize int) ([]Booking, int, error)

	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter Filter) (ByDate, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByDate(bookings, filter), nil
}

func (s *service) ForDate(ctx context.Context, key string, filter Filter) ([]Booking, error) {
	canonical, ok := ParseDateKey(key)
	if !ok || canonical != key {
		return nil, ErrInvalidDate
	}

	grouped, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return grouped[key], nil
}

func (s *service) Search(ctx context.Context, query string) ([]Booking, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Sorted(ctx context.Context, filter Filter) ([]Booking, error) {
	grouped, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Booking
	for _, k := range keys {
		day := append([]Booking(nil), grouped[k]...)
		sort.SliceStable(day, func(i, j int) bool {
			return timeSortKey(day[i]) < timeSortKey(day[j])
		})
		out = append(out, day...)
	}
	return out, nil
}

// timeSortKey orders bookings with no time last within their day.
func timeSortKey(b Booking) int {
	tod := b.TimeOfDay()
	h, ok := LeadingInt(tod)
	if !ok {
		return 24 * 60
	}
	m := 0
	if _, rest, found := strings.Cut(tod, ":"); found {
		m, _ = LeadingInt(rest)
	}
	return h*60 + m
}

func (s *service) Page(ctx context.Context, filter Filter, page, pageSize int) ([]Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	all, err := s.Sorted(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, len(all), nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], len(all), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrInvalidInput
	}

	key, ok := ParseDateKey(req.EventDate)
	if !ok {
		return nil, ErrInvalidDate
	}
	req.EventDate = key

	if req.Status == "" {
		req.Status = StatusEnquiry
	} else {
		st, ok := ParseStatus(string(req.Status))
		if !ok {
			return nil, ErrInvalidStatus
		}
		req.Status = st
	}

	return s.repo.Create(ctx, req)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	if strings.TrimSpace(id) == "" || req.Empty() {
		return nil, ErrInvalidInput
	}
	if req.Status != nil {
		st, ok := ParseStatus(string(*req.Status))
		if !ok {
			return nil, ErrInvalidStatus
		}
		req.Status = &st
	}
	if req.EventDate != nil {
		key, ok := ParseDateKey(*req.EventDate)
		if !ok {
			return nil, ErrInvalidDate
		}
		req.EventDate = &key
	}

	b, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}

	// The API acknowledged without echoing the booking.
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

