package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nekogravitycat/banquet-calendar/internal/metrics"
	"github.com/nekogravitycat/banquet-calendar/internal/pkg/apperror"
)

type Repository interface {
	List(ctx context.Context) ([]Booking, error)
	Search(ctx context.Context, query string) ([]Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// Update returns the booking echoed by the API, or nil when the API
	// acknowledges without a body.
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

// NetworkError reports that the booking API could not be reached or failed
// on its side. Callers decide whether to apply an optimistic local change.
type NetworkError struct {
	Op         string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("booking api %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("booking api %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the failure onto the status reported to our own callers.
func (e *NetworkError) HTTPStatus() int {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// IsNetworkError reports whether err is, or wraps, a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// ClientConfig configures the HTTP booking repository.
type ClientConfig struct {
	BaseURL  string
	ListPath string // "/api/bookings" unless the deployment serves another collection
	Timeout  time.Duration
	RPS      float64 // zero disables throttling
	Burst    int
}

type httpRepository struct {
	baseURL  string
	listPath string
	client   *http.Client
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewHTTPRepository creates a Repository backed by the remote booking API.
func NewHTTPRepository(cfg ClientConfig, log *zap.Logger) Repository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	listPath := cfg.ListPath
	if listPath == "" {
		listPath = "/api/bookings"
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	return &httpRepository{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		listPath: listPath,
		client:   &http.Client{Timeout: timeout},
		limiter:  limiter,
		log:      log,
	}
}

func (r *httpRepository) List(ctx context.Context) ([]Booking, error) {
	body, err := r.do(ctx, "list", http.MethodGet, r.listPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func (r *httpRepository) Search(ctx context.Context, query string) ([]Booking, error) {
	path := "/api/bookings/search?" + url.Values{"q": {query}}.Encode()
	body, err := r.do(ctx, "search", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func (r *httpRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	body, err := r.do(ctx, "get", http.MethodGet, "/api/bookings/get/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	b, err := decodeOne(body)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (r *httpRepository) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode create booking request failed: %w", err)
	}

	body, err := r.do(ctx, "create", http.MethodPost, "/api/bookings/create", payload)
	if err != nil {
		return nil, err
	}
	b, err := decodeOne(body)
	if err != nil {
		return nil, err
	}
	if b == nil {
		// Without an id the new booking cannot be addressed later.
		return nil, ErrMalformedResponse
	}
	return b, nil
}

func (r *httpRepository) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode update booking request failed: %w", err)
	}

	body, err := r.do(ctx, "update", http.MethodPut, "/api/bookings/update/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	return decodeOne(body)
}

func (r *httpRepository) Delete(ctx context.Context, id string) error {
	_, err := r.do(ctx, "delete", http.MethodDelete, "/api/bookings/delete/"+url.PathEscape(id), nil)
	return err
}

func (r *httpRepository) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s request failed: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(op, "error", time.Since(start))
		r.log.Warn("booking api unreachable", zap.String("op", op), zap.Error(err))
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveUpstream(op, outcome(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		r.log.Warn("booking api failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	case resp.StatusCode >= 400:
		return nil, apperror.Wrap(
			fmt.Errorf("booking api %s: status %d: %s", op, resp.StatusCode, truncate(body, 200)),
			http.StatusBadRequest,
			"booking service rejected the request",
		)
	}

	return body, nil
}

func outcome(status int) string {
	switch {
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return "ok"
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

// envelope covers the {data: ...} and {success, data: ...} response shapes.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeList accepts a raw array, {data: [...]} or {success, data: [...]}.
func decodeList(body []byte) ([]Booking, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrMalformedResponse
	}

	if trimmed[0] == '[' {
		var list []Booking
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, apperror.WrapAs(err, ErrMalformedResponse)
		}
		return list, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, apperror.WrapAs(err, ErrMalformedResponse)
	}
	if env.Success != nil && !*env.Success {
		return nil, apperror.WrapAs(errors.New(env.Message), ErrMalformedResponse)
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrMalformedResponse
	}

	var list []Booking
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, apperror.WrapAs(err, ErrMalformedResponse)
	}
	return list, nil
}

// decodeOne accepts a bare object or one wrapped in data. It returns nil
// without error when the body is an acknowledgement with no booking in it.
func decodeOne(body []byte) (*Booking, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, ErrMalformedResponse
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, apperror.WrapAs(err, ErrMalformedResponse)
	}
	if env.Success != nil && !*env.Success {
		return nil, apperror.WrapAs(errors.New(env.Message), ErrMalformedResponse)
	}

	raw := trimmed
	if data := bytes.TrimSpace(env.Data); len(data) > 0 && data[0] == '{' {
		raw = data
	}

	var b Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, apperror.WrapAs(err, ErrMalformedResponse)
	}
	if b.ID == "" {
		return nil, nil
	}
	return &b, nil
}
