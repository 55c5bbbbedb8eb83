package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nekogravitycat/banquet-calendar/internal/calendar"
)

// ErrNotExported is returned when no snapshot exists for a month.
var ErrNotExported = errors.New("export: month has no snapshot")

// Store writes rendered month snapshots under a base directory, one
// PNG per month at <base>/<year>/<month>.png.
type Store struct {
	basePath string
}

// NewStore creates the base directory if needed.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Path returns where the snapshot of m is stored.
func (s *Store) Path(m calendar.MonthRef) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%04d", m.Year), fmt.Sprintf("%02d.png", int(m.Month)))
}

// SaveMonth renders view and replaces any earlier snapshot of the same
// month. The file is written to a temporary name first and renamed, so a
// reader never sees a partial image.
func (s *Store) SaveMonth(ctx context.Context, view calendar.MonthView, vp calendar.ViewportInfo) (string, error) {
	var buf bytes.Buffer
	if err := calendar.RenderPNG(&buf, view, vp); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := s.Path(view.Month)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, &buf); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return path, nil
}

// Open returns the stored snapshot of m.
func (s *Store) Open(m calendar.MonthRef) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(m))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExported
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	return f, nil
}

// Remove deletes the snapshot of m. A missing snapshot is not an error.
func (s *Store) Remove(m calendar.MonthRef) error {
	if err := os.Remove(s.Path(m)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
