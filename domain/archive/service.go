package archive

import (
	"context"
	"errors"
	"time"

	"photorank/domain/ranking"
)

// Common errors for archive operations.
var (
	ErrRecordNotFound = errors.New("archived session not found")
	ErrEmptyResults   = errors.New("results have no ranked images")
)

// DefaultRecentLimit is used when a non-positive limit is requested.
const DefaultRecentLimit = 20

// Service provides business logic for the session archive.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new archive service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Save stores the results of a completed session.
// A zero completedAt is stamped with the current time.
func (s *Service) Save(ctx context.Context, id, folder string, res ranking.Results, completedAt time.Time) (*Record, error) {
	if res.IsEmpty() {
		return nil, ErrEmptyResults
	}
	if completedAt.IsZero() {
		completedAt = s.now()
	}

	record := NewRecord(id, folder, res, completedAt.UTC())
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get retrieves an archived session by ID.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

// ListRecent retrieves recent sessions, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.repo.FindRecent(ctx, limit)
}

// Delete removes an archived session.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
