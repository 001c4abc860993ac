package api

import (
	"context"
	"errors"

	"creditscores/internal/scores"
)

// ErrNotFound reports that no record matches the requested id.
var ErrNotFound = errors.New("credit score not found")

// errNoStore is returned when the service was built without a store.
var errNoStore = errors.New("credit score store unavailable")

// Store abstracts credit score persistence needed by the service.
type Store interface {
	List(ctx context.Context) ([]*scores.Record, error)
	Get(ctx context.Context, id int64) (*scores.Record, error)
	Create(ctx context.Context, score, userID int64) (*scores.Record, error)
	UpdateScore(ctx context.Context, id, score int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// CreditScoreService exposes record operations returning API DTOs.
type CreditScoreService struct {
	store Store
}

// NewCreditScoreService constructs a service around the provided store.
func NewCreditScoreService(store Store) *CreditScoreService {
	if store == nil {
		return nil
	}
	return &CreditScoreService{store: store}
}

func (s *CreditScoreService) ready() error {
	if s == nil || s.store == nil {
		return errNoStore
	}
	return nil
}

// List returns every record in insertion order.
func (s *CreditScoreService) List(ctx context.Context) ([]CreditScore, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromRecords(records), nil
}

// Get fetches one record or returns ErrNotFound.
func (s *CreditScoreService) Get(ctx context.Context, id int64) (*CreditScore, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	dto := FromRecord(rec)
	return &dto, nil
}

// Create stores a new record and returns it with its assigned id.
func (s *CreditScoreService) Create(ctx context.Context, score, userID int64) (*CreditScore, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rec, err := s.store.Create(ctx, score, userID)
	if err != nil {
		return nil, err
	}
	dto := FromRecord(rec)
	return &dto, nil
}

// UpdateScore changes a record's score and returns the affected row count.
func (s *CreditScoreService) UpdateScore(ctx context.Context, id, score int64) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.store.UpdateScore(ctx, id, score)
}

// Delete removes a record and returns the affected row count.
func (s *CreditScoreService) Delete(ctx context.Context, id int64) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.store.Delete(ctx, id)
}

// Count returns the number of stored records.
func (s *CreditScoreService) Count(ctx context.Context) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.store.Count(ctx)
}
