// README: Flight repository contract and the in-memory implementation used by the CLI and tests.
package flight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"skyfare/internal/types"
)

// SearchQuery matches flights by exact route and calendar dates.
type SearchQuery struct {
	From      string
	To        string
	Departure time.Time
	Return    *time.Time
}

func (q SearchQuery) matches(f *Flight) bool {
	if !strings.EqualFold(q.From, f.From) || !strings.EqualFold(q.To, f.To) {
		return false
	}
	if !sameDay(q.Departure, f.Departure) {
		return false
	}
	if q.Return == nil || f.Return == nil {
		return q.Return == nil && f.Return == nil
	}
	return sameDay(*q.Return, *f.Return)
}

type Repository interface {
	Add(ctx context.Context, f *Flight) error
	Get(ctx context.Context, id types.ID) (*Flight, error)
	FindByRouteAndDates(ctx context.Context, q SearchQuery) ([]*Flight, error)
	// RecordSale increments the sold seat count, failing with ErrSoldOut at capacity.
	RecordSale(ctx context.Context, id types.ID) (*Flight, error)
	// ReleaseSale gives one sold seat back. It never drops below zero.
	ReleaseSale(ctx context.Context, id types.ID) (*Flight, error)
}

type MemoryStore struct {
	mu      sync.Mutex
	flights map[types.ID]*Flight
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flights: make(map[types.ID]*Flight)}
}

func (s *MemoryStore) Add(_ context.Context, f *Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.flights[f.ID]; exists {
		return fmt.Errorf("%w: flight %s already exists", types.ErrValidation, f.ID)
	}
	s.flights[f.ID] = f.clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("%w: flight %s", types.ErrNotFound, id)
	}
	return f.clone(), nil
}

func (s *MemoryStore) FindByRouteAndDates(_ context.Context, q SearchQuery) ([]*Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Flight
	for _, f := range s.flights {
		if q.matches(f) {
			out = append(out, f.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) RecordSale(_ context.Context, id types.ID) (*Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("%w: flight %s", types.ErrNotFound, id)
	}
	if f.SoldSeats >= f.MaxSeats {
		return nil, ErrSoldOut
	}
	f.SoldSeats++
	return f.clone(), nil
}

func (s *MemoryStore) ReleaseSale(_ context.Context, id types.ID) (*Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("%w: flight %s", types.ErrNotFound, id)
	}
	if f.SoldSeats <= 0 {
		return nil, fmt.Errorf("%w: flight %s has no sold seats", types.ErrValidation, id)
	}
	f.SoldSeats--
	return f.clone(), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
