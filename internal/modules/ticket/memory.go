package ticket

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skyfare/internal/types"
)

// MemoryStore keeps tickets in process, used with the in-memory flight store.
type MemoryStore struct {
	mu      sync.Mutex
	tickets map[types.ID]*Ticket
	events  []Event
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tickets: make(map[types.ID]*Ticket), now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, t *Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tickets[t.ID]; exists {
		return fmt.Errorf("%w: ticket %s already exists", types.ErrValidation, t.ID)
	}
	s.tickets[t.ID] = t.clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: ticket %s", types.ErrNotFound, id)
	}
	return t.clone(), nil
}

func (s *MemoryStore) ListByFlight(_ context.Context, flightID types.ID) ([]*Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*Ticket{}
	for _, t := range s.tickets {
		if t.FlightID == flightID {
			out = append(out, t.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssuedAt.Equal(out[j].IssuedAt) {
			return out[i].IssuedAt.Before(out[j].IssuedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int, reason string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok || t.Status != from || t.StatusVersion != version {
		return false, nil
	}
	t.Status = to
	t.StatusVersion++
	if to == StatusCancelled {
		at := s.now()
		t.CancelledAt = &at
		if reason != "" {
			t.CancelReason = &reason
		}
	} else {
		t.CancelledAt = nil
		t.CancelReason = nil
	}
	return true, nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := *e
	ev.ID = int64(len(s.events) + 1)
	s.events = append(s.events, ev)
	return nil
}

// Events returns the recorded state events of a ticket in order.
func (s *MemoryStore) Events(id types.ID) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.TicketID == id {
			out = append(out, e)
		}
	}
	return out
}
