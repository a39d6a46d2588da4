package memory

import (
	"context"
	"sort"
	"sync"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// EventStore is an in-memory implementation of storage.EventStore.
type EventStore struct {
	mu   sync.RWMutex
	data []*domain.LedgerEvent
}

// NewEventStore creates a new in-memory event archive.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// Verify interface compliance at compile time.
var _ storage.EventStore = (*EventStore)(nil)

// Insert appends one executed-message event.
func (s *EventStore) Insert(_ context.Context, e *domain.LedgerEvent) error {
	if e == nil || e.Kind == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	eventCopy := *e
	s.data = append(s.data, &eventCopy)
	return nil
}

// GetByTokenID retrieves all events for a token, ordered by timestamp ASC.
func (s *EventStore) GetByTokenID(_ context.Context, tokenID string) ([]*domain.LedgerEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.LedgerEvent
	for _, e := range s.data {
		if e.TokenID == tokenID {
			eventCopy := *e
			result = append(result, &eventCopy)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})

	return result, nil
}
