package memory

import (
	"context"
	"sort"
	"sync"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

type grantKey struct {
	owner    domain.Address
	operator domain.Address
}

// OperatorStore is an in-memory implementation of storage.OperatorStore.
type OperatorStore struct {
	mu   sync.RWMutex
	data map[grantKey]*domain.OperatorGrant
}

// NewOperatorStore creates a new in-memory operator grant store.
func NewOperatorStore() *OperatorStore {
	return &OperatorStore{
		data: make(map[grantKey]*domain.OperatorGrant),
	}
}

// Verify interface compliance at compile time.
var _ storage.OperatorStore = (*OperatorStore)(nil)

// Set creates or updates a grant keyed by (owner, operator).
func (s *OperatorStore) Set(_ context.Context, g *domain.OperatorGrant) error {
	if g == nil || g.Owner == "" || g.Operator == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	grantCopy := *g
	s.data[grantKey{owner: g.Owner, operator: g.Operator}] = &grantCopy
	return nil
}

// Granted reports whether owner has an active grant for operator.
func (s *OperatorStore) Granted(_ context.Context, owner, operator domain.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.data[grantKey{owner: owner, operator: operator}]
	if !exists {
		return false, nil
	}
	return g.Granted, nil
}

// ListByOwner returns one page of operators with an active grant from owner,
// ascending, excluding startAfter itself.
func (s *OperatorStore) ListByOwner(_ context.Context, owner domain.Address, startAfter string, limit int) ([]domain.Address, error) {
	limit = storage.ClampLimit(&limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var operators []domain.Address
	for key, g := range s.data {
		if key.owner != owner || !g.Granted {
			continue
		}
		if startAfter != "" && string(key.operator) <= startAfter {
			continue
		}
		operators = append(operators, key.operator)
	}
	sort.Slice(operators, func(i, j int) bool { return operators[i] < operators[j] })

	if len(operators) > limit {
		operators = operators[:limit]
	}
	return operators, nil
}
