package memory

import (
	"context"
	"sort"
	"sync"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// TokenStore is an in-memory implementation of storage.TokenStore.
type TokenStore struct {
	mu     sync.RWMutex
	data   map[string]*domain.Token // keyed by token_id, live tokens only
	burned map[string]struct{}      // retired token_ids, never reusable
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		data:   make(map[string]*domain.Token),
		burned: make(map[string]struct{}),
	}
}

// Verify interface compliance at compile time.
var _ storage.TokenStore = (*TokenStore)(nil)

// Insert adds a new token record. Returns ErrAlreadyMinted if token_id
// exists or was ever burned.
func (s *TokenStore) Insert(_ context.Context, t *domain.Token) error {
	if t == nil || t.TokenID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.TokenID]; exists {
		return storage.ErrAlreadyMinted
	}
	if _, wasBurned := s.burned[t.TokenID]; wasBurned {
		return storage.ErrAlreadyMinted
	}

	// Store a copy to prevent external mutation
	tokenCopy := *t
	s.data[t.TokenID] = &tokenCopy
	return nil
}

// Get retrieves a live token by ID. Returns ErrNotFound if absent.
func (s *TokenStore) Get(_ context.Context, tokenID string) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[tokenID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	tokenCopy := *t
	return &tokenCopy, nil
}

// SetOwner overwrites the owner and clears the approved spender.
func (s *TokenStore) SetOwner(_ context.Context, tokenID string, owner domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.data[tokenID]
	if !exists {
		return storage.ErrNotFound
	}

	t.Owner = owner
	t.ApprovedSpender = nil
	return nil
}

// SetApproval overwrites the single-spender approval; nil clears it.
func (s *TokenStore) SetApproval(_ context.Context, tokenID string, spender *domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.data[tokenID]
	if !exists {
		return storage.ErrNotFound
	}

	if spender == nil {
		t.ApprovedSpender = nil
		return nil
	}
	spenderCopy := *spender
	t.ApprovedSpender = &spenderCopy
	return nil
}

// Remove burns the token. The ID is retired permanently.
func (s *TokenStore) Remove(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[tokenID]; !exists {
		return storage.ErrNotFound
	}

	delete(s.data, tokenID)
	s.burned[tokenID] = struct{}{}
	return nil
}

// List returns one page of live token IDs matching the filter,
// in strictly ascending lexicographic order.
func (s *TokenStore) List(_ context.Context, f storage.ListFilter) ([]string, error) {
	limit := storage.ClampLimit(&f.Limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id, t := range s.data {
		if f.Owner != nil && t.Owner != *f.Owner {
			continue
		}
		if f.StartAfter != "" && id <= f.StartAfter {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Count returns the number of live tokens.
func (s *TokenStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}
