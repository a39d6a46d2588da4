package memory

import (
	"context"
	"sync"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// ConfigStore is an in-memory implementation of storage.ConfigStore.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *domain.ContractConfig
}

// NewConfigStore creates a new in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Verify interface compliance at compile time.
var _ storage.ConfigStore = (*ConfigStore)(nil)

// Init stores the config once. Returns ErrAlreadyInitialized on a second call.
func (s *ConfigStore) Init(_ context.Context, cfg *domain.ContractConfig) error {
	if cfg == nil || cfg.Minter == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg != nil {
		return storage.ErrAlreadyInitialized
	}
	cfgCopy := *cfg
	s.cfg = &cfgCopy
	return nil
}

// Get retrieves the config. Returns ErrNotFound before Init.
func (s *ConfigStore) Get(_ context.Context) (*domain.ContractConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg == nil {
		return nil, storage.ErrNotFound
	}
	cfgCopy := *s.cfg
	return &cfgCopy, nil
}
