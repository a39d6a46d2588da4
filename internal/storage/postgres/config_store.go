package postgres

import (
	"context"
	"fmt"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// ConfigStore implements storage.ConfigStore using PostgreSQL. The table
// enforces a single row, so Init is write-once at the database level.
type ConfigStore struct {
	pool *Pool
}

// NewConfigStore creates a new ConfigStore.
func NewConfigStore(pool *Pool) *ConfigStore {
	return &ConfigStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ConfigStore = (*ConfigStore)(nil)

// Init stores the config once. Returns ErrAlreadyInitialized on a second call.
func (s *ConfigStore) Init(ctx context.Context, cfg *domain.ContractConfig) error {
	if cfg == nil || cfg.Minter == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO contract_config (id, minter, name, symbol)
		VALUES (1, $1, $2, $3)
	`

	_, err := s.pool.Exec(ctx, query, cfg.Minter.String(), cfg.Name, cfg.Symbol)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyInitialized
		}
		return fmt.Errorf("init contract config: %w", err)
	}
	return nil
}

// Get retrieves the config. Returns ErrNotFound before Init.
func (s *ConfigStore) Get(ctx context.Context) (*domain.ContractConfig, error) {
	query := `
		SELECT minter, name, symbol
		FROM contract_config
		WHERE id = 1
	`

	var cfg domain.ContractConfig
	var minter string
	err := s.pool.QueryRow(ctx, query).Scan(&minter, &cfg.Name, &cfg.Symbol)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get contract config: %w", err)
	}
	cfg.Minter = domain.Address(minter)
	return &cfg, nil
}
