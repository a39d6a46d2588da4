package storage

import (
	"context"

	"nft-ledger/internal/domain"
)

// Page size bounds for token and grant enumeration.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 30
)

// ClampLimit applies the default and maximum page limits.
func ClampLimit(limit *int) int {
	if limit == nil || *limit <= 0 {
		return DefaultPageLimit
	}
	if *limit > MaxPageLimit {
		return MaxPageLimit
	}
	return *limit
}

// ListFilter bounds one page of a token enumeration. StartAfter is
// exclusive; results are token IDs in strictly ascending lexicographic
// order. A nil Owner enumerates every live token.
type ListFilter struct {
	Owner      *domain.Address
	StartAfter string
	Limit      int
}

// TokenStore provides access to tokens storage.
type TokenStore interface {
	// Insert adds a new token record. Returns ErrAlreadyMinted if token_id
	// exists or was ever burned.
	Insert(ctx context.Context, t *domain.Token) error

	// Get retrieves a live token by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, tokenID string) (*domain.Token, error)

	// SetOwner overwrites the owner and clears the approved spender.
	// Returns ErrNotFound if the token does not exist.
	SetOwner(ctx context.Context, tokenID string, owner domain.Address) error

	// SetApproval overwrites the single-spender approval; nil clears it.
	// Returns ErrNotFound if the token does not exist.
	SetApproval(ctx context.Context, tokenID string, spender *domain.Address) error

	// Remove burns the token. The ID is retired permanently.
	// Returns ErrNotFound if the token does not exist.
	Remove(ctx context.Context, tokenID string) error

	// List returns one page of live token IDs matching the filter.
	List(ctx context.Context, f ListFilter) ([]string, error)

	// Count returns the number of live (minted, non-burned) tokens.
	Count(ctx context.Context) (int, error)
}

// OperatorStore provides access to operator_grants storage.
type OperatorStore interface {
	// Set creates or updates a grant keyed by (owner, operator).
	Set(ctx context.Context, g *domain.OperatorGrant) error

	// Granted reports whether owner has an active grant for operator.
	// Absent grants read as false.
	Granted(ctx context.Context, owner, operator domain.Address) (bool, error)

	// ListByOwner returns one page of operators with an active grant from
	// owner, ascending, excluding startAfter itself.
	ListByOwner(ctx context.Context, owner domain.Address, startAfter string, limit int) ([]domain.Address, error)
}

// ConfigStore provides access to the contract_config singleton.
type ConfigStore interface {
	// Init stores the config once. Returns ErrAlreadyInitialized on a
	// second call.
	Init(ctx context.Context, cfg *domain.ContractConfig) error

	// Get retrieves the config. Returns ErrNotFound before Init.
	Get(ctx context.Context) (*domain.ContractConfig, error)
}

// EventStore provides access to the ledger_events archive.
type EventStore interface {
	// Insert appends one executed-message event.
	Insert(ctx context.Context, e *domain.LedgerEvent) error

	// GetByTokenID retrieves all events for a token, ordered by timestamp ASC.
	GetByTokenID(ctx context.Context, tokenID string) ([]*domain.LedgerEvent, error)
}
