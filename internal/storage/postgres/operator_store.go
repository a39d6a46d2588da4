package postgres

import (
	"context"
	"fmt"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// OperatorStore implements storage.OperatorStore using PostgreSQL.
type OperatorStore struct {
	pool *Pool
}

// NewOperatorStore creates a new OperatorStore.
func NewOperatorStore(pool *Pool) *OperatorStore {
	return &OperatorStore{pool: pool}
}

// Compile-time interface check.
var _ storage.OperatorStore = (*OperatorStore)(nil)

// Set creates or updates a grant keyed by (owner, operator).
func (s *OperatorStore) Set(ctx context.Context, g *domain.OperatorGrant) error {
	if g == nil || g.Owner == "" || g.Operator == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO operator_grants (owner, operator, granted, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner, operator)
		DO UPDATE SET granted = EXCLUDED.granted, updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		g.Owner.String(),
		g.Operator.String(),
		g.Granted,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("set operator grant: %w", err)
	}
	return nil
}

// Granted reports whether owner has an active grant for operator.
func (s *OperatorStore) Granted(ctx context.Context, owner, operator domain.Address) (bool, error) {
	query := `
		SELECT granted
		FROM operator_grants
		WHERE owner = $1 AND operator = $2
	`

	var granted bool
	err := s.pool.QueryRow(ctx, query, owner.String(), operator.String()).Scan(&granted)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("get operator grant: %w", err)
	}
	return granted, nil
}

// ListByOwner returns one page of operators with an active grant from owner,
// ascending, excluding startAfter itself.
func (s *OperatorStore) ListByOwner(ctx context.Context, owner domain.Address, startAfter string, limit int) ([]domain.Address, error) {
	limit = storage.ClampLimit(&limit)

	query := fmt.Sprintf(`
		SELECT operator
		FROM operator_grants
		WHERE owner = $1 AND granted AND operator > $2
		ORDER BY operator ASC
		LIMIT %d
	`, limit)

	rows, err := s.pool.Query(ctx, query, owner.String(), startAfter)
	if err != nil {
		return nil, fmt.Errorf("list operator grants: %w", err)
	}
	defer rows.Close()

	var operators []domain.Address
	for rows.Next() {
		var op string
		if err := rows.Scan(&op); err != nil {
			return nil, fmt.Errorf("scan operator row: %w", err)
		}
		operators = append(operators, domain.Address(op))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operator rows: %w", err)
	}
	return operators, nil
}
