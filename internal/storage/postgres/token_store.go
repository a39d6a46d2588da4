package postgres

import (
	"context"
	"fmt"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// TokenStore implements storage.TokenStore using PostgreSQL. Burned tokens
// keep their row with burned=TRUE so a token_id can never be minted twice.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

// Insert adds a new token record. Returns ErrAlreadyMinted if token_id
// exists or was ever burned.
func (s *TokenStore) Insert(ctx context.Context, t *domain.Token) error {
	if t == nil || t.TokenID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO tokens (token_id, owner, approved_spender, token_uri, burned, minted_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`

	var spender *string
	if t.ApprovedSpender != nil {
		v := t.ApprovedSpender.String()
		spender = &v
	}

	_, err := s.pool.Exec(ctx, query,
		t.TokenID,
		t.Owner.String(),
		spender,
		t.TokenURI,
		t.MintedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyMinted
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// Get retrieves a live token by ID. Returns ErrNotFound if absent or burned.
func (s *TokenStore) Get(ctx context.Context, tokenID string) (*domain.Token, error) {
	query := `
		SELECT token_id, owner, approved_spender, token_uri, minted_at
		FROM tokens
		WHERE token_id = $1 AND NOT burned
	`

	row := s.pool.QueryRow(ctx, query, tokenID)

	var t domain.Token
	var owner string
	var spender *string

	err := row.Scan(&t.TokenID, &owner, &spender, &t.TokenURI, &t.MintedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}

	t.Owner = domain.Address(owner)
	if spender != nil {
		a := domain.Address(*spender)
		t.ApprovedSpender = &a
	}
	return &t, nil
}

// SetOwner overwrites the owner and clears the approved spender.
func (s *TokenStore) SetOwner(ctx context.Context, tokenID string, owner domain.Address) error {
	query := `
		UPDATE tokens
		SET owner = $2, approved_spender = NULL
		WHERE token_id = $1 AND NOT burned
	`

	tag, err := s.pool.Exec(ctx, query, tokenID, owner.String())
	if err != nil {
		return fmt.Errorf("set token owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetApproval overwrites the single-spender approval; nil clears it.
func (s *TokenStore) SetApproval(ctx context.Context, tokenID string, spender *domain.Address) error {
	query := `
		UPDATE tokens
		SET approved_spender = $2
		WHERE token_id = $1 AND NOT burned
	`

	var value *string
	if spender != nil {
		v := spender.String()
		value = &v
	}

	tag, err := s.pool.Exec(ctx, query, tokenID, value)
	if err != nil {
		return fmt.Errorf("set token approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Remove burns the token. The row stays behind with burned=TRUE so the ID
// is retired permanently.
func (s *TokenStore) Remove(ctx context.Context, tokenID string) error {
	query := `
		UPDATE tokens
		SET burned = TRUE, approved_spender = NULL, owner = ''
		WHERE token_id = $1 AND NOT burned
	`

	tag, err := s.pool.Exec(ctx, query, tokenID)
	if err != nil {
		return fmt.Errorf("burn token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List returns one page of live token IDs matching the filter,
// in strictly ascending lexicographic order.
func (s *TokenStore) List(ctx context.Context, f storage.ListFilter) ([]string, error) {
	limit := storage.ClampLimit(&f.Limit)

	query := `
		SELECT token_id
		FROM tokens
		WHERE NOT burned AND token_id > $1
	`
	args := []any{f.StartAfter}

	if f.Owner != nil {
		query += ` AND owner = $2`
		args = append(args, f.Owner.String())
	}
	query += fmt.Sprintf(` ORDER BY token_id ASC LIMIT %d`, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan token row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token rows: %w", err)
	}
	return ids, nil
}

// Count returns the number of live tokens.
func (s *TokenStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tokens WHERE NOT burned`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return count, nil
}
