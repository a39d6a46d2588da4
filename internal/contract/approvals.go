package contract

import (
	"context"
	"fmt"
	"time"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// ApprovalRegistry answers authorization queries and mutates approval state.
// Single-spender approvals live on the token record; blanket operator grants
// live in the operator store, keyed by owner identity.
type ApprovalRegistry struct {
	tokens    storage.TokenStore
	operators storage.OperatorStore
	now       func() time.Time
}

// NewApprovalRegistry creates a registry over the given stores.
func NewApprovalRegistry(tokens storage.TokenStore, operators storage.OperatorStore) *ApprovalRegistry {
	return &ApprovalRegistry{
		tokens:    tokens,
		operators: operators,
		now:       time.Now,
	}
}

// SetApproval grants spender single-token authority. Only the current owner
// may grant; any prior approval is overwritten.
func (r *ApprovalRegistry) SetApproval(ctx context.Context, tokenID string, spender domain.Address, caller domain.Address) error {
	t, err := r.tokens.Get(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("approve %s: %w", tokenID, err)
	}
	if t.Owner != caller {
		return fmt.Errorf("approve %s: caller %s is not owner: %w", tokenID, caller, ErrUnauthorized)
	}
	if err := r.tokens.SetApproval(ctx, tokenID, &spender); err != nil {
		return fmt.Errorf("approve %s: %w", tokenID, err)
	}
	return nil
}

// ClearApproval removes the single-spender approval. Only the current owner
// may clear; clearing an already-clear approval is a no-op.
func (r *ApprovalRegistry) ClearApproval(ctx context.Context, tokenID string, caller domain.Address) error {
	t, err := r.tokens.Get(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("revoke %s: %w", tokenID, err)
	}
	if t.Owner != caller {
		return fmt.Errorf("revoke %s: caller %s is not owner: %w", tokenID, caller, ErrUnauthorized)
	}
	if err := r.tokens.SetApproval(ctx, tokenID, nil); err != nil {
		return fmt.Errorf("revoke %s: %w", tokenID, err)
	}
	return nil
}

// SetOperator creates or updates a blanket grant from owner to operator.
// Only the owner themselves may change their grants.
func (r *ApprovalRegistry) SetOperator(ctx context.Context, owner, operator domain.Address, granted bool, caller domain.Address) error {
	if caller != owner {
		return fmt.Errorf("set operator: caller %s is not grant owner: %w", caller, ErrUnauthorized)
	}
	grant := &domain.OperatorGrant{
		Owner:     owner,
		Operator:  operator,
		Granted:   granted,
		UpdatedAt: r.now().UnixMilli(),
	}
	if err := r.operators.Set(ctx, grant); err != nil {
		return fmt.Errorf("set operator: %w", err)
	}
	return nil
}

// IsAuthorized reports whether caller may transfer or burn the token:
// owner, approved spender, or an operator with a blanket grant from the owner.
func (r *ApprovalRegistry) IsAuthorized(ctx context.Context, t *domain.Token, caller domain.Address) (bool, error) {
	if t.Owner == caller {
		return true, nil
	}
	if t.ApprovedSpender != nil && *t.ApprovedSpender == caller {
		return true, nil
	}
	granted, err := r.operators.Granted(ctx, t.Owner, caller)
	if err != nil {
		return false, fmt.Errorf("check operator grant: %w", err)
	}
	return granted, nil
}
