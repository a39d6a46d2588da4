// Package query serves read-only projections over the ledger state.
// Queries require no authorization and never mutate anything.
package query

import (
	"context"
	"fmt"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// Service answers query messages directly from the stores, bypassing the
// execute path entirely.
type Service struct {
	tokens    storage.TokenStore
	operators storage.OperatorStore
	config    storage.ConfigStore
}

// NewService creates a query service over the given stores.
func NewService(tokens storage.TokenStore, operators storage.OperatorStore, config storage.ConfigStore) *Service {
	return &Service{tokens: tokens, operators: operators, config: config}
}

// Query dispatches one query message to its typed handler. The switch is
// exhaustive over the QueryMsg sum type.
func (s *Service) Query(ctx context.Context, msg domain.QueryMsg) (any, error) {
	switch q := msg.(type) {
	case *domain.OwnerOfQuery:
		return s.OwnerOf(ctx, q.TokenID)
	case *domain.NftInfoQuery:
		return s.NftInfo(ctx, q.TokenID)
	case *domain.AllNftInfoQuery:
		return s.AllNftInfo(ctx, q.TokenID)
	case *domain.ApprovedForAllQuery:
		return s.ApprovedForAll(ctx, q.Owner, startAfter(q.StartAfter), q.Limit)
	case *domain.NumTokensQuery:
		return s.NumTokens(ctx)
	case *domain.ContractInfoQuery:
		return s.ContractInfo(ctx)
	case *domain.MinterQuery:
		return s.Minter(ctx)
	case *domain.TokensQuery:
		return s.Tokens(ctx, q.Owner, startAfter(q.StartAfter), q.Limit)
	case *domain.AllTokensQuery:
		return s.AllTokens(ctx, startAfter(q.StartAfter), q.Limit)
	default:
		return nil, fmt.Errorf("query message %T: %w", msg, storage.ErrInvalidInput)
	}
}

// OwnerOf returns the owner and current approved spender of a token.
func (s *Service) OwnerOf(ctx context.Context, tokenID string) (*domain.OwnerOfResponse, error) {
	t, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("owner_of %s: %w", tokenID, err)
	}
	return &domain.OwnerOfResponse{
		Owner:           t.Owner,
		ApprovedSpender: t.ApprovedSpender,
	}, nil
}

// NftInfo returns the token's metadata pointer.
func (s *Service) NftInfo(ctx context.Context, tokenID string) (*domain.NftInfoResponse, error) {
	t, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("nft_info %s: %w", tokenID, err)
	}
	return &domain.NftInfoResponse{TokenURI: t.TokenURI}, nil
}

// AllNftInfo returns ownership and metadata in one read.
func (s *Service) AllNftInfo(ctx context.Context, tokenID string) (*domain.AllNftInfoResponse, error) {
	t, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("all_nft_info %s: %w", tokenID, err)
	}
	return &domain.AllNftInfoResponse{
		Access: domain.OwnerOfResponse{Owner: t.Owner, ApprovedSpender: t.ApprovedSpender},
		Info:   domain.NftInfoResponse{TokenURI: t.TokenURI},
	}, nil
}

// ApprovedForAll returns one page of operators with an active grant from owner.
func (s *Service) ApprovedForAll(ctx context.Context, owner domain.Address, after string, limit *int) (*domain.ApprovedForAllResponse, error) {
	operators, err := s.operators.ListByOwner(ctx, owner, after, storage.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("approved_for_all: %w", err)
	}
	if operators == nil {
		operators = []domain.Address{}
	}
	return &domain.ApprovedForAllResponse{Operators: operators}, nil
}

// NumTokens returns the count of minted, non-burned tokens.
func (s *Service) NumTokens(ctx context.Context) (*domain.NumTokensResponse, error) {
	count, err := s.tokens.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("num_tokens: %w", err)
	}
	return &domain.NumTokensResponse{Count: count}, nil
}

// ContractInfo returns the contract name and symbol.
func (s *Service) ContractInfo(ctx context.Context) (*domain.ContractInfoResponse, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("contract_info: %w", err)
	}
	return &domain.ContractInfoResponse{Name: cfg.Name, Symbol: cfg.Symbol}, nil
}

// Minter returns the configured minter address.
func (s *Service) Minter(ctx context.Context) (*domain.MinterResponse, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("minter: %w", err)
	}
	return &domain.MinterResponse{Minter: cfg.Minter}, nil
}

// Tokens returns one page of token IDs owned by owner, ascending.
func (s *Service) Tokens(ctx context.Context, owner domain.Address, after string, limit *int) (*domain.TokensResponse, error) {
	ids, err := s.tokens.List(ctx, storage.ListFilter{
		Owner:      &owner,
		StartAfter: after,
		Limit:      storage.ClampLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("tokens: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return &domain.TokensResponse{Tokens: ids}, nil
}

// AllTokens returns one page of every live token ID, ascending.
func (s *Service) AllTokens(ctx context.Context, after string, limit *int) (*domain.TokensResponse, error) {
	ids, err := s.tokens.List(ctx, storage.ListFilter{
		StartAfter: after,
		Limit:      storage.ClampLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("all_tokens: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return &domain.TokensResponse{Tokens: ids}, nil
}

func startAfter(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
