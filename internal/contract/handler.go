package contract

import (
	"context"
	"fmt"
	"time"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// Handler is the state machine dispatching execute messages against the
// token and approval state. Every authorization check runs before any
// mutation, so a failed message leaves no partial writes behind.
type Handler struct {
	tokens    storage.TokenStore
	config    storage.ConfigStore
	approvals *ApprovalRegistry
	now       func() time.Time
}

// NewHandler creates a handler over the given stores.
func NewHandler(tokens storage.TokenStore, operators storage.OperatorStore, config storage.ConfigStore) *Handler {
	return &Handler{
		tokens:    tokens,
		config:    config,
		approvals: NewApprovalRegistry(tokens, operators),
		now:       time.Now,
	}
}

// Approvals exposes the registry for read-side authorization queries.
func (h *Handler) Approvals() *ApprovalRegistry {
	return h.approvals
}

// Execute dispatches one message. The switch is exhaustive over the
// ExecuteMsg sum type; adding a variant without an arm here is a compile
// error at the call sites constructing it.
func (h *Handler) Execute(ctx context.Context, info domain.MessageInfo, msg domain.ExecuteMsg) (*domain.Response, error) {
	switch m := msg.(type) {
	case *domain.MintMsg:
		return h.mint(ctx, info, m)
	case *domain.TransferNftMsg:
		return h.transferNft(ctx, info, m)
	case *domain.SendNftMsg:
		return h.sendNft(ctx, info, m)
	case *domain.ApproveMsg:
		return h.approve(ctx, info, m)
	case *domain.RevokeMsg:
		return h.revoke(ctx, info, m)
	case *domain.ApproveAllMsg:
		return h.approveAll(ctx, info, m)
	case *domain.RevokeAllMsg:
		return h.revokeAll(ctx, info, m)
	case *domain.BurnMsg:
		return h.burn(ctx, info, m)
	default:
		return nil, fmt.Errorf("execute message %T: %w", msg, storage.ErrInvalidInput)
	}
}

func (h *Handler) mint(ctx context.Context, info domain.MessageInfo, m *domain.MintMsg) (*domain.Response, error) {
	if m.TokenID == "" {
		return nil, fmt.Errorf("mint: empty token_id: %w", storage.ErrInvalidInput)
	}
	if err := m.Owner.Validate(); err != nil {
		return nil, fmt.Errorf("mint %s: bad owner: %w", m.TokenID, storage.ErrInvalidInput)
	}

	cfg, err := h.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("mint %s: load config: %w", m.TokenID, err)
	}
	if info.Sender != cfg.Minter {
		return nil, fmt.Errorf("mint %s: sender %s is not minter: %w", m.TokenID, info.Sender, ErrUnauthorized)
	}

	uri := m.TokenURI
	if uri != nil && *uri == "" {
		uri = nil
	}
	token := &domain.Token{
		TokenID:  m.TokenID,
		Owner:    m.Owner,
		TokenURI: uri,
		MintedAt: h.now().UnixMilli(),
	}
	if err := h.tokens.Insert(ctx, token); err != nil {
		return nil, fmt.Errorf("mint %s: %w", m.TokenID, err)
	}

	resp := &domain.Response{}
	resp.AddAttribute("action", "mint")
	resp.AddAttribute("minter", info.Sender.String())
	resp.AddAttribute("token_id", m.TokenID)
	resp.AddAttribute("owner", m.Owner.String())
	return resp, nil
}

func (h *Handler) transferNft(ctx context.Context, info domain.MessageInfo, m *domain.TransferNftMsg) (*domain.Response, error) {
	if err := m.Recipient.Validate(); err != nil {
		return nil, fmt.Errorf("transfer %s: bad recipient: %w", m.TokenID, storage.ErrInvalidInput)
	}

	if err := h.moveToken(ctx, info, m.TokenID, m.Recipient); err != nil {
		return nil, fmt.Errorf("transfer %s: %w", m.TokenID, err)
	}

	resp := &domain.Response{}
	resp.AddAttribute("action", "transfer_nft")
	resp.AddAttribute("sender", info.Sender.String())
	resp.AddAttribute("recipient", m.Recipient.String())
	resp.AddAttribute("token_id", m.TokenID)
	return resp, nil
}

func (h *Handler) sendNft(ctx context.Context, info domain.MessageInfo, m *domain.SendNftMsg) (*domain.Response, error) {
	if err := m.Contract.Validate(); err != nil {
		return nil, fmt.Errorf("send %s: bad contract: %w", m.TokenID, storage.ErrInvalidInput)
	}

	// Encode the receiver hook before touching state so an encoding failure
	// cannot leave the transfer half-applied.
	hook := domain.ReceiveNftMsg{
		Sender:  info.Sender,
		TokenID: m.TokenID,
		Msg:     m.Msg,
	}
	sub, err := hook.IntoSubMsg(m.Contract)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", m.TokenID, err)
	}

	if err := h.moveToken(ctx, info, m.TokenID, m.Contract); err != nil {
		return nil, fmt.Errorf("send %s: %w", m.TokenID, err)
	}

	resp := &domain.Response{
		Messages: []domain.SubMsg{sub},
	}
	resp.AddAttribute("action", "send_nft")
	resp.AddAttribute("sender", info.Sender.String())
	resp.AddAttribute("recipient", m.Contract.String())
	resp.AddAttribute("token_id", m.TokenID)
	return resp, nil
}

// moveToken is the shared transfer path: authorize, then set the new owner.
// SetOwner clears the single-spender approval.
func (h *Handler) moveToken(ctx context.Context, info domain.MessageInfo, tokenID string, recipient domain.Address) error {
	t, err := h.tokens.Get(ctx, tokenID)
	if err != nil {
		return err
	}
	ok, err := h.approvals.IsAuthorized(ctx, t, info.Sender)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("sender %s may not move token: %w", info.Sender, ErrUnauthorized)
	}
	return h.tokens.SetOwner(ctx, tokenID, recipient)
}

func (h *Handler) approve(ctx context.Context, info domain.MessageInfo, m *domain.ApproveMsg) (*domain.Response, error) {
	if err := m.Spender.Validate(); err != nil {
		return nil, fmt.Errorf("approve %s: bad spender: %w", m.TokenID, storage.ErrInvalidInput)
	}
	if err := h.approvals.SetApproval(ctx, m.TokenID, m.Spender, info.Sender); err != nil {
		return nil, err
	}

	resp := &domain.Response{}
	resp.AddAttribute("action", "approve")
	resp.AddAttribute("sender", info.Sender.String())
	resp.AddAttribute("spender", m.Spender.String())
	resp.AddAttribute("token_id", m.TokenID)
	return resp, nil
}

func (h *Handler) revoke(ctx context.Context, info domain.MessageInfo, m *domain.RevokeMsg) (*domain.Response, error) {
	if err := h.approvals.ClearApproval(ctx, m.TokenID, info.Sender); err != nil {
		return nil, err
	}

	resp := &domain.Response{}
	resp.AddAttribute("action", "revoke")
	resp.AddAttribute("sender", info.Sender.String())
	resp.AddAttribute("token_id", m.TokenID)
	return resp, nil
}

func (h *Handler) approveAll(ctx context.Context, info domain.MessageInfo, m *domain.ApproveAllMsg) (*domain.Response, error) {
	if err := m.Operator.Validate(); err != nil {
		return nil, fmt.Errorf("approve_all: bad operator: %w", storage.ErrInvalidInput)
	}
	if err := h.approvals.SetOperator(ctx, info.Sender, m.Operator, true, info.Sender); err != nil {
		return nil, err
	}

	resp := &domain.Response{}
	resp.AddAttribute("action", "approve_all")
	resp.AddAttribute("sender", info.Sender.String())
	resp.AddAttribute("operator", m.Operator.String())
	return resp, nil
}

func (h *Handler) revokeAll(ctx context.Context, info domain.MessageInfo, m *domain.RevokeAllMsg) (*domain.Response, error) {
	if err := m.Operator.Validate(); err != nil {
		return nil, fmt.Errorf("revoke_all: bad operator: %w", storage.ErrInvalidInput)
	}
	if err := h.approvals.SetOperator(ctx, info.Sender, m.Operator, false, info.Sender); err != nil {
		return nil, err
	}

	resp := &domain.Response{}
	resp.AddAttribute("action", "revoke_all")
	resp.AddAttribute("sender", info.Sender.String())
	resp.AddAttribute("operator", m.Operator.String())
	return resp, nil
}

func (h *Handler) burn(ctx context.Context, info domain.MessageInfo, m *domain.BurnMsg) (*domain.Response, error) {
	t, err := h.tokens.Get(ctx, m.TokenID)
	if err != nil {
		return nil, fmt.Errorf("burn %s: %w", m.TokenID, err)
	}
	ok, err := h.approvals.IsAuthorized(ctx, t, info.Sender)
	if err != nil {
		return nil, fmt.Errorf("burn %s: %w", m.TokenID, err)
	}
	if !ok {
		return nil, fmt.Errorf("burn %s: sender %s lacks authority: %w", m.TokenID, info.Sender, ErrUnauthorized)
	}
	if err := h.tokens.Remove(ctx, m.TokenID); err != nil {
		return nil, fmt.Errorf("burn %s: %w", m.TokenID, err)
	}

	resp := &domain.Response{}
	resp.AddAttribute("action", "burn")
	resp.AddAttribute("sender", info.Sender.String())
	resp.AddAttribute("token_id", m.TokenID)
	return resp, nil
}
