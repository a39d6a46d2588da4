package domain

import (
	"encoding/json"
	"fmt"
)

// QueryMsg is the sum type of all read-only query messages.
type QueryMsg interface {
	isQueryMsg()
	// Kind returns the wire name of the query variant.
	Kind() string
}

// OwnerOfQuery asks for the current owner and approved spender of a token.
type OwnerOfQuery struct {
	TokenID string `json:"token_id"`
}

// NftInfoQuery asks for the token's URI metadata.
type NftInfoQuery struct {
	TokenID string `json:"token_id"`
}

// AllNftInfoQuery combines OwnerOf and NftInfo in one round trip.
type AllNftInfoQuery struct {
	TokenID string `json:"token_id"`
}

// ApprovedForAllQuery lists the operators with an active grant from owner.
type ApprovedForAllQuery struct {
	Owner      Address `json:"owner"`
	StartAfter *string `json:"start_after,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
}

// NumTokensQuery asks for the count of minted, non-burned tokens.
type NumTokensQuery struct{}

// ContractInfoQuery asks for the contract name and symbol.
type ContractInfoQuery struct{}

// MinterQuery asks for the configured minter address.
type MinterQuery struct{}

// TokensQuery enumerates token IDs owned by one address.
type TokensQuery struct {
	Owner      Address `json:"owner"`
	StartAfter *string `json:"start_after,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
}

// AllTokensQuery enumerates every live token ID.
type AllTokensQuery struct {
	StartAfter *string `json:"start_after,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
}

func (*OwnerOfQuery) isQueryMsg()        {}
func (*NftInfoQuery) isQueryMsg()        {}
func (*AllNftInfoQuery) isQueryMsg()     {}
func (*ApprovedForAllQuery) isQueryMsg() {}
func (*NumTokensQuery) isQueryMsg()      {}
func (*ContractInfoQuery) isQueryMsg()   {}
func (*MinterQuery) isQueryMsg()         {}
func (*TokensQuery) isQueryMsg()         {}
func (*AllTokensQuery) isQueryMsg()      {}

func (*OwnerOfQuery) Kind() string        { return "owner_of" }
func (*NftInfoQuery) Kind() string        { return "nft_info" }
func (*AllNftInfoQuery) Kind() string     { return "all_nft_info" }
func (*ApprovedForAllQuery) Kind() string { return "approved_for_all" }
func (*NumTokensQuery) Kind() string      { return "num_tokens" }
func (*ContractInfoQuery) Kind() string   { return "contract_info" }
func (*MinterQuery) Kind() string         { return "minter" }
func (*TokensQuery) Kind() string         { return "tokens" }
func (*AllTokensQuery) Kind() string      { return "all_tokens" }

// UnmarshalQueryMsg decodes a single-key JSON envelope into its typed variant.
func UnmarshalQueryMsg(data []byte) (QueryMsg, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode query envelope: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("query envelope must have exactly one key, got %d", len(envelope))
	}

	for kind, body := range envelope {
		var msg QueryMsg
		switch kind {
		case "owner_of":
			msg = &OwnerOfQuery{}
		case "nft_info":
			msg = &NftInfoQuery{}
		case "all_nft_info":
			msg = &AllNftInfoQuery{}
		case "approved_for_all":
			msg = &ApprovedForAllQuery{}
		case "num_tokens":
			msg = &NumTokensQuery{}
		case "contract_info":
			msg = &ContractInfoQuery{}
		case "minter":
			msg = &MinterQuery{}
		case "tokens":
			msg = &TokensQuery{}
		case "all_tokens":
			msg = &AllTokensQuery{}
		default:
			return nil, fmt.Errorf("unknown query kind %q", kind)
		}
		if err := json.Unmarshal(body, msg); err != nil {
			return nil, fmt.Errorf("decode %s query: %w", kind, err)
		}
		return msg, nil
	}
	return nil, fmt.Errorf("empty query envelope")
}

// OwnerOfResponse reports current ownership of one token.
type OwnerOfResponse struct {
	Owner           Address  `json:"owner"`
	ApprovedSpender *Address `json:"approved_spender,omitempty"`
}

// NftInfoResponse reports the token's metadata pointer.
type NftInfoResponse struct {
	TokenURI *string `json:"token_uri,omitempty"`
}

// AllNftInfoResponse pairs ownership and metadata.
type AllNftInfoResponse struct {
	Access OwnerOfResponse `json:"access"`
	Info   NftInfoResponse `json:"info"`
}

// ApprovedForAllResponse lists active operator grants.
type ApprovedForAllResponse struct {
	Operators []Address `json:"operators"`
}

// NumTokensResponse reports the live token count.
type NumTokensResponse struct {
	Count int `json:"count"`
}

// MinterResponse reports the configured minter.
type MinterResponse struct {
	Minter Address `json:"minter"`
}

// ContractInfoResponse reports the contract identity.
type ContractInfoResponse struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// TokensResponse carries one page of token IDs in ascending order.
type TokensResponse struct {
	Tokens []string `json:"tokens"`
}
