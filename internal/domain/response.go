package domain

import (
	"encoding/json"
	"fmt"
)

// Attribute is one key/value pair emitted with an executed message.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SubMsg is an outbound message addressed to another contract, scheduled by
// the host after the current message's writes commit. The core never awaits
// its delivery or result.
type SubMsg struct {
	Contract Address         `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

// Response is the successful outcome of one executed message: event
// attributes for the audit trail plus any outbound messages.
type Response struct {
	Attributes []Attribute `json:"attributes,omitempty"`
	Messages   []SubMsg    `json:"messages,omitempty"`
}

// AddAttribute appends one event attribute.
func (r *Response) AddAttribute(key, value string) {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
}

// Attribute returns the value for key, or "" if absent.
func (r *Response) Attribute(key string) string {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// ReceiveNftMsg is the receiver-hook payload delivered to a contract that
// was sent a token via SendNft.
type ReceiveNftMsg struct {
	Sender  Address         `json:"sender"`
	TokenID string          `json:"token_id"`
	Msg     json.RawMessage `json:"msg"`
}

// IntoSubMsg wraps the hook in its wire envelope addressed to contract.
func (m ReceiveNftMsg) IntoSubMsg(contract Address) (SubMsg, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return SubMsg{}, fmt.Errorf("encode receive hook: %w", err)
	}
	wrapped, err := json.Marshal(map[string]json.RawMessage{"receive_nft": body})
	if err != nil {
		return SubMsg{}, fmt.Errorf("encode receive hook envelope: %w", err)
	}
	return SubMsg{Contract: contract, Msg: wrapped}, nil
}

// LedgerEvent is one archived record of a successfully executed message.
// Corresponds to the ledger_events table in ClickHouse.
type LedgerEvent struct {
	Kind        string // message kind (mint, transfer_nft, ...)
	TokenID     string // empty for approve_all / revoke_all
	Sender      Address
	Recipient   Address // new owner / spender / operator, empty when not applicable
	Attributes  string  // JSON-encoded response attributes
	TimestampMs int64   // Unix timestamp in milliseconds
}
