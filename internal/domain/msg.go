package domain

import (
	"encoding/json"
	"fmt"
)

// MessageInfo carries the authenticated context of the in-flight message.
// Envelope verification happens in the host; by the time a message reaches
// the handler the sender identity is settled.
type MessageInfo struct {
	Sender Address `json:"sender"`
}

// ExecuteMsg is the sum type of all state-mutating messages. Exactly one
// variant per message kind; the handler dispatches with an exhaustive type
// switch.
type ExecuteMsg interface {
	isExecuteMsg()
	// Kind returns the wire name of the message variant.
	Kind() string
}

// MintMsg creates a new token record. Minter only.
type MintMsg struct {
	TokenID  string  `json:"token_id"`
	Owner    Address `json:"owner"`
	TokenURI *string `json:"token_uri,omitempty"`
}

// TransferNftMsg moves ownership of a token to recipient.
type TransferNftMsg struct {
	TokenID   string  `json:"token_id"`
	Recipient Address `json:"recipient"`
}

// SendNftMsg transfers a token to a contract and notifies it with a
// receiver-hook message carrying Msg.
type SendNftMsg struct {
	TokenID  string          `json:"token_id"`
	Contract Address         `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

// ApproveMsg grants a single spender transfer/burn authority over one token.
type ApproveMsg struct {
	TokenID string  `json:"token_id"`
	Spender Address `json:"spender"`
}

// RevokeMsg clears the single-spender approval on one token.
type RevokeMsg struct {
	TokenID string `json:"token_id"`
}

// ApproveAllMsg grants an operator blanket authority over all of the
// sender's tokens.
type ApproveAllMsg struct {
	Operator Address `json:"operator"`
}

// RevokeAllMsg withdraws a blanket operator grant.
type RevokeAllMsg struct {
	Operator Address `json:"operator"`
}

// BurnMsg destroys a token record permanently.
type BurnMsg struct {
	TokenID string `json:"token_id"`
}

func (*MintMsg) isExecuteMsg()        {}
func (*TransferNftMsg) isExecuteMsg() {}
func (*SendNftMsg) isExecuteMsg()     {}
func (*ApproveMsg) isExecuteMsg()     {}
func (*RevokeMsg) isExecuteMsg()      {}
func (*ApproveAllMsg) isExecuteMsg()  {}
func (*RevokeAllMsg) isExecuteMsg()   {}
func (*BurnMsg) isExecuteMsg()        {}

func (*MintMsg) Kind() string        { return "mint" }
func (*TransferNftMsg) Kind() string { return "transfer_nft" }
func (*SendNftMsg) Kind() string     { return "send_nft" }
func (*ApproveMsg) Kind() string     { return "approve" }
func (*RevokeMsg) Kind() string      { return "revoke" }
func (*ApproveAllMsg) Kind() string  { return "approve_all" }
func (*RevokeAllMsg) Kind() string   { return "revoke_all" }
func (*BurnMsg) Kind() string        { return "burn" }

// UnmarshalExecuteMsg decodes a single-key JSON envelope such as
// {"transfer_nft":{"token_id":"a","recipient":"..."}} into its typed variant.
func UnmarshalExecuteMsg(data []byte) (ExecuteMsg, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode execute envelope: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("execute envelope must have exactly one key, got %d", len(envelope))
	}

	for kind, body := range envelope {
		var msg ExecuteMsg
		switch kind {
		case "mint":
			msg = &MintMsg{}
		case "transfer_nft":
			msg = &TransferNftMsg{}
		case "send_nft":
			msg = &SendNftMsg{}
		case "approve":
			msg = &ApproveMsg{}
		case "revoke":
			msg = &RevokeMsg{}
		case "approve_all":
			msg = &ApproveAllMsg{}
		case "revoke_all":
			msg = &RevokeAllMsg{}
		case "burn":
			msg = &BurnMsg{}
		default:
			return nil, fmt.Errorf("unknown execute message kind %q", kind)
		}
		if err := json.Unmarshal(body, msg); err != nil {
			return nil, fmt.Errorf("decode %s message: %w", kind, err)
		}
		return msg, nil
	}
	return nil, fmt.Errorf("empty execute envelope")
}

// MarshalExecuteMsg encodes a message back into its single-key envelope.
func MarshalExecuteMsg(msg ExecuteMsg) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", msg.Kind(), err)
	}
	return json.Marshal(map[string]json.RawMessage{msg.Kind(): body})
}
