package domain

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalExecuteMsg(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"mint", `{"mint":{"token_id":"nft1","owner":"abc","token_uri":"ipfs://x"}}`, "mint"},
		{"transfer", `{"transfer_nft":{"token_id":"nft1","recipient":"abc"}}`, "transfer_nft"},
		{"send", `{"send_nft":{"token_id":"nft1","contract":"abc","msg":{"k":1}}}`, "send_nft"},
		{"approve", `{"approve":{"token_id":"nft1","spender":"abc"}}`, "approve"},
		{"revoke", `{"revoke":{"token_id":"nft1"}}`, "revoke"},
		{"approve_all", `{"approve_all":{"operator":"abc"}}`, "approve_all"},
		{"revoke_all", `{"revoke_all":{"operator":"abc"}}`, "revoke_all"},
		{"burn", `{"burn":{"token_id":"nft1"}}`, "burn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := UnmarshalExecuteMsg([]byte(tt.json))
			if err != nil {
				t.Fatalf("UnmarshalExecuteMsg failed: %v", err)
			}
			if msg.Kind() != tt.want {
				t.Errorf("Kind mismatch: got %s, want %s", msg.Kind(), tt.want)
			}
		})
	}
}

func TestUnmarshalExecuteMsg_Fields(t *testing.T) {
	msg, err := UnmarshalExecuteMsg([]byte(`{"transfer_nft":{"token_id":"nft1","recipient":"abc"}}`))
	if err != nil {
		t.Fatalf("UnmarshalExecuteMsg failed: %v", err)
	}
	transfer, ok := msg.(*TransferNftMsg)
	if !ok {
		t.Fatalf("expected *TransferNftMsg, got %T", msg)
	}
	if transfer.TokenID != "nft1" || transfer.Recipient != "abc" {
		t.Errorf("unexpected fields: %+v", transfer)
	}
}

func TestUnmarshalExecuteMsg_Rejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"unknown kind", `{"teleport_nft":{"token_id":"nft1"}}`},
		{"two keys", `{"burn":{"token_id":"a"},"revoke":{"token_id":"a"}}`},
		{"empty envelope", `{}`},
		{"not an object", `"burn"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalExecuteMsg([]byte(tt.json)); err == nil {
				t.Errorf("UnmarshalExecuteMsg(%s) succeeded, want error", tt.json)
			}
		})
	}
}

func TestMarshalExecuteMsg_RoundTrip(t *testing.T) {
	original := &MintMsg{TokenID: "nft1", Owner: "abc"}
	data, err := MarshalExecuteMsg(original)
	if err != nil {
		t.Fatalf("MarshalExecuteMsg failed: %v", err)
	}

	decoded, err := UnmarshalExecuteMsg(data)
	if err != nil {
		t.Fatalf("UnmarshalExecuteMsg failed: %v", err)
	}
	mint, ok := decoded.(*MintMsg)
	if !ok {
		t.Fatalf("expected *MintMsg, got %T", decoded)
	}
	if mint.TokenID != original.TokenID || mint.Owner != original.Owner {
		t.Errorf("round trip mismatch: %+v", mint)
	}
}

func TestUnmarshalQueryMsg(t *testing.T) {
	msg, err := UnmarshalQueryMsg([]byte(`{"tokens":{"owner":"abc","start_after":"nft1","limit":5}}`))
	if err != nil {
		t.Fatalf("UnmarshalQueryMsg failed: %v", err)
	}
	q, ok := msg.(*TokensQuery)
	if !ok {
		t.Fatalf("expected *TokensQuery, got %T", msg)
	}
	if q.Owner != "abc" || *q.StartAfter != "nft1" || *q.Limit != 5 {
		t.Errorf("unexpected fields: %+v", q)
	}

	if _, err := UnmarshalQueryMsg([]byte(`{"owner_off":{}}`)); err == nil {
		t.Error("unknown query kind accepted")
	}
}

func TestReceiveNftMsg_IntoSubMsg(t *testing.T) {
	hook := ReceiveNftMsg{
		Sender:  "sender",
		TokenID: "nft1",
		Msg:     json.RawMessage(`{"price":10}`),
	}

	sub, err := hook.IntoSubMsg("target-contract")
	if err != nil {
		t.Fatalf("IntoSubMsg failed: %v", err)
	}
	if sub.Contract != "target-contract" {
		t.Errorf("Contract mismatch: got %s", sub.Contract)
	}

	var envelope map[string]ReceiveNftMsg
	if err := json.Unmarshal(sub.Msg, &envelope); err != nil {
		t.Fatalf("decode hook envelope: %v", err)
	}
	inner, ok := envelope["receive_nft"]
	if !ok {
		t.Fatal("missing receive_nft key")
	}
	if inner.TokenID != "nft1" || inner.Sender != "sender" {
		t.Errorf("unexpected hook fields: %+v", inner)
	}
	if string(inner.Msg) != `{"price":10}` {
		t.Errorf("payload mismatch: %s", inner.Msg)
	}
}
