package memory

import (
	"context"
	"testing"

	"nft-ledger/internal/domain"
)

func TestOperatorStore_SetAndGranted(t *testing.T) {
	store := NewOperatorStore()
	ctx := context.Background()

	granted, err := store.Granted(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if granted {
		t.Error("absent grant reads as granted")
	}

	grant := &domain.OperatorGrant{Owner: "alice", Operator: "bob", Granted: true, UpdatedAt: 1000}
	if err := store.Set(ctx, grant); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	granted, err = store.Granted(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if !granted {
		t.Error("grant not visible after Set")
	}

	// Revoke overwrites in place
	grant.Granted = false
	if err := store.Set(ctx, grant); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	granted, err = store.Granted(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if granted {
		t.Error("revoked grant still reads as granted")
	}
}

func TestOperatorStore_GrantIsOwnerScoped(t *testing.T) {
	store := NewOperatorStore()
	ctx := context.Background()

	if err := store.Set(ctx, &domain.OperatorGrant{Owner: "alice", Operator: "bob", Granted: true}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	granted, err := store.Granted(ctx, "carol", "bob")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if granted {
		t.Error("grant leaked across owners")
	}
}

func TestOperatorStore_ListByOwner(t *testing.T) {
	store := NewOperatorStore()
	ctx := context.Background()

	grants := []*domain.OperatorGrant{
		{Owner: "alice", Operator: "bob", Granted: true},
		{Owner: "alice", Operator: "carol", Granted: true},
		{Owner: "alice", Operator: "dave", Granted: false},
		{Owner: "eve", Operator: "frank", Granted: true},
	}
	for _, g := range grants {
		if err := store.Set(ctx, g); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	operators, err := store.ListByOwner(ctx, "alice", "", 30)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(operators) != 2 || operators[0] != "bob" || operators[1] != "carol" {
		t.Errorf("got %v, want [bob carol]", operators)
	}

	// Exclusive start_after
	operators, err = store.ListByOwner(ctx, "alice", "bob", 30)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(operators) != 1 || operators[0] != "carol" {
		t.Errorf("got %v, want [carol]", operators)
	}
}
