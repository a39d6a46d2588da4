package memory

import (
	"context"
	"errors"
	"testing"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

func TestTokenStore_InsertAndGet(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	uri := "ipfs://meta"
	token := &domain.Token{
		TokenID:  "nft1",
		Owner:    "alice",
		TokenURI: &uri,
		MintedAt: 1704067200000,
	}

	if err := store.Insert(ctx, token); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.Get(ctx, "nft1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Owner != "alice" {
		t.Errorf("Owner mismatch: got %s, want alice", got.Owner)
	}
	if got.TokenURI == nil || *got.TokenURI != uri {
		t.Errorf("TokenURI mismatch: got %v", got.TokenURI)
	}
	if got.ApprovedSpender != nil {
		t.Errorf("fresh token has approved spender: %v", *got.ApprovedSpender)
	}
}

func TestTokenStore_InsertDuplicate(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if err := store.Insert(ctx, &domain.Token{TokenID: "nft1", Owner: "alice"}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	err := store.Insert(ctx, &domain.Token{TokenID: "nft1", Owner: "bob"})
	if !errors.Is(err, storage.ErrAlreadyMinted) {
		t.Errorf("Expected ErrAlreadyMinted, got %v", err)
	}
}

func TestTokenStore_NotFound(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.SetOwner(ctx, "ghost", "alice"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.Remove(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTokenStore_SetOwnerClearsApproval(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if err := store.Insert(ctx, &domain.Token{TokenID: "nft1", Owner: "alice"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	spender := domain.Address("bob")
	if err := store.SetApproval(ctx, "nft1", &spender); err != nil {
		t.Fatalf("SetApproval failed: %v", err)
	}

	if err := store.SetOwner(ctx, "nft1", "carol"); err != nil {
		t.Fatalf("SetOwner failed: %v", err)
	}

	got, err := store.Get(ctx, "nft1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Owner != "carol" {
		t.Errorf("Owner mismatch: got %s, want carol", got.Owner)
	}
	if got.ApprovedSpender != nil {
		t.Errorf("approval survived ownership change: %v", *got.ApprovedSpender)
	}
}

func TestTokenStore_BurnedIDNeverReused(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if err := store.Insert(ctx, &domain.Token{TokenID: "nft1", Owner: "alice"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Remove(ctx, "nft1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := store.Get(ctx, "nft1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("burned token still readable: %v", err)
	}

	err := store.Insert(ctx, &domain.Token{TokenID: "nft1", Owner: "bob"})
	if !errors.Is(err, storage.ErrAlreadyMinted) {
		t.Errorf("burned token_id was resurrected: %v", err)
	}
}

func TestTokenStore_List(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	owners := map[string]domain.Address{
		"a": "alice", "b": "bob", "c": "alice", "d": "alice", "e": "bob",
	}
	for id, owner := range owners {
		if err := store.Insert(ctx, &domain.Token{TokenID: id, Owner: owner}); err != nil {
			t.Fatalf("Insert %s failed: %v", id, err)
		}
	}

	all, err := store.List(ctx, storage.ListFilter{Limit: 30})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"a", "b", "c", "d", "e"}
	if len(all) != len(want) {
		t.Fatalf("got %d ids, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i] != id {
			t.Errorf("position %d: got %s, want %s", i, all[i], id)
		}
	}

	alice := domain.Address("alice")
	filtered, err := store.List(ctx, storage.ListFilter{Owner: &alice, StartAfter: "a", Limit: 30})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(filtered) != 2 || filtered[0] != "c" || filtered[1] != "d" {
		t.Errorf("owner filter with start_after: got %v, want [c d]", filtered)
	}
}

func TestTokenStore_ListClampsLimit(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		id := string(rune('a'+i/26)) + string(rune('a'+i%26))
		if err := store.Insert(ctx, &domain.Token{TokenID: id, Owner: "alice"}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	defaulted, err := store.List(ctx, storage.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(defaulted) != storage.DefaultPageLimit {
		t.Errorf("default limit: got %d, want %d", len(defaulted), storage.DefaultPageLimit)
	}

	capped, err := store.List(ctx, storage.ListFilter{Limit: 100})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(capped) != storage.MaxPageLimit {
		t.Errorf("max limit: got %d, want %d", len(capped), storage.MaxPageLimit)
	}
}

func TestTokenStore_Count(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Insert(ctx, &domain.Token{TokenID: id, Owner: "alice"}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	if err := store.Remove(ctx, "b"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count: got %d, want 2", count)
	}
}
