package clickhouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
	"nft-ledger/internal/storage/clickhouse"
)

func TestEventStore_InsertAndGetByTokenID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewEventStore(conn)
	ctx := context.Background()
	minter, alice, bob := testAddr(t, 0x01), testAddr(t, 0x02), testAddr(t, 0x03)

	events := []*domain.LedgerEvent{
		{
			Kind:        "mint",
			TokenID:     "nft1",
			Sender:      minter,
			Recipient:   alice,
			Attributes:  `[{"key":"action","value":"mint"}]`,
			TimestampMs: 1700000000000,
		},
		{
			Kind:        "transfer_nft",
			TokenID:     "nft1",
			Sender:      alice,
			Recipient:   bob,
			Attributes:  `[{"key":"action","value":"transfer_nft"}]`,
			TimestampMs: 1700000001000,
		},
		{
			Kind:        "mint",
			TokenID:     "nft2",
			Sender:      minter,
			Recipient:   alice,
			Attributes:  `[{"key":"action","value":"mint"}]`,
			TimestampMs: 1700000002000,
		},
	}
	for _, e := range events {
		require.NoError(t, store.Insert(ctx, e))
	}

	retrieved, err := store.GetByTokenID(ctx, "nft1")
	require.NoError(t, err)
	require.Len(t, retrieved, 2)

	assert.Equal(t, "mint", retrieved[0].Kind)
	assert.Equal(t, minter, retrieved[0].Sender)
	assert.Equal(t, alice, retrieved[0].Recipient)
	assert.Equal(t, int64(1700000000000), retrieved[0].TimestampMs)

	assert.Equal(t, "transfer_nft", retrieved[1].Kind)
	assert.Equal(t, alice, retrieved[1].Sender)
	assert.Equal(t, bob, retrieved[1].Recipient)
	assert.NotEmpty(t, retrieved[1].Attributes)
}

func TestEventStore_GetByTokenIDEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewEventStore(conn)

	events, err := store.GetByTokenID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventStore_InsertInvalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewEventStore(conn)
	ctx := context.Background()

	err := store.Insert(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	err = store.Insert(ctx, &domain.LedgerEvent{TokenID: "nft1"})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
