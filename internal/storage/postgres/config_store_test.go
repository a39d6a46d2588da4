package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
	"nft-ledger/internal/storage/postgres"
)

func TestConfigStore_InitOnce(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewConfigStore(pool)
	ctx := context.Background()
	minter := testAddr(t, 0x01)

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	cfg := &domain.ContractConfig{Minter: minter, Name: "Ledger NFT", Symbol: "LNFT"}
	require.NoError(t, store.Init(ctx, cfg))

	retrieved, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, minter, retrieved.Minter)
	assert.Equal(t, "Ledger NFT", retrieved.Name)
	assert.Equal(t, "LNFT", retrieved.Symbol)

	err = store.Init(ctx, cfg)
	assert.ErrorIs(t, err, storage.ErrAlreadyInitialized)
}
