package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futurolabs/futuro/internal/adapters/storage"
	"github.com/futurolabs/futuro/internal/domain"
)

func makeAccount(name string, balance float64) domain.Account {
	return domain.Account{
		ID:             "uid-" + name,
		Name:           name,
		Email:          name + "@gmail.com",
		Balance:        balance,
		PortfolioValue: 1000,
		Positions: []domain.Position{
			{MarketID: "selic-copom", Side: domain.SideYes, Quantity: 1538, AvgPrice: 0.65, CurrentPrice: 0.65},
			{MarketID: "dolar-6-reais", Side: domain.SideNo, Quantity: 100, AvgPrice: 0.58, CurrentPrice: 0.60, PnL: 2},
		},
	}
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	acc := makeAccount("visitante", 14420.50)

	require.NoError(t, db.Save(ctx, "futuro_user", acc))

	got, err := db.Load(ctx, "futuro_user")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, acc.Name, got.Name)
	assert.InDelta(t, 14420.50, got.Balance, 0.001)
	assert.InDelta(t, 1000, got.PortfolioValue, 0.001)
	require.Len(t, got.Positions, 2)
	// ordenadas por market_id, side
	assert.Equal(t, "dolar-6-reais", got.Positions[0].MarketID)
	assert.Equal(t, domain.SideNo, got.Positions[0].Side)
	assert.Equal(t, 1538, got.Positions[1].Quantity)
	assert.InDelta(t, 0.65, got.Positions[1].AvgPrice, 0.0001)
}

func TestSQLiteStore_LoadMissingKey(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	// sin registro → estado fresco, no error
	got, err := db.Load(context.Background(), "futuro_user")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	acc := makeAccount("visitante", 50000)
	require.NoError(t, db.Save(ctx, "k", acc))

	// tras un trade: menos saldo, una posición menos
	acc.Balance = 49000
	acc.Positions = acc.Positions[:1]
	require.NoError(t, db.Save(ctx, "k", acc))

	got, err := db.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 49000, got.Balance, 0.001)
	assert.Len(t, got.Positions, 1)
}

func TestSQLiteStore_Delete(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.Save(ctx, "k", makeAccount("visitante", 100)))
	require.NoError(t, db.Delete(ctx, "k"))

	got, err := db.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	// borrar una key inexistente no es error
	assert.NoError(t, db.Delete(ctx, "k"))
}

func TestSQLiteStore_ListAccounts(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.Save(ctx, "k1", makeAccount("ana", 100)))
	require.NoError(t, db.Save(ctx, "k2", makeAccount("bruno", 200)))

	accounts, err := db.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	for _, acc := range accounts {
		assert.Len(t, acc.Positions, 2)
	}
}

func TestSQLiteStore_ListAccountsEmpty(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	accounts, err := db.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
