package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futurolabs/futuro/internal/domain"
)

func makeMarket(id string, yes float64, cat domain.Category) domain.Market {
	return domain.Market{
		ID:       id,
		Title:    "Mercado " + id,
		Category: cat,
		YesPrice: yes,
		NoPrice:  1 - yes,
		Volume:   1000,
		EndDate:  time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewCatalog_IndexAndOrder(t *testing.T) {
	markets := []domain.Market{
		makeMarket("a", 0.65, domain.CategoryEconomia),
		makeMarket("b", 0.28, domain.CategoryEsportes),
		makeMarket("c", 0.42, domain.CategoryEconomia),
	}

	c, err := domain.NewCatalog(markets)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())

	m, err := c.ByID("b")
	require.NoError(t, err)
	assert.Equal(t, 0.28, m.YesPrice)

	// conserva el orden del proveedor
	all := c.All()
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	eco := c.ByCategory(domain.CategoryEconomia)
	require.Len(t, eco, 2)
	assert.Equal(t, "a", eco[0].ID)
}

func TestCatalog_ByID_Unknown(t *testing.T) {
	c, err := domain.NewCatalog(nil)
	require.NoError(t, err)

	_, err = c.ByID("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownMarket)
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	markets := []domain.Market{
		makeMarket("a", 0.65, domain.CategoryEconomia),
		makeMarket("a", 0.42, domain.CategoryEconomia),
	}

	_, err := domain.NewCatalog(markets)
	assert.Error(t, err)
}

func TestMarket_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*domain.Market)
		wantErr bool
	}{
		{"valido", func(m *domain.Market) {}, false},
		{"yes fuera de rango", func(m *domain.Market) { m.YesPrice = 1.2; m.NoPrice = -0.2 }, true},
		{"yes cero", func(m *domain.Market) { m.YesPrice = 0 }, true},
		{"suma se desvia", func(m *domain.Market) { m.NoPrice = 0.50 }, true},
		{"suma dentro de tolerancia", func(m *domain.Market) { m.NoPrice = 0.355 }, false},
		{"volumen negativo", func(m *domain.Market) { m.Volume = -1 }, true},
		{"sin id", func(m *domain.Market) { m.ID = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := makeMarket("m", 0.65, domain.CategoryBrasil)
			tc.mutate(&m)

			err := m.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	for raw, want := range map[string]domain.Side{
		"sim": domain.SideYes,
		"SIM": domain.SideYes,
		"yes": domain.SideYes,
		"nao": domain.SideNo,
		"não": domain.SideNo,
		"no":  domain.SideNo,
	} {
		got, err := domain.ParseSide(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := domain.ParseSide("talvez")
	assert.Error(t, err)
}

func TestBuildLeaderboard(t *testing.T) {
	accounts := []domain.Account{
		{Name: "ana", PortfolioValue: 100, Positions: []domain.Position{{PnL: 10}}},
		{Name: "bruno", PortfolioValue: 200, Positions: []domain.Position{{PnL: 50}}},
		{Name: "carla", PortfolioValue: 100, Positions: []domain.Position{{PnL: -5}}},
	}

	entries := domain.BuildLeaderboard(accounts)
	require.Len(t, entries, 3)

	// ordenado por beneficio desc
	assert.Equal(t, "bruno", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.InDelta(t, 25.0, entries[0].ROI, 0.001)
	assert.Equal(t, "ana", entries[1].Username)
	assert.Equal(t, "carla", entries[2].Username)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestBuildLeaderboard_StableTiebreak(t *testing.T) {
	accounts := []domain.Account{
		{Name: "zeca"},
		{Name: "abel"},
	}

	entries := domain.BuildLeaderboard(accounts)
	require.Len(t, entries, 2)
	// a igual beneficio, orden alfabético
	assert.Equal(t, "abel", entries[0].Username)
}
