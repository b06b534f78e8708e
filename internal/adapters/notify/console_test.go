package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futurolabs/futuro/internal/adapters/notify"
	"github.com/futurolabs/futuro/internal/domain"
)

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog([]domain.Market{
		{
			ID: "selic-copom", Title: "Copom cortará a Selic em 0.5%?",
			Category: domain.CategoryEconomia, Volume: 4500000,
			YesPrice: 0.65, NoPrice: 0.35,
			EndDate: time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
			History: []domain.PricePoint{
				{Timestamp: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), Price: 0.59},
				{Timestamp: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC), Price: 0.65},
			},
			Rules: "Resolve como SIM se o Banco Central anunciar o corte.",
		},
	})
	require.NoError(t, err)
	return c
}

func TestConsole_PrintMarkets(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	c.PrintMarkets(testCatalog(t).All())

	out := buf.String()
	assert.Contains(t, out, "selic-copom")
	assert.Contains(t, out, "Copom cortará a Selic em 0.5%?")
	assert.Contains(t, out, "R$ 0.65")
	assert.Contains(t, out, "R$ 4.5M")
	assert.Contains(t, out, "08/05/2024")
}

func TestConsole_PrintMarkets_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	c.PrintMarkets(nil)
	assert.Contains(t, buf.String(), "nenhum mercado")
}

func TestConsole_PrintMarketDetail(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	m, err := testCatalog(t).ByID("selic-copom")
	require.NoError(t, err)
	c.PrintMarketDetail(m)

	out := buf.String()
	assert.Contains(t, out, "Probabilidade SIM: 65%")
	assert.Contains(t, out, "Regras:")
	assert.Contains(t, out, "Histórico recente")
	assert.Contains(t, out, "R$ 0.59")
}

func TestConsole_PrintQuote(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	q := domain.NewQuote(0.65, 1000)
	q.Side = domain.SideYes
	c.PrintQuote(q, 15420.50)

	out := buf.String()
	assert.Contains(t, out, "1538")
	assert.Contains(t, out, "R$ 1538.00")
	assert.Contains(t, out, "R$ 538.00")
	assert.Contains(t, out, "53.8%")
	assert.Contains(t, out, "R$ 15420.50")
}

func TestConsole_PrintPortfolio(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	acc := domain.Account{
		Name: "Visitante Futuro", Balance: 14420.50, PortfolioValue: 1000,
		Positions: []domain.Position{
			{MarketID: "selic-copom", Side: domain.SideYes, Quantity: 1538, AvgPrice: 0.65, CurrentPrice: 0.65},
		},
	}
	c.PrintPortfolio(acc, testCatalog(t))

	out := buf.String()
	assert.Contains(t, out, "Visitante Futuro")
	assert.Contains(t, out, "R$ 15420.50") // saldo + posições
	assert.Contains(t, out, "1538")
	assert.Contains(t, out, "SIM")
}

func TestConsole_PrintPortfolio_NoPositions(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	c.PrintPortfolio(domain.Account{Name: "Visitante", Balance: 50000}, testCatalog(t))
	assert.Contains(t, buf.String(), "nenhuma posição aberta")
}

func TestConsole_PrintLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	c.PrintLeaderboard([]domain.LeaderboardEntry{
		{Rank: 1, Username: "ana", Profit: 120.50, ROI: 12.1},
		{Rank: 2, Username: "bruno", Profit: -30, ROI: -3},
	})

	out := buf.String()
	assert.Contains(t, out, "ana")
	assert.Contains(t, out, "+R$ 120.50")
	assert.Contains(t, out, "-3.0%")
}

func TestConsole_PrintNews(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	news := []domain.NewsItem{
		{ID: "n1", Title: "Ata sinaliza corte", Source: "Valor", TimeAgo: "2h",
			Sentiment: domain.SentimentPositive, RelatedMarketID: "selic-copom"},
	}
	c.PrintNews(news, testCatalog(t))

	out := buf.String()
	assert.Contains(t, out, "Ata sinaliza corte")
	assert.Contains(t, out, "Valor")
	assert.Contains(t, out, "Positivo")
	// referencia cruzada al mercado relacionado
	assert.Contains(t, out, "SIM 65%")
}
