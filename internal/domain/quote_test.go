package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/futurolabs/futuro/internal/domain"
)

func TestNewQuote_Example(t *testing.T) {
	// R$ 1000 a 0.65 → 1538 cotas, retorno 1538.00, lucro 538.00, ROI 53.8%
	q := domain.NewQuote(0.65, 1000)

	assert.Equal(t, 1538, q.Shares)
	assert.InDelta(t, 1538.00, q.PotentialReturn, 0.001)
	assert.InDelta(t, 538.00, q.PotentialProfit, 0.001)
	assert.InDelta(t, 53.8, q.ROI, 0.05)
}

func TestNewQuote_FloorNeverFractional(t *testing.T) {
	cases := []struct {
		name   string
		price  float64
		amount float64
	}{
		{"precio alto", 0.99, 100},
		{"precio bajo", 0.01, 57.3},
		{"division exacta", 0.50, 200},
		{"importe menor que el precio", 0.80, 0.50},
		{"centavos", 0.33, 10.01},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := domain.NewQuote(tc.price, tc.amount)

			// shares*price <= amount < (shares+1)*price
			assert.LessOrEqual(t, float64(q.Shares)*tc.price, tc.amount+1e-9)
			assert.Greater(t, float64(q.Shares+1)*tc.price, tc.amount-1e-9)
		})
	}
}

func TestNewQuote_ZeroAmount(t *testing.T) {
	q := domain.NewQuote(0.65, 0)

	assert.Equal(t, 0, q.Shares)
	assert.Zero(t, q.PotentialReturn)
	assert.Zero(t, q.ROI) // indefinido con amount 0 → 0
}

func TestNewQuote_InvalidPrice(t *testing.T) {
	// Un precio <= 0 nunca debería llegar del catálogo; la quote degrada a cero.
	q := domain.NewQuote(0, 1000)
	assert.Zero(t, q.Shares)
}

func TestQuoteMarket_PicksSidePrice(t *testing.T) {
	m := domain.Market{ID: "selic-copom", YesPrice: 0.65, NoPrice: 0.35}

	yes := domain.QuoteMarket(m, domain.SideYes, 100)
	no := domain.QuoteMarket(m, domain.SideNo, 100)

	assert.Equal(t, 0.65, yes.Price)
	assert.Equal(t, 0.35, no.Price)
	assert.Equal(t, "selic-copom", yes.MarketID)
	assert.Equal(t, domain.SideNo, no.Side)
}

func TestQuote_Fill(t *testing.T) {
	m := domain.Market{ID: "m1", YesPrice: 0.40, NoPrice: 0.60}
	q := domain.QuoteMarket(m, domain.SideYes, 100)

	fill := q.Fill()
	assert.Equal(t, "m1", fill.MarketID)
	assert.Equal(t, domain.SideYes, fill.Side)
	assert.Equal(t, 250, fill.Quantity)
	assert.Equal(t, 0.40, fill.Price)
	// el precio actual de una posición recién abierta es el de compra
	assert.Equal(t, 0.40, fill.CurrentPrice)
}
