package domain

import "math"

// settlementValue: cada cota liquida exactamente a R$ 1.00 si su lado
// resuelve verdadero. Constante del dominio.
const settlementValue = 1.00

// Quote es la previsualización de una orden: cuántas cotas compra el
// importe y qué devolverían al vencimiento. Es un cálculo puro que la UI
// recomputa en cada cambio de importe o lado; nunca se persiste.
type Quote struct {
	MarketID        string
	Side            Side
	Price           float64
	Amount          float64
	Shares          int
	PotentialReturn float64
	PotentialProfit float64
	ROI             float64 // porcentaje
}

// NewQuote calcula la cotización para un precio de lado y un importe.
// Shares trunca hacia cero: nunca hay cotas fraccionarias. Con amount <= 0
// la quote se calcula igualmente (es una preview); el guard de commit vive
// en el flujo de trading, no aquí.
func NewQuote(price, amount float64) Quote {
	q := Quote{Price: price, Amount: amount}
	if price <= 0 {
		return q
	}

	q.Shares = int(math.Floor(amount / price))
	q.PotentialReturn = float64(q.Shares) * settlementValue
	q.PotentialProfit = q.PotentialReturn - amount
	if amount > 0 {
		q.ROI = q.PotentialProfit / amount * 100
	}
	return q
}

// QuoteMarket calcula la cotización para el lado elegido de un mercado.
func QuoteMarket(m Market, side Side, amount float64) Quote {
	q := NewQuote(m.Price(side), amount)
	q.MarketID = m.ID
	q.Side = side
	return q
}

// Fill convierte la quote en la ejecución que el ledger fusionará.
// El precio actual de la posición arranca en el precio de compra.
func (q Quote) Fill() Fill {
	return Fill{
		MarketID:     q.MarketID,
		Side:         q.Side,
		Quantity:     q.Shares,
		Price:        q.Price,
		CurrentPrice: q.Price,
	}
}
