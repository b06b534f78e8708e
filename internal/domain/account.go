package domain

import "fmt"

// Position es la tenencia de un usuario en un (mercado, lado). Como mucho
// existe una posición por tupla: compras repetidas se fusionan, nunca se
// duplican.
type Position struct {
	MarketID     string
	Side         Side
	Quantity     int     // cotas, siempre entero
	AvgPrice     float64 // precio medio de entrada ponderado, en (0,1]
	CurrentPrice float64 // último precio observado para ese lado
	PnL          float64 // no realizado: CurrentPrice*Quantity - coste total
}

// CurrentValue devuelve el valor de mercado de la posición.
func (p Position) CurrentValue() float64 {
	return float64(p.Quantity) * p.CurrentPrice
}

// Invested devuelve el capital aportado a la posición.
func (p Position) Invested() float64 {
	return float64(p.Quantity) * p.AvgPrice
}

// Fill es una ejecución liquidada que el ledger fusiona en las posiciones.
type Fill struct {
	MarketID     string
	Side         Side
	Quantity     int
	Price        float64 // precio de la ejecución
	CurrentPrice float64 // precio actual observado al liquidar
}

// ApplyFill fusiona un fill en el conjunto de posiciones y devuelve el
// conjunto actualizado. Si ya existe posición para (MarketID, Side) aplica
// coste medio ponderado; el CurrentPrice del fill sobreescribe el anterior
// (la última observación gana). Posiciones de otros mercados/lados no se
// tocan. La fusión es conmutativa en cantidad y coste total: aplicar fills
// en cualquier orden produce el mismo AvgPrice y Quantity.
func ApplyFill(positions []Position, fill Fill) ([]Position, error) {
	if fill.Quantity <= 0 {
		return positions, fmt.Errorf("domain.ApplyFill: %w: quantity %d", ErrInvalidAmount, fill.Quantity)
	}
	if fill.Price <= 0 || fill.Price > 1 {
		return positions, fmt.Errorf("domain.ApplyFill: fill price %.4f out of (0,1]", fill.Price)
	}

	for i, pos := range positions {
		if pos.MarketID != fill.MarketID || pos.Side != fill.Side {
			continue
		}
		totalCost := float64(pos.Quantity)*pos.AvgPrice + float64(fill.Quantity)*fill.Price
		totalQty := pos.Quantity + fill.Quantity

		merged := pos
		merged.Quantity = totalQty
		merged.AvgPrice = totalCost / float64(totalQty)
		merged.CurrentPrice = fill.CurrentPrice
		merged.PnL = fill.CurrentPrice*float64(totalQty) - totalCost

		out := make([]Position, len(positions))
		copy(out, positions)
		out[i] = merged
		return out, nil
	}

	pos := Position{
		MarketID:     fill.MarketID,
		Side:         fill.Side,
		Quantity:     fill.Quantity,
		AvgPrice:     fill.Price,
		CurrentPrice: fill.CurrentPrice,
	}
	pos.PnL = float64(pos.Quantity) * (pos.CurrentPrice - pos.AvgPrice)

	out := make([]Position, len(positions), len(positions)+1)
	copy(out, positions)
	return append(out, pos), nil
}

// Account es la cuenta de un usuario: identidad, saldo en efectivo y sus
// posiciones abiertas. Account posee en exclusiva su conjunto de posiciones.
type Account struct {
	ID             string
	Name           string
	Email          string
	AvatarURL      string
	Balance        float64 // efectivo disponible, nunca negativo tras un commit
	PortfolioValue float64 // capital desplegado en posiciones, solo para display
	Positions      []Position
}

// Settle debita el importe del saldo y lo traslada al valor de cartera.
// Debe invocarse exactamente una vez por trade confirmado, de forma atómica
// con ApplyFill.
func (a *Account) Settle(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("domain.Settle: %w: %.2f", ErrInvalidAmount, amount)
	}
	if amount > a.Balance {
		return fmt.Errorf("domain.Settle: %w: amount %.2f > balance %.2f", ErrInsufficientFunds, amount, a.Balance)
	}
	a.Balance -= amount
	a.PortfolioValue += amount
	return nil
}

// Clone devuelve una copia profunda de la cuenta. El flujo de trading opera
// sobre la copia y solo la promociona si el commit completo tiene éxito.
func (a Account) Clone() Account {
	out := a
	out.Positions = make([]Position, len(a.Positions))
	copy(out.Positions, a.Positions)
	return out
}

// TotalPnL devuelve la suma del P&L no realizado de todas las posiciones.
func (a Account) TotalPnL() float64 {
	var total float64
	for _, p := range a.Positions {
		total += p.PnL
	}
	return total
}

// TotalValue devuelve saldo + capital desplegado, la cifra de cabecera de
// la cartera.
func (a Account) TotalValue() float64 {
	return a.Balance + a.PortfolioValue
}

// ROI devuelve la rentabilidad porcentual sobre el capital desplegado.
// Devuelve 0 si no hay capital desplegado.
func (a Account) ROI() float64 {
	if a.PortfolioValue <= 0 {
		return 0
	}
	return a.TotalPnL() / a.PortfolioValue * 100
}
