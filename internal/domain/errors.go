package domain

import "errors"

// Taxonomía de errores del core. Todos se recuperan localmente: el flujo de
// trading vuelve a su estado previo y presenta el mensaje al usuario.
var (
	// ErrInvalidAmount: importe no positivo o no numérico.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds: el importe supera el saldo en el momento del commit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownMarket: el mercado no existe en el catálogo.
	ErrUnknownMarket = errors.New("unknown market")

	// ErrInsightUnavailable: la generación de análisis falló o no hay
	// credencial. Nunca bloquea el trading.
	ErrInsightUnavailable = errors.New("insight unavailable")

	// ErrNotAuthenticated: operación que requiere sesión iniciada.
	ErrNotAuthenticated = errors.New("not authenticated")
)
