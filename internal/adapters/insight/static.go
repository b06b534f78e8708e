package insight

import (
	"context"

	"github.com/futurolabs/futuro/internal/domain"
)

// Static es un generador fijo para tests y demos offline: devuelve siempre
// el mismo texto sin tocar la red.
type Static struct {
	Text string
	Err  error
}

// Generate devuelve el texto configurado.
func (s Static) Generate(_ context.Context, _ domain.Market) (string, error) {
	return s.Text, s.Err
}
