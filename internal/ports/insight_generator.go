package ports

import (
	"context"

	"github.com/futurolabs/futuro/internal/domain"
)

// InsightGenerator produce un análisis textual consultivo de un mercado.
// Es la única operación asíncrona del sistema: el resultado es advisory y
// nunca bloquea el trading. Ante cualquier fallo (incluida la falta de
// credencial) devuelve un texto de fallback legible junto con un error que
// envuelve domain.ErrInsightUnavailable; el texto siempre es presentable.
type InsightGenerator interface {
	Generate(ctx context.Context, market domain.Market) (string, error)
}
