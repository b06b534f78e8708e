package ports

import (
	"context"

	"github.com/futurolabs/futuro/internal/domain"
)

// CatalogProvider suministra el catálogo de mercados y el radar de
// noticias. El core nunca lo muta: es una secuencia ordenada de solo
// lectura que se carga una vez al arrancar.
type CatalogProvider interface {
	// FetchMarkets devuelve todos los mercados del catálogo, ya validados.
	FetchMarkets(ctx context.Context) ([]domain.Market, error)

	// FetchNews devuelve las noticias del radar.
	FetchNews(ctx context.Context) ([]domain.NewsItem, error)
}
