// Package catalog implementa ports.CatalogProvider leyendo el catálogo de
// mercados y noticias desde un archivo YAML. El binario embebe un catálogo
// de demostración; una ruta en la config lo sobreescribe.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/futurolabs/futuro/internal/domain"
)

//go:embed markets.yaml
var embedded []byte

// File implementa ports.CatalogProvider.
type File struct {
	path string // vacío → usar el catálogo embebido
}

// NewFile crea un proveedor que lee de la ruta dada, o del catálogo
// embebido si path está vacío.
func NewFile(path string) *File {
	return &File{path: path}
}

// FetchMarkets carga, mapea y valida todos los mercados del catálogo.
func (f *File) FetchMarkets(_ context.Context) ([]domain.Market, error) {
	doc, err := f.load()
	if err != nil {
		return nil, err
	}

	markets := make([]domain.Market, 0, len(doc.Markets))
	for _, raw := range doc.Markets {
		m, err := raw.toDomain()
		if err != nil {
			return nil, fmt.Errorf("catalog.FetchMarkets: %w", err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("catalog.FetchMarkets: %w", err)
		}
		markets = append(markets, m)
	}
	return markets, nil
}

// FetchNews carga las noticias del radar.
func (f *File) FetchNews(_ context.Context) ([]domain.NewsItem, error) {
	doc, err := f.load()
	if err != nil {
		return nil, err
	}

	news := make([]domain.NewsItem, 0, len(doc.News))
	for _, raw := range doc.News {
		news = append(news, domain.NewsItem{
			ID:              raw.ID,
			Title:           raw.Title,
			Source:          raw.Source,
			TimeAgo:         raw.TimeAgo,
			Sentiment:       domain.Sentiment(raw.Sentiment),
			RelatedMarketID: raw.RelatedMarket,
		})
	}
	return news, nil
}

func (f *File) load() (*document, error) {
	data := embedded
	if f.path != "" {
		b, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("catalog.load: read %q: %w", f.path, err)
		}
		data = b
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog.load: parse YAML: %w", err)
	}
	return &doc, nil
}

// --- formato del archivo ---

type document struct {
	Markets []rawMarket `yaml:"markets"`
	News    []rawNews   `yaml:"news"`
}

type rawMarket struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Category    string     `yaml:"category"`
	ImageURL    string     `yaml:"image_url"`
	Volume      float64    `yaml:"volume"`
	YesPrice    float64    `yaml:"yes_price"`
	NoPrice     float64    `yaml:"no_price"`
	EndDate     string     `yaml:"end_date"` // YYYY-MM-DD
	History     []rawPoint `yaml:"history"`
	Rules       string     `yaml:"rules"`
}

type rawPoint struct {
	Timestamp string  `yaml:"t"` // RFC3339
	Price     float64 `yaml:"price"`
}

type rawNews struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Source        string `yaml:"source"`
	TimeAgo       string `yaml:"time_ago"`
	Sentiment     string `yaml:"sentiment"`
	RelatedMarket string `yaml:"related_market"`
}

func (r rawMarket) toDomain() (domain.Market, error) {
	m := domain.Market{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		ImageURL:    r.ImageURL,
		Volume:      r.Volume,
		YesPrice:    r.YesPrice,
		NoPrice:     r.NoPrice,
		Rules:       r.Rules,
	}

	if r.EndDate != "" {
		t, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return domain.Market{}, fmt.Errorf("market %s: end_date %q: %w", r.ID, r.EndDate, err)
		}
		m.EndDate = t
	}

	for _, p := range r.History {
		ts, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return domain.Market{}, fmt.Errorf("market %s: history timestamp %q: %w", r.ID, p.Timestamp, err)
		}
		m.History = append(m.History, domain.PricePoint{Timestamp: ts, Price: p.Price})
	}
	return m, nil
}
