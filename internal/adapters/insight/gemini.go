// Package insight implementa ports.InsightGenerator sobre la API de
// Gemini. El análisis es consultivo: cualquier fallo (credencial ausente,
// timeout, cuota) degrada a un texto fijo legible y nunca bloquea el
// trading.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/futurolabs/futuro/internal/domain"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second

	// Un análisis cada pocos segundos es más que suficiente para una
	// sesión interactiva y mantiene el consumo de cuota acotado.
	requestsPerMinute = 6
)

// Mensajes de fallback presentados al usuario en lugar de un error.
const (
	FallbackNoCredential = "Chave de API não configurada."
	FallbackError        = "Erro ao gerar análise. Tente novamente mais tarde."
	FallbackEmpty        = "Sem análise disponível."
)

// Gemini implementa ports.InsightGenerator.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewGemini crea el analista. Con apiKey vacía devuelve una instancia sin
// credencial que siempre responde el fallback: el resto de la aplicación
// funciona igual.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	g := &Gemini{
		model:   model,
		timeout: defaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(requestsPerMinute)/60, 1),
	}
	if g.model == "" {
		g.model = defaultModel
	}
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("insight.NewGemini: %w", err)
	}
	g.client = client
	return g, nil
}

// Generate produce el análisis en Markdown del mercado. El texto devuelto
// siempre es presentable: ante cualquier fallo es uno de los mensajes de
// fallback y el error envuelve domain.ErrInsightUnavailable.
func (g *Gemini) Generate(ctx context.Context, market domain.Market) (string, error) {
	if g.client == nil {
		return FallbackNoCredential, fmt.Errorf("insight.Generate: %w: no API key", domain.ErrInsightUnavailable)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return FallbackError, fmt.Errorf("insight.Generate: %w: %v", domain.ErrInsightUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt(market)), nil)
	if err != nil {
		slog.Warn("insight generation failed", "market", market.ID, "err", err)
		return FallbackError, fmt.Errorf("insight.Generate: %w: %v", domain.ErrInsightUnavailable, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return FallbackEmpty, fmt.Errorf("insight.Generate: %w: empty response", domain.ErrInsightUnavailable)
	}
	return text, nil
}

// prompt construye la instrucción del analista en PT-BR.
func prompt(m domain.Market) string {
	return fmt.Sprintf(`Atue como um analista financeiro sênior especializado no mercado brasileiro.
Analise o seguinte mercado de previsão (prediction market):

Título: %q
Descrição: %q
Probabilidade Atual (Sim): %.1f%%
Probabilidade Atual (Não): %.1f%%
Regras: %q

Forneça um resumo conciso em 3 tópicos (bullet points):
1. Fatores principais para o resultado "SIM".
2. Fatores principais para o resultado "NÃO".
3. Um possível evento "Cisne Negro" (inesperado) que mudaria o cenário.

Mantenha o tom profissional, neutro e focado em dados reais. Use Português do Brasil.
Não dê conselhos de investimento.
Formate a saída em Markdown.`,
		m.Title, m.Description, m.YesPrice*100, m.NoPrice*100, m.Rules)
}
