// Package notify presenta mercados, cartera, ranking y noticias en la
// consola. Es la capa de presentación: no contiene ninguna regla de
// negocio.
package notify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/olekukonko/tablewriter"

	"github.com/futurolabs/futuro/internal/application/trading"
	"github.com/futurolabs/futuro/internal/domain"
)

// Console escribe el output formateado a un io.Writer.
type Console struct {
	out io.Writer
}

// NewConsole crea un renderer que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un renderer para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// PrintMarkets imprime el listado de mercados como tabla.
func (c *Console) PrintMarkets(markets []domain.Market) {
	if len(markets) == 0 {
		fmt.Fprintln(c.out, "nenhum mercado nesta categoria")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Categoria", "Mercado", "SIM", "NÃO", "Volume", "Encerra")

	for _, m := range markets {
		table.Append(
			m.ID,
			string(m.Category),
			truncate(m.Title, 42),
			fmt.Sprintf("R$ %.2f", m.YesPrice),
			fmt.Sprintf("R$ %.2f", m.NoPrice),
			formatVolume(m.Volume),
			m.EndDate.Format("02/01/2006"),
		)
	}
	table.Render()
}

// PrintMarketDetail imprime la ficha de un mercado: probabilidad, reglas y
// las últimas observaciones del histórico (sin gráfico).
func (c *Console) PrintMarketDetail(m domain.Market) {
	fmt.Fprintf(c.out, "\n%s\n", m.Title)
	fmt.Fprintf(c.out, "  %s\n\n", m.Description)
	fmt.Fprintf(c.out, "  Probabilidade SIM: %.0f%%   SIM R$ %.2f | NÃO R$ %.2f\n",
		m.Probability(), m.YesPrice, m.NoPrice)
	fmt.Fprintf(c.out, "  Volume: %s   Encerramento: %s\n",
		formatVolume(m.Volume), m.EndDate.Format("02/01/2006"))
	fmt.Fprintf(c.out, "  Regras: %s\n", m.Rules)

	if len(m.History) > 0 {
		fmt.Fprintln(c.out, "\n  Histórico recente (SIM):")
		start := 0
		if len(m.History) > 5 {
			start = len(m.History) - 5
		}
		for _, p := range m.History[start:] {
			fmt.Fprintf(c.out, "    %s  R$ %.2f\n", p.Timestamp.Format("02/01 15:04"), p.Price)
		}
	}
	fmt.Fprintln(c.out)
}

// PrintQuote imprime la previsualización de una orden.
func (c *Console) PrintQuote(q domain.Quote, balance float64) {
	fmt.Fprintf(c.out, "\n  Comprar %s a R$ %.2f com R$ %.2f\n", q.Side, q.Price, q.Amount)
	fmt.Fprintf(c.out, "  Cotas estimadas:   %d\n", q.Shares)
	fmt.Fprintf(c.out, "  Retorno potencial: R$ %.2f\n", q.PotentialReturn)
	fmt.Fprintf(c.out, "  Lucro potencial:   R$ %.2f\n", q.PotentialProfit)
	fmt.Fprintf(c.out, "  ROI:               %.1f%%\n", q.ROI)
	fmt.Fprintf(c.out, "  Disponível:        R$ %.2f\n\n", balance)
}

// PrintTicket pide la confirmación explícita de los términos congelados.
func (c *Console) PrintTicket(t trading.Ticket) {
	fmt.Fprintf(c.out, "\n  ORDEM %s\n", t.ID[:8])
	fmt.Fprintf(c.out, "  %s\n", t.Title)
	fmt.Fprintf(c.out, "  %s × %d cotas a R$ %.2f = R$ %.2f\n", t.Side, t.Shares, t.Price, t.Amount)
	fmt.Fprintln(c.out, "  confirme com 'confirm' ou descarte com 'cancel'")
}

// PrintPortfolio imprime el resumen de la cuenta y sus posiciones.
func (c *Console) PrintPortfolio(acc domain.Account, catalog *domain.Catalog) {
	fmt.Fprintf(c.out, "\n  %s — Minha Carteira\n", acc.Name)
	fmt.Fprintf(c.out, "  Valor total: R$ %.2f (saldo R$ %.2f + posições R$ %.2f)\n",
		acc.TotalValue(), acc.Balance, acc.PortfolioValue)

	pnl := acc.TotalPnL()
	sign := ""
	if pnl >= 0 {
		sign = "+"
	}
	fmt.Fprintf(c.out, "  P&L: %sR$ %.2f   ROI: %s%.2f%%\n\n", sign, pnl, sign, acc.ROI())

	if len(acc.Positions) == 0 {
		fmt.Fprintln(c.out, "  nenhuma posição aberta")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Mercado", "Lado", "Cotas", "Preço Médio", "Atual", "P&L")

	for _, pos := range acc.Positions {
		title := pos.MarketID
		if m, err := catalog.ByID(pos.MarketID); err == nil {
			title = truncate(m.Title, 36)
		}
		table.Append(
			title,
			string(pos.Side),
			fmt.Sprintf("%d", pos.Quantity),
			fmt.Sprintf("R$ %.2f", pos.AvgPrice),
			fmt.Sprintf("R$ %.2f", pos.CurrentPrice),
			fmt.Sprintf("R$ %.2f", pos.PnL),
		)
	}
	table.Render()
}

// PrintLeaderboard imprime el ranking de traders.
func (c *Console) PrintLeaderboard(entries []domain.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "ranking vazio — nenhuma conta registrada")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Trader", "Lucro Total", "ROI")

	for _, e := range entries {
		sign := ""
		if e.Profit >= 0 {
			sign = "+"
		}
		table.Append(
			fmt.Sprintf("%d", e.Rank),
			e.Username,
			fmt.Sprintf("%sR$ %.2f", sign, e.Profit),
			fmt.Sprintf("%s%.1f%%", sign, e.ROI),
		)
	}
	table.Render()
}

// PrintNews imprime el radar de noticias con el mercado relacionado.
func (c *Console) PrintNews(news []domain.NewsItem, catalog *domain.Catalog) {
	if len(news) == 0 {
		fmt.Fprintln(c.out, "nenhuma notícia no radar")
		return
	}

	for _, item := range news {
		fmt.Fprintf(c.out, "\n  [%s] %s — %s\n", item.Source, item.Title, item.TimeAgo)
		fmt.Fprintf(c.out, "  Sentimento: %s", item.Sentiment)
		if m, err := catalog.ByID(item.RelatedMarketID); err == nil {
			fmt.Fprintf(c.out, "   → %s (SIM %.0f%%)", truncate(m.Title, 40), m.Probability())
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintln(c.out)
}

// PrintInsight renderiza el análisis Markdown en el terminal. Si el render
// falla imprime el texto tal cual.
func (c *Console) PrintInsight(markdown string) {
	rendered, err := glamour.Render(markdown, "dark")
	if err != nil {
		fmt.Fprintln(c.out, markdown)
		return
	}
	fmt.Fprint(c.out, rendered)
}

// PrintError presenta un error recuperado al usuario.
func (c *Console) PrintError(err error) {
	fmt.Fprintf(c.out, "  [%s] erro: %v\n", time.Now().Format("15:04:05"), err)
}

// --- helpers ---

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatVolume(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("R$ %.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("R$ %.0fK", v/1_000)
	default:
		return fmt.Sprintf("R$ %.0f", v)
	}
}
