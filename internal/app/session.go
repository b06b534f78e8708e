// Package app runs the interactive session: a single-threaded command loop
// that owns the current account and threads it explicitly into the quote,
// ledger and trade-flow logic. All mutations happen synchronously inside
// one command handler, so nothing can interleave between reading the
// balance and committing a trade.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/futurolabs/futuro/internal/adapters/notify"
	"github.com/futurolabs/futuro/internal/application/trading"
	"github.com/futurolabs/futuro/internal/domain"
	"github.com/futurolabs/futuro/internal/ports"
)

// Session wires the catalog, store, authenticator and insight generator
// into the interactive loop.
type Session struct {
	catalog    *domain.Catalog
	news       []domain.NewsItem
	store      ports.AccountStore
	auth       ports.Authenticator
	insight    ports.InsightGenerator
	console    *notify.Console
	sessionKey string

	account *domain.Account // nil → unauthenticated
	flow    *trading.Flow

	in  io.Reader
	out io.Writer
}

// New builds the session: fetches the catalog and news once and restores a
// persisted account if one exists under the session key.
func New(
	ctx context.Context,
	provider ports.CatalogProvider,
	store ports.AccountStore,
	auth ports.Authenticator,
	insight ports.InsightGenerator,
	console *notify.Console,
	sessionKey string,
	in io.Reader,
	out io.Writer,
) (*Session, error) {
	markets, err := provider.FetchMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.New: fetch markets: %w", err)
	}
	catalog, err := domain.NewCatalog(markets)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}

	news, err := provider.FetchNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.New: fetch news: %w", err)
	}

	s := &Session{
		catalog:    catalog,
		news:       news,
		store:      store,
		auth:       auth,
		insight:    insight,
		console:    console,
		sessionKey: sessionKey,
		in:         in,
		out:        out,
	}

	// Restore the persisted session, if any. A missing record just means a
	// fresh unauthenticated state.
	account, err := store.Load(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("app.New: restore session: %w", err)
	}
	if account != nil {
		s.account = account
		s.flow = trading.NewFlow(catalog, store, sessionKey)
		slog.Info("session restored", "user", account.Name, "balance", fmt.Sprintf("R$%.2f", account.Balance))
	}

	return s, nil
}

// Run reads commands until EOF, "sair" or context cancellation.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Futuro — mercados preditivos simulados (%d mercados). Digite 'help'.\n", s.catalog.Len())

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "futuro> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		if cmd == "sair" || cmd == "quit" || cmd == "exit" {
			return nil
		}
		s.dispatch(ctx, cmd, args)
	}
}

func (s *Session) dispatch(ctx context.Context, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		s.printHelp()
	case "markets", "mercados":
		s.cmdMarkets(args)
	case "view", "ver":
		err = s.cmdView(args)
	case "quote", "cotar":
		err = s.cmdQuote(args)
	case "buy", "comprar":
		err = s.cmdBuy()
	case "confirm", "confirmar":
		err = s.cmdConfirm(ctx)
	case "cancel", "cancelar":
		err = s.cmdCancel()
	case "portfolio", "carteira":
		err = s.cmdPortfolio()
	case "ranking":
		err = s.cmdLeaderboard(ctx)
	case "news", "noticias":
		s.console.PrintNews(s.news, s.catalog)
	case "insight":
		err = s.cmdInsight(ctx, args)
	case "login":
		err = s.cmdLogin(ctx)
	case "logout":
		err = s.cmdLogout(ctx)
	default:
		fmt.Fprintf(s.out, "comando desconhecido: %s (digite 'help')\n", cmd)
	}

	if err != nil {
		s.console.PrintError(err)
	}
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `comandos:
  markets [categoria]        lista os mercados (filtro opcional)
  view <id>                  detalhe de um mercado
  quote <id> <sim|nao> <R$>  calcula a cotação (repetível)
  buy                        envia a ordem cotada para confirmação
  confirm / cancel           confirma ou descarta a ordem pendente
  portfolio                  sua carteira e posições
  ranking                    ranking de traders
  news                       radar de notícias
  insight <id>               análise IA do mercado
  login / logout             sessão simulada
  sair                       encerra
`)
}

// requireAccount is the authentication guard: any trade-flow transition
// attempted without a session redirects to the login prompt.
func (s *Session) requireAccount() error {
	if s.account == nil {
		fmt.Fprintln(s.out, "você precisa entrar primeiro — use 'login'")
		return domain.ErrNotAuthenticated
	}
	return nil
}

func (s *Session) cmdMarkets(args []string) {
	if len(args) == 0 {
		s.console.PrintMarkets(s.catalog.All())
		return
	}

	wanted := strings.ToLower(strings.Join(args, " "))
	for _, cat := range domain.Categories() {
		if strings.Contains(strings.ToLower(string(cat)), wanted) {
			s.console.PrintMarkets(s.catalog.ByCategory(cat))
			return
		}
	}
	fmt.Fprintf(s.out, "categoria desconhecida: %s\n", wanted)
}

func (s *Session) cmdView(args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "uso: view <id>")
		return nil
	}
	m, err := s.catalog.ByID(args[0])
	if err != nil {
		return err
	}
	s.console.PrintMarketDetail(m)
	return nil
}

func (s *Session) cmdQuote(args []string) error {
	if err := s.requireAccount(); err != nil {
		return nil
	}
	if len(args) != 3 {
		fmt.Fprintln(s.out, "uso: quote <id> <sim|nao> <valor>")
		return nil
	}

	side, err := domain.ParseSide(args[1])
	if err != nil {
		return err
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return err
	}

	quote, err := s.flow.Quote(args[0], side, amount)
	if err != nil {
		return err
	}
	s.console.PrintQuote(quote, s.account.Balance)
	return nil
}

func (s *Session) cmdBuy() error {
	if err := s.requireAccount(); err != nil {
		return nil
	}
	ticket, err := s.flow.Review(*s.account)
	if err != nil {
		return err
	}
	s.console.PrintTicket(ticket)
	return nil
}

func (s *Session) cmdConfirm(ctx context.Context) error {
	if err := s.requireAccount(); err != nil {
		return nil
	}
	if err := s.flow.Confirm(ctx, s.account); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "ordem executada — saldo: R$ %.2f\n", s.account.Balance)
	return nil
}

func (s *Session) cmdCancel() error {
	if err := s.requireAccount(); err != nil {
		return nil
	}
	s.flow.Cancel()
	fmt.Fprintln(s.out, "ordem descartada")
	return nil
}

func (s *Session) cmdPortfolio() error {
	if err := s.requireAccount(); err != nil {
		return nil
	}
	s.console.PrintPortfolio(*s.account, s.catalog)
	return nil
}

func (s *Session) cmdLeaderboard(ctx context.Context) error {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return err
	}
	s.console.PrintLeaderboard(domain.BuildLeaderboard(accounts))
	return nil
}

func (s *Session) cmdInsight(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "uso: insight <id>")
		return nil
	}
	m, err := s.catalog.ByID(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "gerando análise...")
	text, err := s.insight.Generate(ctx, m)
	if err != nil {
		// Advisory only: log it, show the fallback text, keep trading usable.
		slog.Debug("insight unavailable", "market", m.ID, "err", err)
	}
	s.console.PrintInsight(text)
	return nil
}

func (s *Session) cmdLogin(ctx context.Context) error {
	if s.account != nil {
		fmt.Fprintf(s.out, "já conectado como %s\n", s.account.Name)
		return nil
	}

	fmt.Fprintln(s.out, "conectando com Google...")
	account, err := s.auth.SignIn(ctx)
	if err != nil {
		return fmt.Errorf("app.login: %w", err)
	}

	if err := s.store.Save(ctx, s.sessionKey, account); err != nil {
		return fmt.Errorf("app.login: persist session: %w", err)
	}

	s.account = &account
	s.flow = trading.NewFlow(s.catalog, s.store, s.sessionKey)
	fmt.Fprintf(s.out, "bem-vindo, %s — saldo R$ %.2f\n", account.Name, account.Balance)
	return nil
}

func (s *Session) cmdLogout(ctx context.Context) error {
	if s.account == nil {
		fmt.Fprintln(s.out, "nenhuma sessão ativa")
		return nil
	}

	s.auth.SignOut()
	if err := s.store.Delete(ctx, s.sessionKey); err != nil {
		return fmt.Errorf("app.logout: %w", err)
	}

	slog.Info("session closed", "user", s.account.Name)
	s.account = nil
	s.flow = nil
	fmt.Fprintln(s.out, "sessão encerrada")
	return nil
}

// parseAmount accepts both "1000.50" and the pt-BR "1000,50".
func parseAmount(raw string) (float64, error) {
	normalized := strings.ReplaceAll(raw, ",", ".")
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("app.parseAmount: %w: %q", domain.ErrInvalidAmount, raw)
	}
	return amount, nil
}
