// Package trading implements the per-trade execution flow: quote, explicit
// confirmation, then a single atomic commit against ledger, balance and
// storage.
package trading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/futurolabs/futuro/internal/domain"
	"github.com/futurolabs/futuro/internal/ports"
)

// State is the current phase of a trade attempt. COMMITTED and CANCELLED
// are terminal: both collapse back to IDLE, so they are never stored.
type State string

const (
	StateIdle                 State = "IDLE"
	StateQuoted               State = "QUOTED"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
)

// ErrInvalidTransition is returned when an operation is not allowed in the
// flow's current state.
var ErrInvalidTransition = errors.New("invalid flow transition")

// Ticket freezes the quoted terms between review and confirmation. The
// commit executes exactly these terms instead of recomputing the quote, so
// displayed and executed terms can never diverge even if prices became
// live in the future.
type Ticket struct {
	ID       string
	MarketID string
	Title    string
	Side     domain.Side
	Price    float64
	Amount   float64
	Shares   int
	QuotedAt time.Time
}

// fill converts the frozen terms into the execution the ledger merges.
func (t Ticket) fill() domain.Fill {
	return domain.Fill{
		MarketID:     t.MarketID,
		Side:         t.Side,
		Quantity:     t.Shares,
		Price:        t.Price,
		CurrentPrice: t.Price,
	}
}

// Flow is the short-lived state machine for one trade attempt. It runs on
// the single event loop: there is no suspension point between reading the
// account state and committing, so no other mutation can interleave.
type Flow struct {
	catalog    *domain.Catalog
	store      ports.AccountStore
	sessionKey string

	state  State
	quote  domain.Quote
	ticket *Ticket
}

// NewFlow creates an idle flow bound to a catalog, a store and the session
// key the account persists under.
func NewFlow(catalog *domain.Catalog, store ports.AccountStore, sessionKey string) *Flow {
	return &Flow{
		catalog:    catalog,
		store:      store,
		sessionKey: sessionKey,
		state:      StateIdle,
	}
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// CurrentQuote returns the last computed quote. Only meaningful while the
// flow is QUOTED or AWAITING_CONFIRMATION.
func (f *Flow) CurrentQuote() domain.Quote {
	return f.quote
}

// Ticket returns the pending confirmation ticket, or nil.
func (f *Flow) Ticket() *Ticket {
	return f.ticket
}

// Quote computes (or recomputes) the preview for a market, side and amount.
// Pure and idempotent: callable any number of times from IDLE or QUOTED.
// While a ticket awaits confirmation the quote is frozen and this refuses.
func (f *Flow) Quote(marketID string, side domain.Side, amount float64) (domain.Quote, error) {
	if f.state == StateAwaitingConfirmation {
		return domain.Quote{}, fmt.Errorf("trading.Quote: %w: confirm or cancel the pending ticket first", ErrInvalidTransition)
	}

	market, err := f.catalog.ByID(marketID)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("trading.Quote: %w", err)
	}

	f.quote = domain.QuoteMarket(market, side, amount)
	f.state = StateQuoted
	return f.quote, nil
}

// Review moves QUOTED → AWAITING_CONFIRMATION. Guarded by
// amount > 0 && amount <= balance; when the guard refuses, the flow stays
// QUOTED and the quote remains editable.
func (f *Flow) Review(account domain.Account) (Ticket, error) {
	if f.state != StateQuoted {
		return Ticket{}, fmt.Errorf("trading.Review: %w: no active quote", ErrInvalidTransition)
	}
	if f.quote.Amount <= 0 {
		return Ticket{}, fmt.Errorf("trading.Review: %w: amount %.2f", domain.ErrInvalidAmount, f.quote.Amount)
	}
	if f.quote.Amount > account.Balance {
		return Ticket{}, fmt.Errorf("trading.Review: %w: amount %.2f > balance %.2f",
			domain.ErrInsufficientFunds, f.quote.Amount, account.Balance)
	}

	title := f.quote.MarketID
	if m, err := f.catalog.ByID(f.quote.MarketID); err == nil {
		title = m.Title
	}

	f.ticket = &Ticket{
		ID:       uuid.New().String(),
		MarketID: f.quote.MarketID,
		Title:    title,
		Side:     f.quote.Side,
		Price:    f.quote.Price,
		Amount:   f.quote.Amount,
		Shares:   f.quote.Shares,
		QuotedAt: time.Now().UTC(),
	}
	f.state = StateAwaitingConfirmation
	return *f.ticket, nil
}

// Confirm commits the pending ticket: settle the balance, merge the fill
// into the ledger and persist — as one logical unit. The mutation is staged
// on a clone of the account and only promoted after the store accepted it,
// so a failure at any step leaves the caller's account untouched and the
// flow back in QUOTED with the error surfaced.
func (f *Flow) Confirm(ctx context.Context, account *domain.Account) error {
	if f.state != StateAwaitingConfirmation || f.ticket == nil {
		return fmt.Errorf("trading.Confirm: %w: nothing awaiting confirmation", ErrInvalidTransition)
	}
	ticket := *f.ticket

	next := account.Clone()
	if err := next.Settle(ticket.Amount); err != nil {
		f.state = StateQuoted
		f.ticket = nil
		return fmt.Errorf("trading.Confirm: %w", err)
	}

	positions, err := domain.ApplyFill(next.Positions, ticket.fill())
	if err != nil {
		f.state = StateQuoted
		f.ticket = nil
		return fmt.Errorf("trading.Confirm: %w", err)
	}
	next.Positions = positions

	if err := f.store.Save(ctx, f.sessionKey, next); err != nil {
		f.state = StateQuoted
		f.ticket = nil
		return fmt.Errorf("trading.Confirm: persist: %w", err)
	}

	*account = next

	slog.Info("trade committed",
		"ticket", ticket.ID,
		"market", ticket.MarketID,
		"side", string(ticket.Side),
		"amount", fmt.Sprintf("R$%.2f", ticket.Amount),
		"shares", ticket.Shares,
		"balance", fmt.Sprintf("R$%.2f", account.Balance),
	)

	f.reset()
	return nil
}

// Cancel abandons the pending quote or ticket. No state mutation happens.
func (f *Flow) Cancel() {
	f.reset()
}

func (f *Flow) reset() {
	f.state = StateIdle
	f.quote = domain.Quote{}
	f.ticket = nil
}
