// Package storage implementa ports.AccountStore sobre SQLite (pure Go,
// sin CGo). El estado de la cuenta se lee una vez al arrancar y se
// reescribe completo en cada mutación: cuenta y posiciones en la misma
// transacción, nunca a medias.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/futurolabs/futuro/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    session_key     TEXT PRIMARY KEY,
    id              TEXT NOT NULL,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL DEFAULT '',
    avatar_url      TEXT NOT NULL DEFAULT '',
    balance         REAL NOT NULL DEFAULT 0,
    portfolio_value REAL NOT NULL DEFAULT 0,
    updated_at      DATETIME NOT NULL
);

-- Una fila por (cuenta, mercado, lado): los trades repetidos se fusionan
-- antes de llegar aquí, el UNIQUE solo protege contra bugs del llamante.
CREATE TABLE IF NOT EXISTS positions (
    session_key   TEXT NOT NULL,
    market_id     TEXT NOT NULL,
    side          TEXT NOT NULL,
    quantity      INTEGER NOT NULL,
    avg_price     REAL NOT NULL,
    current_price REAL NOT NULL,
    pnl           REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (session_key, market_id, side)
);

CREATE INDEX IF NOT EXISTS idx_positions_key ON positions(session_key);
`

// SQLiteStore implementa ports.AccountStore usando SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada y aplica
// el schema. Usa ":memory:" en tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load devuelve la cuenta guardada bajo la key, o nil si no existe.
func (s *SQLiteStore) Load(ctx context.Context, key string) (*domain.Account, error) {
	var acc domain.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, avatar_url, balance, portfolio_value
		FROM accounts WHERE session_key = ?`, key,
	).Scan(&acc.ID, &acc.Name, &acc.Email, &acc.AvatarURL, &acc.Balance, &acc.PortfolioValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.Load: account %q: %w", key, err)
	}

	positions, err := s.loadPositions(ctx, key)
	if err != nil {
		return nil, err
	}
	acc.Positions = positions
	return &acc, nil
}

// Save sobreescribe la cuenta y sus posiciones en una sola transacción.
func (s *SQLiteStore) Save(ctx context.Context, key string, account domain.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.Save: begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (session_key, id, name, email, avatar_url, balance, portfolio_value, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_key) DO UPDATE SET
			id              = excluded.id,
			name            = excluded.name,
			email           = excluded.email,
			avatar_url      = excluded.avatar_url,
			balance         = excluded.balance,
			portfolio_value = excluded.portfolio_value,
			updated_at      = excluded.updated_at`,
		key, account.ID, account.Name, account.Email, account.AvatarURL,
		account.Balance, account.PortfolioValue, now,
	); err != nil {
		return fmt.Errorf("storage.Save: upsert account %q: %w", key, err)
	}

	// Las posiciones se reescriben completas: el conjunto es pequeño y así
	// el snapshot guardado siempre es coherente con la cuenta.
	if _, err := tx.ExecContext(ctx, `DELETE FROM positions WHERE session_key = ?`, key); err != nil {
		return fmt.Errorf("storage.Save: clear positions %q: %w", key, err)
	}

	for _, pos := range account.Positions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO positions (session_key, market_id, side, quantity, avg_price, current_price, pnl)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			key, pos.MarketID, string(pos.Side), pos.Quantity,
			pos.AvgPrice, pos.CurrentPrice, pos.PnL,
		); err != nil {
			return fmt.Errorf("storage.Save: insert position %s/%s: %w", pos.MarketID, pos.Side, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.Save: commit: %w", err)
	}
	return nil
}

// Delete elimina la cuenta y sus posiciones. Key inexistente no es error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.Delete: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM positions WHERE session_key = ?`, key); err != nil {
		return fmt.Errorf("storage.Delete: positions %q: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE session_key = ?`, key); err != nil {
		return fmt.Errorf("storage.Delete: account %q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.Delete: commit: %w", err)
	}
	return nil
}

// ListAccounts devuelve todas las cuentas con sus posiciones, ordenadas por
// fecha de actualización descendente.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_key, id, name, email, avatar_url, balance, portfolio_value
		FROM accounts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage.ListAccounts: query: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	var keys []string
	for rows.Next() {
		var key string
		var acc domain.Account
		if err := rows.Scan(&key, &acc.ID, &acc.Name, &acc.Email, &acc.AvatarURL,
			&acc.Balance, &acc.PortfolioValue); err != nil {
			return nil, fmt.Errorf("storage.ListAccounts: scan: %w", err)
		}
		accounts = append(accounts, acc)
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.ListAccounts: rows: %w", err)
	}

	for i, key := range keys {
		positions, err := s.loadPositions(ctx, key)
		if err != nil {
			return nil, err
		}
		accounts[i].Positions = positions
	}
	return accounts, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) loadPositions(ctx context.Context, key string) ([]domain.Position, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT market_id, side, quantity, avg_price, current_price, pnl
		FROM positions WHERE session_key = ?
		ORDER BY market_id, side`, key)
	if err != nil {
		return nil, fmt.Errorf("storage.loadPositions: query %q: %w", key, err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		var pos domain.Position
		var side string
		if err := rows.Scan(&pos.MarketID, &side, &pos.Quantity,
			&pos.AvgPrice, &pos.CurrentPrice, &pos.PnL); err != nil {
			return nil, fmt.Errorf("storage.loadPositions: scan: %w", err)
		}
		pos.Side = domain.Side(side)
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}
