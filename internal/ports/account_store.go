package ports

import (
	"context"

	"github.com/futurolabs/futuro/internal/domain"
)

// AccountStore persiste el estado de las cuentas. Se llama a Save tras cada
// trade confirmado y tras login/logout; a Load una vez al arrancar el
// proceso.
type AccountStore interface {
	// Load devuelve la cuenta guardada bajo la key de sesión, o nil si no
	// hay registro (estado fresco / no autenticado).
	Load(ctx context.Context, key string) (*domain.Account, error)

	// Save guarda (o sobreescribe) la cuenta bajo la key dada, de forma
	// atómica: cuenta y posiciones en la misma transacción.
	Save(ctx context.Context, key string, account domain.Account) error

	// Delete elimina el registro de sesión. Borrar una key inexistente no
	// es un error.
	Delete(ctx context.Context, key string) error

	// ListAccounts devuelve todas las cuentas guardadas, para el ranking.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
