package ports

import (
	"context"

	"github.com/futurolabs/futuro/internal/domain"
)

// Authenticator gestiona la sesión del usuario. En la demo es un proveedor
// simulado: SignIn siembra una cuenta nueva desde la plantilla por defecto.
type Authenticator interface {
	// SignIn autentica al usuario y devuelve su cuenta inicial. Puede
	// fallar (o cancelarse vía ctx).
	SignIn(ctx context.Context) (domain.Account, error)

	// SignOut descarta la sesión del proveedor. El estado en memoria lo
	// descarta el llamante.
	SignOut()
}
