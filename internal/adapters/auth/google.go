// Package auth implementa ports.Authenticator con un proveedor simulado:
// no hay OAuth real, el sign-in siembra la cuenta demo tras un pequeño
// delay de red fingido.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/futurolabs/futuro/internal/domain"
)

const signInDelay = 1500 * time.Millisecond

// Template es la plantilla con la que se siembra toda cuenta nueva.
type Template struct {
	Name           string
	Email          string
	AvatarURL      string
	InitialBalance float64
}

// MockGoogle implementa ports.Authenticator.
type MockGoogle struct {
	template Template
	delay    time.Duration
}

// NewMockGoogle crea el autenticador simulado con la plantilla dada.
func NewMockGoogle(template Template) *MockGoogle {
	if template.Name == "" {
		template.Name = "Visitante Futuro"
	}
	if template.Email == "" {
		template.Email = "visitante@gmail.com"
	}
	return &MockGoogle{template: template, delay: signInDelay}
}

// NewMockGoogleInstant es NewMockGoogle sin delay, para tests.
func NewMockGoogleInstant(template Template) *MockGoogle {
	a := NewMockGoogle(template)
	a.delay = 0
	return a
}

// SignIn simula el flujo de Google y devuelve la cuenta inicial sembrada
// desde la plantilla. Respeta la cancelación del contexto durante el delay.
func (a *MockGoogle) SignIn(ctx context.Context) (domain.Account, error) {
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return domain.Account{}, fmt.Errorf("auth.SignIn: %w", ctx.Err())
		}
	}

	return domain.Account{
		ID:             "google-uid-" + uuid.New().String()[:8],
		Name:           a.template.Name,
		Email:          a.template.Email,
		AvatarURL:      a.template.AvatarURL,
		Balance:        a.template.InitialBalance,
		PortfolioValue: 0,
	}, nil
}

// SignOut no tiene nada que limpiar en el proveedor simulado.
func (a *MockGoogle) SignOut() {}
