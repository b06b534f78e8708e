package domain

import (
	"fmt"
	"strings"
)

// Side es el lado de una posición: SIM o NÃO. Exactamente dos valores,
// mutuamente excluyentes por posición.
type Side string

const (
	SideYes Side = "SIM"
	SideNo  Side = "NÃO"
)

// Opposite devuelve el lado contrario.
func (s Side) Opposite() Side {
	if s == SideYes {
		return SideNo
	}
	return SideYes
}

// ParseSide interpreta la entrada del usuario. Acepta sim/não/nao y los
// equivalentes yes/no, sin distinguir mayúsculas.
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sim", "yes", "s", "y":
		return SideYes, nil
	case "não", "nao", "no", "n":
		return SideNo, nil
	}
	return "", fmt.Errorf("domain.ParseSide: %q is not SIM or NÃO", raw)
}
