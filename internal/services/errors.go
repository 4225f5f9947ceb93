package services

import (
	"errors"

	"github.com/anselmoparente/VemProFut/internal/policy"
)

var (
	ErrNotFound           = policy.ErrNotFound
	ErrForbidden          = policy.ErrForbidden
	ErrInvalidCredentials = errors.New("Credenciais inválidas.")
	ErrUnauthenticated    = errors.New("Não autenticado.")
)
