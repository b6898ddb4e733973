package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; los casos de uso nunca
// exponen errores crudos de los almacenes.
var (
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrAlreadyExists      = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// ErrInviteExpired es un caso de acceso denegado: envuelve ErrForbidden para
// que errors.Is lo clasifique igual, conservando el mensaje específico.
var ErrInviteExpired = fmt.Errorf("%w: el código de invitación expiró", ErrForbidden)
