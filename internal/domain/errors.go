package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	// ErrImmutableMovement se retorna al intentar modificar quantity, type o date
	// de un movimiento ya registrado. El ledger es append-only: las correcciones
	// se hacen con un movimiento de reversa, nunca editando el histórico.
	ErrImmutableMovement = errors.New("movimiento inmutable: cantidad, tipo y fecha no se pueden modificar")
)
