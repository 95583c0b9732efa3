package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrNotFound cubre tanto recursos inexistentes como recursos de otro usuario:
// nunca se revela la existencia de datos ajenos.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidMovement    = errors.New("movimiento inválido: la cantidad resultante sería negativa")
)
