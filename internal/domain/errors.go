package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrSequenceUnavailable: el contador atómico no respondió; el generador
	// pasa al número derivado de timestamp (unicidad degradada).
	ErrSequenceUnavailable = errors.New("contador de consecutivos no disponible")
	// ErrRetriesExhausted: se agotaron los reintentos de asignación de
	// consecutivo tras colisiones de unicidad repetidas.
	ErrRetriesExhausted = errors.New("reintentos de numeración agotados")
)
