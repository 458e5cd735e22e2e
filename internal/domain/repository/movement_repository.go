package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// MovementFilter filtros para la lectura de kardex.
type MovementFilter struct {
	Type string // vacío = todos los tipos
	From *time.Time
	To   *time.Time
}

// MovementRepository es el puerto del libro de movimientos.
//
// El libro es append-only: el puerto no expone Update ni Delete, y ninguna
// implementación debe agregarlos. Las correcciones se registran como un
// nuevo ADJUSTMENT con la cantidad compensatoria.
type MovementRepository interface {
	// Create persiste un movimiento. Es un INSERT único y atómico:
	// o escribe la fila completa o no escribe nada.
	Create(ctx context.Context, m *entity.Movement) error

	// CreateBatch persiste varios movimientos (ej. las dos patas de un
	// TRANSFER). Atómico solo cuando el Querier subyacente es una tx.
	CreateBatch(ctx context.Context, movs []*entity.Movement) error

	// ListByProduct devuelve los movimientos de un producto en orden de
	// creación ascendente (el orden de reproducción del kardex).
	ListByProduct(ctx context.Context, companyID, productID string, f MovementFilter) ([]entity.Movement, error)

	// SumByProducts suma en una sola pasada el aporte con signo de los
	// movimientos canónicos de cada producto (proyección por lotes).
	SumByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error)
}

// LegacyMovementRepository es el puerto de solo lectura del libro histórico
// (esquema anterior al corte: cantidad ya con signo, sin tipo). Nunca se
// escriben filas nuevas; es un insumo congelado de la proyección.
type LegacyMovementRepository interface {
	// SumByProduct suma signed_qty del producto en el libro histórico.
	SumByProduct(ctx context.Context, companyID, productID string) (decimal.Decimal, error)

	// SumByProducts versión por lotes para vistas de lista.
	SumByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error)
}
