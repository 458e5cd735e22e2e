package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (cantidad con signo)
	MovementTypeTRANSFER   = "TRANSFER"   // traslado, siempre en pares que netean cero
)

// Movement representa un registro del libro de movimientos (append-only).
// Una vez escrito nunca se actualiza ni se borra; las correcciones se
// expresan como un nuevo ADJUSTMENT con la cantidad compensatoria.
type Movement struct {
	ID            string
	CompanyID     string
	TransactionID string // agrupa las dos patas de un TRANSFER
	ProductID     string
	Type          string
	Quantity      decimal.Decimal  // positiva en IN/OUT; con signo en ADJUSTMENT y patas de TRANSFER
	UnitCost      *decimal.Decimal // solo presente en entradas (IN)
	Reference     string           // puntero libre al documento origen (factura, pedido, conteo)
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string // UserID del operador
}

// LegacyMovement es la forma histórica congelada del libro anterior al corte.
// Solo se lee: la cantidad ya viene con signo y no existe Type.
type LegacyMovement struct {
	ProductID string
	SignedQty decimal.Decimal
	CreatedAt time.Time
}
