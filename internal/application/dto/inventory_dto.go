package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Type      string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	FromRef   string          `json:"from_ref" validate:"required"`
	ToRef     string          `json:"to_ref" validate:"required"`
	Notes     string          `json:"notes,omitempty"`
}

// MovementResponse un movimiento registrado.
type MovementResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	CreatedBy string           `json:"created_by,omitempty"`
}

// AvailabilityRowDTO fila de disponibilidad para vistas de lista.
// available = balance - reserved; puede ser negativo (sobreventa).
type AvailabilityRowDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku,omitempty"`
	Name      string          `json:"name,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Reserved  decimal.Decimal `json:"reserved"`
	Available decimal.Decimal `json:"available"`
	LowStock  bool            `json:"low_stock"`
}

// KardexEntryDTO fila del kardex: movimiento más saldo acumulado.
type KardexEntryDTO struct {
	Movement MovementResponse `json:"movement"`
	Delta    decimal.Decimal  `json:"delta"`
	Running  decimal.Decimal  `json:"running_balance"`
}
