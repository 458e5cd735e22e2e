package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountLineRequest una línea capturada durante el conteo físico.
type CountLineRequest struct {
	ProductCode string          `json:"product_code" validate:"required"`
	PhysicalQty decimal.Decimal `json:"physical_qty"`
}

// CountSessionRequest body para POST /api/inventory/counts.
type CountSessionRequest struct {
	Lines []CountLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CountLineDTO línea conciliada, tal como quedó en la foto de auditoría.
type CountLineDTO struct {
	ProductCode   string          `json:"product_code"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	SystemQty     decimal.Decimal `json:"system_qty"`
	PhysicalQty   decimal.Decimal `json:"physical_qty"`
	Shortage      decimal.Decimal `json:"shortage"`
	Overage       decimal.Decimal `json:"overage"`
	ShortageValue decimal.Decimal `json:"shortage_value"`
	OverageValue  decimal.Decimal `json:"overage_value"`
}

// CountSessionDTO sesión de conteo conciliada.
type CountSessionDTO struct {
	ID            string          `json:"id"`
	PerformedBy   string          `json:"performed_by"`
	Lines         []CountLineDTO  `json:"lines"`
	ShortageTotal decimal.Decimal `json:"shortage_total"`
	OverageTotal  decimal.Decimal `json:"overage_total"`
	CreatedAt     time.Time       `json:"created_at"`
}
