package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest una línea del documento a crear.
type DocumentItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateDocumentRequest body para POST /api/documents.
type CreateDocumentRequest struct {
	Type         string                `json:"type" validate:"required,oneof=QUOTE ORDER"`
	CustomerName string                `json:"customer_name"`
	Items        []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// DocumentItemDTO línea de un documento.
type DocumentItemDTO struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DocumentDTO cotización o pedido con sus líneas.
type DocumentDTO struct {
	ID           string            `json:"id"`
	Number       string            `json:"number"`
	Type         string            `json:"type"`
	Status       string            `json:"status"`
	CustomerName string            `json:"customer_name,omitempty"`
	Items        []DocumentItemDTO `json:"items"`
	CreatedAt    time.Time         `json:"created_at"`
}
