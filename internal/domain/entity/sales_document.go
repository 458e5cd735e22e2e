package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento comercial.
const (
	DocumentTypeQuote = "QUOTE" // cotización: no reserva stock
	DocumentTypeOrder = "ORDER" // pedido: sus líneas abiertas reservan stock
)

// Estados del ciclo de vida de un documento comercial.
const (
	DocumentStatusDraft     = "DRAFT"     // borrador
	DocumentStatusOpen      = "OPEN"      // comprometido con el cliente, sin despachar
	DocumentStatusFinalized = "FINALIZED" // despachado: generó movimientos OUT
	DocumentStatusCancelled = "CANCELLED"
)

// SalesDocument representa una cotización o un pedido de venta.
// Los pedidos en DRAFT/OPEN son la única fuente de la reserva de stock:
// no existe un evento "reservar" ni "liberar", la reserva es un agregado
// vivo que se recalcula leyendo los documentos abiertos.
type SalesDocument struct {
	ID           string
	CompanyID    string
	Number       string // consecutivo legible, único por empresa
	Type         string
	Status       string
	CustomerName string
	Items        []SalesDocumentItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}

// SalesDocumentItem es una línea del documento.
type SalesDocumentItem struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
}

// Reserva determina si el documento aporta a la reserva de stock.
func (d *SalesDocument) Reserva() bool {
	return d.Type == DocumentTypeOrder &&
		(d.Status == DocumentStatusDraft || d.Status == DocumentStatusOpen)
}
