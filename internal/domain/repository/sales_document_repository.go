package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// SalesDocumentRepository es el puerto de cotizaciones y pedidos.
type SalesDocumentRepository interface {
	// Create inserta cabecera y líneas. Retorna domain.ErrDuplicate si el
	// consecutivo (company_id, number) ya existe: es la señal que dispara
	// el reintento de numeración en el caso de uso.
	Create(ctx context.Context, doc *entity.SalesDocument) error

	GetByID(ctx context.Context, companyID, id string) (*entity.SalesDocument, error)

	// UpdateStatus cambia el estado del documento. Solo cabecera: las
	// líneas de un documento nunca se reescriben.
	UpdateStatus(ctx context.Context, companyID, id, status string) error

	// ReservedByProducts calcula la reserva viva: suma de cantidades de
	// líneas de pedidos (no cotizaciones) en estado DRAFT/OPEN por
	// producto. Se recalcula en cada lectura escaneando los documentos
	// abiertos; no existe un evento reservar/liberar.
	ReservedByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error)
}
