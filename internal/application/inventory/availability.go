package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// AvailabilityUseCase compone la proyección de saldos con la reserva viva:
// available = balance - reserved.
//
// El resultado es una foto: puede quedar desactualizado en el instante en
// que se muestra (no se emite señal alguna); quien vaya a decidir sobre
// stock bajo debe volver a consultar. Available puede ser negativo
// (sobreventa): esta capa lo expone, no lo bloquea; si alguien lo impide es
// el caller que finaliza la venta.
type AvailabilityUseCase struct {
	projector   *Projector
	docRepo     repository.SalesDocumentRepository
	productRepo repository.ProductRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(projector *Projector, docRepo repository.SalesDocumentRepository, productRepo repository.ProductRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{projector: projector, docRepo: docRepo, productRepo: productRepo}
}

// Availability devuelve una fila por producto pedido. La reserva se
// recalcula escaneando los pedidos abiertos en el mismo read: un documento
// que salió de DRAFT/OPEN deja de aportar en esta misma lectura, sin acción
// compensatoria.
func (uc *AvailabilityUseCase) Availability(ctx context.Context, companyID string, productIDs []string) ([]entity.AvailabilityRow, error) {
	balances, err := uc.projector.ProjectBatch(ctx, companyID, productIDs)
	if err != nil {
		return nil, err
	}
	reserved, err := uc.docRepo.ReservedByProducts(ctx, companyID, productIDs)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByIDs(ctx, companyID, productIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]entity.AvailabilityRow, 0, len(productIDs))
	for _, id := range productIDs {
		balance := balances[id].Balance
		res := decimal.Zero
		if r, ok := reserved[id]; ok {
			res = r
		}
		row := entity.AvailabilityRow{
			ProductID: id,
			Balance:   balance,
			Reserved:  res,
			Available: balance.Sub(res),
		}
		if p, ok := products[id]; ok {
			row.SKU = p.SKU
			row.Name = p.Name
			row.LowStock = row.Available.LessThan(p.MinStock)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
