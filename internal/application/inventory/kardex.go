package inventory

import (
	"context"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	domaininv "github.com/jcardenas-dev/gestion-api/internal/domain/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// KardexUseCase produce la lectura tabular del libro de un producto:
// movimientos en orden de creación con saldo acumulado. Es un derivado del
// libro solo para mostrar, no un store aparte.
type KardexUseCase struct {
	movRepo    repository.MovementRepository
	legacyRepo repository.LegacyMovementRepository
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(movRepo repository.MovementRepository, legacyRepo repository.LegacyMovementRepository) *KardexUseCase {
	return &KardexUseCase{movRepo: movRepo, legacyRepo: legacyRepo}
}

// MovementsFor reproduce los movimientos del producto aplicando los filtros
// y acumula el saldo. El saldo de apertura es el aporte del libro
// histórico, para que el kardex cierre en el mismo número que la
// proyección.
//
// Cuando hay filtro de tipo o de fechas el saldo acumulado es parcial (solo
// suma lo visible); es una vista de trabajo, no una conciliación.
func (uc *KardexUseCase) MovementsFor(ctx context.Context, companyID, productID string, f repository.MovementFilter) ([]entity.KardexEntry, error) {
	opening, err := uc.legacyRepo.SumByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.ListByProduct(ctx, companyID, productID, f)
	if err != nil {
		return nil, err
	}
	return domaininv.Kardex(opening, movs), nil
}
