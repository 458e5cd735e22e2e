package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	domaininv "github.com/jcardenas-dev/gestion-api/internal/domain/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// AppendMovementUseCase registra movimientos en el libro (IN, OUT,
// ADJUSTMENT). El libro almacena lo que recibe: la interpretación de signo
// por tipo ocurre aguas abajo en la proyección, no aquí. La única
// validación es de forma (producto presente, cantidad válida por tipo,
// costo unitario en entradas); nunca escribe parcialmente.
type AppendMovementUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

// NewAppendMovementUseCase construye el caso de uso.
func NewAppendMovementUseCase(movRepo repository.MovementRepository, productRepo repository.ProductRepository) *AppendMovementUseCase {
	return &AppendMovementUseCase{movRepo: movRepo, productRepo: productRepo}
}

// MovementInput entrada para registrar un movimiento.
// Para IN/OUT la cantidad debe ser positiva; para ADJUSTMENT distinta de
// cero (conserva su signo). UnitCost es opcional y solo aplica a IN.
type MovementInput struct {
	CompanyID string
	UserID    string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Reference string
	Notes     string
}

// Append valida la entrada y agrega un registro inmutable al libro.
// Los TRANSFER no pasan por aquí: usan TransferUseCase, que escribe las dos
// patas en una misma transacción.
func (uc *AppendMovementUseCase) Append(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domaininv.ValidQuantity(input.Type, input.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	// El costo unitario es opcional y solo tiene sentido en entradas: una
	// entrada sin costo se acepta (costo desconocido al recibir), una con
	// costo negativo no, y en los demás tipos el costo se descarta.
	if input.Type == entity.MovementTypeIN {
		if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	} else {
		input.UnitCost = nil
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		TransactionID: uuid.New().String(),
		ProductID:     input.ProductID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		UnitCost:      input.UnitCost,
		Reference:     input.Reference,
		Notes:         input.Notes,
		CreatedAt:     now,
		CreatedBy:     input.UserID,
	}
	if err := uc.movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
