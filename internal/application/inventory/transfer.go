package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// TransferUseCase registra un traslado de stock como dos patas TRANSFER
// pareadas (-cantidad con referencia de origen, +cantidad con referencia de
// destino) que comparten TransactionID y se escriben en la misma
// transacción. Las patas netean cero en la proyección del producto.
type TransferUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, productRepo: productRepo}
}

// TransferInput entrada para un traslado.
type TransferInput struct {
	CompanyID string
	UserID    string
	ProductID string
	Quantity  decimal.Decimal
	FromRef   string // ubicación/documento de origen (texto libre)
	ToRef     string // ubicación/documento de destino
	Notes     string
}

// Transfer valida y escribe las dos patas del traslado.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) error {
	if input.ProductID == "" || input.FromRef == "" || input.ToRef == "" || input.FromRef == input.ToRef {
		return domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}

	now := time.Now()
	txID := uuid.New().String()

	outLeg := &entity.Movement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		TransactionID: txID,
		ProductID:     input.ProductID,
		Type:          entity.MovementTypeTRANSFER,
		Quantity:      input.Quantity.Neg(),
		Reference:     input.FromRef,
		Notes:         input.Notes,
		CreatedAt:     now,
		CreatedBy:     input.UserID,
	}
	inLeg := &entity.Movement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		TransactionID: txID,
		ProductID:     input.ProductID,
		Type:          entity.MovementTypeTRANSFER,
		Quantity:      input.Quantity,
		Reference:     input.ToRef,
		Notes:         input.Notes,
		CreatedAt:     now,
		CreatedBy:     input.UserID,
	}

	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository) error {
		return movRepo.CreateBatch(ctx, []*entity.Movement{outLeg, inLeg})
	})
}
