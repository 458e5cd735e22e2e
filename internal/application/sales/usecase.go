package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/application/numbering"
	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// DocumentUseCase maneja cotizaciones y pedidos: creación con consecutivo,
// finalización (descarga de inventario) y cancelación.
//
// La reserva de stock es implícita: un pedido en DRAFT/OPEN aporta a la
// reserva solo por existir; finalizarlo o cancelarlo hace que deje de
// aportar en la siguiente lectura, sin evento de liberación.
type DocumentUseCase struct {
	txRunner    TxRunner
	docRepo     repository.SalesDocumentRepository
	productRepo repository.ProductRepository
	legacyRepo  repository.LegacyMovementRepository
	allocator   *numbering.Allocator
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner TxRunner,
	docRepo repository.SalesDocumentRepository,
	productRepo repository.ProductRepository,
	legacyRepo repository.LegacyMovementRepository,
	allocator *numbering.Allocator,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:    txRunner,
		docRepo:     docRepo,
		productRepo: productRepo,
		legacyRepo:  legacyRepo,
		allocator:   allocator,
	}
}

// ItemInput una línea del documento a crear.
type ItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateInput entrada para crear una cotización o un pedido.
type CreateInput struct {
	CompanyID    string
	UserID       string
	Type         string
	CustomerName string
	Items        []ItemInput
}

// Create valida, asigna el consecutivo (con reintento acotado ante
// colisiones) e inserta el documento. Los pedidos nacen en OPEN (reservan
// de inmediato); las cotizaciones nacen en DRAFT y no reservan.
func (uc *DocumentUseCase) Create(ctx context.Context, input CreateInput) (*entity.SalesDocument, error) {
	var family, status string
	switch input.Type {
	case entity.DocumentTypeQuote:
		family, status = entity.SequenceFamilyQuote, entity.DocumentStatusDraft
	case entity.DocumentTypeOrder:
		family, status = entity.SequenceFamilyOrder, entity.DocumentStatusOpen
	default:
		return nil, domain.ErrInvalidInput
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != input.CompanyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	doc := &entity.SalesDocument{
		ID:           uuid.New().String(),
		CompanyID:    input.CompanyID,
		Type:         input.Type,
		Status:       status,
		CustomerName: input.CustomerName,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    input.UserID,
	}
	for _, item := range input.Items {
		doc.Items = append(doc.Items, entity.SalesDocumentItem{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	// Reintento acotado: si el insert choca por consecutivo duplicado
	// (p. ej. número degradado por timestamp) se pide otro número.
	number, err := uc.allocator.Allocate(ctx, input.CompanyID, family, func(number string) error {
		doc.Number = number
		return uc.docRepo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	doc.Number = number
	return doc, nil
}

// Finalize despacha un pedido: registra un movimiento OUT por cada línea y
// marca el documento FINALIZED, todo en una transacción. La referencia de
// cada movimiento es el consecutivo del pedido.
//
// El chequeo de stock disponible vive aquí, en el caller que finaliza la
// venta; la capa de disponibilidad no lo impone.
func (uc *DocumentUseCase) Finalize(ctx context.Context, companyID, userID, docID string) error {
	doc, err := uc.docRepo.GetByID(ctx, companyID, docID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if doc.Type != entity.DocumentTypeOrder || !doc.Reserva() {
		return domain.ErrConflict
	}

	ids := make([]string, 0, len(doc.Items))
	for _, item := range doc.Items {
		ids = append(ids, item.ProductID)
	}
	// El aporte histórico es historia cerrada: puede leerse fuera de la tx.
	legacy, err := uc.legacyRepo.SumByProducts(ctx, companyID, ids)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunSales(ctx, func(
		docRepo repository.SalesDocumentRepository,
		movRepo repository.MovementRepository,
	) error {
		// Chequeo de suficiencia sobre la foto dentro de la tx.
		canonical, err := movRepo.SumByProducts(ctx, companyID, ids)
		if err != nil {
			return err
		}
		movs := make([]*entity.Movement, 0, len(doc.Items))
		for _, item := range doc.Items {
			balance := canonical[item.ProductID].Add(legacy[item.ProductID])
			if balance.LessThan(item.Quantity) {
				return domain.ErrInsufficientStock
			}
			movs = append(movs, &entity.Movement{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				TransactionID: doc.ID,
				ProductID:     item.ProductID,
				Type:          entity.MovementTypeOUT,
				Quantity:      item.Quantity,
				Reference:     doc.Number,
				CreatedAt:     now,
				CreatedBy:     userID,
			})
		}
		if err := movRepo.CreateBatch(ctx, movs); err != nil {
			return err
		}
		return docRepo.UpdateStatus(ctx, companyID, docID, entity.DocumentStatusFinalized)
	})
}

// Cancel cancela un documento en DRAFT/OPEN. Solo cambia el estado: su
// aporte a la reserva desaparece solo en la siguiente lectura.
func (uc *DocumentUseCase) Cancel(ctx context.Context, companyID, docID string) error {
	doc, err := uc.docRepo.GetByID(ctx, companyID, docID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if doc.Status != entity.DocumentStatusDraft && doc.Status != entity.DocumentStatusOpen {
		return domain.ErrConflict
	}
	return uc.docRepo.UpdateStatus(ctx, companyID, docID, entity.DocumentStatusCancelled)
}

// GetByID devuelve un documento con sus líneas.
func (uc *DocumentUseCase) GetByID(ctx context.Context, companyID, docID string) (*entity.SalesDocument, error) {
	doc, err := uc.docRepo.GetByID(ctx, companyID, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
