package counting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/jcardenas-dev/gestion-api/internal/application/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	domaininv "github.com/jcardenas-dev/gestion-api/internal/domain/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// ReconcileUseCase concilia un conteo físico contra los saldos del sistema
// y persiste la sesión completa como foto de auditoría.
//
// Los valores calculados (faltante/sobrante y su valorización) se guardan
// tal como se computaron al finalizar el conteo y NUNCA se rederivan: la
// sesión documenta "lo que creíamos en ese momento". Un conteo lo hace un
// solo operador en una sola pasada; no hay concurrencia que coordinar.
type ReconcileUseCase struct {
	projector   *appinventory.Projector
	productRepo repository.ProductRepository
	countRepo   repository.CountSessionRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(projector *appinventory.Projector, productRepo repository.ProductRepository, countRepo repository.CountSessionRepository) *ReconcileUseCase {
	return &ReconcileUseCase{projector: projector, productRepo: productRepo, countRepo: countRepo}
}

// CountLineInput una línea capturada por el operador.
type CountLineInput struct {
	ProductCode string
	PhysicalQty decimal.Decimal
}

// SessionInput el conteo completo a conciliar.
type SessionInput struct {
	CompanyID   string
	PerformedBy string
	Lines       []CountLineInput
}

// Reconcile toma la foto de saldos, aplica la conciliación línea a línea y
// guarda la sesión de forma atómica (completa o nada).
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, input SessionInput) (*entity.CountSession, error) {
	if input.CompanyID == "" || input.PerformedBy == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Un mismo código puede venir repetido (conteos parciales por estante);
	// se agregan en una sola línea sumando lo contado. La sesión guarda una
	// línea por producto.
	merged := make([]CountLineInput, 0, len(input.Lines))
	byCode := make(map[string]int, len(input.Lines))
	for _, line := range input.Lines {
		if line.ProductCode == "" {
			return nil, domain.ErrInvalidInput
		}
		if i, ok := byCode[line.ProductCode]; ok {
			merged[i].PhysicalQty = merged[i].PhysicalQty.Add(line.PhysicalQty)
			continue
		}
		byCode[line.ProductCode] = len(merged)
		merged = append(merged, line)
	}
	input.Lines = merged

	// Resolver productos por código y proyectar saldos en lote.
	products := make([]entity.Product, 0, len(input.Lines))
	productIDs := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		p, err := uc.productRepo.GetByCompanyAndSKU(ctx, input.CompanyID, line.ProductCode)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		products = append(products, *p)
		productIDs = append(productIDs, p.ID)
	}
	balances, err := uc.projector.ProjectBatch(ctx, input.CompanyID, productIDs)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.CountLine, 0, len(input.Lines))
	results := make([]domaininv.LineResult, 0, len(input.Lines))
	for i, line := range input.Lines {
		p := products[i]
		systemQty := balances[p.ID].Balance
		res := domaininv.ReconcileLine(systemQty, line.PhysicalQty, p.Cost)
		results = append(results, res)
		lines = append(lines, entity.CountLine{
			ProductID:     p.ID,
			ProductCode:   p.SKU,
			UnitCost:      p.Cost,
			SystemQty:     systemQty,
			PhysicalQty:   line.PhysicalQty,
			Shortage:      res.Shortage,
			Overage:       res.Overage,
			ShortageValue: res.ShortageValue,
			OverageValue:  res.OverageValue,
		})
	}
	shortageTotal, overageTotal := domaininv.SessionTotals(results)

	session := &entity.CountSession{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		PerformedBy:   input.PerformedBy,
		Lines:         lines,
		ShortageTotal: shortageTotal,
		OverageTotal:  overageTotal,
		CreatedAt:     time.Now(),
	}
	if err := uc.countRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession devuelve una sesión guardada (lectura de auditoría).
func (uc *ReconcileUseCase) GetSession(ctx context.Context, companyID, id string) (*entity.CountSession, error) {
	session, err := uc.countRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}
