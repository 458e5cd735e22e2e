package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// TxRunner ejecuta unidades de trabajo dentro de una transacción, entregando
// repositorios atados a esa tx. Implementa los puertos TxRunner de los casos
// de uso de inventario y de ventas.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con un repositorio de movimientos transaccional.
func (t *TxRunner) Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error {
	return t.inTx(ctx, func(q Querier) error {
		return fn(NewMovementRepository(q))
	})
}

// RunSales ejecuta fn con repositorios de documentos y movimientos atados a
// la misma tx.
func (t *TxRunner) RunSales(ctx context.Context, fn func(
	docRepo repository.SalesDocumentRepository,
	movRepo repository.MovementRepository,
) error) error {
	return t.inTx(ctx, func(q Querier) error {
		return fn(NewSalesDocumentRepository(q), NewMovementRepository(q))
	})
}

func (t *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var _ repository.CountSessionRepository = (*TxCountSessionRepo)(nil)

// TxCountSessionRepo envuelve CountSessionRepo para que la inserción de una
// sesión (cabecera + líneas) sea atómica. Las lecturas van directo al pool.
type TxCountSessionRepo struct {
	runner *TxRunner
	reads  *CountSessionRepo
}

func NewTxCountSessionRepository(pool *pgxpool.Pool) *TxCountSessionRepo {
	return &TxCountSessionRepo{
		runner: NewTxRunner(pool),
		reads:  NewCountSessionRepository(pool),
	}
}

func (r *TxCountSessionRepo) Create(ctx context.Context, session *entity.CountSession) error {
	return r.runner.inTx(ctx, func(q Querier) error {
		return NewCountSessionRepository(q).Create(ctx, session)
	})
}

func (r *TxCountSessionRepo) GetByID(ctx context.Context, companyID, id string) (*entity.CountSession, error) {
	return r.reads.GetByID(ctx, companyID, id)
}

func (r *TxCountSessionRepo) List(ctx context.Context, companyID string, limit, offset int) ([]entity.CountSession, error) {
	return r.reads.List(ctx, companyID, limit, offset)
}
