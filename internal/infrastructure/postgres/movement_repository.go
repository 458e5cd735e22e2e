package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla movements es append-only: este adaptador
// solo conoce INSERT y SELECT; no existe UPDATE ni DELETE y no debe
// agregarse ninguno.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, company_id, transaction_id, product_id, type, quantity, unit_cost, reference, notes, created_at, created_by`

// Create persiste un movimiento: un INSERT único y atómico.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.TransactionID, m.ProductID, m.Type,
		m.Quantity, m.UnitCost, m.Reference, m.Notes, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// CreateBatch persiste varios movimientos (patas de un TRANSFER, descarga
// de un pedido). Atómico cuando el Querier es una tx.
func (r *MovementRepo) CreateBatch(ctx context.Context, movs []*entity.Movement) error {
	for _, m := range movs {
		if err := r.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// ListByProduct lista los movimientos de un producto en orden de creación
// ascendente (orden de reproducción del kardex), con filtros opcionales.
func (r *MovementRepo) ListByProduct(ctx context.Context, companyID, productID string, f repository.MovementFilter) ([]entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE company_id = $1 AND product_id = $2`
	args := []any{companyID, productID}
	pos := 3
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.TransactionID, &m.ProductID, &m.Type,
			&m.Quantity, &m.UnitCost, &m.Reference, &m.Notes, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SumByProducts suma el aporte con signo de los movimientos canónicos por
// producto en una sola agregación. La interpretación de signo por tipo es
// la misma tabla de domain/inventory: IN suma, OUT resta, ADJUSTMENT y
// TRANSFER llevan el signo almacenado.
func (r *MovementRepo) SumByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id,
		       COALESCE(SUM(CASE type
		           WHEN 'IN'  THEN quantity
		           WHEN 'OUT' THEN -quantity
		           ELSE quantity
		       END), 0)
		FROM movements
		WHERE company_id = $1 AND product_id = ANY($2)
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("sum movements: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID string
		var sum decimal.Decimal
		if err := rows.Scan(&productID, &sum); err != nil {
			return nil, fmt.Errorf("scan movement sum: %w", err)
		}
		out[productID] = sum
	}
	return out, rows.Err()
}
