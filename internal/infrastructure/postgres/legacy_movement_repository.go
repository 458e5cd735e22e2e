package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

var _ repository.LegacyMovementRepository = (*LegacyMovementRepo)(nil)

// LegacyMovementRepo lee el libro histórico (esquema anterior al corte:
// cantidad ya con signo, sin tipo). Solo lectura: la tabla quedó congelada
// al migrar y nunca recibe filas nuevas; la "migración" es por lectura, no
// por reescritura en lote.
type LegacyMovementRepo struct {
	q Querier
}

// NewLegacyMovementRepository construye el adaptador.
func NewLegacyMovementRepository(q Querier) *LegacyMovementRepo {
	return &LegacyMovementRepo{q: q}
}

// SumByProduct suma signed_qty del producto en el libro histórico.
func (r *LegacyMovementRepo) SumByProduct(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(signed_qty), 0)
		FROM legacy_movements
		WHERE company_id = $1 AND product_id = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, productID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum legacy movements: %w", err)
	}
	return sum, nil
}

// SumByProducts versión por lotes para la proyección de listas.
func (r *LegacyMovementRepo) SumByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id, COALESCE(SUM(signed_qty), 0)
		FROM legacy_movements
		WHERE company_id = $1 AND product_id = ANY($2)
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("sum legacy movements: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID string
		var sum decimal.Decimal
		if err := rows.Scan(&productID, &sum); err != nil {
			return nil, fmt.Errorf("scan legacy sum: %w", err)
		}
		out[productID] = sum
	}
	return out, rows.Err()
}
