package postgres

import (
	"context"
	"fmt"

	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

var _ repository.CountSessionRepository = (*CountSessionRepo)(nil)

// CountSessionRepo persiste sesiones de conteo físico. Solo INSERT y SELECT:
// una sesión es un registro de auditoría y nunca se actualiza ni se borra.
type CountSessionRepo struct {
	q Querier
}

func NewCountSessionRepository(q Querier) *CountSessionRepo {
	return &CountSessionRepo{q: q}
}

// Create inserta cabecera y líneas. Atómico cuando el Querier es una tx.
func (r *CountSessionRepo) Create(ctx context.Context, session *entity.CountSession) error {
	query := `
		INSERT INTO count_sessions (id, company_id, performed_by, shortage_total, overage_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		session.ID, session.CompanyID, session.PerformedBy,
		session.ShortageTotal, session.OverageTotal, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create count session: %w", err)
	}
	lineQuery := `
		INSERT INTO count_lines (session_id, product_id, product_code, unit_cost, system_qty, physical_qty, shortage, overage, shortage_value, overage_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i := range session.Lines {
		l := &session.Lines[i]
		if _, err := r.q.Exec(ctx, lineQuery,
			session.ID, l.ProductID, l.ProductCode, l.UnitCost,
			l.SystemQty, l.PhysicalQty, l.Shortage, l.Overage,
			l.ShortageValue, l.OverageValue,
		); err != nil {
			return fmt.Errorf("create count line: %w", err)
		}
	}
	return nil
}

// GetByID carga una sesión con sus líneas.
func (r *CountSessionRepo) GetByID(ctx context.Context, companyID, id string) (*entity.CountSession, error) {
	query := `
		SELECT id, company_id, performed_by, shortage_total, overage_total, created_at
		FROM count_sessions
		WHERE company_id = $1 AND id = $2`
	var s entity.CountSession
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&s.ID, &s.CompanyID, &s.PerformedBy, &s.ShortageTotal, &s.OverageTotal, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get count session: %w", err)
	}
	lines, err := r.loadLines(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return &s, nil
}

// List devuelve sesiones de la empresa, más recientes primero, sin líneas.
func (r *CountSessionRepo) List(ctx context.Context, companyID string, limit, offset int) ([]entity.CountSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `
		SELECT id, company_id, performed_by, shortage_total, overage_total, created_at
		FROM count_sessions
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list count sessions: %w", err)
	}
	defer rows.Close()
	var list []entity.CountSession
	for rows.Next() {
		var s entity.CountSession
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.PerformedBy, &s.ShortageTotal, &s.OverageTotal, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan count session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *CountSessionRepo) loadLines(ctx context.Context, sessionID string) ([]entity.CountLine, error) {
	query := `
		SELECT product_id, product_code, unit_cost, system_qty, physical_qty, shortage, overage, shortage_value, overage_value
		FROM count_lines
		WHERE session_id = $1
		ORDER BY product_code`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list count lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.CountLine
	for rows.Next() {
		var l entity.CountLine
		if err := rows.Scan(&l.ProductID, &l.ProductCode, &l.UnitCost, &l.SystemQty, &l.PhysicalQty,
			&l.Shortage, &l.Overage, &l.ShortageValue, &l.OverageValue); err != nil {
			return nil, fmt.Errorf("scan count line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
