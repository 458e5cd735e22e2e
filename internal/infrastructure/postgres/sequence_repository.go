package postgres

import (
	"context"
	"fmt"

	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo entrega consecutivos por (empresa, familia) con un upsert
// atómico en una sola sentencia: dos llamadas concurrentes jamás reciben
// el mismo valor porque el incremento ocurre del lado del servidor.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el siguiente valor de la secuencia. Si la
// fila no existe la crea arrancando en 1.
func (r *SequenceRepo) Next(ctx context.Context, companyID, family string) (int64, error) {
	query := `
		INSERT INTO document_sequences (company_id, family, next_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, family)
		DO UPDATE SET next_value = document_sequences.next_value + 1,
		              updated_at = NOW()
		RETURNING next_value`
	var value int64
	if err := r.q.QueryRow(ctx, query, companyID, family).Scan(&value); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSequenceUnavailable, err)
	}
	return value, nil
}
