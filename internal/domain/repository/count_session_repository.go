package repository

import (
	"context"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// CountSessionRepository es el puerto de sesiones de conteo físico.
// Las sesiones son registros de auditoría: se insertan completas y de forma
// atómica, y nunca se actualizan ni se borran.
type CountSessionRepository interface {
	Create(ctx context.Context, session *entity.CountSession) error
	GetByID(ctx context.Context, companyID, id string) (*entity.CountSession, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]entity.CountSession, error)
}
