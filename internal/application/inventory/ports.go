package inventory

import (
	"context"

	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de movimientos atado a esa tx. Garantiza que las dos patas de
// un traslado se escriban juntas o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error
}
