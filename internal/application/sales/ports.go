package sales

import (
	"context"

	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de documentos y movimientos atados a esa tx. La finalización
// de un pedido (movimientos OUT + cambio de estado) debe ser atómica.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		docRepo repository.SalesDocumentRepository,
		movRepo repository.MovementRepository,
	) error) error
}
