package repository

import (
	"context"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// ProductRepository es el puerto de solo lectura al catálogo de productos.
// El catálogo lo administra otro módulo; el núcleo de inventario lo consulta
// para etiquetar disponibilidad y valorizar conteos.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	ListByIDs(ctx context.Context, companyID string, ids []string) (map[string]entity.Product, error)
}
