package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El catálogo es administrado por otro módulo; el núcleo de inventario
// solo lo consulta para etiquetado y para valorizar conteos físicos.
type Product struct {
	ID        string
	CompanyID string
	SKU       string // código único por empresa
	Name      string
	Price     decimal.Decimal // precio de venta
	Cost      decimal.Decimal // costo unitario para valorización
	MinStock  decimal.Decimal // mínimo deseado (señal de reposición)
	MaxStock  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
