package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// Projector deriva el saldo actual de cada producto: suma con signo de los
// movimientos canónicos más el aporte del libro histórico.
//
// Es una función pura del contenido del libro al momento de leer: sin
// bloqueos, sin efectos, recomputable. Repetir la proyección sobre un libro
// sin cambios produce el mismo resultado; un append concurrente entre
// lectura y uso solo significa que la foto quedó vieja, lo cual es
// aceptable en este dominio.
//
// Las contribuciones canónica e histórica son siempre aditivas: las filas
// del libro histórico son historia cerrada que nunca se duplica al esquema
// canónico, así que no hay regla de exclusión entre ambas.
type Projector struct {
	movRepo    repository.MovementRepository
	legacyRepo repository.LegacyMovementRepository
}

// NewProjector construye el proyector.
func NewProjector(movRepo repository.MovementRepository, legacyRepo repository.LegacyMovementRepository) *Projector {
	return &Projector{movRepo: movRepo, legacyRepo: legacyRepo}
}

// Project proyecta el saldo de un producto.
func (p *Projector) Project(ctx context.Context, companyID, productID string) (entity.StockBalance, error) {
	rows, err := p.ProjectBatch(ctx, companyID, []string{productID})
	if err != nil {
		return entity.StockBalance{}, err
	}
	return rows[productID], nil
}

// ProjectBatch proyecta los saldos de un conjunto de productos en una sola
// pasada por fuente (una agregación canónica y una histórica), para vistas
// de lista. Todo producto pedido aparece en el resultado, con saldo cero si
// no tiene historia.
func (p *Projector) ProjectBatch(ctx context.Context, companyID string, productIDs []string) (map[string]entity.StockBalance, error) {
	canonical, err := p.movRepo.SumByProducts(ctx, companyID, productIDs)
	if err != nil {
		return nil, err
	}
	legacy, err := p.legacyRepo.SumByProducts(ctx, companyID, productIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]entity.StockBalance, len(productIDs))
	for _, id := range productIDs {
		balance := decimal.Zero
		if c, ok := canonical[id]; ok {
			balance = balance.Add(c)
		}
		if l, ok := legacy[id]; ok {
			balance = balance.Add(l)
		}
		out[id] = entity.StockBalance{ProductID: id, Balance: balance}
	}
	return out, nil
}
