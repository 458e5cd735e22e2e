package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// Resolución de signo por tipo de movimiento, definida una sola vez:
//
//	IN         → +cantidad (la cantidad almacenada es positiva)
//	OUT        → -cantidad (la cantidad almacenada es positiva)
//	ADJUSTMENT → cantidad tal cual (el signo viene almacenado)
//	TRANSFER   → cantidad tal cual (patas pareadas con signo; netean cero)
//
// Ningún otro punto del código debe reinterpretar signos por tipo.

// SignedDelta devuelve el aporte con signo de un movimiento al saldo.
func SignedDelta(m entity.Movement) decimal.Decimal {
	switch m.Type {
	case entity.MovementTypeIN:
		return m.Quantity
	case entity.MovementTypeOUT:
		return m.Quantity.Neg()
	case entity.MovementTypeADJUSTMENT, entity.MovementTypeTRANSFER:
		return m.Quantity
	}
	return decimal.Zero
}

// FoldBalance acumula el saldo de una lista de movimientos canónicos.
// La acumulación es conmutativa: el orden de los movimientos no altera
// el resultado.
func FoldBalance(movements []entity.Movement) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(SignedDelta(m))
	}
	return balance
}

// Kardex reproduce los movimientos en orden de creación y devuelve cada
// fila con su saldo acumulado. opening es el saldo inicial (normalmente el
// aporte del libro histórico). Derivado solo para mostrar, no es un store.
func Kardex(opening decimal.Decimal, movements []entity.Movement) []entity.KardexEntry {
	entries := make([]entity.KardexEntry, 0, len(movements))
	running := opening
	for _, m := range movements {
		delta := SignedDelta(m)
		running = running.Add(delta)
		entries = append(entries, entity.KardexEntry{
			Movement: m,
			Delta:    delta,
			Running:  running,
		})
	}
	return entries
}

// ValidQuantity valida la cantidad de entrada según el tipo:
// IN/OUT exigen cantidad estrictamente positiva; ADJUSTMENT y las patas de
// TRANSFER exigen cantidad distinta de cero (conservan su signo).
func ValidQuantity(movementType string, qty decimal.Decimal) bool {
	switch movementType {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		return qty.GreaterThan(decimal.Zero)
	case entity.MovementTypeADJUSTMENT, entity.MovementTypeTRANSFER:
		return !qty.IsZero()
	}
	return false
}
