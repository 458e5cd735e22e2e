package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountSession representa un conteo físico de inventario.
// Se persiste completa y de forma atómica al finalizar el conteo y queda
// inmutable: es un registro de auditoría de "lo que creíamos en ese momento",
// no un formulario editable. Las cifras de las líneas nunca se recalculan.
type CountSession struct {
	ID            string
	CompanyID     string
	PerformedBy   string // UserID del operador que realizó el conteo
	Lines         []CountLine
	ShortageTotal decimal.Decimal // suma de ShortageValue de todas las líneas
	OverageTotal  decimal.Decimal // suma de OverageValue de todas las líneas
	CreatedAt     time.Time
}

// CountLine es una línea del conteo: la foto del saldo del sistema al momento
// de contar, la cantidad física ingresada por el operador y la discrepancia
// valorizada al costo unitario vigente.
type CountLine struct {
	ProductID     string
	ProductCode   string
	UnitCost      decimal.Decimal
	SystemQty     decimal.Decimal // saldo proyectado al momento del conteo
	PhysicalQty   decimal.Decimal // cantidad contada por el operador
	Shortage      decimal.Decimal // faltante con signo (negativo cuando falta)
	Overage       decimal.Decimal // sobrante (cero o positivo)
	ShortageValue decimal.Decimal
	OverageValue  decimal.Decimal
}
