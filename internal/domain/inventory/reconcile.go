package inventory

import "github.com/shopspring/decimal"

// LineResult es la discrepancia de una línea de conteo físico.
// Shortage es negativo cuando falta mercancía; Overage es cero o positivo.
type LineResult struct {
	Shortage      decimal.Decimal
	Overage       decimal.Decimal
	ShortageValue decimal.Decimal
	OverageValue  decimal.Decimal
}

// ReconcileLine compara el saldo del sistema contra la cantidad física
// contada y valoriza la discrepancia al costo unitario.
//
// Las fórmulas son asimétricas a propósito, incluida la rama de saldo de
// sistema negativo (SKU sobrevendido); son comportamiento observado del
// negocio y no deben "corregirse" ni generalizarse:
//
//	systemQty - physicalQty > 0  → shortage = -(systemQty - physicalQty)
//	systemQty < 0                → shortage = systemQty + physicalQty
//	                               (conserva signo; se valoriza solo si < 0)
//	physicalQty - systemQty > 0:
//	    systemQty < 0            → overage = max(0, physicalQty + systemQty)
//	    en otro caso             → overage = physicalQty - systemQty
//
// Es una función pura, sin I/O, para poder probarla exhaustivamente en los
// bordes de signo.
func ReconcileLine(systemQty, physicalQty, unitCost decimal.Decimal) LineResult {
	var res LineResult

	diff := systemQty.Sub(physicalQty)
	switch {
	case diff.GreaterThan(decimal.Zero):
		res.Shortage = diff.Neg()
		res.ShortageValue = res.Shortage.Mul(unitCost)
	case systemQty.LessThan(decimal.Zero):
		res.Shortage = systemQty.Add(physicalQty)
		if res.Shortage.LessThan(decimal.Zero) {
			res.ShortageValue = res.Shortage.Mul(unitCost)
		}
	default:
		res.Shortage = decimal.Zero
	}

	over := physicalQty.Sub(systemQty)
	if over.GreaterThan(decimal.Zero) {
		if systemQty.LessThan(decimal.Zero) {
			res.Overage = decimal.Max(decimal.Zero, physicalQty.Add(systemQty))
		} else {
			res.Overage = over
		}
	} else {
		res.Overage = decimal.Zero
	}
	if res.Overage.GreaterThan(decimal.Zero) {
		res.OverageValue = res.Overage.Mul(unitCost)
	}

	return res
}

// SessionTotals agrega los valores de faltante y sobrante de una sesión.
func SessionTotals(lines []LineResult) (shortageTotal, overageTotal decimal.Decimal) {
	shortageTotal = decimal.Zero
	overageTotal = decimal.Zero
	for _, l := range lines {
		shortageTotal = shortageTotal.Add(l.ShortageValue)
		overageTotal = overageTotal.Add(l.OverageValue)
	}
	return shortageTotal, overageTotal
}
