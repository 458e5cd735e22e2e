package entity

import "github.com/shopspring/decimal"

// StockBalance es la proyección derivada del saldo de un producto:
// suma de movimientos canónicos más el aporte del libro histórico.
// Nunca se persiste como fuente de verdad; se recalcula en cada lectura.
type StockBalance struct {
	ProductID string
	Balance   decimal.Decimal
}

// AvailabilityRow es la fila que se muestra a los demás módulos:
// available = balance - reserved. Puede ser negativa (sobreventa);
// esta capa no lo bloquea, solo lo expone como señal al operador.
type AvailabilityRow struct {
	ProductID string
	SKU       string
	Name      string
	Balance   decimal.Decimal
	Reserved  decimal.Decimal
	Available decimal.Decimal
	LowStock  bool // available por debajo del mínimo configurado del producto
}

// KardexEntry es una fila del kardex: el movimiento más el saldo acumulado
// al reproducir el libro en orden de creación. Derivado solo para mostrar.
type KardexEntry struct {
	Movement Movement
	Delta    decimal.Decimal // aporte con signo de este movimiento
	Running  decimal.Decimal // saldo acumulado después de aplicar Delta
}
