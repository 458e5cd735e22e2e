package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/inventory"
)

func mov(movType, qty string) entity.Movement {
	return entity.Movement{
		ProductID: "p-1",
		Type:      movType,
		Quantity:  decimal.RequireFromString(qty),
	}
}

// TestSignedDelta_TablaDeSignos verifica la tabla de resolución de signo:
// IN:+1, OUT:-1, ADJUSTMENT: signo almacenado, TRANSFER: patas con signo.
func TestSignedDelta_TablaDeSignos(t *testing.T) {
	cases := []struct {
		name string
		m    entity.Movement
		want string
	}{
		{"entrada suma", mov(entity.MovementTypeIN, "10"), "10"},
		{"salida resta", mov(entity.MovementTypeOUT, "4"), "-4"},
		{"ajuste positivo", mov(entity.MovementTypeADJUSTMENT, "2"), "2"},
		{"ajuste negativo", mov(entity.MovementTypeADJUSTMENT, "-3"), "-3"},
		{"transfer pata salida", mov(entity.MovementTypeTRANSFER, "-5"), "-5"},
		{"transfer pata entrada", mov(entity.MovementTypeTRANSFER, "5"), "5"},
		{"tipo desconocido no aporta", mov("UNKNOWN", "9"), "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.SignedDelta(tc.m)
			assert.True(t, d(tc.want).Equal(got), "delta esperado %s, fue %s", tc.want, got)
		})
	}
}

// TestFoldBalance_Conmutativo: permutar el orden de los movimientos no
// cambia el saldo calculado.
func TestFoldBalance_Conmutativo(t *testing.T) {
	movs := []entity.Movement{
		mov(entity.MovementTypeIN, "10"),
		mov(entity.MovementTypeOUT, "3"),
		mov(entity.MovementTypeADJUSTMENT, "2"),
		mov(entity.MovementTypeTRANSFER, "-5"),
		mov(entity.MovementTypeTRANSFER, "5"),
	}
	perm := []entity.Movement{movs[3], movs[1], movs[4], movs[0], movs[2]}

	a := inventory.FoldBalance(movs)
	b := inventory.FoldBalance(perm)

	assert.True(t, a.Equal(b), "el fold debe ser conmutativo: %s vs %s", a, b)
	assert.True(t, d("9").Equal(a), "saldo esperado 9, fue %s", a)
}

// TestFoldBalance_TransferNetaCero: las dos patas de un traslado netean cero.
func TestFoldBalance_TransferNetaCero(t *testing.T) {
	movs := []entity.Movement{
		mov(entity.MovementTypeTRANSFER, "-7"),
		mov(entity.MovementTypeTRANSFER, "7"),
	}
	assert.True(t, inventory.FoldBalance(movs).IsZero())
}

// TestKardex_SaldoAcumulado: reproducir [+10, -3, +2] produce saldos
// [10, 7, 9] y el saldo final coincide con el fold completo.
func TestKardex_SaldoAcumulado(t *testing.T) {
	movs := []entity.Movement{
		mov(entity.MovementTypeIN, "10"),
		mov(entity.MovementTypeOUT, "3"),
		mov(entity.MovementTypeADJUSTMENT, "2"),
	}

	entries := inventory.Kardex(decimal.Zero, movs)
	require.Len(t, entries, 3)

	assert.True(t, d("10").Equal(entries[0].Running), "saldo 1 debe ser 10, fue %s", entries[0].Running)
	assert.True(t, d("7").Equal(entries[1].Running), "saldo 2 debe ser 7, fue %s", entries[1].Running)
	assert.True(t, d("9").Equal(entries[2].Running), "saldo 3 debe ser 9, fue %s", entries[2].Running)

	final := entries[len(entries)-1].Running
	assert.True(t, inventory.FoldBalance(movs).Equal(final), "el kardex debe cerrar igual que la proyección")
}

// TestKardex_SaldoInicialHistorico: el aporte del libro histórico se aplica
// como saldo de apertura.
func TestKardex_SaldoInicialHistorico(t *testing.T) {
	entries := inventory.Kardex(d("5"), []entity.Movement{mov(entity.MovementTypeOUT, "2")})
	require.Len(t, entries, 1)
	assert.True(t, d("3").Equal(entries[0].Running))
}

// TestValidQuantity valida las reglas de cantidad por tipo.
func TestValidQuantity(t *testing.T) {
	assert.True(t, inventory.ValidQuantity(entity.MovementTypeIN, d("1")))
	assert.False(t, inventory.ValidQuantity(entity.MovementTypeIN, d("0")))
	assert.False(t, inventory.ValidQuantity(entity.MovementTypeIN, d("-1")))
	assert.False(t, inventory.ValidQuantity(entity.MovementTypeOUT, d("-2")))
	assert.True(t, inventory.ValidQuantity(entity.MovementTypeADJUSTMENT, d("-2")), "ajuste negativo conserva su signo")
	assert.False(t, inventory.ValidQuantity(entity.MovementTypeADJUSTMENT, d("0")))
	assert.True(t, inventory.ValidQuantity(entity.MovementTypeTRANSFER, d("-2")))
	assert.False(t, inventory.ValidQuantity("UNKNOWN", d("1")))
}
