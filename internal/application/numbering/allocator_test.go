package numbering_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcardenas-dev/gestion-api/internal/application/numbering"
	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// fakeSequenceRepo simula el contador atómico del servidor con un mutex.
type fakeSequenceRepo struct {
	mu     sync.Mutex
	values map[string]int64
	fail   bool
	calls  int
}

func (f *fakeSequenceRepo) Next(_ context.Context, companyID, family string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return 0, errors.New("counter unreachable")
	}
	if f.values == nil {
		f.values = make(map[string]int64)
	}
	key := companyID + "/" + family
	f.values[key]++
	return f.values[key], nil
}

func TestNextNumber_FormatoConPrefijo(t *testing.T) {
	alloc := numbering.NewAllocator(&fakeSequenceRepo{})

	num, err := alloc.NextNumber(context.Background(), "co-1", entity.SequenceFamilyOrder)

	require.NoError(t, err)
	assert.Equal(t, "PED-000001", num)
}

// TestNextNumber_UnicidadConcurrente: N llamadas concurrentes reciben N
// valores distintos cuando el camino atómico está disponible.
func TestNextNumber_UnicidadConcurrente(t *testing.T) {
	alloc := numbering.NewAllocator(&fakeSequenceRepo{})

	const n = 50
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := alloc.NextNumber(context.Background(), "co-1", entity.SequenceFamilyOrder)
			assert.NoError(t, err)
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for num := range results {
		assert.False(t, seen[num], "consecutivo repetido: %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

// TestNextNumber_FallbackPorTimestamp: si el contador falla, el número se
// deriva del timestamp (prefijo + YYMMDDHHMM) y no es un error fatal.
func TestNextNumber_FallbackPorTimestamp(t *testing.T) {
	alloc := numbering.NewAllocator(&fakeSequenceRepo{fail: true})

	num, err := alloc.NextNumber(context.Background(), "co-1", entity.SequenceFamilyQuote)

	require.NoError(t, err, "el camino degradado no es fatal")
	assert.Regexp(t, regexp.MustCompile(`^COT\d{10}$`), num, "formato esperado COT+YYMMDDHHMM, fue %s", num)
}

func TestNextNumber_FamiliaDesconocidaUsaPrefijoGenerico(t *testing.T) {
	alloc := numbering.NewAllocator(&fakeSequenceRepo{})

	num, err := alloc.NextNumber(context.Background(), "co-1", "REMISION")

	require.NoError(t, err)
	assert.Equal(t, "DOC-000001", num)
}

// TestAllocate_ReintentaTrasColision: una colisión de unicidad en el insert
// pide otro número y reintenta.
func TestAllocate_ReintentaTrasColision(t *testing.T) {
	seq := &fakeSequenceRepo{}
	alloc := numbering.NewAllocator(seq)

	inserts := 0
	number, err := alloc.Allocate(context.Background(), "co-1", entity.SequenceFamilyOrder, func(number string) error {
		inserts++
		if inserts == 1 {
			return domain.ErrDuplicate
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, inserts)
	assert.Equal(t, "PED-000002", number)
}

// TestAllocate_AgotaExactamenteCincoIntentos: con colisión permanente el
// generador falla después de exactamente 5 intentos, ni más ni menos.
func TestAllocate_AgotaExactamenteCincoIntentos(t *testing.T) {
	seq := &fakeSequenceRepo{}
	alloc := numbering.NewAllocator(seq)

	inserts := 0
	_, err := alloc.Allocate(context.Background(), "co-1", entity.SequenceFamilyOrder, func(string) error {
		inserts++
		return domain.ErrDuplicate
	})

	assert.ErrorIs(t, err, domain.ErrRetriesExhausted)
	assert.Equal(t, 5, inserts, "deben ser exactamente 5 intentos")
	assert.Equal(t, 5, seq.calls, "cada intento pide un número nuevo")
}

// TestAllocate_ErrorDistintoDeDuplicadoNoReintenta: otros errores del
// insert se propagan de inmediato.
func TestAllocate_ErrorDistintoDeDuplicadoNoReintenta(t *testing.T) {
	alloc := numbering.NewAllocator(&fakeSequenceRepo{})

	boom := errors.New("disco lleno")
	inserts := 0
	_, err := alloc.Allocate(context.Background(), "co-1", entity.SequenceFamilyOrder, func(string) error {
		inserts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, inserts)
}
