package numbering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// MaxAttempts tope duro de reintentos de asignación de consecutivo.
// Un tope acotado evita enmascarar un contador roto de forma persistente.
const MaxAttempts = 5

// Allocator asigna consecutivos legibles de documentos por familia.
//
// Camino preferido: incremento atómico del lado del servidor, único incluso
// bajo llamadas concurrentes. Camino degradado: si el contador falla, se
// deriva un número del timestamp (prefijo + YYMMDDHHMM), que es mejor
// esfuerzo y NO garantiza unicidad: el conflicto se sigue manejando en el
// insert del documento.
type Allocator struct {
	seqRepo repository.SequenceRepository
}

// NewAllocator construye el asignador.
func NewAllocator(seqRepo repository.SequenceRepository) *Allocator {
	return &Allocator{seqRepo: seqRepo}
}

// NextNumber devuelve el siguiente consecutivo formateado de la familia.
func (a *Allocator) NextNumber(ctx context.Context, companyID, family string) (string, error) {
	prefix := entity.SequencePrefix(family)
	value, err := a.seqRepo.Next(ctx, companyID, family)
	if err != nil {
		// Contador no disponible: número derivado de timestamp, con
		// garantía de unicidad debilitada.
		log.Warn().Err(err).Str("family", family).Msg("contador de consecutivos no disponible, usando fallback por timestamp")
		return prefix + time.Now().Format("0601021504"), nil
	}
	return fmt.Sprintf("%s-%06d", prefix, value), nil
}

// Allocate pide un consecutivo y ejecuta insert con él; si el insert falla
// por duplicado pide otro número y reintenta, hasta MaxAttempts. Al agotar
// los intentos retorna domain.ErrRetriesExhausted (falla terminal única,
// nunca silenciosa).
func (a *Allocator) Allocate(ctx context.Context, companyID, family string, insert func(number string) error) (string, error) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		number, err := a.NextNumber(ctx, companyID, family)
		if err != nil {
			return "", err
		}
		err = insert(number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return "", err
		}
		log.Warn().Str("family", family).Str("number", number).Int("attempt", attempt).Msg("colisión de consecutivo, reintentando")
	}
	return "", domain.ErrRetriesExhausted
}
