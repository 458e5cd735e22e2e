package repository

import "context"

// SequenceRepository es el puerto del contador de consecutivos.
type SequenceRepository interface {
	// Next incrementa y devuelve el siguiente valor del contador de la
	// familia, como UNA sola operación indivisible del lado del servidor.
	// Leer-modificar-escribir desde el cliente está prohibido: es el único
	// patrón de este dominio inseguro bajo concurrencia.
	Next(ctx context.Context, companyID, family string) (int64, error)
}
