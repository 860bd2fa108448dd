package ports

import (
	"context"

	"github.com/alejandrodnm/optionlab/internal/domain"
)

// RunStore persiste cada cálculo de PnL y devuelve los runs anteriores.
type RunStore interface {
	// StoreRun guarda los nueve escalares del run y devuelve el ID asignado.
	// El ID de entrada se ignora.
	StoreRun(ctx context.Context, run domain.Run) (int64, error)

	// ListRuns devuelve todos los runs en orden de inserción.
	ListRuns(ctx context.Context) ([]domain.Run, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
