package ports

import (
	"context"

	"github.com/alejandrodnm/optionlab/internal/domain"
)

// Renderer presenta resultados al usuario. Solo recibe resultados completos:
// nunca se le pasa nada si el cálculo falló.
type Renderer interface {
	// RenderQuote muestra precios, deltas y gammas del contrato.
	RenderQuote(ctx context.Context, contract domain.OptionContract, quote domain.QuoteResult) error

	// RenderPnL muestra el PnL de call y put.
	RenderPnL(ctx context.Context, pnl domain.PnLResult) error

	// RenderHeatmaps muestra las matrices de precios call y put del sweep.
	RenderHeatmaps(ctx context.Context, grid domain.SweepGrid) error

	// RenderRuns muestra los runs persistidos.
	RenderRuns(ctx context.Context, runs []domain.Run) error
}
