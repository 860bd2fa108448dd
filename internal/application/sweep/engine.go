package sweep

// engine.go: barrido spot × volatilidad alrededor de un contrato base.
//
// Cada fila (una volatilidad) es independiente: se reparte entre workers y cada
// worker escribe solo en su propia fila. El resultado es idéntico en modo
// secuencial (Workers == 1) y concurrente.

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/alejandrodnm/optionlab/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config controla el paralelismo del barrido.
type Config struct {
	Workers int // goroutines para evaluar filas (0 = NumCPU, 1 = secuencial)
}

// Engine construye SweepGrids invocando domain.Price una vez por celda.
type Engine struct {
	cfg Config
}

// New crea un Engine.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Sweep evalúa la grilla completa. Valida contrato base y parámetros antes de
// evaluar ninguna celda; si cualquier celda falla devuelve el error y una grilla
// vacía, nunca un resultado parcial.
func (e *Engine) Sweep(ctx context.Context, base domain.OptionContract, params domain.SweepParams) (domain.SweepGrid, error) {
	if err := base.Validate(); err != nil {
		return domain.SweepGrid{}, fmt.Errorf("sweep.Sweep: base contract: %w", err)
	}
	if err := params.Validate(); err != nil {
		return domain.SweepGrid{}, fmt.Errorf("sweep.Sweep: params: %w", err)
	}

	start := time.Now()
	grid := domain.NewSweepGrid(base, params.SpotSamples(base), params.VolSamples(base))

	workers := e.workers(len(grid.Vols))
	var err error
	if workers == 1 {
		err = fillSequential(grid)
	} else {
		err = fillConcurrent(ctx, grid, workers)
	}
	if err != nil {
		return domain.SweepGrid{}, err
	}

	rows, cols := grid.Shape()
	slog.Debug("sweep complete",
		"sweep_id", uuid.NewString(),
		"rows", rows,
		"cols", cols,
		"workers", workers,
		"vol_mode", params.VolMode,
		"elapsed", time.Since(start),
	)
	return grid, nil
}

func (e *Engine) workers(rows int) int {
	w := e.cfg.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	return max(1, min(w, rows))
}

func fillSequential(grid domain.SweepGrid) error {
	for i := range grid.Vols {
		if err := fillRow(grid, i); err != nil {
			return err
		}
	}
	return nil
}

func fillConcurrent(ctx context.Context, grid domain.SweepGrid, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range grid.Vols {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fillRow(grid, i)
		})
	}
	return g.Wait()
}

// fillRow evalúa la fila i. Escribe solo en CallPrices[i] y PutPrices[i].
func fillRow(grid domain.SweepGrid, i int) error {
	for j := range grid.Spots {
		q, err := domain.Price(grid.CellContract(i, j))
		if err != nil {
			return fmt.Errorf("sweep.Sweep: cell [%d][%d]: %w", i, j, err)
		}
		grid.CallPrices[i][j] = q.CallPrice
		grid.PutPrices[i][j] = q.PutPrice
	}
	return nil
}
