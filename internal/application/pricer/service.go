package pricer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alejandrodnm/optionlab/internal/domain"
	"github.com/alejandrodnm/optionlab/internal/ports"
)

var (
	// ErrNoStore se devuelve al pedir historial sin store configurado.
	ErrNoStore = errors.New("pricer: no run store configured")
	// ErrNoExporter se devuelve al exportar sin exporter configurado.
	ErrNoExporter = errors.New("pricer: no run exporter configured")
)

// Sweeper es el subconjunto de sweep.Engine que usa el Service.
type Sweeper interface {
	Sweep(ctx context.Context, base domain.OptionContract, params domain.SweepParams) (domain.SweepGrid, error)
}

// Service orquesta modelo, sweep, renderer y store. Solo entrega resultados
// completos al renderer y al store: si el cálculo falla no se muestra ni se
// guarda nada.
type Service struct {
	sweeper  Sweeper
	store    ports.RunStore // nil = no persistir
	renderer ports.Renderer
	exporter ports.RunExporter // nil = Export no disponible
	params   domain.SweepParams
}

// NewService crea un Service. store y exporter pueden ser nil.
func NewService(sweeper Sweeper, store ports.RunStore, renderer ports.Renderer, exporter ports.RunExporter, params domain.SweepParams) *Service {
	return &Service{
		sweeper:  sweeper,
		store:    store,
		renderer: renderer,
		exporter: exporter,
		params:   params,
	}
}

// Quote evalúa el contrato y muestra precios y griegas.
func (s *Service) Quote(ctx context.Context, contract domain.OptionContract) (domain.QuoteResult, error) {
	q, err := domain.Price(contract)
	if err != nil {
		return domain.QuoteResult{}, fmt.Errorf("pricer.Quote: %w", err)
	}
	if err := s.renderer.RenderQuote(ctx, contract, q); err != nil {
		slog.Warn("renderer error", "err", err)
	}
	return q, nil
}

// CalculatePnL evalúa el contrato, muestra el PnL y persiste el run.
// Un fallo del store se loguea y no invalida el resultado ya calculado.
func (s *Service) CalculatePnL(ctx context.Context, contract domain.OptionContract, callPurchasePrice, putPurchasePrice float64) (domain.PnLResult, error) {
	pnl, err := domain.PnL(contract, callPurchasePrice, putPurchasePrice)
	if err != nil {
		return domain.PnLResult{}, fmt.Errorf("pricer.CalculatePnL: %w", err)
	}

	if err := s.renderer.RenderPnL(ctx, pnl); err != nil {
		slog.Warn("renderer error", "err", err)
	}

	if s.store == nil {
		return pnl, nil
	}
	id, err := s.store.StoreRun(ctx, domain.NewRun(contract, pnl))
	if err != nil {
		slog.Warn("storage error", "err", err)
		return pnl, nil
	}
	slog.Debug("run stored", "id", id, "call_pnl", pnl.CallPnL, "put_pnl", pnl.PutPnL)
	return pnl, nil
}

// Heatmap barre spot × volatilidad alrededor del contrato y muestra ambas matrices.
func (s *Service) Heatmap(ctx context.Context, contract domain.OptionContract) (domain.SweepGrid, error) {
	grid, err := s.sweeper.Sweep(ctx, contract, s.params)
	if err != nil {
		return domain.SweepGrid{}, fmt.Errorf("pricer.Heatmap: %w", err)
	}
	if err := s.renderer.RenderHeatmaps(ctx, grid); err != nil {
		slog.Warn("renderer error", "err", err)
	}
	return grid, nil
}

// History muestra los runs persistidos en orden de inserción.
func (s *Service) History(ctx context.Context) ([]domain.Run, error) {
	runs, err := s.listRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("pricer.History: %w", err)
	}
	if err := s.renderer.RenderRuns(ctx, runs); err != nil {
		slog.Warn("renderer error", "err", err)
	}
	return runs, nil
}

// Export escribe los runs persistidos en w, en orden de inserción.
// Devuelve cuántos runs se escribieron.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	if s.exporter == nil {
		return 0, fmt.Errorf("pricer.Export: %w", ErrNoExporter)
	}
	runs, err := s.listRuns(ctx)
	if err != nil {
		return 0, fmt.Errorf("pricer.Export: %w", err)
	}
	if err := s.exporter.WriteRuns(w, runs); err != nil {
		return 0, fmt.Errorf("pricer.Export: write: %w", err)
	}
	return len(runs), nil
}

func (s *Service) listRuns(ctx context.Context) ([]domain.Run, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.ListRuns(ctx)
}
