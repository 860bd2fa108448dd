// Package export escribe runs y grillas de sweep en CSV.
package export

import (
	"fmt"
	"io"

	"github.com/alejandrodnm/optionlab/internal/domain"
	"github.com/alejandrodnm/optionlab/internal/ports"
	"github.com/gocarina/gocsv"
)

var _ ports.RunExporter = CSV{}

// CSV es el RunExporter del Service; delega en WriteRuns.
type CSV struct{}

// WriteRuns implementa ports.RunExporter.
func (CSV) WriteRuns(w io.Writer, runs []domain.Run) error {
	return WriteRuns(w, runs)
}

// runRecord usa los nombres de columna de la tabla runs.
type runRecord struct {
	ID                int64   `csv:"id"`
	CurrentPrice      float64 `csv:"current_price"`
	StrikePrice       float64 `csv:"strike_price"`
	Volatility        float64 `csv:"volatility"`
	InterestRate      float64 `csv:"interest_rate"`
	TimeToMaturity    float64 `csv:"time_to_maturity"`
	CallPurchasePrice float64 `csv:"call_purchase_price"`
	PutPurchasePrice  float64 `csv:"put_purchase_price"`
	CallPnL           float64 `csv:"call_pnl"`
	PutPnL            float64 `csv:"put_pnl"`
}

// gridRecord es una celda de la grilla en formato largo.
type gridRecord struct {
	VolIndex   int     `csv:"vol_index"`
	SpotIndex  int     `csv:"spot_index"`
	Volatility float64 `csv:"volatility"`
	Spot       float64 `csv:"spot"`
	CallPrice  float64 `csv:"call_price"`
	PutPrice   float64 `csv:"put_price"`
}

// WriteRuns escribe los runs con header, en el orden recibido.
func WriteRuns(w io.Writer, runs []domain.Run) error {
	records := make([]*runRecord, 0, len(runs))
	for _, r := range runs {
		records = append(records, &runRecord{
			ID:                r.ID,
			CurrentPrice:      r.Spot,
			StrikePrice:       r.Strike,
			Volatility:        r.Volatility,
			InterestRate:      r.Rate,
			TimeToMaturity:    r.Maturity,
			CallPurchasePrice: r.CallPurchasePrice,
			PutPurchasePrice:  r.PutPurchasePrice,
			CallPnL:           r.CallPnL,
			PutPnL:            r.PutPnL,
		})
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("export.WriteRuns: %w", err)
	}
	return nil
}

// WriteGrid escribe una fila por celda, recorriendo [vol][spot].
func WriteGrid(w io.Writer, grid domain.SweepGrid) error {
	rows, cols := grid.Shape()
	records := make([]*gridRecord, 0, rows*cols)
	for i, vol := range grid.Vols {
		for j, spot := range grid.Spots {
			records = append(records, &gridRecord{
				VolIndex:   i,
				SpotIndex:  j,
				Volatility: vol,
				Spot:       spot,
				CallPrice:  grid.CallPrices[i][j],
				PutPrice:   grid.PutPrices[i][j],
			})
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("export.WriteGrid: %w", err)
	}
	return nil
}
