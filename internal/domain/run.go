package domain

// Run es una evaluación de PnL persistida: los nueve escalares más el ID que
// asigna el store. El ID es opaco para el modelo.
type Run struct {
	ID                int64
	Spot              float64
	Strike            float64
	Volatility        float64
	Rate              float64
	Maturity          float64
	CallPurchasePrice float64
	PutPurchasePrice  float64
	CallPnL           float64
	PutPnL            float64
}

// NewRun arma el registro a persistir a partir del contrato y su PnL. ID queda en 0.
func NewRun(c OptionContract, pnl PnLResult) Run {
	return Run{
		Spot:              c.Spot,
		Strike:            c.Strike,
		Volatility:        c.Volatility,
		Rate:              c.Rate,
		Maturity:          c.Maturity,
		CallPurchasePrice: pnl.CallPurchasePrice,
		PutPurchasePrice:  pnl.PutPurchasePrice,
		CallPnL:           pnl.CallPnL,
		PutPnL:            pnl.PutPnL,
	}
}

// Contract reconstruye el contrato evaluado en este run.
func (r Run) Contract() OptionContract {
	return OptionContract{
		Maturity:   r.Maturity,
		Strike:     r.Strike,
		Spot:       r.Spot,
		Volatility: r.Volatility,
		Rate:       r.Rate,
	}
}
