package domain

// QuoteResult es la salida de una evaluación del modelo. CallGamma == PutGamma siempre.
type QuoteResult struct {
	CallPrice float64
	PutPrice  float64
	CallDelta float64
	PutDelta  float64
	CallGamma float64
	PutGamma  float64
}

// PnLResult compara el precio teórico con el precio pagado.
// Positivo = ganancia.
type PnLResult struct {
	Quote             QuoteResult
	CallPurchasePrice float64
	PutPurchasePrice  float64
	CallPnL           float64 // Quote.CallPrice - CallPurchasePrice
	PutPnL            float64 // Quote.PutPrice - PutPurchasePrice
}
