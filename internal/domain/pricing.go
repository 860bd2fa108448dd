package domain

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormCDF es Φ, la función de distribución acumulada normal estándar.
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormPDF es φ, la densidad normal estándar.
func NormPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// riskFactors calcula d1 y d2. Asume un contrato ya validado.
//
//	d1 = (ln(S/K) + (r + σ²/2)·T) / (σ·√T)
//	d2 = d1 - σ·√T
func riskFactors(c OptionContract) (d1, d2 float64) {
	volSqrtT := c.Volatility * math.Sqrt(c.Maturity)
	d1 = (math.Log(c.Spot/c.Strike) + (c.Rate+0.5*c.Volatility*c.Volatility)*c.Maturity) / volSqrtT
	d2 = d1 - volSqrtT
	return d1, d2
}

// Price evalúa el modelo Black-Scholes-Merton para un call y un put europeos.
// Función pura: mismo contrato, mismo resultado. Devuelve *DomainError si el
// contrato no pasa Validate o si el resultado no es finito (tasas muy
// negativas con vencimientos largos desbordan e^{-rT}).
func Price(c OptionContract) (QuoteResult, error) {
	if err := c.Validate(); err != nil {
		return QuoteResult{}, err
	}

	d1, d2 := riskFactors(c)
	discountedStrike := c.Strike * math.Exp(-c.Rate*c.Maturity)
	nd1 := NormCDF(d1)

	gamma := NormPDF(d1) / (c.Spot * c.Volatility * math.Sqrt(c.Maturity))

	q := QuoteResult{
		CallPrice: c.Spot*nd1 - discountedStrike*NormCDF(d2),
		PutPrice:  discountedStrike*NormCDF(-d2) - c.Spot*NormCDF(-d1),
		CallDelta: nd1,
		PutDelta:  nd1 - 1,
		CallGamma: gamma,
		PutGamma:  gamma,
	}
	if err := q.checkFinite(); err != nil {
		return QuoteResult{}, err
	}
	return q, nil
}

func (q QuoteResult) checkFinite() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"call_price", q.CallPrice},
		{"put_price", q.PutPrice},
		{"call_delta", q.CallDelta},
		{"put_delta", q.PutDelta},
		{"call_gamma", q.CallGamma},
		{"put_gamma", q.PutGamma},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return domainErr(f.name, f.value, "result is not finite")
		}
	}
	return nil
}

// PnL evalúa el contrato y resta los precios de compra de cada pata.
// No añade modos de fallo a los de Price.
func PnL(c OptionContract, callPurchasePrice, putPurchasePrice float64) (PnLResult, error) {
	q, err := Price(c)
	if err != nil {
		return PnLResult{}, err
	}
	return PnLResult{
		Quote:             q,
		CallPurchasePrice: callPurchasePrice,
		PutPurchasePrice:  putPurchasePrice,
		CallPnL:           q.CallPrice - callPurchasePrice,
		PutPnL:            q.PutPrice - putPurchasePrice,
	}, nil
}
