package domain

import "math"

// OptionContract son los cinco parámetros Black-Scholes de una evaluación.
// Inmutable: cada punto del sweep construye su propia copia con With*.
type OptionContract struct {
	Maturity   float64 // años hasta el vencimiento, > 0
	Strike     float64 // > 0
	Spot       float64 // precio actual del subyacente, > 0
	Volatility float64 // anualizada, > 0
	Rate       float64 // tasa libre de riesgo continua, puede ser negativa
}

// Validate devuelve *DomainError si algún parámetro deja la fórmula indefinida.
// Los valores no finitos se rechazan en los cinco campos, incluido Rate.
func (c OptionContract) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"maturity", c.Maturity},
		{"volatility", c.Volatility},
		{"spot", c.Spot},
		{"strike", c.Strike},
	}
	for _, p := range positive {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return domainErr(p.field, p.value, "must be finite")
		}
		if p.value <= 0 {
			return domainErr(p.field, p.value, "must be > 0")
		}
	}
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return domainErr("rate", c.Rate, "must be finite")
	}
	return nil
}

// WithSpot devuelve una copia con otro spot.
func (c OptionContract) WithSpot(spot float64) OptionContract {
	c.Spot = spot
	return c
}

// WithVolatility devuelve una copia con otra volatilidad.
func (c OptionContract) WithVolatility(vol float64) OptionContract {
	c.Volatility = vol
	return c
}
