package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// VolMode elige cómo se generan las muestras de volatilidad del sweep.
type VolMode string

const (
	// VolModeFloor barre desde base·VolFloor hasta base (comportamiento de referencia).
	VolModeFloor VolMode = "floor"
	// VolModeSymmetric barre base·(1 ± VolSpan).
	VolModeSymmetric VolMode = "symmetric"
)

// SweepParams define la grilla spot × volatilidad alrededor de un contrato base.
type SweepParams struct {
	SpotSpan float64 // fracción a cada lado del spot base, en [0, 1)
	VolMode  VolMode
	VolFloor float64 // VolModeFloor: fracción mínima de la vol base, en (0, 1]
	VolSpan  float64 // VolModeSymmetric: fracción a cada lado de la vol base, en [0, 1)
	Samples  int     // muestras por eje, >= 1
}

// DefaultSweepParams reproduce la grilla de referencia: spot ±20%, vol de 50% a 100%
// de la base, 10×10.
func DefaultSweepParams() SweepParams {
	return SweepParams{
		SpotSpan: 0.2,
		VolMode:  VolModeFloor,
		VolFloor: 0.5,
		VolSpan:  0.2,
		Samples:  10,
	}
}

// Validate rechaza rangos que generarían muestras no positivas antes de evaluar
// ninguna celda.
func (p SweepParams) Validate() error {
	if p.Samples < 1 {
		return domainErr("samples", float64(p.Samples), "must be >= 1")
	}
	if !inUnitRange(p.SpotSpan, true, false) {
		return domainErr("spot_span", p.SpotSpan, "must be in [0, 1)")
	}
	switch p.VolMode {
	case VolModeFloor:
		if !inUnitRange(p.VolFloor, false, true) {
			return domainErr("vol_floor", p.VolFloor, "must be in (0, 1]")
		}
	case VolModeSymmetric:
		if !inUnitRange(p.VolSpan, true, false) {
			return domainErr("vol_span", p.VolSpan, "must be in [0, 1)")
		}
	default:
		return fmt.Errorf("domain.SweepParams: unknown vol mode %q", p.VolMode)
	}
	return nil
}

// SpotSamples devuelve Samples valores equiespaciados en base·(1 ± SpotSpan).
func (p SweepParams) SpotSamples(base OptionContract) []float64 {
	return Linspace(base.Spot*(1-p.SpotSpan), base.Spot*(1+p.SpotSpan), p.Samples)
}

// VolSamples devuelve Samples valores de volatilidad según VolMode.
func (p SweepParams) VolSamples(base OptionContract) []float64 {
	if p.VolMode == VolModeSymmetric {
		return Linspace(base.Volatility*(1-p.VolSpan), base.Volatility*(1+p.VolSpan), p.Samples)
	}
	return Linspace(base.Volatility*p.VolFloor, base.Volatility, p.Samples)
}

// Linspace devuelve n valores equiespaciados entre lo y hi, ambos incluidos.
// Con n == 1 devuelve solo lo; con n < 1, nil.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// SweepGrid es la matriz de precios teóricos indexada [vol][spot].
type SweepGrid struct {
	Base       OptionContract
	Spots      []float64
	Vols       []float64
	CallPrices [][]float64
	PutPrices  [][]float64
}

// NewSweepGrid reserva las dos matrices con dimensión len(vols) × len(spots).
func NewSweepGrid(base OptionContract, spots, vols []float64) SweepGrid {
	g := SweepGrid{
		Base:       base,
		Spots:      spots,
		Vols:       vols,
		CallPrices: make([][]float64, len(vols)),
		PutPrices:  make([][]float64, len(vols)),
	}
	for i := range vols {
		g.CallPrices[i] = make([]float64, len(spots))
		g.PutPrices[i] = make([]float64, len(spots))
	}
	return g
}

// CellContract es el contrato evaluado en la celda [i][j].
func (g SweepGrid) CellContract(i, j int) OptionContract {
	return g.Base.WithVolatility(g.Vols[i]).WithSpot(g.Spots[j])
}

// Shape devuelve (filas, columnas) = (len(Vols), len(Spots)).
func (g SweepGrid) Shape() (rows, cols int) {
	return len(g.Vols), len(g.Spots)
}

// inUnitRange comprueba v en [0,1] con extremos abiertos o cerrados.
func inUnitRange(v float64, closedLo, closedHi bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if v < 0 || (v == 0 && !closedLo) {
		return false
	}
	if v > 1 || (v == 1 && !closedHi) {
		return false
	}
	return true
}
