package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	got := Linspace(80, 120, 5)
	require.Len(t, got, 5)
	for i, want := range []float64{80, 90, 100, 110, 120} {
		assert.InDelta(t, want, got[i], 1e-12)
	}
}

func TestLinspace_SingleAndEmpty(t *testing.T) {
	assert.Equal(t, []float64{0.1}, Linspace(0.1, 0.2, 1))
	assert.Nil(t, Linspace(0.1, 0.2, 0))
}

func TestDefaultSweepParams_ReferenceRanges(t *testing.T) {
	base := atmContract()
	p := DefaultSweepParams()
	require.NoError(t, p.Validate())

	spots := p.SpotSamples(base)
	vols := p.VolSamples(base)
	require.Len(t, spots, 10)
	require.Len(t, vols, 10)

	assert.InDelta(t, 80.0, spots[0], 1e-12)
	assert.InDelta(t, 120.0, spots[9], 1e-12)
	assert.InDelta(t, 0.1, vols[0], 1e-12)
	assert.InDelta(t, 0.2, vols[9], 1e-12)
}

func TestSweepParams_SymmetricVolMode(t *testing.T) {
	p := DefaultSweepParams()
	p.VolMode = VolModeSymmetric
	p.VolSpan = 0.5
	p.Samples = 3
	require.NoError(t, p.Validate())

	vols := p.VolSamples(atmContract())
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3}, vols, 1e-12)
}

func TestSweepParams_Validate_RejectsDegenerateRanges(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*SweepParams)
		field string
	}{
		{"zero samples", func(p *SweepParams) { p.Samples = 0 }, "samples"},
		{"spot span one", func(p *SweepParams) { p.SpotSpan = 1 }, "spot_span"},
		{"spot span negative", func(p *SweepParams) { p.SpotSpan = -0.1 }, "spot_span"},
		{"vol floor zero", func(p *SweepParams) { p.VolFloor = 0 }, "vol_floor"},
		{"vol floor above one", func(p *SweepParams) { p.VolFloor = 1.5 }, "vol_floor"},
		{"vol floor NaN", func(p *SweepParams) { p.VolFloor = math.NaN() }, "vol_floor"},
		{"symmetric span one", func(p *SweepParams) { p.VolMode = VolModeSymmetric; p.VolSpan = 1 }, "vol_span"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultSweepParams()
			tc.mod(&p)

			err := p.Validate()
			require.Error(t, err)
			var de *DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tc.field, de.Field)
		})
	}
}

func TestSweepParams_Validate_UnknownMode(t *testing.T) {
	p := DefaultSweepParams()
	p.VolMode = "upper"
	err := p.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDomain)
}

func TestSweepParams_FloorOneIsFlatVolAxis(t *testing.T) {
	p := DefaultSweepParams()
	p.VolFloor = 1
	require.NoError(t, p.Validate())
	for _, v := range p.VolSamples(atmContract()) {
		assert.InDelta(t, 0.2, v, 1e-12)
	}
}

func TestNewSweepGrid_Shape(t *testing.T) {
	g := NewSweepGrid(atmContract(), []float64{1, 2, 3}, []float64{0.1, 0.2})
	rows, cols := g.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	require.Len(t, g.CallPrices, 2)
	assert.Len(t, g.CallPrices[1], 3)
	assert.Len(t, g.PutPrices[0], 3)

	c := g.CellContract(1, 2)
	assert.Equal(t, 3.0, c.Spot)
	assert.Equal(t, 0.2, c.Volatility)
	assert.Equal(t, 100.0, c.Strike)
}
