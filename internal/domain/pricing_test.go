package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atmContract() OptionContract {
	return OptionContract{Maturity: 1, Strike: 100, Spot: 100, Volatility: 0.2, Rate: 0.05}
}

// contractGrid recorre una malla determinista de contratos válidos.
func contractGrid() []OptionContract {
	var out []OptionContract
	for _, spot := range []float64{20, 80, 100, 120, 400} {
		for _, strike := range []float64{50, 100, 150} {
			for _, vol := range []float64{0.01, 0.2, 0.75, 2.0} {
				for _, rate := range []float64{-0.02, 0, 0.05, 0.15} {
					for _, mat := range []float64{0.01, 0.5, 1, 5} {
						out = append(out, OptionContract{
							Maturity: mat, Strike: strike, Spot: spot, Volatility: vol, Rate: rate,
						})
					}
				}
			}
		}
	}
	return out
}

func TestPrice_ATMReferenceValues(t *testing.T) {
	q, err := Price(atmContract())
	require.NoError(t, err)

	assert.InDelta(t, 10.4506, q.CallPrice, 0.0001)
	assert.InDelta(t, 5.5735, q.PutPrice, 0.0001)
	assert.InDelta(t, 0.6368, q.CallDelta, 0.0001)
	assert.InDelta(t, -0.3632, q.PutDelta, 0.0001)
	assert.InDelta(t, 0.018762, q.CallGamma, 0.000001)
}

func TestRiskFactors_ATM(t *testing.T) {
	// ln(1)=0 → d1 = (0.05 + 0.02) / 0.2 = 0.35, d2 = 0.15
	d1, d2 := riskFactors(atmContract())
	assert.InDelta(t, 0.35, d1, 1e-12)
	assert.InDelta(t, 0.15, d2, 1e-12)
}

func TestPrice_PutCallParity(t *testing.T) {
	for _, c := range contractGrid() {
		q, err := Price(c)
		require.NoError(t, err)

		want := c.Spot - c.Strike*math.Exp(-c.Rate*c.Maturity)
		got := q.CallPrice - q.PutPrice
		tol := 1e-9 * math.Max(1, math.Max(c.Spot, c.Strike))
		assert.InDelta(t, want, got, tol, "contract %+v", c)
	}
}

func TestPrice_DeltaBounds(t *testing.T) {
	for _, c := range contractGrid() {
		q, err := Price(c)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, q.CallDelta, 0.0)
		assert.LessOrEqual(t, q.CallDelta, 1.0)
		assert.GreaterOrEqual(t, q.PutDelta, -1.0)
		assert.LessOrEqual(t, q.PutDelta, 0.0)
		assert.InDelta(t, 1.0, q.CallDelta-q.PutDelta, 1e-12)
	}
}

func TestPrice_GammaEqualAndNonNegative(t *testing.T) {
	for _, c := range contractGrid() {
		q, err := Price(c)
		require.NoError(t, err)
		assert.Equal(t, q.CallGamma, q.PutGamma)
		assert.GreaterOrEqual(t, q.CallGamma, 0.0)
	}
}

func TestPrice_NonNegativePrices(t *testing.T) {
	for _, c := range contractGrid() {
		q, err := Price(c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, q.CallPrice, -1e-9, "contract %+v", c)
		assert.GreaterOrEqual(t, q.PutPrice, -1e-9, "contract %+v", c)
		assert.False(t, math.IsNaN(q.CallPrice) || math.IsInf(q.CallPrice, 0))
		assert.False(t, math.IsNaN(q.PutPrice) || math.IsInf(q.PutPrice, 0))
	}
}

func TestPrice_MonotonicInSpot(t *testing.T) {
	base := atmContract()
	prev, err := Price(base.WithSpot(1))
	require.NoError(t, err)

	for spot := 2.0; spot <= 300; spot++ {
		q, err := Price(base.WithSpot(spot))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, q.CallPrice, prev.CallPrice-1e-12, "call at spot %.0f", spot)
		assert.LessOrEqual(t, q.PutPrice, prev.PutPrice+1e-12, "put at spot %.0f", spot)
		prev = q
	}
}

func TestPrice_Deterministic(t *testing.T) {
	a, err := Price(atmContract())
	require.NoError(t, err)
	b, err := Price(atmContract())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPrice_NegativeRateAllowed(t *testing.T) {
	c := atmContract()
	c.Rate = -0.01
	_, err := Price(c)
	assert.NoError(t, err)
}

func TestPrice_DomainRejection(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*OptionContract)
		field string
	}{
		{"maturity zero", func(c *OptionContract) { c.Maturity = 0 }, "maturity"},
		{"maturity negative", func(c *OptionContract) { c.Maturity = -1 }, "maturity"},
		{"volatility zero", func(c *OptionContract) { c.Volatility = 0 }, "volatility"},
		{"volatility negative", func(c *OptionContract) { c.Volatility = -0.2 }, "volatility"},
		{"spot zero", func(c *OptionContract) { c.Spot = 0 }, "spot"},
		{"spot negative", func(c *OptionContract) { c.Spot = -100 }, "spot"},
		{"strike negative", func(c *OptionContract) { c.Strike = -5 }, "strike"},
		{"strike zero", func(c *OptionContract) { c.Strike = 0 }, "strike"},
		{"spot NaN", func(c *OptionContract) { c.Spot = math.NaN() }, "spot"},
		{"volatility Inf", func(c *OptionContract) { c.Volatility = math.Inf(1) }, "volatility"},
		{"rate NaN", func(c *OptionContract) { c.Rate = math.NaN() }, "rate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := atmContract()
			tc.mod(&c)

			q, err := Price(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDomain))

			var de *DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tc.field, de.Field)
			assert.Equal(t, QuoteResult{}, q, "no partial result on domain error")
		})
	}
}

func TestPrice_NonFiniteResultRejected(t *testing.T) {
	cases := []struct {
		name string
		c    OptionContract
	}{
		{"huge negative rate", OptionContract{Maturity: 1, Strike: 100, Spot: 100, Volatility: 0.2, Rate: -800}},
		{"long maturity negative rate", OptionContract{Maturity: 1e6, Strike: 100, Spot: 100, Volatility: 0.2, Rate: -0.01}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.c.Validate(), "inputs are individually valid")

			q, err := Price(tc.c)
			require.ErrorIs(t, err, ErrDomain)
			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "call_price", de.Field)
			assert.Equal(t, QuoteResult{}, q)

			_, err = PnL(tc.c, 10, 10)
			assert.ErrorIs(t, err, ErrDomain)
		})
	}
}

// --- PnL ---

func TestPnL_Identity(t *testing.T) {
	purchases := []float64{0, 3.25, 10, 42.5}
	for _, c := range contractGrid()[:60] {
		q, err := Price(c)
		require.NoError(t, err)
		for _, cp := range purchases {
			for _, pp := range purchases {
				pnl, err := PnL(c, cp, pp)
				require.NoError(t, err)
				assert.Equal(t, q.CallPrice-cp, pnl.CallPnL)
				assert.Equal(t, q.PutPrice-pp, pnl.PutPnL)
				assert.Equal(t, q, pnl.Quote)
			}
		}
	}
}

func TestPnL_ReferenceDefaults(t *testing.T) {
	// valores por defecto de la UI original: compra a 10 ambos lados
	pnl, err := PnL(atmContract(), 10, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.4506, pnl.CallPnL, 0.0001)
	assert.InDelta(t, -4.4265, pnl.PutPnL, 0.0001)
}

func TestPnL_PropagatesDomainError(t *testing.T) {
	c := atmContract()
	c.Maturity = 0
	_, err := PnL(c, 10, 10)
	assert.ErrorIs(t, err, ErrDomain)
}

// --- Run ---

func TestNewRun_CarriesNineScalars(t *testing.T) {
	c := atmContract()
	pnl, err := PnL(c, 10, 10)
	require.NoError(t, err)

	r := NewRun(c, pnl)
	assert.Zero(t, r.ID)
	assert.Equal(t, c, r.Contract())
	assert.Equal(t, 10.0, r.CallPurchasePrice)
	assert.Equal(t, 10.0, r.PutPurchasePrice)
	assert.Equal(t, pnl.CallPnL, r.CallPnL)
	assert.Equal(t, pnl.PutPnL, r.PutPnL)
}
