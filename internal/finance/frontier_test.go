package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioParams() FrontierParams {
	p := DefaultFrontierParams()
	p.MVP = Portfolio{Name: "MVP", ExpectedReturn: 1.25, StdDev: 5.47}
	p.Tangency = Portfolio{Name: "P*", ExpectedReturn: 4.86, StdDev: 11.37}
	p.RiskFreeRate = 0.1566
	p.Samples = 100
	return p
}

func TestCombinePortfolios_Endpoints(t *testing.T) {
	mvp, tan := MVPPortfolio, TangencyShortPortfolio

	p0 := CombinePortfolios(mvp, tan, 0)
	assert.Equal(t, mvp.StdDev, p0.StdDev)
	assert.Equal(t, mvp.ExpectedReturn, p0.ExpectedReturn)

	p1 := CombinePortfolios(mvp, tan, 1)
	assert.Equal(t, tan.StdDev, p1.StdDev)
	assert.Equal(t, tan.ExpectedReturn, p1.ExpectedReturn)
}

func TestCombinePortfolios_NoCorrelationTerm(t *testing.T) {
	p := CombinePortfolios(MVPPortfolio, TangencyShortPortfolio, 0.5)
	a, b := 0.5*11.37, 0.5*5.47
	want := math.Sqrt(a*a + b*b)
	assert.Equal(t, want, p.StdDev)
	assert.InDelta(t, (1.25+4.86)/2, p.ExpectedReturn, 1e-12)
	// the uncorrelated mix is less risky than either leg's linear blend
	assert.Less(t, p.StdDev, 0.5*11.37+0.5*5.47)
}

func TestComputeFrontier_Samples(t *testing.T) {
	res, err := ComputeFrontier(scenarioParams())
	require.NoError(t, err)
	require.Len(t, res.Samples, 100)

	assert.Equal(t, 0.0, res.Samples[0].Weight)
	assert.Equal(t, 1.0, res.Samples[99].Weight)
	assert.Equal(t, 5.47, res.Samples[0].StdDev)
	assert.Equal(t, 11.37, res.Samples[99].StdDev)

	for i := 1; i < len(res.Samples); i++ {
		assert.Greater(t, res.Samples[i].Weight, res.Samples[i-1].Weight)
		assert.Greater(t, res.Samples[i].ExpectedReturn, res.Samples[i-1].ExpectedReturn, "return must rise with weight at %d", i)
		assert.Equal(t, i, res.Samples[i].Index)
	}
}

func TestComputeFrontier_FilterKeepsOrderAndBounds(t *testing.T) {
	params := scenarioParams()
	params.Bounds = FrontierBounds{MaxReturn: 4, MaxStdDev: 9}
	res, err := ComputeFrontier(params)
	require.NoError(t, err)
	require.NotEmpty(t, res.Frontier)
	assert.Less(t, len(res.Frontier), len(res.Samples))
	require.Len(t, res.Sharpe, len(res.Frontier))

	prev := -1
	for _, p := range res.Frontier {
		assert.Greater(t, p.Index, prev)
		prev = p.Index
		assert.Equal(t, res.Samples[p.Index], p)
		assert.LessOrEqual(t, p.ExpectedReturn, 4.0)
		assert.LessOrEqual(t, p.StdDev, 9.0)
	}
	// every sample inside the bounds was kept
	kept := 0
	for _, s := range res.Samples {
		if s.ExpectedReturn <= 4 && s.StdDev <= 9 {
			kept++
		}
	}
	assert.Equal(t, kept, len(res.Frontier))
}

func TestComputeFrontier_MarketPortfolioIsMaxSharpe(t *testing.T) {
	res, err := ComputeFrontier(scenarioParams())
	require.NoError(t, err)

	m := res.Market
	assert.Equal(t, res.Frontier[m.Position], m.FrontierPoint)
	assert.Equal(t, res.Sharpe[m.Position], m.SharpeRatio)
	for i, s := range res.Sharpe {
		assert.GreaterOrEqual(t, m.SharpeRatio, s, "point %d beats the market portfolio", i)
		if s == m.SharpeRatio {
			assert.GreaterOrEqual(t, i, m.Position, "first maximum must win")
		}
	}
}

func TestComputeFrontier_Scenario(t *testing.T) {
	res, err := ComputeFrontier(scenarioParams())
	require.NoError(t, err)

	assert.Len(t, res.Frontier, 100)
	assert.GreaterOrEqual(t, res.Market.StdDev, 5.47)
	assert.LessOrEqual(t, res.Market.StdDev, 11.37)

	mvpSharpe := (1.25 - 0.1566) / 5.47
	assert.InDelta(t, 0.1990, mvpSharpe, 1e-3)
	assert.GreaterOrEqual(t, res.Market.SharpeRatio, mvpSharpe)

	assert.Equal(t, 49, res.Market.Index)
	assert.InDelta(t, 0.4594, res.Market.SharpeRatio, 1e-4)
}

func TestComputeFrontier_CapitalMarketLine(t *testing.T) {
	res, err := ComputeFrontier(scenarioParams())
	require.NoError(t, err)
	cml := res.CML

	require.Len(t, cml.StdDevs, 100)
	require.Len(t, cml.Returns, 100)
	assert.Equal(t, 0.0, cml.StdDevs[0])
	assert.Equal(t, 0.1566, cml.Returns[0])
	assert.Equal(t, 0.1566, cml.ReturnAt(0))
	assert.InDelta(t, 11.37+5, cml.StdDevs[99], 1e-9)
	assert.InDelta(t, res.Market.ExpectedReturn, cml.ReturnAt(res.Market.StdDev), 1e-12)
	assert.InDelta(t, res.Market.SharpeRatio, cml.Slope, 1e-12)

	for i, x := range cml.StdDevs {
		assert.Equal(t, cml.ReturnAt(x), cml.Returns[i])
	}
}

func TestComputeFrontier_Idempotent(t *testing.T) {
	a, err := ComputeFrontier(DefaultFrontierParams())
	require.NoError(t, err)
	b, err := ComputeFrontier(DefaultFrontierParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeFrontier_EmptyFrontier(t *testing.T) {
	params := scenarioParams()
	params.Bounds.MaxReturn = 1.0
	res, err := ComputeFrontier(params)
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrEmptyFrontier)
}

func TestComputeFrontier_ZeroStdDev(t *testing.T) {
	params := scenarioParams()
	params.MVP.StdDev = 0
	params.Tangency.StdDev = 0
	_, err := ComputeFrontier(params)
	require.ErrorIs(t, err, ErrZeroStdDev)
}

func TestComputeFrontier_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FrontierParams)
	}{
		{"one sample", func(p *FrontierParams) { p.Samples = 1 }},
		{"nan return", func(p *FrontierParams) { p.MVP.ExpectedReturn = math.NaN() }},
		{"inf risk-free", func(p *FrontierParams) { p.RiskFreeRate = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := scenarioParams()
			tt.mutate(&params)
			_, err := ComputeFrontier(params)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestSharpeRatio(t *testing.T) {
	s, err := SharpeRatio(1.25, 5.47, 0.1566)
	require.NoError(t, err)
	assert.InDelta(t, 0.1999, s, 1e-4)

	_, err = SharpeRatio(1, 0, 0)
	assert.ErrorIs(t, err, ErrZeroStdDev)
}

func TestDefaultPortfolios_ReturnsCopy(t *testing.T) {
	a := DefaultPortfolios()
	require.Len(t, a, 3)
	a[0].Name = "changed"
	assert.Equal(t, "MVP", DefaultPortfolios()[0].Name)
}
