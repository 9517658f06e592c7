package finance

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidParams = errors.New("invalid frontier params")
	ErrEmptyFrontier = errors.New("no frontier point satisfies the return and std dev bounds")
	ErrZeroStdDev    = errors.New("frontier point has zero standard deviation")
)

// CombinePortfolios mixes the tangency portfolio (weight w) with the MVP (weight 1-w).
// The two deviations are combined as if uncorrelated; there is no covariance term.
func CombinePortfolios(mvp, tangency Portfolio, w float64) FrontierPoint {
	a := w * tangency.StdDev
	b := (1 - w) * mvp.StdDev
	return FrontierPoint{
		Weight:         w,
		ExpectedReturn: w*tangency.ExpectedReturn + (1-w)*mvp.ExpectedReturn,
		StdDev:         math.Sqrt(a*a + b*b),
	}
}

// SharpeRatio returns (ret - riskFree) / stdDev.
func SharpeRatio(ret, stdDev, riskFree float64) (float64, error) {
	if stdDev == 0 {
		return 0, ErrZeroStdDev
	}
	return (ret - riskFree) / stdDev, nil
}

// ComputeFrontier samples the MVP/tangency mix, keeps the points inside the bounds,
// picks the max Sharpe point as the market portfolio and derives the capital market line.
func ComputeFrontier(params FrontierParams) (*FrontierResult, error) {
	if err := validateFrontierParams(params); err != nil {
		return nil, err
	}

	n := params.Samples
	weights := floats.Span(make([]float64, n), 0, 1)
	weights[n-1] = 1 // Span may land a ulp short of the upper bound

	samples := make([]FrontierPoint, n)
	frontier := make([]FrontierPoint, 0, n)
	for i, w := range weights {
		p := CombinePortfolios(params.MVP, params.Tangency, w)
		p.Index = i
		samples[i] = p
		if p.ExpectedReturn <= params.Bounds.MaxReturn && p.StdDev <= params.Bounds.MaxStdDev {
			frontier = append(frontier, p)
		}
	}
	if len(frontier) == 0 {
		return nil, fmt.Errorf("%w (return <= %g, std dev <= %g)", ErrEmptyFrontier, params.Bounds.MaxReturn, params.Bounds.MaxStdDev)
	}

	sharpe := make([]float64, len(frontier))
	for i, p := range frontier {
		s, err := SharpeRatio(p.ExpectedReturn, p.StdDev, params.RiskFreeRate)
		if err != nil {
			return nil, fmt.Errorf("%w at weight %g (sample %d)", err, p.Weight, p.Index)
		}
		sharpe[i] = s
	}

	best := floats.MaxIdx(sharpe)
	market := MarketPortfolio{
		FrontierPoint: frontier[best],
		SharpeRatio:   sharpe[best],
		Position:      best,
	}

	result := &FrontierResult{
		Params:   params,
		Samples:  samples,
		Frontier: frontier,
		Sharpe:   sharpe,
		Market:   market,
	}
	result.CML = capitalMarketLine(params, market, floats.Max(result.StdDevs()))
	return result, nil
}

func capitalMarketLine(params FrontierParams, market MarketPortfolio, maxStdDev float64) CapitalMarketLine {
	line := CapitalMarketLine{
		Intercept: params.RiskFreeRate,
		Slope:     (market.ExpectedReturn - params.RiskFreeRate) / market.StdDev,
	}
	line.StdDevs = floats.Span(make([]float64, params.Samples), 0, maxStdDev+params.CMLExtension)
	line.Returns = make([]float64, len(line.StdDevs))
	for i, x := range line.StdDevs {
		line.Returns[i] = line.ReturnAt(x)
	}
	return line
}

func validateFrontierParams(params FrontierParams) error {
	if params.Samples < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidParams, params.Samples)
	}
	inputs := []struct {
		name string
		v    float64
	}{
		{"mvp return", params.MVP.ExpectedReturn},
		{"mvp std dev", params.MVP.StdDev},
		{"tangency return", params.Tangency.ExpectedReturn},
		{"tangency std dev", params.Tangency.StdDev},
		{"risk-free rate", params.RiskFreeRate},
		{"max return", params.Bounds.MaxReturn},
		{"max std dev", params.Bounds.MaxStdDev},
		{"cml extension", params.CMLExtension},
	}
	for _, in := range inputs {
		if math.IsNaN(in.v) || math.IsInf(in.v, 0) {
			return fmt.Errorf("%w: %s is %f (NaN or Inf)", ErrInvalidParams, in.name, in.v)
		}
	}
	return nil
}
