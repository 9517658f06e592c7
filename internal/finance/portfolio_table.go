package finance

// Reference statistics, percentages throughout.
const (
	DefaultRiskFreeRate = 0.156602035237182
	DefaultSamples      = 100
	DefaultMaxReturn    = 5.0
	DefaultMaxStdDev    = 12.0
	DefaultCMLExtension = 5.0
)

var (
	MVPPortfolio           = Portfolio{Name: "MVP", ExpectedReturn: 1.25, StdDev: 5.47, SharpeRatio: 0.1990}
	TangencyShortPortfolio = Portfolio{Name: "P* (Short Allowed)", ExpectedReturn: 4.86, StdDev: 11.37, SharpeRatio: 0.4134}
	TangencyLongPortfolio  = Portfolio{Name: "P* (No Short)", ExpectedReturn: 3.11, StdDev: 8.63, SharpeRatio: 0.3416}
)

// DefaultPortfolios returns a fresh copy of the reference portfolio table.
func DefaultPortfolios() []Portfolio {
	return []Portfolio{MVPPortfolio, TangencyShortPortfolio, TangencyLongPortfolio}
}

// DefaultFrontierParams mixes the MVP with the short-allowed tangency portfolio.
func DefaultFrontierParams() FrontierParams {
	return FrontierParams{
		MVP:          MVPPortfolio,
		Tangency:     TangencyShortPortfolio,
		RiskFreeRate: DefaultRiskFreeRate,
		Samples:      DefaultSamples,
		Bounds: FrontierBounds{
			MaxReturn: DefaultMaxReturn,
			MaxStdDev: DefaultMaxStdDev,
		},
		CMLExtension: DefaultCMLExtension,
	}
}
