package finance

// Portfolio represents one row of the reference portfolio table
type Portfolio struct {
	Name           string  `json:"name"`
	ExpectedReturn float64 `json:"expected_return"` // Percent
	StdDev         float64 `json:"std_dev"`         // Percent
	SharpeRatio    float64 `json:"sharpe_ratio"`
}

// FrontierBounds caps the frontier samples that are kept for plotting
type FrontierBounds struct {
	MaxReturn float64 `json:"max_return"`
	MaxStdDev float64 `json:"max_std_dev"`
}

// FrontierParams represents the inputs of a frontier computation
type FrontierParams struct {
	MVP          Portfolio      `json:"mvp"`
	Tangency     Portfolio      `json:"tangency"`
	RiskFreeRate float64        `json:"risk_free_rate"`
	Samples      int            `json:"samples"`
	Bounds       FrontierBounds `json:"bounds"`
	CMLExtension float64        `json:"cml_extension"` // Added to the widest frontier std dev
}

// FrontierPoint is a single mix of the MVP and the tangency portfolio
type FrontierPoint struct {
	Index          int     `json:"index"` // Position in the unfiltered sample
	Weight         float64 `json:"weight"`
	ExpectedReturn float64 `json:"expected_return"`
	StdDev         float64 `json:"std_dev"`
}

// MarketPortfolio is the frontier point with the highest Sharpe ratio
type MarketPortfolio struct {
	FrontierPoint
	SharpeRatio float64 `json:"sharpe_ratio"`
	Position    int     `json:"position"` // Position in the filtered frontier
}

// CapitalMarketLine represents the line from the risk-free rate through the market portfolio
type CapitalMarketLine struct {
	Intercept float64   `json:"intercept"`
	Slope     float64   `json:"slope"`
	StdDevs   []float64 `json:"std_devs"`
	Returns   []float64 `json:"returns"`
}

// ReturnAt evaluates the line at the given standard deviation.
func (l CapitalMarketLine) ReturnAt(stdDev float64) float64 {
	return l.Intercept + l.Slope*stdDev
}

// FrontierResult holds everything derived from one set of FrontierParams
type FrontierResult struct {
	Params   FrontierParams    `json:"params"`
	Samples  []FrontierPoint   `json:"-"`
	Frontier []FrontierPoint   `json:"frontier"`
	Sharpe   []float64         `json:"sharpe"` // Aligned with Frontier
	Market   MarketPortfolio   `json:"market"`
	CML      CapitalMarketLine `json:"cml"`
}

// Returns and StdDevs split the filtered frontier into plot columns.
func (r *FrontierResult) Returns() []float64 {
	out := make([]float64, len(r.Frontier))
	for i, p := range r.Frontier {
		out[i] = p.ExpectedReturn
	}
	return out
}

func (r *FrontierResult) StdDevs() []float64 {
	out := make([]float64, len(r.Frontier))
	for i, p := range r.Frontier {
		out[i] = p.StdDev
	}
	return out
}
