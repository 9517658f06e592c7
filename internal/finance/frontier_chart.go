package finance

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	FrontierChartTitle = "Efficient Frontier with Market Portfolio and Capital Market Line"
	FrontierXAxisTitle = "Standard Deviation (%) (Risk)"
	FrontierYAxisTitle = "Expected Return (%)"
	LegendTitle        = "Legend"

	SeriesEfficientFrontier = "Efficient Frontier"
	SeriesPortfolios        = "Portfolios"
	SeriesRiskFreeRate      = "Risk-Free Rate"
	SeriesMarketPortfolio   = "Market Portfolio"
	SeriesCML               = "Capital Market Line (CML)"
)

// Chart formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Fixed plot window, percent.
const (
	chartXMin, chartXMax = 0.0, 12.0
	chartYMin, chartYMax = 0.0, 5.0
)

var (
	colorFrontier  = drawing.ColorFromHex("0000ff")
	colorPortfolio = drawing.ColorFromHex("ffa500")
	colorRiskFree  = drawing.ColorFromHex("008000")
	colorMarket    = drawing.ColorFromHex("ff0000")
	colorCML       = drawing.ColorFromHex("000000")
)

// ChartOptions controls the output of the chart renderers
type ChartOptions struct {
	Format string
	Width  int
	Height int
}

func (o ChartOptions) normalized() ChartOptions {
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 640
	}
	return o
}

// FrontierChartInput is everything drawn on the frontier chart
type FrontierChartInput struct {
	Portfolios []Portfolio
	Result     *FrontierResult
}

// RenderFrontierChart draws the frontier, the reference portfolios, the risk-free rate,
// the market portfolio and the capital market line on one risk/return chart.
func RenderFrontierChart(in FrontierChartInput, opts ChartOptions) ([]byte, error) {
	if in.Result == nil || len(in.Result.Frontier) == 0 {
		return nil, errors.New("no frontier to draw")
	}
	opts = opts.normalized()
	var provider chart.RendererProvider
	switch opts.Format {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return nil, fmt.Errorf("unsupported chart format %q", opts.Format)
	}

	ch := chart.Chart{
		Title:      FrontierChartTitle,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  FrontierXAxisTitle,
			Range: &chart.ContinuousRange{Min: chartXMin, Max: chartXMax},
			Ticks: axisTicks(chartXMin, chartXMax, 2),
		},
		YAxis: chart.YAxis{
			Name:  FrontierYAxisTitle,
			Range: &chart.ContinuousRange{Min: chartYMin, Max: chartYMax},
			Ticks: axisTicks(chartYMin, chartYMax, 1),
		},
		Series: frontierSeries(in),
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func frontierSeries(in FrontierChartInput) []chart.Series {
	res := in.Result
	rf := res.Params.RiskFreeRate

	pfX := make([]float64, len(in.Portfolios))
	pfY := make([]float64, len(in.Portfolios))
	labels := make([]chart.Value2, 0, len(in.Portfolios)+2)
	for i, p := range in.Portfolios {
		pfX[i], pfY[i] = p.StdDev, p.ExpectedReturn
		labels = append(labels, chart.Value2{XValue: p.StdDev, YValue: p.ExpectedReturn, Label: p.Name})
	}
	labels = append(labels,
		chart.Value2{XValue: 0, YValue: rf, Label: SeriesRiskFreeRate},
		chart.Value2{XValue: res.Market.StdDev, YValue: res.Market.ExpectedReturn, Label: SeriesMarketPortfolio},
	)

	cmlX, cmlY := clipPolyline(res.CML.StdDevs, res.CML.Returns, chartXMin, chartXMax, chartYMin, chartYMax)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    SeriesEfficientFrontier,
			XValues: res.StdDevs(),
			YValues: res.Returns(),
			Style:   chart.Style{StrokeColor: colorFrontier, StrokeWidth: 2},
		},
	}
	if len(pfX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    SeriesPortfolios,
			XValues: pfX,
			YValues: pfY,
			Style:   markerStyle(colorPortfolio, 5),
		})
	}
	series = append(series,
		chart.ContinuousSeries{
			Name:    SeriesRiskFreeRate,
			XValues: []float64{0},
			YValues: []float64{rf},
			Style:   markerStyle(colorRiskFree, 5),
		},
		chart.ContinuousSeries{
			Name:    SeriesMarketPortfolio,
			XValues: []float64{res.Market.StdDev},
			YValues: []float64{res.Market.ExpectedReturn},
			Style:   markerStyle(colorMarket, 6),
		},
	)
	if len(cmlX) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    SeriesCML,
			XValues: cmlX,
			YValues: cmlY,
			Style: chart.Style{
				StrokeColor:     colorCML,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			},
		})
	}
	// annotations stay out of the legend
	series = append(series, chart.AnnotationSeries{Annotations: labels})
	return series
}

// markerStyle renders points only, no connecting line.
func markerStyle(col drawing.Color, radius float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    radius,
		DotColor:    col,
	}
}

func axisTicks(lo, hi, step float64) []chart.Tick {
	var ticks []chart.Tick
	for v := lo; v <= hi+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
	}
	return ticks
}

// clipPolyline cuts a polyline to the plot window. go-chart draws outside the
// canvas instead of clipping, so lines that leave the window are trimmed here.
func clipPolyline(xs, ys []float64, xmin, xmax, ymin, ymax float64) ([]float64, []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	var outX, outY []float64
	push := func(x, y float64) {
		if k := len(outX); k > 0 && outX[k-1] == x && outY[k-1] == y {
			return
		}
		outX = append(outX, x)
		outY = append(outY, y)
	}
	inside := func(x, y float64) bool {
		return x >= xmin && x <= xmax && y >= ymin && y <= ymax
	}
	if n == 1 && inside(xs[0], ys[0]) {
		push(xs[0], ys[0])
	}
	for i := 1; i < n; i++ {
		x0, y0, x1, y1, ok := clipSegment(xs[i-1], ys[i-1], xs[i], ys[i], xmin, xmax, ymin, ymax)
		if !ok {
			continue
		}
		push(x0, y0)
		push(x1, y1)
	}
	return outX, outY
}

// clipSegment is Liang-Barsky clipping of one segment against the window.
func clipSegment(x0, y0, x1, y1, xmin, xmax, ymin, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	cx0, cy0 := x0, y0
	if t0 > 0 {
		cx0, cy0 = x0+t0*dx, y0+t0*dy
	}
	cx1, cy1 := x1, y1
	if t1 < 1 {
		cx1, cy1 = x0+t1*dx, y0+t1*dy
	}
	return cx0, cy0, cx1, cy1, true
}
