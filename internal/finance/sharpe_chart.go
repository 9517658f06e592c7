package finance

import (
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"
)

// RenderSharpeProfileChart plots the Sharpe ratio of every frontier point against
// its tangency weight and marks the maximum, which is the market portfolio.
func RenderSharpeProfileChart(res *FrontierResult, opts ChartOptions) ([]byte, error) {
	if res == nil || len(res.Sharpe) == 0 {
		return nil, errors.New("no frontier to draw")
	}
	opts = opts.normalized()
	var typeOpt charts.OptionFunc
	switch opts.Format {
	case FormatPNG:
		typeOpt = charts.PNGTypeOption()
	case FormatSVG:
		typeOpt = charts.SVGTypeOption()
	default:
		return nil, fmt.Errorf("unsupported chart format %q", opts.Format)
	}

	xLabels := make([]string, len(res.Frontier))
	for i, p := range res.Frontier {
		xLabels[i] = fmt.Sprintf("%.2f", p.Weight)
	}
	yMin, yMax := res.Sharpe[0], res.Sharpe[0]
	for _, v := range res.Sharpe {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = 0.01
	}
	yMin -= pad
	yMax += pad

	split := 10
	if len(xLabels) < 30 {
		split = len(xLabels) / 3
		if split < 3 {
			split = 3
		}
	}

	subtitle := fmt.Sprintf("Market: w=%.2f | Return: %.2f%% | Std: %.2f%% | Sharpe: %.4f",
		res.Market.Weight, res.Market.ExpectedReturn, res.Market.StdDev, res.Market.SharpeRatio)

	p, err := charts.LineRender(
		[][]float64{res.Sharpe},
		charts.TitleTextOptionFunc("Sharpe Ratio along the Efficient Frontier", subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: split,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{"Sharpe Ratio"},
			Top:  charts.PositionTop,
		}),
		charts.MarkPointOptionFunc(0, charts.SeriesMarkDataTypeMax),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(opts.Width),
		charts.HeightOptionFunc(opts.Height),
		typeOpt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
