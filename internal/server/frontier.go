package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"efficientFrontier/internal/finance"
)

// FrontierHandler serves one computed frontier as charts, JSON and an HTML view
type FrontierHandler struct {
	Logger     *zap.Logger
	RunID      uuid.UUID
	Portfolios []finance.Portfolio
	Result     *finance.FrontierResult
	Cache      *finance.ChartCache
	Chart      finance.ChartOptions
}

func (h *FrontierHandler) requestLogger(r *http.Request, method string) *zap.Logger {
	return h.Logger.With(
		zap.String("method", method),
		zap.String("run_id", h.RunID.String()),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *FrontierHandler) frontierChart(format string) ([]byte, error) {
	opts := h.Chart
	opts.Format = format
	return h.Cache.GetOrRender("frontier|"+format, func() ([]byte, error) {
		return finance.RenderFrontierChart(finance.FrontierChartInput{Portfolios: h.Portfolios, Result: h.Result}, opts)
	})
}

func (h *FrontierHandler) sharpeChart(format string) ([]byte, error) {
	opts := h.Chart
	opts.Format = format
	return h.Cache.GetOrRender("sharpe|"+format, func() ([]byte, error) {
		return finance.RenderSharpeProfileChart(h.Result, opts)
	})
}

func contentType(format string) (string, bool) {
	switch format {
	case finance.FormatPNG:
		return "image/png", true
	case finance.FormatSVG:
		return "image/svg+xml", true
	}
	return "", false
}

func (h *FrontierHandler) FrontierChart(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveChart(w, r, "FrontierChart", format, h.frontierChart)
	}
}

func (h *FrontierHandler) SharpeChart(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveChart(w, r, "SharpeChart", format, h.sharpeChart)
	}
}

func (h *FrontierHandler) serveChart(w http.ResponseWriter, r *http.Request, method, format string, render func(string) ([]byte, error)) {
	logger := h.requestLogger(r, method)
	ct, ok := contentType(format)
	if !ok {
		http.Error(w, "unsupported format", http.StatusNotFound)
		return
	}

	start := time.Now()
	img, err := render(format)
	if err != nil {
		logger.Error(fmt.Errorf("render %s chart: %w", format, err).Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	logger.Debug("chart served", zap.String("format", format), zap.Int("bytes", len(img)), zap.Duration("duration", time.Since(start)))

	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

type frontierResponse struct {
	RunID      string                  `json:"run_id"`
	Portfolios []finance.Portfolio     `json:"portfolios"`
	Result     *finance.FrontierResult `json:"result"`
}

func (h *FrontierHandler) FrontierJSON(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "FrontierJSON")

	body, err := json.Marshal(frontierResponse{RunID: h.RunID.String(), Portfolios: h.Portfolios, Result: h.Result})
	if err != nil {
		logger.Error(fmt.Errorf("encode response: %w", err).Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

var viewTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
table { border-collapse: collapse; margin-top: 12px; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.legend-title { font-weight: bold; margin-top: 8px; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
<div>{{.Chart}}</div>
<div class="legend-title">{{.LegendTitle}}</div>
<ul>{{range .Series}}<li>{{.}}</li>{{end}}</ul>
<table>
<tr><th>Portfolio</th><th>Expected Return (%)</th><th>Standard Deviation (%)</th><th>Sharpe Ratio</th></tr>
{{range .Portfolios}}<tr><td>{{.Name}}</td><td>{{printf "%.2f" .ExpectedReturn}}</td><td>{{printf "%.2f" .StdDev}}</td><td>{{printf "%.4f" .SharpeRatio}}</td></tr>
{{end}}<tr><td>Market Portfolio</td><td>{{printf "%.4f" .Market.ExpectedReturn}}</td><td>{{printf "%.4f" .Market.StdDev}}</td><td>{{printf "%.4f" .Market.SharpeRatio}}</td></tr>
</table>
<p>Risk-free rate: {{printf "%.4f" .RiskFreeRate}}% | CML slope: {{printf "%.4f" .Slope}} | Frontier points: {{.Points}}</p>
<p><a href="/chart.png">PNG</a> | <a href="/sharpe.png">Sharpe profile</a> | <a href="/frontier.json">JSON</a></p>
<p><small>run {{.RunID}}</small></p>
</body>
</html>
`))

type viewData struct {
	Title        string
	Chart        template.HTML
	LegendTitle  string
	Series       []string
	Portfolios   []finance.Portfolio
	Market       finance.MarketPortfolio
	RiskFreeRate float64
	Slope        float64
	Points       int
	RunID        string
}

// View renders the interactive page with the frontier chart inlined as SVG.
func (h *FrontierHandler) View(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "View")

	svg, err := h.frontierChart(finance.FormatSVG)
	if err != nil {
		logger.Error(fmt.Errorf("render svg chart: %w", err).Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	data := viewData{
		Title:       finance.FrontierChartTitle,
		Chart:       template.HTML(svg),
		LegendTitle: finance.LegendTitle,
		Series: []string{
			finance.SeriesEfficientFrontier,
			finance.SeriesPortfolios,
			finance.SeriesRiskFreeRate,
			finance.SeriesMarketPortfolio,
			finance.SeriesCML,
		},
		Portfolios:   h.Portfolios,
		Market:       h.Result.Market,
		RiskFreeRate: h.Result.Params.RiskFreeRate,
		Slope:        h.Result.CML.Slope,
		Points:       len(h.Result.Frontier),
		RunID:        h.RunID.String(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viewTemplate.Execute(w, data); err != nil {
		logger.Error(fmt.Errorf("execute view template: %w", err).Error())
	}
}
