package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"efficientFrontier/internal/finance"
)

func newTestRouter(t *testing.T) (http.Handler, *FrontierHandler) {
	t.Helper()
	res, err := finance.ComputeFrontier(finance.DefaultFrontierParams())
	require.NoError(t, err)
	h := &FrontierHandler{
		Logger:     zap.NewNop(),
		RunID:      uuid.New(),
		Portfolios: finance.DefaultPortfolios(),
		Result:     res,
		Cache:      finance.NewChartCache(time.Minute),
		Chart:      finance.ChartOptions{Width: 800, Height: 500},
	}
	return NewRouter(h), h
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	assert.Equal(t, http.StatusOK, get(t, router, "/healthz").Code)
}

func TestCharts(t *testing.T) {
	router, _ := newTestRouter(t)
	tests := []struct {
		path string
		ct   string
	}{
		{"/chart.png", "image/png"},
		{"/chart.svg", "image/svg+xml"},
		{"/sharpe.png", "image/png"},
		{"/sharpe.svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, router, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.ct, rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Body.Bytes())
		})
	}
	assert.Equal(t, http.StatusNotFound, get(t, router, "/chart.gif").Code)
}

func TestFrontierJSON(t *testing.T) {
	router, h := newTestRouter(t)
	rec := get(t, router, "/frontier.json")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RunID      string              `json:"run_id"`
		Portfolios []finance.Portfolio `json:"portfolios"`
		Result     struct {
			Frontier []finance.FrontierPoint   `json:"frontier"`
			Market   finance.MarketPortfolio   `json:"market"`
			CML      finance.CapitalMarketLine `json:"cml"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, h.RunID.String(), body.RunID)
	assert.Len(t, body.Portfolios, 3)
	assert.Len(t, body.Result.Frontier, len(h.Result.Frontier))
	assert.Equal(t, h.Result.Market, body.Result.Market)
	assert.Len(t, body.Result.CML.StdDevs, 100)
}

func TestView(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := get(t, router, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, finance.FrontierChartTitle)
	assert.Contains(t, html, "<svg")
	assert.Contains(t, html, `<div class="legend-title">Legend</div>`)
	assert.Contains(t, html, "Capital Market Line (CML)")
	assert.Contains(t, html, "P* (No Short)")
}
