package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"efficientFrontier/internal/config"
	"efficientFrontier/internal/finance"
	"efficientFrontier/internal/logging"
	"efficientFrontier/internal/server"
)

func main() {
	cfgPath := "configs/frontier.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	runID := uuid.New()
	logger = logger.With(zap.String("run_id", runID.String()))

	params := finance.DefaultFrontierParams()
	result, err := finance.ComputeFrontier(params)
	if err != nil {
		logger.Fatal("frontier: computation failed", zap.Error(err))
	}
	logger.Info("frontier: computed",
		zap.Int("samples", len(result.Samples)),
		zap.Int("frontier_points", len(result.Frontier)),
		zap.Float64("market_weight", result.Market.Weight),
		zap.Float64("market_return", result.Market.ExpectedReturn),
		zap.Float64("market_std_dev", result.Market.StdDev),
		zap.Float64("market_sharpe", result.Market.SharpeRatio),
		zap.Float64("cml_slope", result.CML.Slope),
	)

	handler := &server.FrontierHandler{
		Logger:     logger.With(zap.String("component", "http")),
		RunID:      runID,
		Portfolios: finance.DefaultPortfolios(),
		Result:     result,
		Cache:      finance.NewChartCache(cfg.Chart.CacheTTL),
		Chart:      finance.ChartOptions{Width: cfg.Chart.Width, Height: cfg.Chart.Height},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	addr := ":" + cfg.Server.Port
	logger.Info("http: serving interactive chart", zap.String("url", "http://localhost"+addr+"/"))
	if err := server.ListenAndServe(ctx, addr, server.NewRouter(handler), logger); err != nil {
		logger.Fatal("http: server error", zap.Error(err))
	}
	logger.Info("http: stopped")
}
