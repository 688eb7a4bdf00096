package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/conjunction-sentinel/catalog"
	"github.com/signalsfoundry/conjunction-sentinel/core"
	"github.com/signalsfoundry/conjunction-sentinel/internal/config"
	"github.com/signalsfoundry/conjunction-sentinel/internal/logging"
	"github.com/signalsfoundry/conjunction-sentinel/internal/observability"
	"github.com/signalsfoundry/conjunction-sentinel/stream"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional; env vars with RISK_ prefix override)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewFromEnv().Error(context.Background(), "failed to load config", logging.String("error", err.Error()))
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	ctx := context.Background()

	collector, err := observability.NewScanCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(cfg.MetricsAddr, collector, log)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	cat, err := catalog.LoadFile(cfg.CatalogPath, log, time.Now())
	if err != nil {
		log.Error(ctx, "failed to load catalog", logging.String("path", cfg.CatalogPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	satellites, debris := cat.Len()
	log.Info(ctx, "starting risk stream",
		logging.Int("satellites", satellites),
		logging.Int("debris", debris),
		logging.Any("interval", cfg.BroadcastInterval),
	)

	scanner := core.NewScanner(
		core.WithThresholds(cfg.ScanThresholdKm, cfg.HighRiskThresholdKm),
		core.WithCellSize(cfg.CellSizeKm),
		core.WithWorkers(cfg.ScanWorkers),
		core.WithManeuverPlanning(cfg.PlanManeuvers),
		core.WithScanLogger(log),
		core.WithScanRecorder(collector),
	)

	broadcaster := stream.New(cat, scanner,
		stream.WithInterval(cfg.BroadcastInterval),
		stream.WithTopN(cfg.TopN),
		stream.WithLogger(log),
		stream.WithMetrics(collector),
	)

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	payloads, unsubscribe := broadcaster.Subscribe(1)
	defer unsubscribe()
	go logPayloads(stopCtx, payloads, log)

	broadcaster.Run(stopCtx)

	log.Info(ctx, "shutting down risk stream")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// logPayloads surfaces each tick's headline event in the daemon log.
func logPayloads(ctx context.Context, payloads <-chan stream.Payload, log logging.Logger) {
	for payload := range payloads {
		if len(payload.Events) == 0 {
			log.Info(ctx, "no conjunction events in range")
			continue
		}
		top := payload.Events[0]
		log.Info(ctx, "top conjunction event",
			logging.String("satellite_id", top.SatelliteID),
			logging.String("debris_id", top.DebrisID),
			logging.Float("distance_km", top.DistanceKm),
			logging.Int("risk_level", top.RiskLevel),
			logging.Float("risk_score", top.RiskScore),
			logging.Int("events", len(payload.Events)),
		)
	}
}

func serveMetrics(addr string, collector *observability.ScanCollector, log logging.Logger) *http.Server {
	if collector == nil || addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
