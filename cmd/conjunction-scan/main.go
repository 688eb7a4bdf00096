// conjunction-scan runs one catalog scan and prints the ranked conjunction
// events as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/signalsfoundry/conjunction-sentinel/catalog"
	"github.com/signalsfoundry/conjunction-sentinel/core"
	"github.com/signalsfoundry/conjunction-sentinel/internal/logging"
)

func main() {
	catalogPath := flag.String("catalog", "configs/catalog.json", "path to a JSON object catalog")
	thresholdKm := flag.Float64("threshold", core.DefaultScanThresholdKm, "scan distance threshold in km")
	highRiskKm := flag.Float64("high-risk", core.DefaultHighRiskThresholdKm, "high-risk distance threshold in km")
	cellSizeKm := flag.Float64("cell-size", core.DefaultCellSizeKm, "prefilter grid cell size in km")
	workers := flag.Int("workers", 4, "concurrent per-satellite scan workers")
	maneuvers := flag.Bool("maneuvers", false, "attach avoidance plans to high-risk events")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, scanLog := logging.WithScanLogger(context.Background(), log)

	cat, err := catalog.LoadFile(*catalogPath, scanLog, time.Now())
	if err != nil {
		scanLog.Error(ctx, "failed to load catalog", logging.String("error", err.Error()))
		os.Exit(1)
	}

	scanner := core.NewScanner(
		core.WithThresholds(*thresholdKm, *highRiskKm),
		core.WithCellSize(*cellSizeKm),
		core.WithWorkers(*workers),
		core.WithManeuverPlanning(*maneuvers),
		core.WithScanLogger(scanLog),
	)

	events := scanner.Scan(ctx, cat.Satellites(), cat.Debris())

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(events); err != nil {
		scanLog.Error(ctx, "failed to encode events", logging.String("error", err.Error()))
		os.Exit(1)
	}
}
