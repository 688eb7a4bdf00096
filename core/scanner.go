package core

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/conjunction-sentinel/internal/logging"
	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// Default scan thresholds (kilometres) and object size estimates (metres).
const (
	DefaultScanThresholdKm     = 50.0
	DefaultHighRiskThresholdKm = 5.0
	DefaultSatelliteSizeM      = 5.0
	DefaultDebrisSizeM         = 1.0
)

// ScanStats summarises one catalog scan for metrics recording.
type ScanStats struct {
	Satellites     int
	CandidatePairs int
	EvaluatedPairs int
	Events         int
	HighRisk       int
}

// ScanRecorder receives scan timing and counters. Implementations must be
// safe for concurrent use; a nil recorder disables recording.
type ScanRecorder interface {
	RecordScan(elapsed time.Duration, stats ScanStats)
}

// Scanner runs the prefilter + pairwise risk assessment over a catalog
// snapshot. It holds configuration only; every scan is a pure function of
// its inputs, so scans may run concurrently on one Scanner.
type Scanner struct {
	thresholdKm   float64
	highRiskKm    float64
	cellSizeKm    float64
	workers       int
	planManeuvers bool
	satSizeM      float64
	debrisSizeM   float64

	log      logging.Logger
	recorder ScanRecorder
}

// ScannerOption customises a Scanner.
type ScannerOption func(*Scanner)

// WithThresholds overrides the scan and high-risk distance thresholds.
func WithThresholds(scanKm, highRiskKm float64) ScannerOption {
	return func(s *Scanner) {
		if scanKm > 0 {
			s.thresholdKm = scanKm
		}
		if highRiskKm > 0 {
			s.highRiskKm = highRiskKm
		}
	}
}

// WithCellSize overrides the prefilter grid cell size.
func WithCellSize(cellSizeKm float64) ScannerOption {
	return func(s *Scanner) {
		if cellSizeKm > 0 {
			s.cellSizeKm = cellSizeKm
		}
	}
}

// WithWorkers bounds the number of concurrent per-satellite workers.
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithManeuverPlanning attaches an avoidance plan to every high-risk event.
func WithManeuverPlanning(enabled bool) ScannerOption {
	return func(s *Scanner) { s.planManeuvers = enabled }
}

// WithObjectSizes overrides the hard-body size estimates used for the
// collision probability, in metres.
func WithObjectSizes(satelliteM, debrisM float64) ScannerOption {
	return func(s *Scanner) {
		if satelliteM > 0 {
			s.satSizeM = satelliteM
		}
		if debrisM > 0 {
			s.debrisSizeM = debrisM
		}
	}
}

// WithScanLogger sets the scanner's logger.
func WithScanLogger(log logging.Logger) ScannerOption {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// WithScanRecorder sets the metrics recorder notified after each scan.
func WithScanRecorder(r ScanRecorder) ScannerOption {
	return func(s *Scanner) { s.recorder = r }
}

// NewScanner constructs a Scanner with defaults matching the monitoring
// thresholds: 50 km scan window, 5 km high-risk band, 50 km prefilter cells,
// four workers.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		thresholdKm: DefaultScanThresholdKm,
		highRiskKm:  DefaultHighRiskThresholdKm,
		cellSizeKm:  DefaultCellSizeKm,
		workers:     4,
		satSizeM:    DefaultSatelliteSizeM,
		debrisSizeM: DefaultDebrisSizeM,
		log:         logging.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan assesses every satellite against the debris catalog and returns
// conjunction events ranked by (risk level desc, probability desc). Input
// slices are never mutated. Satellites are scanned concurrently; each pair
// assessment is independent, so no locking is needed beyond result merging.
func (s *Scanner) Scan(ctx context.Context, satellites, debris []model.ObjectState) []model.ConjunctionEvent {
	start := time.Now()
	now := start.UTC()

	ctx, span := otel.Tracer("conjunction-sentinel/core").Start(ctx, "conjunction.scan")
	defer span.End()
	span.SetAttributes(
		attribute.Int("scan.satellites", len(satellites)),
		attribute.Int("scan.debris", len(debris)),
	)

	workers := s.workers
	if workers > len(satellites) {
		workers = len(satellites)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan model.ObjectState)
	var (
		mu     sync.Mutex
		events []model.ConjunctionEvent
		stats  ScanStats
	)
	stats.Satellites = len(satellites)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sat := range jobs {
				if ctx.Err() != nil {
					continue
				}
				found, candidates, evaluated := s.scanSatellite(sat, debris, now)

				mu.Lock()
				events = append(events, found...)
				stats.CandidatePairs += candidates
				stats.EvaluatedPairs += evaluated
				mu.Unlock()
			}
		}()
	}
	for _, sat := range satellites {
		jobs <- sat
	}
	close(jobs)
	wg.Wait()

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Assessment.Level != events[j].Assessment.Level {
			return events[i].Assessment.Level > events[j].Assessment.Level
		}
		return events[i].Assessment.Probability > events[j].Assessment.Probability
	})

	stats.Events = len(events)
	for _, e := range events {
		if e.IsHighRisk {
			stats.HighRisk++
		}
	}
	span.SetAttributes(
		attribute.Int("scan.events", stats.Events),
		attribute.Int("scan.high_risk", stats.HighRisk),
	)
	if s.recorder != nil {
		s.recorder.RecordScan(time.Since(start), stats)
	}
	s.log.Debug(ctx, "catalog scan complete",
		logging.Int("satellites", stats.Satellites),
		logging.Int("candidate_pairs", stats.CandidatePairs),
		logging.Int("events", stats.Events),
		logging.Int("high_risk", stats.HighRisk),
	)
	return events
}

// scanSatellite assesses one satellite against the prefiltered debris set.
func (s *Scanner) scanSatellite(sat model.ObjectState, debris []model.ObjectState, now time.Time) (events []model.ConjunctionEvent, candidates, evaluated int) {
	shortlist := FilterCandidates(sat.Position, debris, s.cellSizeKm)
	candidates = len(shortlist)

	for _, deb := range shortlist {
		distance := sat.Position.DistanceTo(deb.Position)
		if distance >= s.thresholdKm {
			continue
		}
		evaluated++

		f := ComputeFeatures(sat, deb)
		level := Classify(f.DistanceKm, f.RelativeSpeedKmps, f.ApproachAngleDeg)

		// Batch events score from instantaneous geometry; the TCA-refined
		// ScoreFeatures path is reserved for per-pair analysis.
		score := ScoreInstantaneous(f.DistanceKm, f.RelativeSpeedKmps, f.ApproachAngleDeg, f.AltitudeDiffKm)

		event := model.ConjunctionEvent{
			SatelliteID:          sat.ID,
			SatelliteName:        sat.Name,
			DebrisID:             deb.ID,
			DebrisName:           deb.Name,
			Features:             f,
			Assessment:           model.NewRiskAssessment(score, level),
			CollisionProbability: CollisionProbability(f.DistanceKm, f.RelativeSpeedKmps, s.satSizeM, s.debrisSizeM),
			IsHighRisk:           distance < s.highRiskKm,
			ComputedAt:           now,
		}
		if s.planManeuvers && event.IsHighRisk {
			plan := PlanAvoidance(sat, deb)
			event.Maneuver = &plan
		}
		events = append(events, event)
	}
	return events, candidates, evaluated
}
