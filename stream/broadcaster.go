// Package stream periodically re-runs the conjunction scan and pushes the
// top-ranked events to subscribers.
package stream

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/conjunction-sentinel/core"
	"github.com/signalsfoundry/conjunction-sentinel/internal/logging"
	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// DefaultInterval is the broadcast period.
const DefaultInterval = 5 * time.Second

// DefaultTopN caps how many events each payload carries.
const DefaultTopN = 10

// Event is the wire form of one broadcast conjunction event.
type Event struct {
	SatelliteID              string  `json:"satellite_id"`
	SatelliteName            string  `json:"satellite_name"`
	DebrisID                 string  `json:"debris_id"`
	DistanceKm               float64 `json:"distance_km"`
	RiskScore                float64 `json:"risk_score"`
	RiskLevel                int     `json:"risk_level"`
	TimeToClosestApproachSec float64 `json:"time_to_closest_approach_sec"`
	MinimumDistanceKm        float64 `json:"minimum_distance_km"`
	CollisionProbability     float64 `json:"collision_probability"`
}

// Payload is one broadcast message: a timestamp in epoch seconds plus the
// top-ranked events of the tick's scan.
type Payload struct {
	Timestamp float64 `json:"timestamp"`
	Events    []Event `json:"events"`
}

// ObjectSource yields catalog snapshots for each tick.
type ObjectSource interface {
	Satellites() []model.ObjectState
	Debris() []model.ObjectState
}

// Metrics receives broadcaster instrumentation. A nil Metrics disables it.
type Metrics interface {
	TickBroadcast()
	AddSubscribers(delta int)
}

// Broadcaster re-scans the catalog on a fixed interval and fans the ranked
// top-N out to subscriber channels. Ticks are independent: each one is a
// full, non-incremental recomputation over a fresh catalog snapshot.
type Broadcaster struct {
	source   ObjectSource
	scanner  *core.Scanner
	interval time.Duration
	topN     int
	log      logging.Logger
	metrics  Metrics

	mu     sync.Mutex
	subs   map[int]chan Payload
	nextID int
	closed bool
}

// Option customises a Broadcaster.
type Option func(*Broadcaster)

// WithInterval overrides the broadcast period.
func WithInterval(d time.Duration) Option {
	return func(b *Broadcaster) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithTopN overrides how many events each payload carries.
func WithTopN(n int) Option {
	return func(b *Broadcaster) {
		if n > 0 {
			b.topN = n
		}
	}
}

// WithLogger sets the broadcaster's logger.
func WithLogger(log logging.Logger) Option {
	return func(b *Broadcaster) {
		if log != nil {
			b.log = log
		}
	}
}

// WithMetrics sets the broadcaster instrumentation sink.
func WithMetrics(m Metrics) Option {
	return func(b *Broadcaster) { b.metrics = m }
}

// New constructs a Broadcaster over the given catalog source and scanner.
func New(source ObjectSource, scanner *core.Scanner, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		source:   source,
		scanner:  scanner,
		interval: DefaultInterval,
		topN:     DefaultTopN,
		log:      logging.Noop(),
		subs:     make(map[int]chan Payload),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a payload channel with the given buffer size and
// returns it alongside an unsubscribe function. A subscriber that falls
// behind misses ticks rather than blocking the loop. The channel is closed
// on unsubscribe or when the broadcaster stops.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Payload, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Payload, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.AddSubscribers(1)
	}

	return ch, func() {
		b.mu.Lock()
		sub, ok := b.subs[id]
		if ok {
			delete(b.subs, id)
		}
		b.mu.Unlock()
		if ok {
			close(sub)
			if b.metrics != nil {
				b.metrics.AddSubscribers(-1)
			}
		}
	}
}

// Run drives the broadcast loop until ctx is cancelled. An initial broadcast
// fires immediately, then one per interval. On cancellation the loop stops
// without completing an in-flight broadcast, and all subscriber channels are
// closed.
func (b *Broadcaster) Run(ctx context.Context) {
	defer b.closeSubscribers()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

func (b *Broadcaster) tick(ctx context.Context) {
	ctx, log := logging.WithScanLogger(ctx, b.log)

	tracer := otel.Tracer("conjunction-sentinel/stream")
	ctx, span := tracer.Start(ctx, "risk_stream.tick")
	defer span.End()

	events := b.scanner.Scan(ctx, b.source.Satellites(), b.source.Debris())
	if ctx.Err() != nil {
		return
	}

	payload := buildPayload(time.Now(), events, b.topN)
	span.SetAttributes(
		attribute.Int("events.total", len(events)),
		attribute.Int("events.broadcast", len(payload.Events)),
	)

	b.mu.Lock()
	subs := make([]chan Payload, 0, len(b.subs))
	for _, ch := range b.subs {
		subs = append(subs, ch)
	}
	b.mu.Unlock()

	delivered := 0
	for _, ch := range subs {
		select {
		case ch <- payload:
			delivered++
		default:
			// Slow subscriber: skip this tick for it.
		}
	}

	if b.metrics != nil {
		b.metrics.TickBroadcast()
	}
	log.Debug(ctx, "risk broadcast",
		logging.Int("events", len(payload.Events)),
		logging.Int("subscribers", len(subs)),
		logging.Int("delivered", delivered),
	)
}

func (b *Broadcaster) closeSubscribers() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}

// buildPayload converts the top n ranked events into the wire payload.
func buildPayload(now time.Time, events []model.ConjunctionEvent, n int) Payload {
	if len(events) > n {
		events = events[:n]
	}
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, Event{
			SatelliteID:              e.SatelliteID,
			SatelliteName:            e.SatelliteName,
			DebrisID:                 e.DebrisID,
			DistanceKm:               e.Features.DistanceKm,
			RiskScore:                e.Assessment.Probability,
			RiskLevel:                int(e.Assessment.Level),
			TimeToClosestApproachSec: e.Features.TCASeconds,
			MinimumDistanceKm:        e.Features.DistanceAtTCAKm,
			CollisionProbability:     e.CollisionProbability,
		})
	}
	return Payload{
		Timestamp: float64(now.UnixNano()) / float64(time.Second),
		Events:    out,
	}
}
