package stream

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/signalsfoundry/conjunction-sentinel/core"
	"github.com/signalsfoundry/conjunction-sentinel/model"
)

type staticSource struct {
	satellites []model.ObjectState
	debris     []model.ObjectState
}

func (s *staticSource) Satellites() []model.ObjectState { return s.satellites }
func (s *staticSource) Debris() []model.ObjectState     { return s.debris }

type countingMetrics struct {
	mu          sync.Mutex
	ticks       int
	subscribers int
}

func (m *countingMetrics) TickBroadcast() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks++
}

func (m *countingMetrics) AddSubscribers(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers += delta
}

func (m *countingMetrics) snapshot() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks, m.subscribers
}

func conjunctionSource() *staticSource {
	return &staticSource{
		satellites: []model.ObjectState{
			{
				ID: "SAT-1", Name: "Sentinel A",
				Position: model.Vec3{X: 6771},
				Velocity: model.Vec3{Y: 7.5},
			},
		},
		debris: []model.ObjectState{
			{
				ID: "DEB-1", Name: "Fragment 1",
				Position: model.Vec3{X: 6774},
				Velocity: model.Vec3{Y: -7.4},
			},
		},
	}
}

func TestBroadcaster_DeliversPayload(t *testing.T) {
	metrics := &countingMetrics{}
	b := New(conjunctionSource(), core.NewScanner(),
		WithInterval(time.Hour), // only the immediate tick fires
		WithMetrics(metrics),
	)

	ch, unsubscribe := b.Subscribe(1)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run(ctx)
	}()

	var payload Payload
	select {
	case payload = <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("no payload within 5s")
	}
	cancel()
	<-done

	if payload.Timestamp <= 0 {
		t.Errorf("payload timestamp = %v, want positive epoch seconds", payload.Timestamp)
	}
	if len(payload.Events) != 1 {
		t.Fatalf("payload carries %d events, want 1", len(payload.Events))
	}

	e := payload.Events[0]
	if e.SatelliteID != "SAT-1" || e.DebrisID != "DEB-1" {
		t.Errorf("event pairs %s/%s, want SAT-1/DEB-1", e.SatelliteID, e.DebrisID)
	}
	if e.DistanceKm != 3 {
		t.Errorf("event distance = %v km, want 3", e.DistanceKm)
	}
	if e.RiskLevel != int(model.RiskHigh) {
		t.Errorf("event risk level = %d, want %d", e.RiskLevel, int(model.RiskHigh))
	}
	if e.RiskScore <= 0 || e.RiskScore > 1 {
		t.Errorf("event risk score = %v, want within (0, 1]", e.RiskScore)
	}
	if e.CollisionProbability <= 0 {
		t.Errorf("event collision probability = %v, want > 0", e.CollisionProbability)
	}

	if ticks, _ := metrics.snapshot(); ticks < 1 {
		t.Errorf("broadcast tick counter = %d, want >= 1", ticks)
	}
}

func TestBroadcaster_RunClosesSubscribersOnCancel(t *testing.T) {
	b := New(&staticSource{}, core.NewScanner(), WithInterval(time.Hour))
	ch, _ := b.Subscribe(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run(ctx)
	}()
	cancel()
	<-done

	// Drain anything the immediate tick may have delivered, then expect close.
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-time.After(5 * time.Second):
			t.Fatal("subscriber channel not closed after Run returned")
		}
	}
}

func TestBroadcaster_SubscribeAfterStop(t *testing.T) {
	b := New(&staticSource{}, core.NewScanner(), WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b.Run(ctx)

	ch, unsubscribe := b.Subscribe(1)
	if _, ok := <-ch; ok {
		t.Errorf("subscription after stop returned an open channel")
	}
	unsubscribe() // must be a no-op, not a double close
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	metrics := &countingMetrics{}
	b := New(&staticSource{}, core.NewScanner(), WithMetrics(metrics))

	ch, unsubscribe := b.Subscribe(1)
	if _, subs := metrics.snapshot(); subs != 1 {
		t.Fatalf("subscriber gauge = %d after subscribe, want 1", subs)
	}

	unsubscribe()
	if _, ok := <-ch; ok {
		t.Errorf("channel still open after unsubscribe")
	}
	if _, subs := metrics.snapshot(); subs != 0 {
		t.Errorf("subscriber gauge = %d after unsubscribe, want 0", subs)
	}
	unsubscribe() // second call is a no-op
}

func TestBuildPayload_CapsAtTopN(t *testing.T) {
	events := make([]model.ConjunctionEvent, 15)
	for i := range events {
		events[i] = model.ConjunctionEvent{
			SatelliteID: "SAT-1",
			DebrisID:    "DEB",
			Features:    model.PhysicsFeatures{DistanceKm: float64(i + 1)},
		}
	}

	now := time.Unix(1700000000, 500000000)
	payload := buildPayload(now, events, 10)

	if len(payload.Events) != 10 {
		t.Fatalf("payload carries %d events, want 10", len(payload.Events))
	}
	// Ranked order must be preserved: the first ten in, the first ten out.
	for i, e := range payload.Events {
		if e.DistanceKm != float64(i+1) {
			t.Errorf("event %d distance = %v, want %v", i, e.DistanceKm, float64(i+1))
		}
	}
	if got, want := payload.Timestamp, 1700000000.5; math.Abs(got-want) > 1e-6 {
		t.Errorf("payload timestamp = %v, want %v", got, want)
	}
}

func TestBuildPayload_FewerEventsThanCap(t *testing.T) {
	payload := buildPayload(time.Now(), []model.ConjunctionEvent{{SatelliteID: "SAT-1"}}, 10)
	if len(payload.Events) != 1 {
		t.Fatalf("payload carries %d events, want 1", len(payload.Events))
	}
}
