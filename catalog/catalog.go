// Package catalog supplies the tracked-object snapshots the conjunction
// engine consumes. It owns every upstream concern the engine itself must not
// carry: state ingestion and validation, TLE propagation, and geodetic
// coordinate derivation.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

var (
	// ErrObjectExists is returned when adding an object whose ID is taken.
	ErrObjectExists = errors.New("object already exists")
	// ErrObjectNotFound is returned when updating or removing an unknown ID.
	ErrObjectNotFound = errors.New("object not found")
	// ErrNonFiniteState is returned when a state vector contains NaN or Inf
	// components. The engine assumes finite inputs, so ingest rejects them.
	ErrNonFiniteState = errors.New("non-finite state vector")
)

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
	EventObjectUpserted EventType = iota
	EventObjectRemoved
)

// Event is emitted to subscribers when the catalog changes.
type Event struct {
	Type   EventType
	Object model.ObjectState
}

// Catalog is an in-memory, thread-safe store of satellite and debris state
// vectors. It holds snapshots only; the engine reads immutable copies and
// never mutates through it.
type Catalog struct {
	mu sync.RWMutex

	satellites map[string]model.ObjectState
	debris     map[string]model.ObjectState

	subs      map[int]func(Event)
	nextSubID int
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		satellites: make(map[string]model.ObjectState),
		debris:     make(map[string]model.ObjectState),
		subs:       make(map[int]func(Event)),
	}
}

// AddSatellite adds a new satellite. It returns an error if the ID already
// exists or the state is non-finite.
func (c *Catalog) AddSatellite(s model.ObjectState) error {
	return c.add(c.satellites, s)
}

// AddDebris adds a new debris object under the same rules as AddSatellite.
func (c *Catalog) AddDebris(s model.ObjectState) error {
	return c.add(c.debris, s)
}

func (c *Catalog) add(bucket map[string]model.ObjectState, s model.ObjectState) error {
	if !s.IsFinite() {
		return fmt.Errorf("%w: object %q", ErrNonFiniteState, s.ID)
	}

	c.mu.Lock()
	if _, exists := bucket[s.ID]; exists {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrObjectExists, s.ID)
	}
	bucket[s.ID] = s
	subs := c.subscriberList()
	c.mu.Unlock()

	notify(subs, Event{Type: EventObjectUpserted, Object: s})
	return nil
}

// UpdateState replaces the state vector of an existing object (satellite or
// debris) and notifies subscribers.
func (c *Catalog) UpdateState(s model.ObjectState) error {
	if !s.IsFinite() {
		return fmt.Errorf("%w: object %q", ErrNonFiniteState, s.ID)
	}

	c.mu.Lock()
	bucket := c.bucketOf(s.ID)
	if bucket == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrObjectNotFound, s.ID)
	}
	bucket[s.ID] = s
	subs := c.subscriberList()
	c.mu.Unlock()

	notify(subs, Event{Type: EventObjectUpserted, Object: s})
	return nil
}

// Remove deletes an object by ID.
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	bucket := c.bucketOf(id)
	if bucket == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrObjectNotFound, id)
	}
	removed := bucket[id]
	delete(bucket, id)
	subs := c.subscriberList()
	c.mu.Unlock()

	notify(subs, Event{Type: EventObjectRemoved, Object: removed})
	return nil
}

// bucketOf must be called with c.mu held.
func (c *Catalog) bucketOf(id string) map[string]model.ObjectState {
	if _, ok := c.satellites[id]; ok {
		return c.satellites
	}
	if _, ok := c.debris[id]; ok {
		return c.debris
	}
	return nil
}

// Satellites returns a snapshot slice of all satellites, ordered by ID.
func (c *Catalog) Satellites() []model.ObjectState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshot(c.satellites)
}

// Debris returns a snapshot slice of all debris objects, ordered by ID.
func (c *Catalog) Debris() []model.ObjectState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshot(c.debris)
}

// Len returns the satellite and debris counts.
func (c *Catalog) Len() (satellites, debris int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.satellites), len(c.debris)
}

// Subscribe registers a callback for catalog events. It returns an
// unsubscribe function; unsubscribing one callback never disturbs the
// others, and a second call is a no-op.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// subscriberList must be called with c.mu held.
func (c *Catalog) subscriberList() []func(Event) {
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func snapshot(bucket map[string]model.ObjectState) []model.ObjectState {
	res := make([]model.ObjectState, 0, len(bucket))
	for _, s := range bucket {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Notify subscribers outside the lock to avoid deadlocks.
func notify(subs []func(Event), ev Event) {
	for _, sub := range subs {
		sub(ev)
	}
}
