package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/signalsfoundry/conjunction-sentinel/internal/logging"
	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// objectRecord is one catalog feed entry. Exactly one state source must be
// resolvable, tried in order: a full Cartesian 6-tuple, a TLE pair, or
// geodetic coordinates. Pointer fields distinguish absent from zero.
type objectRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	X  *float64 `json:"x"`
	Y  *float64 `json:"y"`
	Z  *float64 `json:"z"`
	Vx *float64 `json:"vx"`
	Vy *float64 `json:"vy"`
	Vz *float64 `json:"vz"`

	TLE1 string `json:"tle1"`
	TLE2 string `json:"tle2"`

	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AltitudeKm   *float64 `json:"altitude_km"`
	VelocityKmps *float64 `json:"velocity_kmps"`
}

// catalogFile is the on-disk catalog layout.
type catalogFile struct {
	Satellites []objectRecord `json:"satellites"`
	Debris     []objectRecord `json:"debris"`
}

// Load reads a JSON catalog from r into c, propagating TLE entries to the
// given epoch. Records that cannot be resolved to a complete finite state
// vector are skipped and logged, never handed to the engine.
func Load(c *Catalog, r io.Reader, log logging.Logger, at time.Time) (added, skipped int, err error) {
	if log == nil {
		log = logging.Noop()
	}

	var file catalogFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return 0, 0, fmt.Errorf("decode catalog: %w", err)
	}

	ctx := context.Background()
	for _, rec := range file.Satellites {
		if loadRecord(ctx, c.AddSatellite, rec, log, at) {
			added++
		} else {
			skipped++
		}
	}
	for _, rec := range file.Debris {
		if loadRecord(ctx, c.AddDebris, rec, log, at) {
			added++
		} else {
			skipped++
		}
	}
	return added, skipped, nil
}

// LoadFile opens path and loads it into a fresh catalog.
func LoadFile(path string, log logging.Logger, at time.Time) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	defer f.Close()

	c := New()
	added, skipped, err := Load(c, f, log, at)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Info(context.Background(), "catalog loaded",
			logging.String("path", path),
			logging.Int("objects", added),
			logging.Int("skipped", skipped),
		)
	}
	return c, nil
}

func loadRecord(ctx context.Context, add func(model.ObjectState) error, rec objectRecord, log logging.Logger, at time.Time) bool {
	if rec.ID == "" {
		log.Warn(ctx, "skipping catalog record without id", logging.String("name", rec.Name))
		return false
	}

	state, err := resolveState(rec, at)
	if err != nil {
		log.Warn(ctx, "skipping unresolvable catalog record",
			logging.String("id", rec.ID),
			logging.String("error", err.Error()),
		)
		return false
	}

	if err := add(state); err != nil {
		log.Warn(ctx, "skipping catalog record",
			logging.String("id", rec.ID),
			logging.String("error", err.Error()),
		)
		return false
	}
	return true
}

func resolveState(rec objectRecord, at time.Time) (model.ObjectState, error) {
	switch {
	case rec.X != nil && rec.Y != nil && rec.Z != nil &&
		rec.Vx != nil && rec.Vy != nil && rec.Vz != nil:
		return model.ObjectState{
			ID:       rec.ID,
			Name:     rec.Name,
			Position: model.Vec3{X: *rec.X, Y: *rec.Y, Z: *rec.Z},
			Velocity: model.Vec3{X: *rec.Vx, Y: *rec.Vy, Z: *rec.Vz},
		}, nil

	case rec.TLE1 != "" && rec.TLE2 != "":
		return StateFromTLE(rec.ID, rec.Name, rec.TLE1, rec.TLE2, at)

	case rec.Latitude != nil && rec.Longitude != nil && rec.AltitudeKm != nil:
		speed := 7.5 // km/s, typical LEO, when the feed omits it
		if rec.VelocityKmps != nil {
			speed = *rec.VelocityKmps
		}
		return StateFromGeodetic(rec.ID, rec.Name, *rec.Latitude, *rec.Longitude, *rec.AltitudeKm, speed), nil

	default:
		return model.ObjectState{}, fmt.Errorf("record %q has no complete state source", rec.ID)
	}
}
