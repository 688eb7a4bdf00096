package catalog

import (
	"errors"
	"fmt"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// ErrPropagation is returned when SGP4 propagation yields an unusable state.
var ErrPropagation = errors.New("tle propagation failed")

// StateFromTLE propagates a two-line element set to the given time and
// returns the resulting ECI state vector in km and km/s. Propagation stays in
// this package: the engine downstream only ever sees finished state vectors.
func StateFromTLE(id, name, line1, line2 string, at time.Time) (model.ObjectState, error) {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)

	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	pos, vel := satellite.Propagate(sat, year, int(month), day, hour, min, sec)

	state := model.ObjectState{
		ID:       id,
		Name:     name,
		Position: model.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z},
		Velocity: model.Vec3{X: vel.X, Y: vel.Y, Z: vel.Z},
	}
	if !state.IsFinite() {
		return model.ObjectState{}, fmt.Errorf("%w: object %q at %s", ErrPropagation, id, at.Format(time.RFC3339))
	}
	return state, nil
}
