package catalog

import (
	"math"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// earthRadiusKm duplicates the engine constant so the catalog layer has no
// dependency on core.
const earthRadiusKm = 6371.0

// StateFromGeodetic derives a full state vector from geodetic coordinates and
// a scalar ground speed. Position uses a spherical Earth; velocity is a
// simple tangential approximation in the local horizontal plane. This is the
// upstream producer for catalog feeds that carry lat/lon/alt rather than
// Cartesian state.
func StateFromGeodetic(id, name string, latDeg, lonDeg, altKm, speedKmps float64) model.ObjectState {
	r := earthRadiusKm + altKm
	lat := latDeg * math.Pi / 180.0
	lon := lonDeg * math.Pi / 180.0

	return model.ObjectState{
		ID:   id,
		Name: name,
		Position: model.Vec3{
			X: r * math.Cos(lat) * math.Cos(lon),
			Y: r * math.Sin(lat),
			Z: r * math.Cos(lat) * math.Sin(lon),
		},
		Velocity: model.Vec3{
			X: -speedKmps * math.Sin(lon),
			Y: speedKmps * math.Cos(lon),
			Z: 0,
		},
	}
}
