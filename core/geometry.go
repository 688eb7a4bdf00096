package core

import (
	"math"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// EarthRadiusKm is the mean Earth radius used for all altitude
// calculations in the engine (kilometres).
const EarthRadiusKm = 6371.0

// relVelEpsilon is the squared relative-speed floor below which two objects
// are treated as mutually stationary for closest-approach purposes.
const relVelEpsilon = 1e-12

// AltitudeKm returns the altitude above the Earth surface for an ECI-style
// radius vector in kilometres.
func AltitudeKm(position model.Vec3) float64 {
	return position.Norm() - EarthRadiusKm
}

// AngleBetweenDeg returns the angle between two velocity vectors in degrees,
// in [0, 180]. If either vector has zero magnitude the angle is defined as 0.
func AngleBetweenDeg(v1, v2 model.Vec3) float64 {
	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cos := v1.Dot(v2) / (n1 * n2)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180.0 / math.Pi
}

// ClosestApproach computes the time and distance of closest approach for two
// objects under locally linear motion:
//
//	r_rel(t) = (r2 - r1) + (v2 - v1) t
//
// Minimising |r_rel(t)|² gives t* = -(r_rel0 · v_rel) / |v_rel|². The returned
// time is signed: negative means the closest approach is in the past. When the
// relative velocity is numerically stationary, the closest approach is "now"
// and the distance is the current separation.
func ClosestApproach(r1, v1, r2, v2 model.Vec3) (tcaSeconds, distanceKm float64) {
	rRel := r2.Sub(r1)
	vRel := v2.Sub(v1)

	vRelSq := vRel.Dot(vRel)
	if vRelSq < relVelEpsilon {
		return 0, rRel.Norm()
	}

	t := -rRel.Dot(vRel) / vRelSq
	return t, rRel.Add(vRel.Scale(t)).Norm()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
