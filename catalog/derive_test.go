package catalog

import (
	"math"
	"testing"
)

func TestStateFromGeodetic_EquatorPrimeMeridian(t *testing.T) {
	s := StateFromGeodetic("SAT-1", "Sentinel A", 0, 0, 550, 7.5)

	if s.ID != "SAT-1" || s.Name != "Sentinel A" {
		t.Errorf("identity not carried: %q %q", s.ID, s.Name)
	}

	// lat 0, lon 0 puts the object on the +X axis at geocentric radius
	// earth + altitude, moving along +Y.
	wantR := earthRadiusKm + 550
	if math.Abs(s.Position.X-wantR) > 1e-9 || math.Abs(s.Position.Y) > 1e-9 || math.Abs(s.Position.Z) > 1e-9 {
		t.Errorf("position = %+v, want (%v, 0, 0)", s.Position, wantR)
	}
	if math.Abs(s.Velocity.X) > 1e-9 || math.Abs(s.Velocity.Y-7.5) > 1e-9 || math.Abs(s.Velocity.Z) > 1e-9 {
		t.Errorf("velocity = %+v, want (0, 7.5, 0)", s.Velocity)
	}
}

func TestStateFromGeodetic_PositionGeometry(t *testing.T) {
	cases := []struct {
		name               string
		lat, lon, alt      float64
		check              func(t *testing.T, x, y, z float64)
	}{
		{
			name: "north pole",
			lat:  90, lon: 0, alt: 400,
			check: func(t *testing.T, x, y, z float64) {
				if math.Abs(y-(earthRadiusKm+400)) > 1e-6 || math.Abs(x) > 1e-6 || math.Abs(z) > 1e-6 {
					t.Errorf("pole not on +Y axis: (%v, %v, %v)", x, y, z)
				}
			},
		},
		{
			name: "90 east on the equator",
			lat:  0, lon: 90, alt: 400,
			check: func(t *testing.T, x, y, z float64) {
				if math.Abs(z-(earthRadiusKm+400)) > 1e-6 || math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
					t.Errorf("lon 90 not on +Z axis: (%v, %v, %v)", x, y, z)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := StateFromGeodetic("X", "", tc.lat, tc.lon, tc.alt, 7.5)
			tc.check(t, s.Position.X, s.Position.Y, s.Position.Z)
		})
	}
}

func TestStateFromGeodetic_RadiusAndSpeedPreserved(t *testing.T) {
	s := StateFromGeodetic("X", "", 37.4, -122.1, 620, 7.2)

	if got, want := s.Position.Norm(), earthRadiusKm+620; math.Abs(got-want) > 1e-6 {
		t.Errorf("geocentric radius = %v, want %v", got, want)
	}
	if got := s.Velocity.Norm(); math.Abs(got-7.2) > 1e-6 {
		t.Errorf("speed = %v, want 7.2", got)
	}
	if !s.IsFinite() {
		t.Errorf("derived state not finite: %+v", s)
	}
}
