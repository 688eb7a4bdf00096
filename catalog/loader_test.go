package catalog

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/conjunction-sentinel/internal/logging"
)

const loaderFixture = `{
  "satellites": [
    {
      "id": "SAT-1", "name": "Cartesian",
      "x": 6771, "y": 0, "z": 0,
      "vx": 0, "vy": 7.5, "vz": 0
    },
    {
      "id": "SAT-2", "name": "Two-line",
      "tle1": "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990",
      "tle2": "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
    },
    {
      "id": "SAT-3", "name": "Geodetic",
      "latitude": 0, "longitude": 0, "altitude_km": 550
    }
  ],
  "debris": [
    {
      "id": "DEB-1", "name": "Fragment",
      "x": 6774, "y": 0, "z": 0,
      "vx": 0, "vy": -7.4, "vz": 0
    },
    {
      "id": "DEB-2", "name": "Incomplete",
      "x": 6774, "y": 0
    },
    {
      "name": "Anonymous",
      "x": 1, "y": 2, "z": 3, "vx": 0, "vy": 0, "vz": 0
    }
  ]
}`

func TestLoad(t *testing.T) {
	c := New()
	epoch := time.Date(2021, 10, 2, 14, 11, 0, 0, time.UTC)

	added, skipped, err := Load(c, strings.NewReader(loaderFixture), logging.Noop(), epoch)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if added != 4 || skipped != 2 {
		t.Fatalf("Load = (%d added, %d skipped), want (4, 2)", added, skipped)
	}

	sats, debris := c.Len()
	if sats != 3 || debris != 1 {
		t.Fatalf("Len() = (%d, %d), want (3, 1)", sats, debris)
	}

	snapshot := c.Satellites()

	cartesian := snapshot[0]
	if cartesian.Position.X != 6771 || cartesian.Velocity.Y != 7.5 {
		t.Errorf("cartesian record state = %+v", cartesian)
	}

	propagated := snapshot[1]
	if r := propagated.Position.Norm(); r < 6371+300 || r > 6371+500 {
		t.Errorf("tle record radius = %v km, want within LEO band", r)
	}

	derived := snapshot[2]
	if math.Abs(derived.Position.X-(6371+550)) > 1e-9 {
		t.Errorf("geodetic record X = %v, want %v", derived.Position.X, 6371+550.0)
	}
	// The feed omitted the speed, so the LEO default applies.
	if math.Abs(derived.Velocity.Norm()-7.5) > 1e-9 {
		t.Errorf("geodetic record speed = %v, want 7.5", derived.Velocity.Norm())
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	if _, _, err := Load(New(), strings.NewReader("{not json"), logging.Noop(), time.Now()); err == nil {
		t.Fatal("malformed catalog accepted")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(loaderFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := LoadFile(path, logging.Noop(), time.Date(2021, 10, 2, 14, 11, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if sats, debris := c.Len(); sats != 3 || debris != 1 {
		t.Errorf("Len() = (%d, %d), want (3, 1)", sats, debris)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"), logging.Noop(), time.Now()); err == nil {
		t.Fatal("missing catalog file accepted")
	}
}
