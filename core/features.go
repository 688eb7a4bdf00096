package core

import (
	"math"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// ComputeFeatures derives the close-approach feature set for a subject/object
// pair. It is a total function of its inputs: degenerate geometry (zero
// velocities, coincident positions, stationary relative motion) takes the
// documented fallback branches rather than erroring. Non-finite inputs
// propagate; catalog ingestion is responsible for supplying finite states.
func ComputeFeatures(subject, object model.ObjectState) model.PhysicsFeatures {
	distance := subject.Position.DistanceTo(object.Position)
	relSpeed := object.Velocity.Sub(subject.Velocity).Norm()
	angle := AngleBetweenDeg(subject.Velocity, object.Velocity)
	altDiff := math.Abs(AltitudeKm(subject.Position) - AltitudeKm(object.Position))

	tca, distAtTCA := ClosestApproach(
		subject.Position, subject.Velocity,
		object.Position, object.Velocity,
	)

	return model.PhysicsFeatures{
		DistanceKm:        distance,
		RelativeSpeedKmps: relSpeed,
		ApproachAngleDeg:  angle,
		AltitudeDiffKm:    altDiff,
		TCASeconds:        tca,
		DistanceAtTCAKm:   distAtTCA,
	}
}
