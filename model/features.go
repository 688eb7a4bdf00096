package model

// PhysicsFeatures are the derived close-approach features for a pair of
// tracked objects. They are recomputed on demand and never persisted.
//
// TCASeconds is signed: negative means the closest approach already happened
// under the linear-motion assumption.
type PhysicsFeatures struct {
	DistanceKm        float64 `json:"distance_km"`
	RelativeSpeedKmps float64 `json:"relative_velocity_kmps"`
	ApproachAngleDeg  float64 `json:"approach_angle_deg"`
	AltitudeDiffKm    float64 `json:"altitude_diff_km"`
	TCASeconds        float64 `json:"time_to_closest_approach_sec"`
	DistanceAtTCAKm   float64 `json:"minimum_distance_km"`
}
