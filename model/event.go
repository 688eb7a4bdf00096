package model

import "time"

// ConjunctionEvent is a recorded close-approach assessment between a
// satellite and a debris object. Events are created fresh on every scan; no
// identity persists between scans.
type ConjunctionEvent struct {
	SatelliteID   string `json:"satellite_id"`
	SatelliteName string `json:"satellite_name,omitempty"`
	DebrisID      string `json:"debris_id"`
	DebrisName    string `json:"debris_name,omitempty"`

	Features   PhysicsFeatures `json:"features"`
	Assessment RiskAssessment  `json:"assessment"`

	// CollisionProbability is the size-aware closure probability, distinct
	// from the feature-weighted Assessment.Probability score.
	CollisionProbability float64 `json:"collision_probability"`

	// Maneuver is only attached for high-risk pairs when the scanner is
	// configured to plan avoidance.
	Maneuver *ManeuverPlan `json:"maneuver,omitempty"`

	IsHighRisk bool      `json:"is_high_risk"`
	ComputedAt time.Time `json:"computed_at"`
}
