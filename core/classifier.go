package core

import "github.com/signalsfoundry/conjunction-sentinel/model"

// Classification thresholds (kilometres).
const (
	noRiskBandKm  = 50.0
	lowBandKm     = 20.0
	mediumBandKm  = 5.0
	escalateSpeed = 10.0  // km/s
	escalateAngle = 150.0 // degrees
)

// ClassifyDistance maps a separation distance onto the base risk band.
func ClassifyDistance(distanceKm float64) model.RiskLevel {
	switch {
	case distanceKm > noRiskBandKm:
		return model.RiskNone
	case distanceKm > lowBandKm:
		return model.RiskLow
	case distanceKm > mediumBandKm:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// Classify derives the discrete risk level from distance, escalating by one
// level (capped at RiskHigh) for fast, near-head-on approaches. The level is
// weakly monotonic: for fixed speed and angle it never decreases as distance
// shrinks, and the escalation path only ever increases it.
func Classify(distanceKm, relSpeedKmps, approachAngleDeg float64) model.RiskLevel {
	level := ClassifyDistance(distanceKm)
	if relSpeedKmps > escalateSpeed && approachAngleDeg > escalateAngle && level < model.RiskHigh {
		level++
	}
	return level
}
