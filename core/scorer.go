package core

import (
	"math"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// Scoring constants. Distances are kilometres, speeds km/s, times seconds.
const (
	distanceScaleKm    = 30.0   // characteristic decay scale for raw separation
	tcaDistanceScaleKm = 20.0   // decay scale for closest-approach distance
	tcaHorizonSec      = 259200 // 72 h: approaches inside this window are amplified
	velocityNormKmps   = 12.0
)

// ScoreFeatures maps the full close-approach feature set to a collision risk
// score in [0, 1]. The formula is deterministic: an exponential decay over
// separation, refined by the closest-approach distance (amplified when the
// approach is in the near future), plus bounded contributions from relative
// speed, approach geometry, and altitude proximity.
func ScoreFeatures(f model.PhysicsFeatures) float64 {
	base := baseFromTCA(
		f.DistanceKm,
		f.DistanceAtTCAKm,
		f.TCASeconds,
		true,
	)
	return combineScore(base, f.RelativeSpeedKmps, f.ApproachAngleDeg, f.AltitudeDiffKm)
}

// ScoreInstantaneous scores from instantaneous geometry only: the current
// separation stands in for the closest-approach distance and no approach
// timing is known, so the near-future amplification never applies.
func ScoreInstantaneous(distanceKm, relSpeedKmps, angleDeg, altDiffKm float64) float64 {
	base := baseFromTCA(distanceKm, distanceKm, 0, false)
	return combineScore(base, relSpeedKmps, angleDeg, altDiffKm)
}

func baseFromTCA(distanceKm, distAtTCAKm, tcaSeconds float64, hasTiming bool) float64 {
	base := math.Exp(-math.Max(distanceKm, 0.001) / distanceScaleKm)

	baseTCA := math.Exp(-math.Max(distAtTCAKm, 0.001)/tcaDistanceScaleKm) * 0.8

	timeFactor := 1.0
	if hasTiming && tcaSeconds >= 0 {
		timeFactor = 1.0 + math.Max(0, (tcaHorizonSec-tcaSeconds)/tcaHorizonSec)*0.5
	}
	// Past approaches (tca < 0) never amplify.

	return math.Max(base, baseTCA*timeFactor)
}

func combineScore(base, relSpeedKmps, angleDeg, altDiffKm float64) float64 {
	velFactor := math.Min(relSpeedKmps/velocityNormKmps, 1.0) * 0.4

	// Head-on (180°) contributes most, co-moving (0°) nothing.
	angleContrib := (angleDeg / 180.0) * 0.2

	altFactor := math.Max(0, 1.0-math.Min(altDiffKm/50.0, 1.0)) * 0.3

	return clamp(base*0.7+velFactor+angleContrib+altFactor*0.5, 0, 1)
}

// CollisionProbability estimates the probability of physical closure from
// separation and relative speed, given rough object size estimates in metres.
// Unlike ScoreFeatures it accounts for the combined hard-body radius: inside
// that radius the probability saturates at 0.99.
func CollisionProbability(distanceKm, relSpeedKmps, satelliteSizeM, debrisSizeM float64) float64 {
	combinedRadiusKm := (satelliteSizeM + debrisSizeM) / 2000.0

	if distanceKm <= combinedRadiusKm {
		return 0.99
	}

	velocityFactor := math.Min(relSpeedKmps/15.0, 1.0)

	const decayRate = 0.5
	p := math.Exp(-decayRate*(distanceKm-combinedRadiusKm)) * velocityFactor
	return clamp(p, 0, 0.99)
}
