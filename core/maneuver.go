package core

import (
	"math"

	"github.com/signalsfoundry/conjunction-sentinel/model"
)

// Burn sizing constants.
const (
	minBurnKmps = 0.0005 // 0.5 m/s
	maxBurnKmps = 0.05   // 50 m/s

	specificImpulseS = 300.0
	g0               = 9.81   // m/s²
	busMassKg        = 1000.0 // assumed spacecraft wet mass

	degenerateSpeed = 1e-6 // km/s below which relative velocity is unusable
)

var (
	upAxis    = model.Vec3{Z: 1}
	fixedAxis = model.Vec3{X: 1}
)

// burnDirection picks the unit direction for an avoidance burn: perpendicular
// to the relative velocity in the encounter plane when possible. Candidates
// are tried in order and the first non-degenerate one wins, so the result is
// always finite and non-zero.
func burnDirection(rRel, vRel model.Vec3) model.Vec3 {
	var candidates []model.Vec3
	if vRel.Norm() < degenerateSpeed {
		candidates = []model.Vec3{rRel.Cross(upAxis), fixedAxis}
	} else {
		candidates = []model.Vec3{vRel.Cross(rRel), vRel.Cross(upAxis), fixedAxis}
	}
	for _, c := range candidates {
		if c.Norm() >= degenerateSpeed {
			return c.Unit()
		}
	}
	return fixedAxis
}

// burnSeverity maps the predicted miss distance onto [0, 1]: anything inside
// 1 km is maximally severe, and severity falls off linearly out to 50 km.
func burnSeverity(distAtTCAKm float64) float64 {
	if distAtTCAKm <= 1.0 {
		return 1.0
	}
	return clamp((50.0-distAtTCAKm)/50.0, 0, 1)
}

// legacyBurnEstimate derives burn duration and propellant mass for a delta-v
// magnitude in m/s, assuming 1 N/kg thrust and the rocket equation at a fixed
// specific impulse. The altitude-keyed direction is the original estimator's
// remaining output: radial-ish below 600 km, tangential-ish above.
func legacyBurnEstimate(deltaVMps, altitudeKm float64) (durationS, fuelKg float64, direction model.Vec3) {
	durationS = deltaVMps / 10.0
	fuelKg = busMassKg * (1 - math.Exp(-deltaVMps/(specificImpulseS*g0)))

	if altitudeKm < 600 {
		direction = model.Vec3{X: 0.707, Y: 0.707}
	} else {
		direction = model.Vec3{Y: 1}
	}
	return durationS, fuelKg, direction
}

// PlanAvoidance produces a single-burn avoidance plan for the subject against
// a threat object. The burn is mostly perpendicular to the relative velocity,
// with a small phase-adjusting component along the reversed relative-velocity
// direction, sized by how close the predicted approach is.
func PlanAvoidance(subject, threat model.ObjectState) model.ManeuverPlan {
	f := ComputeFeatures(subject, threat)

	rRel := threat.Position.Sub(subject.Position)
	vRel := threat.Velocity.Sub(subject.Velocity)

	perp := burnDirection(rRel, vRel)

	severity := burnSeverity(f.DistanceAtTCAKm)
	dvMag := minBurnKmps + severity*(maxBurnKmps-minBurnKmps)

	var alongVRel model.Vec3
	if vRel.Norm() > degenerateSpeed {
		alongVRel = vRel.Unit().Scale(-1)
	}
	deltaV := perp.Scale(dvMag * 0.9).Add(alongVRel.Scale(dvMag * 0.1))
	deltaVKmps := deltaV.Norm()

	// Rough miss-distance gain: dv (km/s) integrated to the approach, with a
	// one-hour horizon assumed when the approach is already past.
	var missGainKm float64
	if f.TCASeconds >= 0 {
		missGainKm = deltaVKmps * math.Max(f.TCASeconds, 1.0)
	} else {
		missGainKm = deltaVKmps * 3600.0
	}

	deltaVMps := deltaVKmps * 1000.0
	durationS, fuelKg, _ := legacyBurnEstimate(deltaVMps, AltitudeKm(subject.Position))

	return model.ManeuverPlan{
		DeltaV:             deltaV,
		DeltaVMps:          deltaVMps,
		BurnDurationS:      durationS,
		FuelCostKg:         fuelKg,
		SafetyMarginKm:     deltaVMps * 0.1,
		ExpectedMissGainKm: missGainKm,
		Confidence:         clamp(0.6+severity*0.35, 0.4, 0.98),
	}
}

// PlanMultiBurn splits one baseline avoidance burn into a tapering sequence of
// n burns (default 3) with geometric 0.5^i weights, normalized so the
// constituent delta-v magnitudes sum to the baseline. Each sub-burn keeps the
// baseline direction; duration, fuel, and margins scale with its delta-v
// share.
func PlanMultiBurn(subject, threat model.ObjectState, burns int) []model.ManeuverPlan {
	if burns <= 0 {
		burns = 3
	}
	base := PlanAvoidance(subject, threat)

	factors := make([]float64, burns)
	sum := 0.0
	for i := range factors {
		factors[i] = math.Pow(0.5, float64(i))
		sum += factors[i]
	}
	scale := base.DeltaVMps / sum

	plans := make([]model.ManeuverPlan, 0, burns)
	for i := 0; i < burns; i++ {
		dvMps := factors[i] * scale
		share := dvMps / base.DeltaVMps
		plans = append(plans, model.ManeuverPlan{
			DeltaV:             base.DeltaV.Scale(share),
			DeltaVMps:          dvMps,
			BurnDurationS:      base.BurnDurationS * share,
			FuelCostKg:         base.FuelCostKg * share,
			SafetyMarginKm:     base.SafetyMarginKm * share,
			ExpectedMissGainKm: base.ExpectedMissGainKm * share,
			Confidence:         base.Confidence,
		})
	}
	return plans
}

// EvaluateSafety scores a plan on margin gained per kilogram of propellant
// and recommends whether to execute it.
func EvaluateSafety(plan model.ManeuverPlan) model.SafetyEvaluation {
	fuel := plan.FuelCostKg
	if fuel <= 0 {
		fuel = 1.0
	}
	efficiency := plan.SafetyMarginKm / fuel

	var recommendation string
	switch {
	case efficiency > 0.05 && plan.SafetyMarginKm > 0.5:
		recommendation = "execute"
	case efficiency > 0.02:
		recommendation = "review"
	default:
		recommendation = "inefficient"
	}

	return model.SafetyEvaluation{
		RiskReductionKm: plan.SafetyMarginKm,
		FuelEfficiency:  efficiency,
		Confidence:      clamp(0.6+plan.DeltaVMps/50.0, 0.5, 0.99),
		Recommendation:  recommendation,
	}
}

// SimulateEffect estimates the post-maneuver miss distance and residual risk
// for a threat currently at baseDistanceKm, under the exp(-d/20) residual
// model.
func SimulateEffect(baseDistanceKm float64, plan model.ManeuverPlan) model.ManeuverEffect {
	predicted := baseDistanceKm + plan.SafetyMarginKm
	residual := math.Exp(-predicted / 20.0)
	baseline := math.Exp(-baseDistanceKm / 20.0)

	return model.ManeuverEffect{
		BaselineMissDistanceKm:  baseDistanceKm,
		PredictedMissDistanceKm: predicted,
		BaselineRiskProb:        baseline,
		ResidualRiskProb:        residual,
		RiskReductionProb:       math.Max(0, baseline-residual),
	}
}
