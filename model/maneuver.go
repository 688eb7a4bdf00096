package model

// ManeuverPlan describes a single avoidance burn. DeltaV is the burn vector
// in km/s; DeltaVMps is its magnitude in m/s, the unit operators work in.
type ManeuverPlan struct {
	DeltaV             Vec3    `json:"delta_v"`
	DeltaVMps          float64 `json:"delta_v_mps"`
	BurnDurationS      float64 `json:"burn_duration_s"`
	FuelCostKg         float64 `json:"fuel_cost_kg"`
	SafetyMarginKm     float64 `json:"safety_margin_km"`
	ExpectedMissGainKm float64 `json:"expected_increase_in_miss_km"`
	Confidence         float64 `json:"confidence"`
}

// SafetyEvaluation scores a maneuver plan on fuel efficiency and gives a
// coarse go/no-go recommendation.
type SafetyEvaluation struct {
	RiskReductionKm float64 `json:"risk_reduction_km"`
	FuelEfficiency  float64 `json:"fuel_efficiency"`
	Confidence      float64 `json:"confidence"`
	Recommendation  string  `json:"recommendation"`
}

// ManeuverEffect is the simulated post-maneuver outcome for a threat pair.
type ManeuverEffect struct {
	BaselineMissDistanceKm  float64 `json:"baseline_miss_distance_km"`
	PredictedMissDistanceKm float64 `json:"predicted_miss_distance_km"`
	BaselineRiskProb        float64 `json:"baseline_risk_prob"`
	ResidualRiskProb        float64 `json:"residual_risk_prob"`
	RiskReductionProb       float64 `json:"risk_reduction_prob"`
}
