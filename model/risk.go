package model

// RiskLevel is an ordinal discretization of collision severity.
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
)

var riskMetadata = [...]struct {
	label  string
	color  string
	action string
}{
	RiskNone:   {"No Risk", "green", "Continue monitoring"},
	RiskLow:    {"Low Risk", "yellow", "Increase monitoring frequency"},
	RiskMedium: {"Medium Risk", "orange", "Prepare avoidance maneuver"},
	RiskHigh:   {"High Risk", "red", "Execute immediate avoidance maneuver"},
}

func (l RiskLevel) valid() bool { return l >= RiskNone && l <= RiskHigh }

// Label returns the operator-facing name of the level.
func (l RiskLevel) Label() string {
	if !l.valid() {
		return riskMetadata[RiskNone].label
	}
	return riskMetadata[l].label
}

// Color returns the display color associated with the level.
func (l RiskLevel) Color() string {
	if !l.valid() {
		return riskMetadata[RiskNone].color
	}
	return riskMetadata[l].color
}

// Action returns the recommended operator action for the level.
func (l RiskLevel) Action() string {
	if !l.valid() {
		return riskMetadata[RiskNone].action
	}
	return riskMetadata[l].action
}

// RiskAssessment pairs the continuous risk score with the discrete
// classification and its metadata.
type RiskAssessment struct {
	Probability float64   `json:"probability"`
	Level       RiskLevel `json:"risk_level"`
	Label       string    `json:"risk_label"`
	Color       string    `json:"color"`
	Action      string    `json:"recommended_action"`
}

// NewRiskAssessment assembles an assessment from a score and a level,
// deriving label, color, and action from the level.
func NewRiskAssessment(probability float64, level RiskLevel) RiskAssessment {
	return RiskAssessment{
		Probability: probability,
		Level:       level,
		Label:       level.Label(),
		Color:       level.Color(),
		Action:      level.Action(),
	}
}
