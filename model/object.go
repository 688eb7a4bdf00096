package model

// ObjectState is an immutable position/velocity snapshot of a tracked object
// (satellite or debris fragment). Positions are kilometres, velocities km/s.
// Instances are passed by value; the engine never mutates them.
type ObjectState struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Position Vec3   `json:"position"`
	Velocity Vec3   `json:"velocity"`
}

// IsFinite reports whether the full six-component state vector is finite.
func (s ObjectState) IsFinite() bool {
	return s.Position.IsFinite() && s.Velocity.IsFinite()
}
