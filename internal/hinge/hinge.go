// Package hinge implements the damped rotation shared by page blocks and
// covers. A hinge has no discrete states: every frame it moves its current
// angle a fraction of the way toward the target, giving a critically-damped
// feel without a physical spring model.
package hinge

import "bookflip-renderer/internal/mathutil"

// Hinge tracks one rotation axis converging toward its target angle.
// Angles are radians about the spine axis.
type Hinge struct {
	Current  float64
	Target   float64
	DampTime float64 // time constant in seconds; one constant covers ~63% of the gap
}

// New returns a settled hinge at angle zero.
func New(dampTime float64) Hinge {
	return Hinge{DampTime: dampTime}
}

// SetTarget retargets the hinge. Calling it repeatedly with the same angle
// is idempotent; the current angle is never touched here.
func (h *Hinge) SetTarget(angle float64) {
	h.Target = angle
}

// Update advances the current angle toward the target by exponential
// damping. Convergence is monotonic: the current angle never overshoots.
func (h *Hinge) Update(dt float64) {
	h.Current += (h.Target - h.Current) * mathutil.DampFactor(dt, h.DampTime)
}

// Settled reports whether the hinge is within eps of its target.
func (h *Hinge) Settled(eps float64) bool {
	d := h.Target - h.Current
	return d < eps && d > -eps
}
