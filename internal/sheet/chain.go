// Package sheet implements the ephemeral flexible page, the one sheet
// that visually performs a turn. A flat, linearly-parented joint chain is
// anchored at the spine; posing it is a pure function of the flip progress
// and direction, and skinning deforms the strip mesh from a kept rest pose.
package sheet

import (
	"math"

	"bookflip-renderer/internal/mathutil"
)

// Direction of a page turn.
type Direction int

const (
	Forward  Direction = iota // next page: the sheet sweeps right to left
	Backward                  // previous page: left back to right
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Joint holds the rotation state of one chain link. Joints never
// translate; each is offset from the previous by a fixed segment width,
// and joint 0 sits at the spine with zero offset.
type Joint struct {
	Turn float64 // rotation about the spine axis: the sweep and the curl
	Fold float64 // rotation about the chain axis: the secondary corner fold
}

// Chain is the flat joint arena. Parentage is implicit: joint i hangs off
// joint i-1, so no object graph and no back-references.
type Chain struct {
	Joints   []Joint
	SegWidth float64
	Shift    float64 // container offset across the spine gap, set by the pose
}

// NewChain allocates a chain of segments+1 joints at rest.
func NewChain(segments int, segWidth float64) *Chain {
	return &Chain{
		Joints:   make([]Joint, segments+1),
		SegWidth: segWidth,
	}
}

// RootTurn returns the root joint's sweep angle.
func (c *Chain) RootTurn() float64 {
	return c.Joints[0].Turn
}

// WorldMatrices chains each joint's local transform down the array and
// returns the world matrix per joint. The root carries the spine-gap
// shift; every other joint adds its fixed segment offset first.
func (c *Chain) WorldMatrices() []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(c.Joints))
	parent := mathutil.Mat4Translation(mathutil.Vec3{c.Shift, 0, 0})
	for i, j := range c.Joints {
		rot := mathutil.QuatToMat3(mathutil.EulerToQuat(j.Fold, 0, j.Turn))
		var off mathutil.Vec3
		if i > 0 {
			off = mathutil.Vec3{-c.SegWidth, 0, 0}
		}
		local := mathutil.FromMat3Translation(rot, off)
		worlds[i] = mathutil.Mat4Mul(parent, local)
		parent = worlds[i]
	}
	return worlds
}

// Deformer computes the chain pose for a flip progress. All fields are
// constants over a flip; Pose writes only into the chain.
type Deformer struct {
	MaxBend    float64 // peak per-joint curl at the free edge, radians
	FoldAngle  float64 // peak secondary fold on the outermost joints
	FoldJoints int     // how many outermost joints receive the fold
	GapShift   float64 // ε: spine-gap half-offset the container migrates across
}

// DefaultDeformer returns the stock page-turn shape.
func DefaultDeformer() Deformer {
	return Deformer{
		MaxBend:    0.35,
		FoldAngle:  0.12,
		FoldJoints: 2,
		GapShift:   0.06,
	}
}

// Pose computes every joint rotation and the container shift for the given
// progress and direction. It is pure: same inputs, same pose.
//
// The root sweeps between 0 and -π (forward) with a cubic-eased profile.
// Curl is gated by the bell-shaped turning-time weight, so the sheet lies
// flat at both ends of the turn and bends only mid-flight; the (i/N)²
// falloff keeps it stiff near the spine and curliest at the free edge,
// producing a "J" rather than a spiral.
func (d *Deformer) Pose(c *Chain, progress float64, dir Direction) {
	progress = mathutil.Clamp(progress, 0, 1)
	eased := mathutil.EaseCubic(progress)
	w := mathutil.BellWeight(progress)

	start, end := 0.0, -math.Pi
	if dir == Backward {
		start, end = -math.Pi, 0
	}
	raw := mathutil.Lerp(start, end, eased)
	c.Joints[0].Turn = raw
	c.Joints[0].Fold = 0

	n := len(c.Joints) - 1
	sign := mathutil.Sign(raw)
	for i := 1; i <= n; i++ {
		f := float64(i) / float64(n)
		c.Joints[i].Turn = -sign * w * d.MaxBend * f * f
		c.Joints[i].Fold = 0
	}

	for i := n - d.FoldJoints + 1; i <= n; i++ {
		if i >= 1 {
			c.Joints[i].Fold = w * d.FoldAngle
		}
	}

	// The hinge point migrates across the spine gap as the page crosses
	// over, in lockstep with the eased sweep.
	if dir == Forward {
		c.Shift = mathutil.Lerp(d.GapShift, -d.GapShift, eased)
	} else {
		c.Shift = mathutil.Lerp(-d.GapShift, d.GapShift, eased)
	}
}
