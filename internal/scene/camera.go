package scene

import (
	"math"

	"bookflip-renderer/internal/mathutil"
)

// View presets. The book lies in the XZ plane with Y up; the camera looks
// down the -Z axis after the view rotation is applied.
var (
	// FrontView looks at the open book from slightly above the fore-edge.
	FrontView = mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(-62)), mathutil.RotZ(mathutil.Deg2Rad(0)))

	// ReaderView is a gentle three-quarter view, the default for turn
	// sequences: enough tilt to show the page curl and the stack wedge.
	ReaderView = mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(-55)), mathutil.RotZ(mathutil.Deg2Rad(8)))

	// SideView looks along the spine, useful for inspecting the wedge
	// profile and hinge angles.
	SideView = mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(-10)), mathutil.RotY(mathutil.Deg2Rad(88)))
)

// Camera projects world-space vertices to screen coordinates. Orthographic
// by default; Perspective adds a simple FOV-based foreshortening.
type Camera struct {
	View        mathutil.Mat3
	Perspective bool
	FOV         float64 // degrees, only used when Perspective is set
}

// ViewByName resolves a preset name, defaulting to ReaderView.
func ViewByName(name string) mathutil.Mat3 {
	switch name {
	case "front":
		return FrontView
	case "side":
		return SideView
	}
	return ReaderView
}

// Frame is the flattened, view-transformed geometry of one node, ready to
// rasterize.
type Frame struct {
	PX, PY, PZ []float64
}

// Bounds accumulates the view-space bounding box of a vertex set.
type Bounds struct {
	Min, Max mathutil.Vec3
}

// NewBounds returns an empty (inverted) bounding box.
func NewBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: mathutil.Vec3{inf, inf, inf},
		Max: mathutil.Vec3{-inf, -inf, -inf},
	}
}

// Extend grows the box to cover p.
func (b *Bounds) Extend(p mathutil.Vec3) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

// Center returns the box midpoint.
func (b *Bounds) Center() mathutil.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// FitScale returns the uniform scale that fits the box's XY span into
// renderSize with the given pixel margin.
func (b *Bounds) FitScale(renderSize, margin int) float64 {
	span := b.Max[0] - b.Min[0]
	if s := b.Max[1] - b.Min[1]; s > span {
		span = s
	}
	if span < 0.001 {
		span = 0.001
	}
	return float64(renderSize-2*margin) / span
}

// Project transforms world-space vertices through the camera into screen
// coordinates. center and scale come from a prior Bounds pass over the
// whole scene so every node shares one framing.
func (c *Camera) Project(verts []mathutil.Vec3, center mathutil.Vec3, scale float64, renderSize int) Frame {
	n := len(verts)
	f := Frame{
		PX: make([]float64, n),
		PY: make([]float64, n),
		PZ: make([]float64, n),
	}
	half := float64(renderSize) / 2

	var camDist float64
	if c.Perspective {
		fov := c.FOV
		if fov <= 0 {
			fov = 35
		}
		halfFOV := mathutil.Deg2Rad(fov / 2)
		var xyMax float64
		for _, v := range verts {
			t := c.View.MulVec3(v)
			for k := 0; k < 2; k++ {
				if d := math.Abs(t[k] - center[k]); d > xyMax {
					xyMax = d
				}
			}
		}
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		camDist = xyMax / math.Tan(halfFOV)
	}

	for i, v := range verts {
		t := c.View.MulVec3(v)
		if c.Perspective {
			depth := math.Max(camDist-(t[2]-center[2]), 0.1)
			factor := camDist / depth
			t[0] = center[0] + (t[0]-center[0])*factor
			t[1] = center[1] + (t[1]-center[1])*factor
		}
		f.PX[i] = (t[0]-center[0])*scale + half
		f.PY[i] = -(t[1]-center[1])*scale + half
		f.PZ[i] = t[2]
	}
	return f
}
