// Package wedge morphs a page block between its open (fanned) and closed
// (flat slab) profiles. The engine is the sole mutator of its block's
// vertex buffer; everything it needs from the outside arrives as the
// read-only closedness scalar.
package wedge

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/mathutil"
)

// epsilon below which a vertex move does not count as a change, so a
// settled block stops dirtying its geometry every frame.
const epsilon = 1e-5

// minStackFraction keeps a nearly-empty half from collapsing to a zero
// silhouette; even the last page block keeps a sliver of thickness.
const minStackFraction = 0.02

// Closedness maps a hinge angle to the [0,1] morph factor. A quarter turn
// (π/2) is fully closed.
func Closedness(hingeAngle float64) float64 {
	return mathutil.Clamp(math.Abs(hingeAngle)/(math.Pi/2), 0, 1)
}

// Engine blends every morphable vertex of one page block between its two
// frozen targets, and derives the block's width/height retraction scales.
type Engine struct {
	mesh    *bookgeom.Mesh
	targets []bookgeom.VertexTarget
	stack   float64

	// Retract values are the scale each axis shrinks to at full closedness,
	// keeping the closed block inside the cover outline.
	WidthRetract  float64
	HeightRetract float64

	// Scales for the whole block, updated by Apply.
	WidthScale  float64
	HeightScale float64
}

// NewEngine wraps a page block mesh and its target table. The table must
// have been built alongside the mesh; a length mismatch is a construction
// error, not a runtime one.
func NewEngine(mesh *bookgeom.Mesh, targets []bookgeom.VertexTarget) (*Engine, error) {
	if mesh == nil || len(targets) != len(mesh.Verts) {
		return nil, fmt.Errorf("wedge: target table does not match mesh (%d targets, %d verts)",
			len(targets), meshLen(mesh))
	}
	return &Engine{
		mesh:          mesh,
		targets:       targets,
		stack:         1,
		WidthRetract:  0.97,
		HeightRetract: 0.985,
		WidthScale:    1,
		HeightScale:   1,
	}, nil
}

func meshLen(m *bookgeom.Mesh) int {
	if m == nil {
		return 0
	}
	return len(m.Verts)
}

// SetStackFraction instantly resizes the block to represent the given
// fraction of the book's sheets. Called by the flip orchestrator when a
// sheet crosses the spine; the jump is hidden behind the live actor.
func (e *Engine) SetStackFraction(f float64) {
	e.stack = mathutil.Clamp(f, minStackFraction, 1)
}

// StackFraction returns the current thickness fraction.
func (e *Engine) StackFraction() float64 {
	return e.stack
}

// Apply morphs all morphable vertices toward the profile selected by
// closedness and refreshes the retraction scales. It reports whether any
// vertex actually moved beyond epsilon, so callers only re-upload geometry
// when something changed.
func (e *Engine) Apply(closedness float64) bool {
	c := float32(mathutil.Clamp(closedness, 0, 1))

	changed := false
	for i := range e.targets {
		t := &e.targets[i]
		if !t.Morphable {
			continue
		}
		y := (t.OpenY + (t.ClosedY-t.OpenY)*c) * float32(e.stack)
		if math32.Abs(y-e.mesh.Verts[i][1]) > epsilon {
			e.mesh.Verts[i][1] = y
			changed = true
		}
	}

	e.WidthScale = mathutil.Lerp(1, e.WidthRetract, float64(c))
	e.HeightScale = mathutil.Lerp(1, e.HeightRetract, float64(c))

	return changed
}
