// Package bookgeom builds the procedural meshes of the book: the two
// morphable page blocks, the rigid covers, and the segmented turning sheet.
// All geometry is constructed once; only vertex positions are mutated
// afterwards, and only by the component that owns the mesh.
package bookgeom

import "fmt"

// FaceRole classifies a face at build time so the renderer and morph engine
// never have to branch on runtime normals.
type FaceRole uint8

const (
	RoleFront FaceRole = iota
	RoleBack
	RoleTop
	RoleBottom
	RoleSpine
	RoleForeEdge
)

func (r FaceRole) String() string {
	switch r {
	case RoleFront:
		return "front"
	case RoleBack:
		return "back"
	case RoleTop:
		return "top"
	case RoleBottom:
		return "bottom"
	case RoleSpine:
		return "spine"
	case RoleForeEdge:
		return "fore-edge"
	}
	return "unknown"
}

// Triangle holds index triples into the vertex/texcoord arrays plus the
// static face-role tag assigned at build time.
type Triangle struct {
	VI   [3]int32
	TI   [3]int32
	Role FaceRole
}

// Mesh holds geometry for one renderable part of the book.
// Verts is the only mutable field after construction.
type Mesh struct {
	Verts [][3]float32 // positions; mutated by the morph engine or sheet skinning
	UVs   [][2]float32
	Nodes []int16 // joint index per vertex; nil for unskinned meshes
	Tris  []Triangle
}

// VertexTarget is one vertex's pair of thickness targets for the wedge
// morph. The table is frozen at construction and indexed in lockstep with
// Mesh.Verts.
type VertexTarget struct {
	OpenY     float32
	ClosedY   float32
	Morphable bool
}

// GeometryBuildError reports invalid construction parameters. It is the
// only failure this package can produce; once built, geometry operations
// are infallible.
type GeometryBuildError struct {
	Shape  string
	Reason string
}

func (e *GeometryBuildError) Error() string {
	return fmt.Sprintf("bookgeom: build %s: %s", e.Shape, e.Reason)
}

// Side selects which half of the spine a block or cover occupies.
// Right-side geometry extends toward negative X so that the negative
// spine rotation of a forward turn lifts it upward.
type Side int

const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Dir returns the X direction the side's geometry extends in.
func (s Side) Dir() float64 {
	if s == Right {
		return -1
	}
	return 1
}
