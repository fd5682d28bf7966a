package sheet

import (
	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/mathutil"
)

// Actor is the live turning sheet: a strip mesh rigidly skinned to a joint
// chain. One actor exists at most, and only while a flip is in flight.
type Actor struct {
	Mesh  *bookgeom.Mesh
	Chain *Chain

	// FrontTex and BackTex identify the images on the two faces of the
	// turning sheet, resolved by the content catalog at render time.
	FrontTex string
	BackTex  string

	rest [][3]float32
}

// NewActor binds a sheet mesh to a fresh chain. The mesh's rest positions
// are copied so the strip can be re-deformed from scratch every frame.
func NewActor(mesh *bookgeom.Mesh, segments int, segWidth float64) *Actor {
	rest := make([][3]float32, len(mesh.Verts))
	copy(rest, mesh.Verts)
	return &Actor{
		Mesh:  mesh,
		Chain: NewChain(segments, segWidth),
		rest:  rest,
	}
}

// Deform recomputes the mesh vertex positions from the rest pose and the
// chain's current joint rotations. Rigid skinning: one joint per vertex,
// weight 1. Vertices with an out-of-range joint index are left at rest.
func (a *Actor) Deform() {
	if a.Mesh == nil || len(a.Mesh.Nodes) != len(a.Mesh.Verts) {
		return
	}

	worlds := a.Chain.WorldMatrices()
	segW := a.Chain.SegWidth

	for vi := range a.rest {
		ji := int(a.Mesh.Nodes[vi])
		if ji < 0 || ji >= len(worlds) {
			a.Mesh.Verts[vi] = a.rest[vi]
			continue
		}
		r := a.rest[vi]
		// Rest positions are in sheet space; shift into the joint's local
		// frame (joint i rests at x = -segW·i) before applying its world
		// transform.
		v := mathutil.Vec3{
			float64(r[0]) + segW*float64(ji),
			float64(r[1]),
			float64(r[2]),
		}
		t := worlds[ji].MulPoint(v)
		a.Mesh.Verts[vi] = [3]float32{float32(t[0]), float32(t[1]), float32(t[2])}
	}
}
