// Package scene is the renderable subtree the book exposes to a rendering
// backend: a small node tree carrying transforms, meshes, and texture
// assignments. It is rebuilt once per frame and consumed read-only by the
// rasterizer.
package scene

import (
	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/mathutil"
)

// Node is one element of the renderable subtree. Mesh may be nil for pure
// grouping nodes. FaceTex assigns a content image per face role; roles
// without an entry render as bare paper.
type Node struct {
	Name      string
	Transform mathutil.Mat4
	Mesh      *bookgeom.Mesh
	FaceTex   map[bookgeom.FaceRole]string
	Children  []*Node
}

// NewGroup returns an empty grouping node with an identity transform.
func NewGroup(name string) *Node {
	return &Node{Name: name, Transform: mathutil.Mat4Identity()}
}

// Add appends children and returns the node for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits every node depth-first with its accumulated world transform.
func (n *Node) Walk(fn func(world mathutil.Mat4, n *Node)) {
	n.walk(mathutil.Mat4Identity(), fn)
}

func (n *Node) walk(parent mathutil.Mat4, fn func(world mathutil.Mat4, n *Node)) {
	world := mathutil.Mat4Mul(parent, n.Transform)
	fn(world, n)
	for _, c := range n.Children {
		c.walk(world, fn)
	}
}
