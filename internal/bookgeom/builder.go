package bookgeom

import (
	"bookflip-renderer/internal/mathutil"
)

// PageBlockDims describes one half of the unturned page stack.
// Width runs across the page (X), Height along the spine (Z), thickness up (Y).
type PageBlockDims struct {
	Width    float64
	Height   float64
	MinThick float64 // open-profile thickness at the spine
	MaxThick float64 // open-profile thickness at the fore-edge; also the closed slab height
	Columns  int     // subdivisions across the width
}

// CoverDims describes a rigid cover slab.
type CoverDims struct {
	Width    float64
	Height   float64
	Thick    float64
	Overhang float64 // how far the cover extends past the page edges
}

// SheetDims describes the ephemeral turning sheet.
type SheetDims struct {
	Width    float64
	Height   float64
	Thick    float64 // separation between the front and back face layers
	Segments int     // chain segments across the width; the sheet binds Segments+1 joints
}

// BuildPageBlock constructs the morphable block for one half of the book
// along with its frozen vertex target table. The open-profile target is a
// cubic-eased thickness ramp from the spine to the fore-edge, so the open
// block reads as a fanned wedge; the closed profile is a flat slab at
// MaxThick. The mesh starts in the open profile.
func BuildPageBlock(d PageBlockDims, side Side) (*Mesh, []VertexTarget, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, nil, &GeometryBuildError{Shape: "page block", Reason: "width and height must be positive"}
	}
	if d.MinThick <= 0 || d.MaxThick < d.MinThick {
		return nil, nil, &GeometryBuildError{Shape: "page block", Reason: "need 0 < MinThick <= MaxThick"}
	}
	if d.Columns < 1 {
		return nil, nil, &GeometryBuildError{Shape: "page block", Reason: "need at least one column"}
	}

	cols := d.Columns + 1
	dir := side.Dir()
	halfH := d.Height / 2

	m := &Mesh{
		Verts: make([][3]float32, 0, cols*4),
		UVs:   make([][2]float32, 0, cols*4),
	}
	targets := make([]VertexTarget, 0, cols*4)

	// Top grid: morphable, starts at the open profile.
	// Vertex order: column-major, back row (z = -H/2) then front row.
	for i := 0; i < cols; i++ {
		u := float64(i) / float64(d.Columns)
		x := dir * d.Width * u
		openY := d.MinThick + (d.MaxThick-d.MinThick)*mathutil.EaseCubic(u)
		for zi := 0; zi < 2; zi++ {
			z := -halfH + d.Height*float64(zi)
			m.Verts = append(m.Verts, [3]float32{float32(x), float32(openY), float32(z)})
			m.UVs = append(m.UVs, [2]float32{float32(u), float32(zi)})
			targets = append(targets, VertexTarget{
				OpenY:     float32(openY),
				ClosedY:   float32(d.MaxThick),
				Morphable: true,
			})
		}
	}

	// Bottom grid: rigid, flat at y=0.
	bottomBase := int32(len(m.Verts))
	for i := 0; i < cols; i++ {
		u := float64(i) / float64(d.Columns)
		x := dir * d.Width * u
		for zi := 0; zi < 2; zi++ {
			z := -halfH + d.Height*float64(zi)
			m.Verts = append(m.Verts, [3]float32{float32(x), 0, float32(z)})
			m.UVs = append(m.UVs, [2]float32{float32(u), float32(zi)})
			targets = append(targets, VertexTarget{})
		}
	}

	top := func(i, zi int) int32 { return int32(i*2 + zi) }
	bottom := func(i, zi int) int32 { return bottomBase + int32(i*2+zi) }

	for c := 0; c < d.Columns; c++ {
		// Top surface (the visible page), bottom, and the long sides follow
		// the thickness ramp per column.
		quad(m, top(c, 0), top(c, 1), top(c+1, 1), top(c+1, 0), RoleTop)
		quad(m, bottom(c, 0), bottom(c+1, 0), bottom(c+1, 1), bottom(c, 1), RoleBottom)
		quad(m, top(c, 1), bottom(c, 1), bottom(c+1, 1), top(c+1, 1), RoleFront)
		quad(m, top(c, 0), top(c+1, 0), bottom(c+1, 0), bottom(c, 0), RoleBack)
	}
	quad(m, top(0, 0), bottom(0, 0), bottom(0, 1), top(0, 1), RoleSpine)
	e := d.Columns
	quad(m, top(e, 0), top(e, 1), bottom(e, 1), bottom(e, 0), RoleForeEdge)

	return m, targets, nil
}

// BuildCover constructs a rigid cover slab lying under the page block,
// from y=-Thick up to y=0. Covers carry no morph targets.
func BuildCover(d CoverDims, side Side) (*Mesh, error) {
	if d.Width <= 0 || d.Height <= 0 || d.Thick <= 0 {
		return nil, &GeometryBuildError{Shape: "cover", Reason: "width, height and thickness must be positive"}
	}
	if d.Overhang < 0 {
		return nil, &GeometryBuildError{Shape: "cover", Reason: "overhang cannot be negative"}
	}

	dir := side.Dir()
	w := d.Width + d.Overhang
	halfH := d.Height/2 + d.Overhang

	m := &Mesh{}
	// 8 corners, top layer then bottom layer, spine edge first.
	for _, y := range []float64{0, -d.Thick} {
		for _, x := range []float64{0, dir * w} {
			for _, z := range []float64{-halfH, halfH} {
				m.Verts = append(m.Verts, [3]float32{float32(x), float32(y), float32(z)})
				m.UVs = append(m.UVs, [2]float32{float32(x / (dir * w)), float32((z + halfH) / (2 * halfH))})
			}
		}
	}

	// Index helper: layer(0 top,1 bottom), xe(0 spine,1 fore), ze(0 back,1 front)
	at := func(layer, xe, ze int) int32 { return int32(layer*4 + xe*2 + ze) }

	quad(m, at(0, 0, 0), at(0, 0, 1), at(0, 1, 1), at(0, 1, 0), RoleTop)
	quad(m, at(1, 0, 0), at(1, 1, 0), at(1, 1, 1), at(1, 0, 1), RoleBottom)
	quad(m, at(0, 0, 0), at(1, 0, 0), at(1, 0, 1), at(0, 0, 1), RoleSpine)
	quad(m, at(0, 1, 0), at(0, 1, 1), at(1, 1, 1), at(1, 1, 0), RoleForeEdge)
	quad(m, at(0, 0, 1), at(1, 0, 1), at(1, 1, 1), at(0, 1, 1), RoleFront)
	quad(m, at(0, 0, 0), at(0, 1, 0), at(1, 1, 0), at(1, 0, 0), RoleBack)

	return m, nil
}

// BuildSheet constructs the flexible turning sheet in its rest pose, lying
// flat on the right side of the spine. It is two overlapping face layers
// (front up, back down) separated by Thick, segmented across the width.
// Vertex column i is rigidly bound to joint i via Nodes.
func BuildSheet(d SheetDims) (*Mesh, error) {
	if d.Width <= 0 || d.Height <= 0 || d.Thick <= 0 {
		return nil, &GeometryBuildError{Shape: "sheet", Reason: "width, height and thickness must be positive"}
	}
	if d.Segments < 1 {
		return nil, &GeometryBuildError{Shape: "sheet", Reason: "need at least one segment"}
	}

	cols := d.Segments + 1
	segW := d.Width / float64(d.Segments)
	halfH := d.Height / 2
	halfT := d.Thick / 2

	m := &Mesh{
		Verts: make([][3]float32, 0, cols*4),
		UVs:   make([][2]float32, 0, cols*4),
		Nodes: make([]int16, 0, cols*4),
	}

	// Front layer (faces up), then back layer. Rest pose extends toward
	// negative X, matching the right page block.
	for li, y := range []float64{halfT, -halfT} {
		for i := 0; i < cols; i++ {
			u := float64(i) / float64(d.Segments)
			x := -segW * float64(i)
			for zi := 0; zi < 2; zi++ {
				z := -halfH + d.Height*float64(zi)
				m.Verts = append(m.Verts, [3]float32{float32(x), float32(y), float32(z)})
				// The back face is viewed from the other side; mirror U so
				// its image is not flipped.
				if li == 0 {
					m.UVs = append(m.UVs, [2]float32{float32(u), float32(zi)})
				} else {
					m.UVs = append(m.UVs, [2]float32{float32(1 - u), float32(zi)})
				}
				m.Nodes = append(m.Nodes, int16(i))
			}
		}
	}

	backBase := int32(cols * 2)
	front := func(i, zi int) int32 { return int32(i*2 + zi) }
	back := func(i, zi int) int32 { return backBase + int32(i*2+zi) }

	for c := 0; c < d.Segments; c++ {
		quad(m, front(c, 0), front(c, 1), front(c+1, 1), front(c+1, 0), RoleFront)
		quad(m, back(c, 0), back(c+1, 0), back(c+1, 1), back(c, 1), RoleBack)
	}

	return m, nil
}

// quad appends two triangles sharing the a-c diagonal, with texcoord
// indices matching vertex indices.
func quad(m *Mesh, a, b, c, d int32, role FaceRole) {
	m.Tris = append(m.Tris,
		Triangle{VI: [3]int32{a, b, c}, TI: [3]int32{a, b, c}, Role: role},
		Triangle{VI: [3]int32{a, c, d}, TI: [3]int32{a, c, d}, Role: role},
	)
}
