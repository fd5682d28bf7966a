// Package book aggregates the page blocks, covers, and flip state into the
// single animated object this renderer exists for, and hands visual
// continuity between the static stack and the one live turning sheet.
package book

import (
	"fmt"

	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/hinge"
	"bookflip-renderer/internal/mathutil"
	"bookflip-renderer/internal/scene"
	"bookflip-renderer/internal/sheet"
	"bookflip-renderer/internal/wedge"
)

// ContentSource resolves per-page front/back image identifiers. Supplied
// by an external content catalog; empty identifiers mean blank paper.
type ContentSource interface {
	PageImages(index int) (front, back string)
}

// Params holds the static construction constants of a book.
type Params struct {
	PageCount     int
	FlipDuration  float64 // seconds per page turn
	HingeDampTime float64 // seconds, open/close damping
	ClosedAngle   float64 // hinge magnitude when shut; π/2 closes the book fully

	Block    bookgeom.PageBlockDims
	Cover    bookgeom.CoverDims
	Sheet    bookgeom.SheetDims
	Deformer sheet.Deformer

	CoverTex string
}

// DefaultParams returns a medium paperback.
func DefaultParams() Params {
	return Params{
		PageCount:     24,
		FlipDuration:  0.9,
		HingeDampTime: 0.18,
		ClosedAngle:   1.5707963267948966, // π/2
		Block: bookgeom.PageBlockDims{
			Width: 10, Height: 14, MinThick: 0.25, MaxThick: 1.2, Columns: 10,
		},
		Cover: bookgeom.CoverDims{
			Width: 10, Height: 14, Thick: 0.35, Overhang: 0.45,
		},
		Sheet: bookgeom.SheetDims{
			Width: 10, Height: 14, Thick: 0.03, Segments: 12,
		},
		Deformer: sheet.DefaultDeformer(),
		CoverTex: "cover",
	}
}

// PageBlock is one half of the unturned stack: a morphable mesh, its hinge,
// and its morph engine. Tex is the image on the visible top page.
type PageBlock struct {
	Side  bookgeom.Side
	Mesh  *bookgeom.Mesh
	Hinge hinge.Hinge
	Morph *wedge.Engine
	Tex   string
}

// Cover is a rigid hinged slab.
type Cover struct {
	Side  bookgeom.Side
	Mesh  *bookgeom.Mesh
	Hinge hinge.Hinge
}

// Book owns the full animated state. Exactly one FlipState exists per
// book, and at most one live actor at any time.
type Book struct {
	Left, Right           *PageBlock
	CoverLeft, CoverRight *Cover
	Flip                  FlipState

	params    Params
	actor     *sheet.Actor
	pageIndex int
	open      bool
	src       ContentSource
}

// New constructs the book geometry and starts it shut at page 0. Geometry
// construction is the only fallible step; everything after is pure
// numeric state.
func New(p Params, src ContentSource) (*Book, error) {
	if p.PageCount < 1 {
		return nil, fmt.Errorf("book: construct: page count %d < 1", p.PageCount)
	}
	if p.FlipDuration <= 0 {
		return nil, fmt.Errorf("book: construct: flip duration must be positive")
	}

	b := &Book{params: p, src: src}

	for _, side := range []bookgeom.Side{bookgeom.Left, bookgeom.Right} {
		mesh, targets, err := bookgeom.BuildPageBlock(p.Block, side)
		if err != nil {
			return nil, fmt.Errorf("book: construct %s block: %w", side, err)
		}
		morph, err := wedge.NewEngine(mesh, targets)
		if err != nil {
			return nil, fmt.Errorf("book: construct %s block: %w", side, err)
		}
		pb := &PageBlock{Side: side, Mesh: mesh, Hinge: hinge.New(p.HingeDampTime), Morph: morph}

		coverMesh, err := bookgeom.BuildCover(p.Cover, side)
		if err != nil {
			return nil, fmt.Errorf("book: construct %s cover: %w", side, err)
		}
		cv := &Cover{Side: side, Mesh: coverMesh, Hinge: hinge.New(p.HingeDampTime)}

		if side == bookgeom.Left {
			b.Left, b.CoverLeft = pb, cv
		} else {
			b.Right, b.CoverRight = pb, cv
		}
	}

	// Validate the sheet dims now so every later flip trigger is
	// infallible.
	if _, err := bookgeom.BuildSheet(p.Sheet); err != nil {
		return nil, fmt.Errorf("book: construct sheet: %w", err)
	}

	// Start shut: hinges settled at the closed angle, blocks morphed to
	// the slab profile.
	for _, h := range b.hinges() {
		a := b.closedAngleFor(h)
		h.Current, h.Target = a, a
	}
	b.applyContent(0)
	b.Left.Morph.Apply(1)
	b.Right.Morph.Apply(1)

	return b, nil
}

func (b *Book) hinges() []*hinge.Hinge {
	return []*hinge.Hinge{&b.Left.Hinge, &b.Right.Hinge, &b.CoverLeft.Hinge, &b.CoverRight.Hinge}
}

func (b *Book) closedAngleFor(h *hinge.Hinge) float64 {
	// Left-side geometry extends toward +X and closes with a positive
	// rotation; right side the reverse.
	if h == &b.Left.Hinge || h == &b.CoverLeft.Hinge {
		return b.params.ClosedAngle
	}
	return -b.params.ClosedAngle
}

// PageIndex returns the clamped logical page position: the number of
// sheets currently on the left of the spine.
func (b *Book) PageIndex() int { return b.pageIndex }

// PageCount returns the book's sheet count.
func (b *Book) PageCount() int { return b.params.PageCount }

// Open reports the externally requested open/closed state.
func (b *Book) Open() bool { return b.open }

// Actor returns the live turning sheet, or nil outside a flip.
func (b *Book) Actor() *sheet.Actor { return b.actor }

// SetOpen retargets all four hinges. Repeat calls with the same flag are
// idempotent; the hinges converge over the following frames.
func (b *Book) SetOpen(open bool) {
	b.open = open
	for _, h := range b.hinges() {
		if open {
			h.SetTarget(0)
		} else {
			h.SetTarget(b.closedAngleFor(h))
		}
	}
}

// Update advances every component by one frame. Single-threaded and
// cooperative: hinges first, then the wedge morphs driven by the resulting
// closedness, then the flip timeline and the actor pose.
func (b *Book) Update(dt float64) {
	for _, h := range b.hinges() {
		h.Update(dt)
	}
	b.Left.Morph.Apply(wedge.Closedness(b.Left.Hinge.Current))
	b.Right.Morph.Apply(wedge.Closedness(b.Right.Hinge.Current))

	if b.Flip.Phase != Flipping {
		return
	}

	b.Flip.Elapsed += dt
	b.Flip.Progress = mathutil.Clamp(b.Flip.Elapsed/b.params.FlipDuration, 0, 1)

	if b.actor != nil {
		b.params.Deformer.Pose(b.actor.Chain, b.Flip.Progress, b.Flip.Direction)
		b.actor.Deform()
	}

	// The flip ends on elapsed time, not on any other signal. The final
	// pose above already laid the sheet flat on its destination stack, so
	// retiring the actor here is imperceptible.
	if b.Flip.Elapsed >= b.params.FlipDuration {
		b.actor = nil
		b.Flip = FlipState{}
	}
}

// Scene builds the renderable subtree for the current frame.
func (b *Book) Scene() *scene.Node {
	root := scene.NewGroup("book")

	for _, pb := range []*PageBlock{b.Left, b.Right} {
		t := mathutil.Mat4Mul(
			mathutil.FromMat3Translation(mathutil.RotZ(pb.Hinge.Current), mathutil.Vec3{}),
			mathutil.Mat4Scale(pb.Morph.WidthScale, 1, pb.Morph.HeightScale),
		)
		n := &scene.Node{
			Name:      "block-" + pb.Side.String(),
			Transform: t,
			Mesh:      pb.Mesh,
		}
		if pb.Tex != "" {
			n.FaceTex = map[bookgeom.FaceRole]string{bookgeom.RoleTop: pb.Tex}
		}
		root.Add(n)
	}

	for _, cv := range []*Cover{b.CoverLeft, b.CoverRight} {
		root.Add(&scene.Node{
			Name:      "cover-" + cv.Side.String(),
			Transform: mathutil.FromMat3Translation(mathutil.RotZ(cv.Hinge.Current), mathutil.Vec3{}),
			Mesh:      cv.Mesh,
			FaceTex: map[bookgeom.FaceRole]string{
				bookgeom.RoleTop:    b.params.CoverTex,
				bookgeom.RoleBottom: b.params.CoverTex,
			},
		})
	}

	if b.actor != nil {
		// The actor's mesh is already deformed into spine space; the chain
		// carries the spine-gap shift itself.
		root.Add(&scene.Node{
			Name:      "sheet",
			Transform: mathutil.Mat4Identity(),
			Mesh:      b.actor.Mesh,
			FaceTex: map[bookgeom.FaceRole]string{
				bookgeom.RoleFront: b.actor.FrontTex,
				bookgeom.RoleBack:  b.actor.BackTex,
			},
		})
	}

	return root
}
