package book

import (
	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/sheet"
)

// Phase of the flip state machine.
type Phase uint8

const (
	Idle Phase = iota
	Flipping
)

func (p Phase) String() string {
	if p == Flipping {
		return "flipping"
	}
	return "idle"
}

// FlipState is the whole page-turn timeline: progress is purely a function
// of elapsed time over the fixed duration, clamped and never decremented
// from outside. The zero value is Idle.
type FlipState struct {
	Phase     Phase
	Direction sheet.Direction
	Elapsed   float64
	Progress  float64
}

// SetPageIndex requests a page turn. The index is clamped to
// [0, PageCount]; an unchanged index is a no-op. A change triggers
// Idle → Flipping: the actor is spawned, and the block contents and stack
// thicknesses step instantly to the destination state so the actor's later
// disappearance cannot pop.
//
// A new index arriving mid-flip restarts the timeline and direction
// immediately rather than queueing or blending; the already-stepped block
// content stays consistent either way.
func (b *Book) SetPageIndex(index int) {
	if index < 0 {
		index = 0
	}
	if index > b.params.PageCount {
		index = b.params.PageCount
	}
	if index == b.pageIndex {
		return
	}

	dir := sheet.Forward
	lo, hi := b.pageIndex, index
	if index < b.pageIndex {
		dir = sheet.Backward
		lo, hi = index, b.pageIndex
	}

	mesh, err := bookgeom.BuildSheet(b.params.Sheet)
	if err != nil {
		// Dims were validated at construction; a failure here means the
		// book was never fully built, so the turn degrades to a no-op.
		return
	}

	segW := b.params.Sheet.Width / float64(b.params.Sheet.Segments)
	actor := sheet.NewActor(mesh, b.params.Sheet.Segments, segW)
	actor.FrontTex, actor.BackTex = b.sheetImages(lo, hi)

	b.pageIndex = index
	b.actor = actor
	b.Flip = FlipState{Phase: Flipping, Direction: dir}

	// First pose at progress 0 so the sheet's spawn frame already matches
	// the stack it lifts off from.
	b.params.Deformer.Pose(actor.Chain, 0, dir)
	actor.Deform()

	b.applyContent(index)
}

// sheetImages picks the two faces of the turning sheet for a turn between
// the ordered indices lo < hi: the face that was visible on the right, and
// the face that lands visible on the left.
func (b *Book) sheetImages(lo, hi int) (front, back string) {
	if b.src == nil {
		return "", ""
	}
	front, _ = b.src.PageImages(lo)
	_, back = b.src.PageImages(hi - 1)
	return front, back
}

// applyContent steps both blocks' top images and stack thicknesses to the
// state after the turn. Runs at trigger time, not completion time.
func (b *Book) applyContent(index int) {
	b.Right.Tex, b.Left.Tex = "", ""
	if b.src != nil {
		if index < b.params.PageCount {
			b.Right.Tex, _ = b.src.PageImages(index)
		}
		if index > 0 {
			_, b.Left.Tex = b.src.PageImages(index - 1)
		}
	}

	frac := float64(index) / float64(b.params.PageCount)
	b.Left.Morph.SetStackFraction(frac)
	b.Right.Morph.SetStackFraction(1 - frac)
}
