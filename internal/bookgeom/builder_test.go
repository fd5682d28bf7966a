package bookgeom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockDims() PageBlockDims {
	return PageBlockDims{Width: 10, Height: 14, MinThick: 0.2, MaxThick: 1.5, Columns: 8}
}

func TestPageBlockTargets(t *testing.T) {
	m, targets, err := BuildPageBlock(blockDims(), Right)
	require.NoError(t, err)
	require.Len(t, targets, len(m.Verts))

	var morphable, rigid int
	for i, tg := range targets {
		if !tg.Morphable {
			rigid++
			continue
		}
		morphable++
		// Mesh starts in the open profile.
		assert.Equal(t, tg.OpenY, m.Verts[i][1])
		assert.Equal(t, float32(1.5), tg.ClosedY)
		assert.GreaterOrEqual(t, tg.OpenY, float32(0.2))
		assert.LessOrEqual(t, tg.OpenY, float32(1.5))
	}
	assert.Equal(t, morphable, rigid, "top and bottom grids have equal vertex counts")
	assert.NotZero(t, morphable)
}

func TestPageBlockOpenProfileRamp(t *testing.T) {
	d := blockDims()
	m, targets, err := BuildPageBlock(d, Right)
	require.NoError(t, err)

	// Walk the back row of the top grid from spine to fore-edge: thickness
	// must rise monotonically from MinThick to MaxThick.
	prev := float32(0)
	for i := 0; i <= d.Columns; i++ {
		vi := i * 2
		require.True(t, targets[vi].Morphable)
		y := targets[vi].OpenY
		assert.GreaterOrEqual(t, y, prev)
		prev = y
		// Right-side geometry extends toward negative X.
		assert.LessOrEqual(t, m.Verts[vi][0], float32(0))
	}
	assert.Equal(t, float32(0.2), targets[0].OpenY)
	assert.Equal(t, float32(1.5), targets[d.Columns*2].OpenY)
}

func TestPageBlockFaceRoles(t *testing.T) {
	d := blockDims()
	m, _, err := BuildPageBlock(d, Left)
	require.NoError(t, err)

	count := map[FaceRole]int{}
	for _, tri := range m.Tris {
		count[tri.Role]++
	}
	assert.Equal(t, 2*d.Columns, count[RoleTop])
	assert.Equal(t, 2*d.Columns, count[RoleBottom])
	assert.Equal(t, 2*d.Columns, count[RoleFront])
	assert.Equal(t, 2*d.Columns, count[RoleBack])
	assert.Equal(t, 2, count[RoleSpine])
	assert.Equal(t, 2, count[RoleForeEdge])
}

func TestPageBlockValidation(t *testing.T) {
	bad := []PageBlockDims{
		{Width: 0, Height: 1, MinThick: 0.1, MaxThick: 1, Columns: 4},
		{Width: 1, Height: 1, MinThick: 0, MaxThick: 1, Columns: 4},
		{Width: 1, Height: 1, MinThick: 2, MaxThick: 1, Columns: 4},
		{Width: 1, Height: 1, MinThick: 0.1, MaxThick: 1, Columns: 0},
	}
	for _, d := range bad {
		_, _, err := BuildPageBlock(d, Right)
		require.Error(t, err, "%+v", d)
		var gbe *GeometryBuildError
		assert.True(t, errors.As(err, &gbe))
		assert.Equal(t, "page block", gbe.Shape)
	}
}

func TestCoverSlab(t *testing.T) {
	m, err := BuildCover(CoverDims{Width: 10, Height: 14, Thick: 0.4, Overhang: 0.5}, Right)
	require.NoError(t, err)
	assert.Len(t, m.Verts, 8)
	assert.Len(t, m.Tris, 12)
	assert.Nil(t, m.Nodes)

	for _, v := range m.Verts {
		assert.LessOrEqual(t, v[1], float32(0), "cover lies below the page stack")
		assert.LessOrEqual(t, v[0], float32(0))
	}

	_, err = BuildCover(CoverDims{Width: 10, Height: 14, Thick: 0}, Left)
	assert.Error(t, err)
}

func TestSheetBinding(t *testing.T) {
	d := SheetDims{Width: 10, Height: 14, Thick: 0.02, Segments: 12}
	m, err := BuildSheet(d)
	require.NoError(t, err)
	require.Len(t, m.Nodes, len(m.Verts))

	// Both layers bind column i to joint i; joint 0 sits at the spine.
	segW := float32(10.0 / 12)
	for vi, ji := range m.Nodes {
		assert.GreaterOrEqual(t, ji, int16(0))
		assert.LessOrEqual(t, ji, int16(d.Segments))
		assert.InDelta(t, float64(-segW*float32(ji)), float64(m.Verts[vi][0]), 1e-5)
	}

	count := map[FaceRole]int{}
	for _, tri := range m.Tris {
		count[tri.Role]++
	}
	assert.Equal(t, 2*d.Segments, count[RoleFront])
	assert.Equal(t, 2*d.Segments, count[RoleBack])

	_, err = BuildSheet(SheetDims{Width: 10, Height: 14, Thick: 0.02, Segments: 0})
	var gbe *GeometryBuildError
	require.True(t, errors.As(err, &gbe))
}
