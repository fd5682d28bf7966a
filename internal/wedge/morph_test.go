package wedge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookflip-renderer/internal/bookgeom"
)

func buildEngine(t *testing.T) (*Engine, *bookgeom.Mesh, []bookgeom.VertexTarget) {
	t.Helper()
	d := bookgeom.PageBlockDims{Width: 10, Height: 14, MinThick: 0.2, MaxThick: 1.5, Columns: 6}
	m, targets, err := bookgeom.BuildPageBlock(d, bookgeom.Right)
	require.NoError(t, err)
	e, err := NewEngine(m, targets)
	require.NoError(t, err)
	return e, m, targets
}

func TestClosednessFromHingeAngle(t *testing.T) {
	assert.InDelta(t, 0.5, Closedness(math.Pi/4), 1e-12)
	assert.InDelta(t, 0.5, Closedness(-math.Pi/4), 1e-12)
	assert.Equal(t, 0.0, Closedness(0))
	assert.Equal(t, 1.0, Closedness(math.Pi/2))
	assert.Equal(t, 1.0, Closedness(-math.Pi), "clamped beyond a quarter turn")
}

func TestApplyEndpoints(t *testing.T) {
	e, m, targets := buildEngine(t)

	e.Apply(0)
	for i, tg := range targets {
		if tg.Morphable {
			assert.InDelta(t, float64(tg.OpenY), float64(m.Verts[i][1]), epsilon)
		}
	}

	e.Apply(1)
	for i, tg := range targets {
		if tg.Morphable {
			assert.InDelta(t, float64(tg.ClosedY), float64(m.Verts[i][1]), epsilon)
		} else {
			assert.Equal(t, float32(0), m.Verts[i][1], "rigid vertices never move")
		}
	}
}

func TestApplyMonotonic(t *testing.T) {
	e, m, targets := buildEngine(t)

	// Pick a morphable spine vertex: ClosedY > OpenY there, so y must rise
	// monotonically with closedness.
	vi := -1
	for i, tg := range targets {
		if tg.Morphable && tg.ClosedY > tg.OpenY {
			vi = i
			break
		}
	}
	require.GreaterOrEqual(t, vi, 0)

	prev := float32(-1)
	for c := 0.0; c <= 1.0; c += 0.1 {
		e.Apply(c)
		assert.GreaterOrEqual(t, m.Verts[vi][1], prev)
		prev = m.Verts[vi][1]
	}
}

func TestApplyDirtyOnlyOnChange(t *testing.T) {
	e, _, _ := buildEngine(t)

	assert.False(t, e.Apply(0), "mesh is built in the open profile already")
	assert.True(t, e.Apply(0.5))
	assert.False(t, e.Apply(0.5), "settled: no vertex moves beyond epsilon")
	assert.True(t, e.Apply(0.5001), "past epsilon it must report dirty")
}

func TestRetractionScales(t *testing.T) {
	e, _, _ := buildEngine(t)

	e.Apply(0)
	assert.Equal(t, 1.0, e.WidthScale)
	assert.Equal(t, 1.0, e.HeightScale)

	e.Apply(1)
	assert.InDelta(t, e.WidthRetract, e.WidthScale, 1e-9)
	assert.InDelta(t, e.HeightRetract, e.HeightScale, 1e-9)
	assert.Less(t, e.WidthScale, 1.0)
	assert.Less(t, e.HeightScale, 1.0)
}

func TestStackFraction(t *testing.T) {
	e, m, targets := buildEngine(t)

	e.SetStackFraction(0.5)
	e.Apply(0)
	for i, tg := range targets {
		if tg.Morphable {
			assert.InDelta(t, float64(tg.OpenY)*0.5, float64(m.Verts[i][1]), epsilon)
		}
	}

	// Clamped to a sliver, never zero.
	e.SetStackFraction(0)
	assert.Equal(t, minStackFraction, e.StackFraction())
	e.SetStackFraction(2)
	assert.Equal(t, 1.0, e.StackFraction())
}

func TestNewEngineMismatch(t *testing.T) {
	d := bookgeom.PageBlockDims{Width: 10, Height: 14, MinThick: 0.2, MaxThick: 1.5, Columns: 6}
	m, targets, err := bookgeom.BuildPageBlock(d, bookgeom.Right)
	require.NoError(t, err)

	_, err = NewEngine(m, targets[:len(targets)-1])
	assert.Error(t, err)
	_, err = NewEngine(nil, nil)
	assert.Error(t, err)
}
