package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/mathutil"
	"bookflip-renderer/internal/scene"
)

func TestRasterizeTriangleFillsAndDepthTests(t *testing.T) {
	fb := NewFrameBuffer(32, 32)
	lc := DefaultLightConfig()

	px := []float64{4, 28, 16, 4, 28, 16}
	py := []float64{4, 4, 28, 4, 4, 28}
	pz := []float64{0, 0, 0, 5, 5, 5} // second triangle is nearer

	RasterizeTriangle(fb, px, py, pz, nil, [3]int{0, 1, 2}, [3]int{-1, -1, -1},
		nil, 200, 0, 0, 255, &lc, 1.0)

	center := (16*32 + 16) * 4
	require.NotZero(t, fb.Color[center+3], "triangle interior covered")
	red := fb.Color[center]

	// A nearer triangle in a different color wins the depth test.
	RasterizeTriangle(fb, px, py, pz, nil, [3]int{3, 4, 5}, [3]int{-1, -1, -1},
		nil, 0, 200, 0, 255, &lc, 1.0)
	assert.NotEqual(t, red, fb.Color[center])
	assert.Greater(t, fb.Color[center+1], fb.Color[center], "green on top")

	// Re-drawing the far triangle cannot overwrite the near one.
	RasterizeTriangle(fb, px, py, pz, nil, [3]int{0, 1, 2}, [3]int{-1, -1, -1},
		nil, 200, 0, 0, 255, &lc, 1.0)
	assert.Greater(t, fb.Color[center+1], fb.Color[center])
}

func TestSampleTextureClamps(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	// Left column red, right column blue, fully opaque.
	set := func(x, y int, r, g, b uint8) {
		i := tex.PixOffset(x, y)
		tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2], tex.Pix[i+3] = r, g, b, 255
	}
	set(0, 0, 255, 0, 0)
	set(0, 1, 255, 0, 0)
	set(1, 0, 0, 0, 255)
	set(1, 1, 0, 0, 255)

	r, _, b, a := SampleTexture(tex, -3, 0.5)
	assert.Equal(t, uint8(255), r, "clamped to the left edge")
	assert.Equal(t, uint8(255), a)

	r, _, b, _ = SampleTexture(tex, 4, 0.5)
	assert.Equal(t, uint8(255), b, "clamped to the right edge")
	assert.Equal(t, uint8(0), r)
}

func TestRoleTintOrdering(t *testing.T) {
	assert.Equal(t, 1.0, RoleTint(bookgeom.RoleTop))
	assert.Equal(t, 1.0, RoleTint(bookgeom.RoleFront))
	assert.Less(t, RoleTint(bookgeom.RoleForeEdge), 1.0)
	assert.Less(t, RoleTint(bookgeom.RoleSpine), RoleTint(bookgeom.RoleForeEdge))
	assert.Less(t, RoleTint(bookgeom.RoleBottom), RoleTint(bookgeom.RoleSpine))
}

func TestRenderSceneProducesPixels(t *testing.T) {
	mesh, _, err := bookgeom.BuildPageBlock(
		bookgeom.PageBlockDims{Width: 10, Height: 14, MinThick: 0.3, MaxThick: 1.2, Columns: 4},
		bookgeom.Right)
	require.NoError(t, err)

	root := scene.NewGroup("test").Add(&scene.Node{
		Name:      "block",
		Transform: mathutil.Mat4Identity(),
		Mesh:      mesh,
	})

	cam := &scene.Camera{View: scene.ReaderView}
	img := Render(root, cam, nil, 64, 1)
	require.Equal(t, 64, img.Bounds().Dx())

	covered := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			covered++
		}
	}
	assert.Greater(t, covered, 200, "the block covers a meaningful share of the frame")
}

func TestRenderEmptyScene(t *testing.T) {
	cam := &scene.Camera{View: scene.FrontView}
	img := Render(scene.NewGroup("empty"), cam, nil, 32, 2)
	assert.Equal(t, 64, img.Bounds().Dx())
	for i := 3; i < len(img.Pix); i += 4 {
		require.Zero(t, img.Pix[i])
	}
}
