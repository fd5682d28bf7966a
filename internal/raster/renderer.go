package raster

import (
	"image"

	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/catalog"
	"bookflip-renderer/internal/mathutil"
	"bookflip-renderer/internal/scene"
)

// drawItem is one mesh node flattened into world space.
type drawItem struct {
	verts   []mathutil.Vec3
	mesh    *bookgeom.Mesh
	faceTex map[bookgeom.FaceRole]string
}

// Render rasterizes a scene subtree to an NRGBA image. The whole subtree
// shares one orthographic (or perspective) framing computed from its
// view-space bounding box, so the book never jumps between frames of an
// animation when the sheet's silhouette changes.
func Render(
	root *scene.Node,
	cam *scene.Camera,
	resolver catalog.Resolver,
	size int,
	supersample int,
) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample

	// Flatten nodes into world space and bound them in view space.
	var items []drawItem
	bounds := scene.NewBounds()
	root.Walk(func(world mathutil.Mat4, n *scene.Node) {
		if n.Mesh == nil || len(n.Mesh.Verts) == 0 {
			return
		}
		verts := make([]mathutil.Vec3, len(n.Mesh.Verts))
		for i, v := range n.Mesh.Verts {
			w := world.MulPoint(mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})
			verts[i] = w
			bounds.Extend(cam.View.MulVec3(w))
		}
		items = append(items, drawItem{verts: verts, mesh: n.Mesh, faceTex: n.FaceTex})
	})

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	if len(items) == 0 {
		return img
	}

	center := bounds.Center()
	margin := 16 * supersample
	scale := bounds.FitScale(renderSize, margin)

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	// Average-color fallback per texture, for triangles with unusable UVs.
	avgCache := map[string][4]uint8{}

	for _, item := range items {
		frame := cam.Project(item.verts, center, scale, renderSize)

		for _, tri := range item.mesh.Tris {
			var tex *image.NRGBA
			defR, defG, defB, defA := PaperColor(tri.Role)
			if name, ok := item.faceTex[tri.Role]; ok && name != "" && resolver != nil {
				tex = resolver.Resolve(name)
				if tex != nil {
					avg, cached := avgCache[name]
					if !cached {
						avg = averageColor(tex)
						avgCache[name] = avg
					}
					defR, defG, defB, defA = avg[0], avg[1], avg[2], avg[3]
				}
			}

			vi := [3]int{int(tri.VI[0]), int(tri.VI[1]), int(tri.VI[2])}
			ti := [3]int{int(tri.TI[0]), int(tri.TI[1]), int(tri.TI[2])}
			RasterizeTriangle(fb, frame.PX, frame.PY, frame.PZ, item.mesh.UVs,
				vi, ti, tex, defR, defG, defB, defA, &lc, RoleTint(tri.Role))
		}
	}

	copy(img.Pix, fb.Color)
	return img
}

func averageColor(tex *image.NRGBA) [4]uint8 {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return [4]uint8{160, 160, 170, 255}
	}

	var sumR, sumG, sumB float64
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return [4]uint8{
		uint8(sumR/n + 0.5),
		uint8(sumG/n + 0.5),
		uint8(sumB/n + 0.5),
		255,
	}
}
