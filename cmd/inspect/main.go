package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/mathutil"
	"bookflip-renderer/internal/sheet"
	"bookflip-renderer/internal/wedge"
)

func main() {
	progress := flag.Float64("progress", 0.5, "Turn progress 0..1")
	dirFlag := flag.String("direction", "forward", "Turn direction: forward or backward")
	segments := flag.Int("segments", 12, "Chain segments across the sheet width")
	width := flag.Float64("width", 10, "Sheet width")
	height := flag.Float64("height", 14, "Sheet height")
	hinge := flag.Float64("hinge", 0, "Hinge angle in radians for the wedge report")
	flag.Parse()

	dir := sheet.Forward
	if *dirFlag == "backward" {
		dir = sheet.Backward
	} else if *dirFlag != "forward" {
		fmt.Fprintf(os.Stderr, "Error: unknown direction %q\n", *dirFlag)
		os.Exit(1)
	}

	mesh, err := bookgeom.BuildSheet(bookgeom.SheetDims{
		Width: *width, Height: *height, Thick: 0.03, Segments: *segments,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	actor := sheet.NewActor(mesh, *segments, *width / float64(*segments))
	d := sheet.DefaultDeformer()
	d.Pose(actor.Chain, *progress, dir)
	actor.Deform()

	fmt.Printf("Sheet: %d segments, %d verts, %d tris, %s at progress %.3f\n",
		*segments, len(mesh.Verts), len(mesh.Tris), dir, *progress)
	fmt.Printf("Root turn: %.4f rad (%.1f°), shift: %+.4f\n",
		actor.Chain.RootTurn(), actor.Chain.RootTurn()*180/math.Pi, actor.Chain.Shift)

	fmt.Println("  --- Joints ---")
	worlds := actor.Chain.WorldMatrices()
	for i, j := range actor.Chain.Joints {
		tip := worlds[i].MulPoint(mathutil.Vec3{})
		fmt.Printf("  Joint[%2d]: turn=%+.4f fold=%+.4f  pos=(%+.3f, %+.3f, %+.3f)\n",
			i, j.Turn, j.Fold, tip[0], tip[1], tip[2])
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range mesh.Verts {
		x, y := float64(v[0]), float64(v[1])
		if x < minX { minX = x }
		if y < minY { minY = y }
		if x > maxX { maxX = x }
		if y > maxY { maxY = y }
	}
	fmt.Printf("  BBox: X[%.2f, %.2f] Y[%.2f, %.2f]\n", minX, maxX, minY, maxY)

	c := wedge.Closedness(*hinge)
	fmt.Printf("Wedge: hinge=%.4f rad → closedness=%.4f\n", *hinge, c)
}
