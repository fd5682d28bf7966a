package raster

import (
	"math"

	"bookflip-renderer/internal/bookgeom"
	"bookflip-renderer/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	InvGamma  float64
}

// DefaultLightConfig returns a soft reading-lamp setup: high ambient, a
// broad key light from above the reader's shoulder, and barely any
// specular so paper stays matte.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{120, 300, 160}.Normalize()
	rimDir := mathutil.Vec3{-180, 110, -170}.Normalize()
	viewDir := mathutil.Vec3{0, -130, -380}.Normalize()

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		ViewDir:  viewDir,
		HalfMain: halfMain,
		Ambient:  0.62,
		Hemi:     0.45,
		Direct:   1.25,
		Rim:      0.35,
		SpecInt:  0.10,
		SpecPow:  8.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a face normal.
// Lambertian terms use the absolute dot product: the turning sheet is
// double-sided.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// RoleTint darkens faces by their static classification: the page surfaces
// stay bright, the cut edges of the stack read slightly in shadow, and the
// underside darkest. No normal-vector branching at render time.
func RoleTint(role bookgeom.FaceRole) float64 {
	switch role {
	case bookgeom.RoleForeEdge:
		return 0.94
	case bookgeom.RoleSpine:
		return 0.88
	case bookgeom.RoleBottom:
		return 0.82
	}
	return 1.0
}

// PaperColor is the untextured fallback per face role.
func PaperColor(role bookgeom.FaceRole) (r, g, b, a uint8) {
	switch role {
	case bookgeom.RoleSpine, bookgeom.RoleForeEdge, bookgeom.RoleBottom:
		// Stacked page edges: slightly warmer and duller than a page face.
		return 233, 228, 212, 255
	}
	return 247, 244, 234, 255
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
