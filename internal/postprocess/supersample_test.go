package postprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsampleHalves(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 128, 128))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 200, 100, 50, 255
	}

	dst := Downsample(src, 64)
	require.Equal(t, 64, dst.Bounds().Dx())
	require.Equal(t, 64, dst.Bounds().Dy())

	// A uniform opaque image stays (approximately) the same color.
	i := dst.PixOffset(32, 32)
	assert.InDelta(t, 200, int(dst.Pix[i]), 2)
	assert.InDelta(t, 100, int(dst.Pix[i+1]), 2)
	assert.InDelta(t, 50, int(dst.Pix[i+2]), 2)
	assert.Equal(t, uint8(255), dst.Pix[i+3])
}

func TestDownsampleNoopWhenSmall(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	assert.Same(t, src, Downsample(src, 64))
}
