package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{R: 255, A: 255}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func TestImageFrame_RectangleDrawsInPlace(t *testing.T) {
	buf := whiteImage(100, 100)
	f := WrapRGBA(buf)

	require.NoError(t, f.Rectangle(image.Rect(10, 10, 60, 40), red, 2))

	edge := buf.RGBAAt(35, 10)
	assert.Equal(t, uint8(255), edge.R)
	assert.Less(t, edge.G, uint8(128), "top edge should be red")

	inside := buf.RGBAAt(35, 25)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, inside, "interior stays untouched")
}

func TestImageFrame_PutTextChangesPixels(t *testing.T) {
	buf := whiteImage(200, 60)
	f := WrapRGBA(buf)
	before := append([]uint8(nil), buf.Pix...)

	require.NoError(t, f.PutText("ABC123 (CODE128)", image.Pt(5, 40), red, 0.5, 2))

	assert.NotEqual(t, before, buf.Pix)
}

func TestNewImageFrame_CopiesSource(t *testing.T) {
	src := whiteImage(20, 20)
	f := NewImageFrame(src)

	require.NoError(t, f.Rectangle(image.Rect(2, 2, 18, 18), red, 2))

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, src.RGBAAt(2, 10), "source must not be mutated")
	img, err := f.Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())
}
