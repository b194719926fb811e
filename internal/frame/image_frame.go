package frame

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// hersheyPixels is the glyph height in pixels of Hershey simplex at scale 1.
const hersheyPixels = 22.0

var font *truetype.Font

func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// ImageFrame is a Frame over an in-memory RGBA buffer. Drawing goes
// straight into the buffer, so the overlays are visible through Image.
type ImageFrame struct {
	img *image.RGBA
	dc  *gg.Context
}

// NewImageFrame copies src into a fresh RGBA buffer.
func NewImageFrame(src image.Image) *ImageFrame {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return WrapRGBA(rgba)
}

// WrapRGBA draws onto img without copying it.
func WrapRGBA(img *image.RGBA) *ImageFrame {
	return &ImageFrame{
		img: img,
		dc:  gg.NewContextForRGBA(img),
	}
}

func (f *ImageFrame) Image() (image.Image, error) {
	return f.img, nil
}

func (f *ImageFrame) Rectangle(r image.Rectangle, c color.RGBA, thickness int) error {
	f.dc.SetColor(c)
	f.dc.SetLineWidth(float64(thickness))
	f.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	f.dc.Stroke()
	return nil
}

// PutText draws text with its baseline starting at org, like cv::putText.
func (f *ImageFrame) PutText(text string, org image.Point, c color.RGBA, scale float64, thickness int) error {
	size := hersheyPixels * scale
	if size < 1 {
		size = 1
	}
	f.dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	f.dc.SetColor(c)
	f.dc.DrawString(text, float64(org.X), float64(org.Y))
	return nil
}

func (f *ImageFrame) Close() error {
	return nil
}
