// Package frame defines the raster a capture source hands to the pipeline.
package frame

import (
	"image"
	"image/color"
)

// Frame is a single captured picture. Image gives the decoder a read-only
// view; Rectangle and PutText draw overlays in place.
type Frame interface {
	Image() (image.Image, error)
	Rectangle(r image.Rectangle, c color.RGBA, thickness int) error
	PutText(text string, org image.Point, c color.RGBA, scale float64, thickness int) error
	Close() error
}
