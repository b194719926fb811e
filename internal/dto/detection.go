package dto

import "image"

// Symbology names the barcode encoding scheme. Values match the names
// zbar prints, so console output stays familiar to existing scrapers.
type Symbology string

const (
	SymbologyQRCode     Symbology = "QRCODE"
	SymbologyDataMatrix Symbology = "DATAMATRIX"
	SymbologyAztec      Symbology = "AZTEC"
	SymbologyCode128    Symbology = "CODE128"
	SymbologyCode39     Symbology = "CODE39"
	SymbologyCode93     Symbology = "CODE93"
	SymbologyEAN13      Symbology = "EAN13"
	SymbologyEAN8       Symbology = "EAN8"
	SymbologyUPCA       Symbology = "UPCA"
	SymbologyUPCE       Symbology = "UPCE"
	SymbologyI25        Symbology = "I25"
	SymbologyCodabar    Symbology = "CODABAR"
	SymbologyUnknown    Symbology = "UNKNOWN"
)

// BoundingBox is the axis-aligned box around a detected code, in frame pixels.
type BoundingBox struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Rect converts the box into an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// RawDetection is a single decoder hit. It lives for one frame only.
type RawDetection struct {
	Payload   []byte
	Symbology Symbology
	Box       BoundingBox
}

// NormalizedDetection is the text form of a RawDetection used for reporting.
type NormalizedDetection struct {
	Text      string
	Symbology string
}
