package annotator

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"barcodereader/internal/dto"
	"barcodereader/internal/frame"
	"barcodereader/internal/logger"
)

const (
	LabelOffset   = 20  // Odległość etykiety od dolnej krawędzi ramki
	LabelScale    = 0.5 // Hershey simplex scale
	LineThickness = 2
)

var red = color.RGBA{R: 255, G: 0, B: 0, A: 255}

// Annotator draws detection overlays onto frames.
type Annotator struct {
	logger *logger.Logger
}

func NewAnnotator(logger *logger.Logger) *Annotator {
	return &Annotator{logger: logger}
}

// Annotate boxes and labels every detection on f in place and returns f
// together with the text form of each detection, in input order.
// Payloads that are not valid UTF-8 are drawn but left out of the result.
func (a *Annotator) Annotate(f frame.Frame, detections []dto.RawDetection) (frame.Frame, []dto.NormalizedDetection) {
	normalized := make([]dto.NormalizedDetection, 0, len(detections))

	for _, detection := range detections {
		text := string(detection.Payload)
		rect := detection.Box.Rect()

		if err := f.Rectangle(rect, red, LineThickness); err != nil {
			a.logger.Warning("Failed to draw rectangle: %v", err)
		}

		// Etykieta pod ramką, nie nad nią
		label := fmt.Sprintf("%s (%s)", text, detection.Symbology)
		pt := image.Pt(rect.Min.X, rect.Max.Y+LabelOffset)
		if err := f.PutText(label, pt, red, LabelScale, LineThickness); err != nil {
			a.logger.Warning("Failed to draw text: %v", err)
		}

		if !utf8.Valid(detection.Payload) {
			a.logger.Warning("Dropping %s payload that is not valid UTF-8", detection.Symbology)
			continue
		}
		normalized = append(normalized, dto.NormalizedDetection{
			Text:      text,
			Symbology: string(detection.Symbology),
		})
	}

	return f, normalized
}
