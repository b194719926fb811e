package sqlite

import (
	"time"

	"barcodereader/internal/dto"
)

var testEpoch = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func normalized(texts ...string) []dto.NormalizedDetection {
	out := make([]dto.NormalizedDetection, 0, len(texts))
	for _, text := range texts {
		out = append(out, dto.NormalizedDetection{Text: text, Symbology: "QRCODE"})
	}
	return out
}
