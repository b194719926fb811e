package decoder

import (
	"errors"
	"fmt"
	"image"
	"runtime/debug"

	"barcodereader/internal/dto"
	"barcodereader/internal/frame"
	"barcodereader/internal/logger"
)

// ErrDecode marks a frame whose decoding failed inside the backend.
var ErrDecode = errors.New("decode failed")

// Backend finds barcodes in an image. Finding nothing is not an error.
type Backend interface {
	Decode(img image.Image) ([]dto.RawDetection, error)
}

// ErrorReporter receives one operator-facing line per failed frame.
type ErrorReporter interface {
	Error(format string, args ...interface{})
}

// Adapter is the boundary around a Backend: nothing the backend does,
// including panicking, escapes Decode.
type Adapter struct {
	backend  Backend
	reporter ErrorReporter
	logger   *logger.Logger
	lastErr  error
}

func NewAdapter(backend Backend, reporter ErrorReporter, logger *logger.Logger) *Adapter {
	return &Adapter{
		backend:  backend,
		reporter: reporter,
		logger:   logger,
	}
}

// Decode returns the detections in f, or nil if there are none or the
// backend failed. Use LastErr to tell the two apart.
func (a *Adapter) Decode(f frame.Frame) []dto.RawDetection {
	detections, err := a.decode(f)
	a.lastErr = err
	if err != nil {
		a.reporter.Error("Error decoding barcode: %v", err)
		return nil
	}
	return detections
}

// LastErr reports the failure of the most recent Decode call, if any.
func (a *Adapter) LastErr() error {
	return a.lastErr
}

func (a *Adapter) decode(f frame.Frame) (detections []dto.RawDetection, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("decoder panic: %v\n%s", r, debug.Stack())
			detections, err = nil, fmt.Errorf("%w: panic: %v", ErrDecode, r)
		}
	}()

	img, err := f.Image()
	if err != nil {
		a.logger.Warning("frame conversion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	detections, err = a.backend.Decode(img)
	if err != nil {
		a.logger.Warning("decoder backend failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return detections, nil
}
