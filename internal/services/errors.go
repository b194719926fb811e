package services

import (
	"errors"

	"barcodereader/internal/services/decoder"
)

// Error taxonomy of a reader run. All of them end the operation without
// crashing the process.
var (
	// ErrNoDevice is returned when probing finds no camera.
	ErrNoDevice = errors.New("no camera detected")

	// ErrDeviceOpen is returned when the selected camera cannot be opened.
	ErrDeviceOpen = errors.New("camera could not be opened")

	// ErrCapture is returned when the camera stops delivering frames.
	ErrCapture = errors.New("failed to capture image")

	// ErrDecode is recovered per frame and never ends the loop.
	ErrDecode = decoder.ErrDecode
)
