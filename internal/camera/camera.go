// Package camera holds the capture-side collaborators of the reader loop:
// frame sources, display surfaces and device discovery.
package camera

import (
	"barcodereader/internal/frame"
)

// Source yields frames from one opened device.
type Source interface {
	// Read blocks until the next frame is available.
	Read() (frame.Frame, error)
	Close() error
}

// Opener opens capture devices by index.
type Opener interface {
	Open(index int) (Source, error)
}

// Display shows annotated frames and reports key presses.
type Display interface {
	Show(f frame.Frame) error
	// WaitKey waits up to delayMs for a key and returns its code, or -1.
	WaitKey(delayMs int) int
	Close() error
}

// ListDevices probes indices 0, 1, 2, ... and returns every index that
// opened, stopping at the first one that does not. limit caps the probe.
func ListDevices(opener Opener, limit int) []int {
	var devices []int
	for index := 0; limit <= 0 || index < limit; index++ {
		src, err := opener.Open(index)
		if err != nil {
			break
		}
		src.Close()
		devices = append(devices, index)
	}
	return devices
}
