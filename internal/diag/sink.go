// Package diag redirects the process stderr into a file for the lifetime of
// a run, so noisy decoder and driver diagnostics stay off the operator console.
package diag

import (
	"fmt"
	"os"
	"sync"
)

// Sink owns the diagnostic file and the stderr handle it replaced.
type Sink struct {
	file     *os.File
	original *os.File
	once     sync.Once
}

// Open truncates path, points os.Stderr at it and returns the sink.
func Open(path string) (*Sink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open diagnostic log %s: %w", path, err)
	}

	s := &Sink{
		file:     file,
		original: os.Stderr,
	}
	os.Stderr = file
	return s, nil
}

// Write appends raw bytes to the diagnostic file.
func (s *Sink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// Name returns the file path backing the sink.
func (s *Sink) Name() string {
	return s.file.Name()
}

// Close restores the original stderr and closes the file. Safe to call twice.
func (s *Sink) Close() error {
	var err error
	s.once.Do(func() {
		os.Stderr = s.original
		err = s.file.Close()
	})
	return err
}
