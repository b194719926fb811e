package camera

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"barcodereader/internal/frame"

	"github.com/disintegration/imaging"
)

var replayExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
}

// ReplayOpener plays the images of a directory back as a camera.
// Only index 0 exists.
type ReplayOpener struct {
	Dir string
}

func (o ReplayOpener) Open(index int) (Source, error) {
	if index != 0 {
		return nil, fmt.Errorf("replay source has no device %d", index)
	}
	return NewReplaySource(o.Dir)
}

// ReplaySource returns the image files of a directory in name order.
// After the last file Read returns io.EOF.
type ReplaySource struct {
	files []string
	next  int
}

func NewReplaySource(dir string) (*ReplaySource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !replayExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	return &ReplaySource{files: files}, nil
}

func (s *ReplaySource) Read() (frame.Frame, error) {
	if s.next >= len(s.files) {
		return nil, io.EOF
	}
	path := s.files[s.next]
	s.next++

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	return frame.NewImageFrame(img), nil
}

// Len returns the number of frames in the replay.
func (s *ReplaySource) Len() int {
	return len(s.files)
}

func (s *ReplaySource) Close() error {
	s.next = len(s.files)
	return nil
}

// HeadlessDisplay discards frames and never reports a key press.
type HeadlessDisplay struct{}

func (HeadlessDisplay) Show(frame.Frame) error { return nil }
func (HeadlessDisplay) WaitKey(int) int        { return -1 }
func (HeadlessDisplay) Close() error           { return nil }
