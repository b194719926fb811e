// Package webcam implements the camera collaborators on top of OpenCV.
package webcam

import (
	"fmt"
	"image"
	"image/color"

	"barcodereader/internal/camera"
	"barcodereader/internal/frame"

	"gocv.io/x/gocv"
)

// MatFrame is a Frame backed by an OpenCV matrix (BGR).
type MatFrame struct {
	mat gocv.Mat
}

func (f *MatFrame) Image() (image.Image, error) {
	if f.mat.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}
	return f.mat.ToImage()
}

func (f *MatFrame) Rectangle(r image.Rectangle, c color.RGBA, thickness int) error {
	return gocv.Rectangle(&f.mat, r, c, thickness)
}

func (f *MatFrame) PutText(text string, org image.Point, c color.RGBA, scale float64, thickness int) error {
	return gocv.PutText(&f.mat, text, org, gocv.FontHersheySimplex, scale, c, thickness)
}

func (f *MatFrame) Close() error {
	return f.mat.Close()
}

// Opener opens local video capture devices.
type Opener struct{}

func (Opener) Open(index int) (camera.Source, error) {
	capture, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", index, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %d is not opened", index)
	}
	return &Source{deviceID: index, capture: capture}, nil
}

// Source reads frames from an opened capture device.
type Source struct {
	deviceID int
	capture  *gocv.VideoCapture
}

func (s *Source) Read() (frame.Frame, error) {
	mat := gocv.NewMat()
	if ok := s.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("cannot read webcam device: %d", s.deviceID)
	}
	return &MatFrame{mat: mat}, nil
}

func (s *Source) Close() error {
	return s.capture.Close()
}

// Window is an OpenCV HighGUI window.
type Window struct {
	window *gocv.Window
}

func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

func (w *Window) Show(f frame.Frame) error {
	if mf, ok := f.(*MatFrame); ok {
		w.window.IMShow(mf.mat)
		return nil
	}

	img, err := f.Image()
	if err != nil {
		return err
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("failed to convert frame for display: %w", err)
	}
	defer mat.Close()
	w.window.IMShow(mat)
	return nil
}

func (w *Window) WaitKey(delayMs int) int {
	return w.window.WaitKey(delayMs)
}

func (w *Window) Close() error {
	return w.window.Close()
}
