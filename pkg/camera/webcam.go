package camera

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Webcam reads preview frames from a local capture device via OpenCV.
// It satisfies FrameSource through Frame, so a Sim can serve real
// frames while keeping simulated controls.
type Webcam struct {
	mu   sync.Mutex
	cap  *gocv.VideoCapture
	mat  gocv.Mat
	open bool
}

// OpenWebcam opens capture device deviceID (usually 0).
func OpenWebcam(deviceID int) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("camera: open device %d: %w", deviceID, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("camera: device %d not available", deviceID)
	}
	return &Webcam{cap: cap, mat: gocv.NewMat(), open: true}, nil
}

// Frame grabs the next frame, or nil when the device yields nothing.
func (w *Webcam) Frame() image.Image {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.open {
		return nil
	}
	if ok := w.cap.Read(&w.mat); !ok || w.mat.Empty() {
		return nil
	}
	img, err := w.mat.ToImage()
	if err != nil {
		return nil
	}
	return img
}

// Close releases the capture device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.open {
		return nil
	}
	w.open = false
	w.mat.Close()
	return w.cap.Close()
}
