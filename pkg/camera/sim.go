package camera

import (
	"image"
	"sync"
)

// Zoom limits for the simulated device.
const (
	SimMinZoom  = 1.0
	SimMaxZoom  = 8.0
	SimZoomStep = 0.5
)

// FrameSource supplies preview frames to the simulator. It may return
// nil when no frame is available.
type FrameSource func() image.Image

// Sim is an in-memory Controls implementation. It behaves like a
// well-functioning device: every operation succeeds within the
// simulated limits. Tests override behavior by embedding or by using
// the FailOps set.
type Sim struct {
	mu     sync.Mutex
	state  State
	filter string

	// Frames supplies preview frames. Nil means no frames available.
	Frames FrameSource

	// FailOps lists operation names ("flash", "zoom", "mode", "grid",
	// "stabilization", "flip", "ratio", "filter") that should be refused.
	FailOps map[string]bool
}

// NewSim creates a simulator with sane initial state.
func NewSim() *Sim {
	return &Sim{
		state: State{
			Flash:       FlashOff,
			Zoom:        SimMinZoom,
			Mode:        ModePhoto,
			AspectRatio: Ratio4x3,
		},
		FailOps: map[string]bool{},
	}
}

// NewSimWithState creates a simulator seeded with the given state.
func NewSimWithState(s State) *Sim {
	return &Sim{state: s, FailOps: map[string]bool{}}
}

func (s *Sim) fails(op string) bool {
	return s.FailOps != nil && s.FailOps[op]
}

// GetState returns a snapshot of the current state.
func (s *Sim) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetState replaces the simulated state. Test helper.
func (s *Sim) SetState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// SetFlash sets the flash on or off.
func (s *Sim) SetFlash(on bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("flash") {
		return false
	}
	if on {
		s.state.Flash = FlashOn
	} else {
		s.state.Flash = FlashOff
	}
	return true
}

// ZoomIn raises zoom by one step and returns the new ratio.
func (s *Sim) ZoomIn() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("zoom") {
		return s.state.Zoom
	}
	if s.state.Zoom+SimZoomStep <= SimMaxZoom {
		s.state.Zoom += SimZoomStep
	}
	return s.state.Zoom
}

// ZoomOut lowers zoom by one step and returns the new ratio.
func (s *Sim) ZoomOut() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("zoom") {
		return s.state.Zoom
	}
	if s.state.Zoom-SimZoomStep >= SimMinZoom {
		s.state.Zoom -= SimZoomStep
	}
	return s.state.Zoom
}

// GetZoom returns the current zoom ratio.
func (s *Sim) GetZoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Zoom
}

// SwitchMode changes the shooting mode.
func (s *Sim) SwitchMode(mode Mode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("mode") {
		return false
	}
	s.state.Mode = mode
	return true
}

// GetMode returns the active shooting mode.
func (s *Sim) GetMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Mode
}

// ToggleGrid flips the grid overlay and reports success.
func (s *Sim) ToggleGrid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("grid") {
		return false
	}
	s.state.GridEnabled = !s.state.GridEnabled
	return true
}

// IsGridEnabled reports whether the grid overlay is on.
func (s *Sim) IsGridEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GridEnabled
}

// ToggleStabilization flips stabilization and reports success.
func (s *Sim) ToggleStabilization() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("stabilization") {
		return false
	}
	s.state.Stabilization = !s.state.Stabilization
	return true
}

// IsStabilizationEnabled reports whether stabilization is on.
func (s *Sim) IsStabilizationEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stabilization
}

// FlipCamera switches between front and back cameras.
func (s *Sim) FlipCamera() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("flip") {
		return false
	}
	s.state.FrontCamera = !s.state.FrontCamera
	return true
}

// IsUsingFrontCamera reports whether the front camera is active.
func (s *Sim) IsUsingFrontCamera() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FrontCamera
}

// SetAspectRatio sets the capture aspect ratio.
func (s *Sim) SetAspectRatio(ratio string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("ratio") {
		return false
	}
	switch ratio {
	case Ratio4x3, Ratio16x9, Ratio1x1, RatioFull:
		s.state.AspectRatio = ratio
		return true
	}
	return false
}

// ApplyFilter applies a named color filter.
func (s *Sim) ApplyFilter(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails("filter") {
		return false
	}
	s.filter = name
	return true
}

// ActiveFilter returns the last applied filter name. Test helper.
func (s *Sim) ActiveFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// CapturePreviewFrame returns a frame from the source, or nil.
func (s *Sim) CapturePreviewFrame() image.Image {
	if s.Frames == nil {
		return nil
	}
	return s.Frames()
}

// Verify Sim implements Controls at compile time.
var _ Controls = (*Sim)(nil)
