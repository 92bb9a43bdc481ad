// Package camera defines the camera control surface consumed by the
// coaching core, plus an in-memory implementation for tests and for
// running without real camera hardware.
package camera

import "image"

// FlashMode is the flash setting.
type FlashMode int

const (
	FlashOff FlashMode = iota
	FlashOn
	FlashAuto
)

// String returns the display name of the flash mode.
func (f FlashMode) String() string {
	switch f {
	case FlashOn:
		return "ON"
	case FlashAuto:
		return "AUTO"
	default:
		return "OFF"
	}
}

// Mode is the active shooting mode.
type Mode int

const (
	ModePhoto Mode = iota
	ModeVideo
	ModePortrait
	ModeNight
	ModeMacro
	ModeFood
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeVideo:
		return "VIDEO"
	case ModePortrait:
		return "PORTRAIT"
	case ModeNight:
		return "NIGHT"
	case ModeMacro:
		return "MACRO"
	case ModeFood:
		return "FOOD"
	default:
		return "PHOTO"
	}
}

// Supported aspect ratios.
const (
	Ratio4x3  = "3:4"
	Ratio16x9 = "9:16"
	Ratio1x1  = "1:1"
	RatioFull = "FULL"
)

// State is an immutable snapshot of the camera taken once per analysis
// cycle. It is never mutated in place; a new snapshot supersedes it.
type State struct {
	Flash         FlashMode `json:"flash"`
	Zoom          float64   `json:"zoom"`
	FrontCamera   bool      `json:"front_camera"`
	Mode          Mode      `json:"mode"`
	GridEnabled   bool      `json:"grid_enabled"`
	Stabilization bool      `json:"stabilization"`
	AspectRatio   string    `json:"aspect_ratio"`
	LowLight      bool      `json:"low_light"`
	ExposureEV    float64   `json:"exposure_ev"`
}

// Controls is the camera control surface. All operations are synchronous
// and may fail by returning false or an unchanged value rather than an
// error; the executor verifies post-conditions where that matters.
type Controls interface {
	GetState() State

	SetFlash(on bool) bool
	ZoomIn() float64
	ZoomOut() float64
	GetZoom() float64
	SwitchMode(mode Mode) bool
	GetMode() Mode
	ToggleGrid() bool
	IsGridEnabled() bool
	ToggleStabilization() bool
	IsStabilizationEnabled() bool
	FlipCamera() bool
	IsUsingFrontCamera() bool
	SetAspectRatio(ratio string) bool
	ApplyFilter(name string) bool

	// CapturePreviewFrame returns the latest preview frame, or nil when
	// no frame is available this cycle.
	CapturePreviewFrame() image.Image
}
