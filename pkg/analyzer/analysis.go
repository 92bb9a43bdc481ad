// Package analyzer converts raw camera frames into structured
// photographic quality signals by composing vision toolkit primitives.
package analyzer

// ColorBalance classifies the overall color cast of a frame.
type ColorBalance string

const (
	ColorWarm     ColorBalance = "WARM"
	ColorCool     ColorBalance = "COOL"
	ColorBalanced ColorBalance = "BALANCED"
	ColorNeutral  ColorBalance = "NEUTRAL"
)

// Background classifies how busy the frame background is.
type Background string

const (
	BackgroundClean     Background = "CLEAN"
	BackgroundBusy      Background = "BUSY"
	BackgroundCluttered Background = "CLUTTERED"
)

// Contrast classifies the tonal contrast of a frame.
type Contrast string

const (
	ContrastLow    Contrast = "LOW"
	ContrastNormal Contrast = "NORMAL"
	ContrastHigh   Contrast = "HIGH"
)

// FocusQuality bands macro sharpness into user-meaningful levels.
type FocusQuality string

const (
	FocusExcellent FocusQuality = "EXCELLENT"
	FocusGood      FocusQuality = "GOOD"
	FocusFair      FocusQuality = "FAIR"
	FocusPoor      FocusQuality = "POOR"
	FocusUnknown   FocusQuality = "UNKNOWN"
)

// FrameAnalysis is the value object produced once per analyzed frame.
// It is consumed immediately by the suggestion engine and the scene
// classifier and never retained across cycles.
type FrameAnalysis struct {
	// Brightness is the mean luma (0-255).
	Brightness float64 `json:"brightness"`

	// BlurLevel is the sharpness score; higher is sharper. In macro
	// mode this carries the Sobel-based macro sharpness instead of the
	// Laplacian variance.
	BlurLevel float64 `json:"blur_level"`

	FaceCount int `json:"face_count"`

	Backlit     bool `json:"backlit"`
	MotionBlur  bool `json:"motion_blur"`
	Overexposed bool `json:"overexposed"`
	Underexposed bool `json:"underexposed"`

	// CompositionScore and RuleOfThirdsScore are edge-density samples
	// around the rule-of-thirds intersections (0-1).
	CompositionScore  float64 `json:"composition_score"`
	RuleOfThirdsScore float64 `json:"rule_of_thirds_score"`

	// HorizonTilt is the mean deviation of near-horizontal lines from
	// level, in signed degrees. 0 when no qualifying lines were found.
	HorizonTilt float64 `json:"horizon_tilt"`

	// SubjectX/SubjectY locate the edge-mass centroid, normalized [0,1].
	SubjectX float64 `json:"subject_x"`
	SubjectY float64 `json:"subject_y"`

	ColorBalance ColorBalance `json:"color_balance"`
	Background   Background   `json:"background"`
	Contrast     Contrast     `json:"contrast"`

	NoiseLevel float64 `json:"noise_level"`

	// Macro-mode extensions.
	MacroSharpness float64      `json:"macro_sharpness,omitempty"`
	FocusQuality   FocusQuality `json:"focus_quality,omitempty"`

	// Food-mode extensions.
	FoodWarmth     float64 `json:"food_warmth,omitempty"`
	FoodSaturation float64 `json:"food_saturation,omitempty"`
	FoodLikely     bool    `json:"food_likely,omitempty"`

	// Success is false when no frame was available; in that case every
	// other field holds its documented default, never partial data.
	Success bool `json:"success"`
}

// DefaultAnalysis is the all-defaults value returned for absent frames.
// Success is false and every field is a safe neutral.
func DefaultAnalysis() FrameAnalysis {
	return FrameAnalysis{
		SubjectX:     0.5,
		SubjectY:     0.5,
		ColorBalance: ColorNeutral,
		Background:   BackgroundClean,
		Contrast:     ContrastNormal,
		FocusQuality: FocusUnknown,
	}
}
