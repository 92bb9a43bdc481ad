// Package scene maps camera state and frame analysis to a coarse scene
// label. The label steers suggestion strategy and phrases the remote
// advisor prompt; it is a total, deterministic function.
package scene

import (
	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
)

// Label is a coarse classification of the current shooting context.
type Label string

const (
	LabelMacro      Label = "Macro/close-up scene"
	LabelFood       Label = "Food photography scene"
	LabelSoloSelfie Label = "Solo selfie"
	LabelGroupSelfie Label = "Group selfie"
	LabelGroupPhoto Label = "Group photo"
	LabelPortrait   Label = "Portrait shot"
	LabelLowLight   Label = "Low-light scene"
	LabelBright     Label = "Bright outdoor scene"
	LabelZoomed     Label = "Zoomed shot"
	LabelGeneral    Label = "General photo"
)

// Brightness and zoom bands for classification.
const (
	lowLightBrightness = 60.0
	brightBrightness   = 160.0
	zoomedRatio        = 2.0
)

// Classify returns the scene label for the given state and analysis.
// Explicit macro/food modes win over heuristics; among heuristics,
// face-count labels win over brightness, which wins over zoom. A nil
// analysis falls through to state-only heuristics.
func Classify(state camera.State, analysis *analyzer.FrameAnalysis) Label {
	switch state.Mode {
	case camera.ModeMacro:
		return LabelMacro
	case camera.ModeFood:
		return LabelFood
	}

	if analysis != nil {
		switch {
		case state.FrontCamera && analysis.FaceCount == 1:
			return LabelSoloSelfie
		case state.FrontCamera && analysis.FaceCount > 1:
			return LabelGroupSelfie
		case analysis.FaceCount > 2:
			return LabelGroupPhoto
		case analysis.FaceCount == 1:
			return LabelPortrait
		case analysis.Success && analysis.Brightness < lowLightBrightness:
			return LabelLowLight
		case analysis.Success && analysis.Brightness > brightBrightness:
			return LabelBright
		}
	} else if state.LowLight {
		return LabelLowLight
	}

	if state.Zoom > zoomedRatio {
		return LabelZoomed
	}
	return LabelGeneral
}
