package advisor

import (
	"fmt"
	"strings"

	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/scene"
)

// actionVocabulary lists every action name the model may use. Keeping
// the prompt and the parser's keyword table in sync matters more than
// the exact wording.
var actionVocabulary = []string{
	"FLASH_ON", "FLASH_OFF", "ZOOM_IN", "ZOOM_OUT", "SWITCH_CAMERA",
	"NIGHT_MODE_ON", "NIGHT_MODE_OFF", "PORTRAIT_MODE", "MACRO_MODE",
	"FOOD_MODE", "GRID_ON", "STABILIZATION_ON", "FILTER_WARM",
	"FILTER_COOL", "FILTER_VIVID", "FILTER_MONO", "RATIO_16_9",
	"RATIO_4_3", "RATIO_1_1", "RATIO_FULL", "HOLD_STEADY",
	"MOVE_CLOSER", "MOVE_BACK",
}

// BuildPrompt renders the critique prompt the advisor sends alongside
// the preview frame. It encodes current camera state and the local
// analysis so the model critiques what the user actually sees.
func BuildPrompt(state camera.State, label scene.Label, analysis *analyzer.FrameAnalysis) string {
	var b strings.Builder

	b.WriteString("You are a professional photography coach looking at a live camera preview.\n\n")
	b.WriteString("Current conditions:\n")
	fmt.Fprintf(&b, "- Scene: %s\n", label)
	fmt.Fprintf(&b, "- Camera: %s mode, %.1fx zoom, flash %s\n", state.Mode, state.Zoom, state.Flash)
	if state.FrontCamera {
		b.WriteString("- Using the front (selfie) camera\n")
	}
	if state.GridEnabled {
		b.WriteString("- Composition grid is on\n")
	}
	if analysis != nil && analysis.Success {
		fmt.Fprintf(&b, "- Lighting: brightness %.0f/255", analysis.Brightness)
		if analysis.Overexposed {
			b.WriteString(" (overexposed)")
		}
		if analysis.Underexposed {
			b.WriteString(" (underexposed)")
		}
		if analysis.Backlit {
			b.WriteString(" (backlit)")
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "- Faces detected: %d\n", analysis.FaceCount)
		if analysis.MotionBlur {
			b.WriteString("- The frame shows motion blur\n")
		}
	}

	b.WriteString("\nGive 2-4 short, specific suggestions to improve this exact shot.\n")
	b.WriteString("Respond ONLY with JSON in this shape:\n")
	b.WriteString(`{"suggestions":[{"title":"...","description":"...","action":"...","priority":1}]}` + "\n")
	fmt.Fprintf(&b, "Valid actions: %s.\n", strings.Join(actionVocabulary, ", "))
	b.WriteString("Use priority 1 for the most urgent fix. At most one suggestion should change a camera setting; the rest should guide the user.")

	return b.String()
}
