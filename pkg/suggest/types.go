// Package suggest produces ranked shooting suggestions from camera
// state, frame analysis, and (when available) remote advisor output.
package suggest

// Action identifies a concrete camera operation, or a piece of user
// guidance the app can only speak or display.
type Action string

const (
	ActionFlashOn       Action = "FLASH_ON"
	ActionFlashOff      Action = "FLASH_OFF"
	ActionZoomIn        Action = "ZOOM_IN"
	ActionZoomOut       Action = "ZOOM_OUT"
	ActionSwitchCamera  Action = "SWITCH_CAMERA"
	ActionNightModeOn   Action = "NIGHT_MODE_ON"
	ActionNightModeOff  Action = "NIGHT_MODE_OFF"
	ActionPortraitMode  Action = "PORTRAIT_MODE"
	ActionMacroMode     Action = "MACRO_MODE"
	ActionFoodMode      Action = "FOOD_MODE"
	ActionGridOn        Action = "GRID_ON"
	ActionStabilization Action = "STABILIZATION_ON"
	ActionFilterWarm    Action = "FILTER_WARM"
	ActionFilterCool    Action = "FILTER_COOL"
	ActionFilterVivid   Action = "FILTER_VIVID"
	ActionFilterMono    Action = "FILTER_MONO"
	ActionRatio16x9     Action = "RATIO_16_9"
	ActionRatio4x3      Action = "RATIO_4_3"
	ActionRatio1x1      Action = "RATIO_1_1"
	ActionRatioFull     Action = "RATIO_FULL"
	ActionHoldSteady    Action = "HOLD_STEADY"
	ActionMoveCloser    Action = "MOVE_CLOSER"
	ActionMoveBack      Action = "MOVE_BACK"
)

// IsGuidance reports whether the action can only be carried out by the
// user, not by the camera stack.
func (a Action) IsGuidance() bool {
	switch a {
	case ActionHoldSteady, ActionMoveCloser, ActionMoveBack:
		return true
	}
	return false
}

// Suggestion is a single ranked recommendation. Priority 1 is most
// urgent; lower numbers sort first. TargetValue and CurrentValue carry
// optional numeric context (zoom ratios, brightness) for display.
type Suggestion struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Action       Action  `json:"action"`
	Icon         string  `json:"icon"`
	Priority     int     `json:"priority"`
	TargetValue  float64 `json:"target_value,omitempty"`
	CurrentValue float64 `json:"current_value,omitempty"`
}
