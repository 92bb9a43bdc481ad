package advisor

import (
	"encoding/json"
	"strings"

	"github.com/lenslab/go-lenscoach/pkg/suggest"
)

// maxRemoteSuggestions caps how much model output gets through to the
// engine no matter what the model returns.
const maxRemoteSuggestions = 4

// actionTable maps model action names to actions. Lookups are
// case-insensitive; unknown names fall back to ActionHoldSteady so a
// chatty model never crashes a cycle.
var actionTable = map[string]suggest.Action{
	"FLASH_ON":          suggest.ActionFlashOn,
	"FLASH_OFF":         suggest.ActionFlashOff,
	"ZOOM_IN":           suggest.ActionZoomIn,
	"ZOOM_OUT":          suggest.ActionZoomOut,
	"SWITCH_CAMERA":     suggest.ActionSwitchCamera,
	"NIGHT_MODE_ON":     suggest.ActionNightModeOn,
	"NIGHT_MODE_OFF":    suggest.ActionNightModeOff,
	"PORTRAIT_MODE":     suggest.ActionPortraitMode,
	"MACRO_MODE":        suggest.ActionMacroMode,
	"FOOD_MODE":         suggest.ActionFoodMode,
	"GRID_ON":           suggest.ActionGridOn,
	"STABILIZATION_ON":  suggest.ActionStabilization,
	"FILTER_WARM":       suggest.ActionFilterWarm,
	"FILTER_COOL":       suggest.ActionFilterCool,
	"FILTER_VIVID":      suggest.ActionFilterVivid,
	"FILTER_MONO":       suggest.ActionFilterMono,
	"RATIO_16_9":        suggest.ActionRatio16x9,
	"RATIO_4_3":         suggest.ActionRatio4x3,
	"RATIO_1_1":         suggest.ActionRatio1x1,
	"RATIO_FULL":        suggest.ActionRatioFull,
	"HOLD_STEADY":       suggest.ActionHoldSteady,
	"MOVE_CLOSER":       suggest.ActionMoveCloser,
	"MOVE_BACK":         suggest.ActionMoveBack,
}

type remotePayload struct {
	Suggestions []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Action      string `json:"action"`
		Icon        string `json:"icon"`
		Priority    int    `json:"priority"`
	} `json:"suggestions"`
}

// ParseResponse extracts suggestions from raw model output. The JSON
// object is located by span (first '{' to last '}') because models wrap
// replies in prose and code fences. When no JSON parses, the reply is
// scanned as free text for actionable keywords.
func ParseResponse(raw string) []suggest.Suggestion {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		var payload remotePayload
		if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err == nil && len(payload.Suggestions) > 0 {
			out := make([]suggest.Suggestion, 0, maxRemoteSuggestions)
			for _, s := range payload.Suggestions {
				title := strings.TrimSpace(s.Title)
				if title == "" {
					continue
				}
				priority := s.Priority
				if priority < 1 {
					priority = len(out) + 1
				}
				out = append(out, suggest.Suggestion{
					Title:       title,
					Description: strings.TrimSpace(s.Description),
					Action:      lookupAction(s.Action),
					Icon:        s.Icon,
					Priority:    priority,
				})
				if len(out) == maxRemoteSuggestions {
					break
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return scanFreeText(raw)
}

func lookupAction(name string) suggest.Action {
	if action, ok := actionTable[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return action
	}
	return suggest.ActionHoldSteady
}

// scanFreeText salvages up to two suggestions from a non-JSON reply by
// looking for a few high-signal keywords.
func scanFreeText(raw string) []suggest.Suggestion {
	lower := strings.ToLower(raw)
	var out []suggest.Suggestion
	if strings.Contains(lower, "flash") {
		out = append(out, suggest.Suggestion{
			Title:       "Adjust Flash",
			Description: "The coach mentioned flash. Try toggling it.",
			Action:      suggest.ActionFlashOn,
			Icon:        "flash",
			Priority:    1,
		})
	}
	if len(out) < 2 && strings.Contains(lower, "zoom") {
		out = append(out, suggest.Suggestion{
			Title:       "Adjust Zoom",
			Description: "The coach mentioned zoom. Try reframing.",
			Action:      suggest.ActionZoomIn,
			Icon:        "zoom-in",
			Priority:    len(out) + 1,
		})
	}
	if len(out) < 2 && strings.Contains(lower, "closer") {
		out = append(out, suggest.Suggestion{
			Title:       "Move Closer",
			Description: "The coach suggests getting closer to your subject.",
			Action:      suggest.ActionMoveCloser,
			Icon:        "steps",
			Priority:    len(out) + 1,
		})
	}
	return out
}
