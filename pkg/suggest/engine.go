package suggest

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/scene"
)

// Output caps per source. Remote and mode-specific suggestions can fill
// the full display budget; the contextual rule chain stays shorter so
// heuristic advice never crowds out everything else, and fallbacks stay
// minimal.
const (
	maxSuggestions = 4
	maxContextual  = 3
	maxFallback    = 2
)

// Zoom bands used by the contextual rules.
const (
	zoomInBelow     = 1.2
	zoomOutAbove    = 3.0
	fallbackZoom    = 2.5
	portraitZoom    = 1.5
	horizonTiltDeg  = 2.0
	weakComposition = 0.3
)

// Mode-specific thresholds.
const (
	macroZoomBelow  = 1.5
	macroZoomTarget = 2.0
	macroDimBelow   = 120.0
	foodDimBelow    = 100.0
	foodWeakComp    = 0.4
	foodZoomAbove   = 2.0
	foodWarmthFloor = 0.2
	foodSatFloor    = 80.0
)

// Engine synthesizes the suggestion list shown to the user. It merges
// mode-specific generators, remote advisor output, and a local rule
// chain, deduplicating against session history.
type Engine struct {
	history *History
	logger  *slog.Logger
}

func NewEngine() *Engine {
	return &Engine{
		history: NewHistory(),
		logger:  slog.Default().With("component", "suggest"),
	}
}

// History exposes the session history, mainly so callers can reset it
// between shooting sessions.
func (e *Engine) History() *History { return e.history }

// Generate produces the ranked suggestion list for one analysis cycle.
// Macro and food modes use their dedicated generators. Otherwise remote
// suggestions not seen before this session come first; when none
// survive, the local rule chain fills in. The result is sorted by
// priority and capped at maxSuggestions, and every surfaced title is
// remembered.
func (e *Engine) Generate(state camera.State, label scene.Label, analysis *analyzer.FrameAnalysis, remote []Suggestion) []Suggestion {
	var out []Suggestion

	switch state.Mode {
	case camera.ModeMacro:
		out = macroSuggestions(state, analysis)
	case camera.ModeFood:
		out = foodSuggestions(state, analysis)
	}

	if len(out) == 0 {
		for _, s := range remote {
			if e.history.Contains(s.Title) {
				continue
			}
			out = append(out, s)
			if len(out) == maxSuggestions {
				break
			}
		}
	}

	if len(out) == 0 && analysis != nil && analysis.Success {
		out = contextual(state, analysis)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	for _, s := range out {
		e.history.Remember(s.Title)
	}
	e.logger.Debug("generated suggestions", "scene", string(label), "count", len(out))
	return out
}

// contextual is the local rule chain: each matched rule appends one
// suggestion, priorities follow match order, and the chain stops at
// maxContextual.
func contextual(state camera.State, analysis *analyzer.FrameAnalysis) []Suggestion {
	var out []Suggestion
	add := func(s Suggestion) bool {
		s.Priority = len(out) + 1
		out = append(out, s)
		return len(out) < maxContextual
	}

	if analysis.MotionBlur {
		if !add(Suggestion{
			Title:       "Hold Steady",
			Description: "The frame looks shaky. Brace the phone or lean on something solid.",
			Action:      ActionHoldSteady,
			Icon:        "steady",
		}) {
			return out
		}
	}
	if analysis.Underexposed && state.Flash == camera.FlashOff {
		if !add(Suggestion{
			Title:       "Turn on Flash",
			Description: "The scene is underexposed. Flash will recover the shadows.",
			Action:      ActionFlashOn,
			Icon:        "flash",
		}) {
			return out
		}
	}
	if analysis.Overexposed && state.Flash != camera.FlashOff {
		if !add(Suggestion{
			Title:       "Turn off Flash",
			Description: "Highlights are clipping. Switch the flash off to protect them.",
			Action:      ActionFlashOff,
			Icon:        "flash-off",
		}) {
			return out
		}
	}
	if math.Abs(analysis.HorizonTilt) > horizonTiltDeg {
		dir := "left"
		if analysis.HorizonTilt > 0 {
			dir = "right"
		}
		if !add(Suggestion{
			Title:        "Level the Horizon",
			Description:  fmt.Sprintf("The horizon tilts %.1f° to the %s. Rotate the phone slightly.", math.Abs(analysis.HorizonTilt), dir),
			Action:       ActionHoldSteady,
			Icon:         "level",
			CurrentValue: analysis.HorizonTilt,
		}) {
			return out
		}
	}
	if analysis.CompositionScore < weakComposition && !state.GridEnabled {
		if !add(Suggestion{
			Title:       "Enable Grid",
			Description: "Use the rule-of-thirds grid to place your subject off center.",
			Action:      ActionGridOn,
			Icon:        "grid",
		}) {
			return out
		}
	}
	if analysis.FaceCount > 0 && analysis.Backlit && state.Flash == camera.FlashOff {
		if !add(Suggestion{
			Title:       "Fill the Backlight",
			Description: "Your subject is backlit. Fill flash will brighten their face.",
			Action:      ActionFlashOn,
			Icon:        "flash",
		}) {
			return out
		}
	}
	if analysis.FaceCount >= 1 && analysis.FaceCount <= 2 && state.Zoom < zoomInBelow {
		if !add(Suggestion{
			Title:        "Zoom in a Little",
			Description:  "Tighten the frame around your subject for a stronger portrait.",
			Action:       ActionZoomIn,
			Icon:         "zoom-in",
			TargetValue:  portraitZoom,
			CurrentValue: state.Zoom,
		}) {
			return out
		}
	}
	if state.Zoom > zoomOutAbove {
		add(Suggestion{
			Title:        "Zoom out",
			Description:  "High zoom amplifies shake and noise. Step closer instead.",
			Action:       ActionZoomOut,
			Icon:         "zoom-out",
			CurrentValue: state.Zoom,
		})
	}
	return out
}

// Fallback produces up to maxFallback state-only suggestions for when
// no frame analysis is available at all. The list is topped up so the
// user always hears something.
func (e *Engine) Fallback(state camera.State) []Suggestion {
	var out []Suggestion

	switch state.Mode {
	case camera.ModeMacro:
		out = []Suggestion{
			{Title: "Get Close and Still", Description: "Move within a few centimeters and keep the phone still for macro focus.", Action: ActionMoveCloser, Icon: "macro", Priority: 1},
			{Title: "Hold Steady", Description: "Macro shots magnify every tremor. Brace your elbows.", Action: ActionHoldSteady, Icon: "steady", Priority: 2},
		}
	case camera.ModeFood:
		out = []Suggestion{
			{Title: "Shoot from Above", Description: "A top-down angle flatters plated food.", Action: ActionMoveBack, Icon: "food", Priority: 1},
			{Title: "Warm it Up", Description: "A warm filter makes dishes look more appetizing.", Action: ActionFilterWarm, Icon: "filter", Priority: 2},
		}
	default:
		// One primary picked by severity, then a fixed top-up so the
		// user always hears a second tip.
		switch {
		case state.LowLight && state.Flash == camera.FlashOff:
			out = append(out, Suggestion{Title: "Turn on Flash", Description: "It looks dark. Flash will help.", Action: ActionFlashOn, Icon: "flash", Priority: 1})
		case state.Zoom > fallbackZoom:
			out = append(out, Suggestion{Title: "Zoom Out", Description: "High zoom may cause blur.", Action: ActionZoomOut, Icon: "zoom-out", Priority: 1, CurrentValue: state.Zoom})
		case state.FrontCamera && state.LowLight:
			out = append(out, Suggestion{Title: "Switch to Back Camera", Description: "The main camera performs better in low light.", Action: ActionSwitchCamera, Icon: "flip", Priority: 1})
		case !state.GridEnabled:
			out = append(out, Suggestion{Title: "Enable Grid", Description: "The grid helps you compose with the rule of thirds.", Action: ActionGridOn, Icon: "grid", Priority: 2})
		default:
			out = append(out, Suggestion{Title: "Hold Steady", Description: "Keep the phone still while shooting.", Action: ActionHoldSteady, Icon: "steady", Priority: 2})
		}
		if len(out) < maxFallback {
			if state.LowLight && state.Mode != camera.ModeNight {
				out = append(out, Suggestion{Title: "Try Night Mode", Description: "Night mode brightens dark scenes.", Action: ActionNightModeOn, Icon: "night", Priority: 2})
			} else {
				out = append(out, Suggestion{Title: "Focus on Subject", Description: "Tap your main subject to focus before shooting.", Action: ActionHoldSteady, Icon: "focus", Priority: 2})
			}
		}
	}

	if len(out) > maxFallback {
		out = out[:maxFallback]
	}
	for _, s := range out {
		e.history.Remember(s.Title)
	}
	return out
}

// macroSuggestions tailors advice to close-up work using the macro
// sharpness bands.
func macroSuggestions(state camera.State, analysis *analyzer.FrameAnalysis) []Suggestion {
	if analysis == nil {
		return nil
	}
	var out []Suggestion
	switch analysis.FocusQuality {
	case analyzer.FocusPoor, analyzer.FocusFair:
		out = append(out, Suggestion{Title: "Get Closer & Focus", Description: "Move a few centimeters closer for sharper macro detail.", Action: ActionMoveCloser, Icon: "macro", Priority: len(out) + 1, CurrentValue: analysis.MacroSharpness})
	case analyzer.FocusGood:
		out = append(out, Suggestion{Title: "Almost There", Description: "Focus is close. A tiny adjustment in distance will nail it.", Action: ActionMoveCloser, Icon: "macro", Priority: len(out) + 1})
	}
	if analysis.Brightness < macroDimBelow {
		out = append(out, Suggestion{Title: "Add More Light", Description: "Macro needs bright, even lighting. Flash or a window helps.", Action: ActionFlashOn, Icon: "flash", Priority: len(out) + 1, CurrentValue: analysis.Brightness})
	}
	if state.Zoom < macroZoomBelow {
		out = append(out, Suggestion{Title: "Zoom to 2x", Description: "Extra magnification brings out macro detail.", Action: ActionZoomIn, Icon: "zoom-in", Priority: len(out) + 1, TargetValue: macroZoomTarget, CurrentValue: state.Zoom})
	}
	if analysis.MotionBlur {
		out = append(out, Suggestion{Title: "Use Both Hands", Description: "Macro photography needs rock-steady hands.", Action: ActionStabilization, Icon: "steady", Priority: len(out) + 1})
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// foodSuggestions tailors advice to plated-food shots using warmth and
// saturation signals.
func foodSuggestions(state camera.State, analysis *analyzer.FrameAnalysis) []Suggestion {
	if analysis == nil {
		return nil
	}
	var out []Suggestion
	if analysis.Brightness < foodDimBelow {
		out = append(out, Suggestion{Title: "Brighter Lighting", Description: "Food looks more appetizing with good light.", Action: ActionFlashOn, Icon: "flash", Priority: len(out) + 1, CurrentValue: analysis.Brightness})
	}
	if analysis.ColorBalance == analyzer.ColorCool || analysis.FoodWarmth < foodWarmthFloor {
		out = append(out, Suggestion{Title: "Warm it Up", Description: "The dish reads cold. A warm filter makes food more appetizing.", Action: ActionFilterWarm, Icon: "filter", Priority: len(out) + 1, CurrentValue: analysis.FoodWarmth})
	}
	if analysis.CompositionScore < foodWeakComp {
		out = append(out, Suggestion{Title: "Shoot from Above", Description: "An overhead angle often works best for plated food. Use the grid to line it up.", Action: ActionGridOn, Icon: "grid", Priority: len(out) + 1})
	}
	if state.Zoom > foodZoomAbove {
		out = append(out, Suggestion{Title: "Get Closer Instead", Description: "Move closer rather than zoom for food photos.", Action: ActionZoomOut, Icon: "zoom-out", Priority: len(out) + 1, CurrentValue: state.Zoom})
	}
	if analysis.FoodSaturation < foodSatFloor {
		out = append(out, Suggestion{Title: "Boost the Colors", Description: "A vivid filter brings out the colors of the plate.", Action: ActionFilterVivid, Icon: "filter", Priority: len(out) + 1, CurrentValue: analysis.FoodSaturation})
	}
	if state.AspectRatio != camera.Ratio1x1 {
		out = append(out, Suggestion{Title: "Try Square Framing", Description: "A 1:1 crop centers the plate nicely.", Action: ActionRatio1x1, Icon: "ratio", Priority: len(out) + 1})
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// SplitForSpeech partitions suggestions into ones the phone can apply
// itself and ones that need the user to act.
func SplitForSpeech(suggestions []Suggestion) (phone, guidance []Suggestion) {
	for _, s := range suggestions {
		if s.Action.IsGuidance() {
			guidance = append(guidance, s)
		} else {
			phone = append(phone, s)
		}
	}
	return phone, guidance
}
