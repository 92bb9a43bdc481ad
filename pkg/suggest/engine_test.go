package suggest

import (
	"testing"

	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/scene"
)

func photoState() camera.State {
	return camera.State{Mode: camera.ModePhoto, Flash: camera.FlashOff, Zoom: 1.0, AspectRatio: camera.Ratio4x3}
}

func TestGenerateDarkSceneFlashFirst(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.Brightness = 40
	a.Underexposed = true
	a.Success = true

	got := e.Generate(photoState(), scene.LabelLowLight, &a, nil)
	if len(got) == 0 {
		t.Fatal("expected suggestions for a dark scene")
	}
	if got[0].Title != "Turn on Flash" {
		t.Errorf("first suggestion = %q, want %q", got[0].Title, "Turn on Flash")
	}
	if got[0].Priority != 1 {
		t.Errorf("priority = %d, want 1", got[0].Priority)
	}
	if got[0].Action != ActionFlashOn {
		t.Errorf("action = %q, want %q", got[0].Action, ActionFlashOn)
	}
}

func TestGenerateMotionBlurLeads(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.MotionBlur = true
	a.Underexposed = true
	a.Success = true

	got := e.Generate(photoState(), scene.LabelGeneral, &a, nil)
	if len(got) < 2 {
		t.Fatalf("got %d suggestions, want at least 2", len(got))
	}
	if got[0].Action != ActionHoldSteady {
		t.Errorf("first action = %q, want %q", got[0].Action, ActionHoldSteady)
	}
	if got[1].Action != ActionFlashOn {
		t.Errorf("second action = %q, want %q", got[1].Action, ActionFlashOn)
	}
}

func TestGenerateContextualCap(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.MotionBlur = true
	a.Underexposed = true
	a.HorizonTilt = 5.0
	a.CompositionScore = 0.1
	a.FaceCount = 1
	a.Backlit = true
	a.Success = true

	got := e.Generate(photoState(), scene.LabelGeneral, &a, nil)
	if len(got) != maxContextual {
		t.Errorf("got %d suggestions, want cap %d", len(got), maxContextual)
	}
}

func TestGenerateRemoteWinsAndDedupes(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.Success = true
	remote := []Suggestion{
		{Title: "Frame Lower", Action: ActionHoldSteady, Priority: 1},
		{Title: "Try Portrait", Action: ActionPortraitMode, Priority: 2},
	}

	first := e.Generate(photoState(), scene.LabelGeneral, &a, remote)
	if len(first) != 2 {
		t.Fatalf("first cycle: got %d suggestions, want 2", len(first))
	}

	// Same remote payload again: both titles are now in history, so the
	// engine falls back to the local rules (none fire on a clean frame
	// with zoom 1.0 and grid handled below).
	state := photoState()
	state.GridEnabled = true
	second := e.Generate(state, scene.LabelGeneral, &a, remote)
	for _, s := range second {
		if s.Title == "Frame Lower" || s.Title == "Try Portrait" {
			t.Errorf("repeated remote suggestion %q leaked through history", s.Title)
		}
	}
}

func TestGenerateRemoteCap(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.Success = true
	remote := []Suggestion{
		{Title: "One", Priority: 1}, {Title: "Two", Priority: 2},
		{Title: "Three", Priority: 3}, {Title: "Four", Priority: 4},
		{Title: "Five", Priority: 5},
	}
	got := e.Generate(photoState(), scene.LabelGeneral, &a, remote)
	if len(got) != maxSuggestions {
		t.Errorf("got %d suggestions, want cap %d", len(got), maxSuggestions)
	}
}

func TestGenerateMacroMode(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.Brightness = 150
	a.MacroSharpness = 20
	a.FocusQuality = analyzer.FocusPoor
	a.Success = true

	state := photoState()
	state.Mode = camera.ModeMacro
	got := e.Generate(state, scene.LabelMacro, &a, nil)
	if len(got) == 0 {
		t.Fatal("expected macro suggestions")
	}
	if got[0].Priority != 1 {
		t.Errorf("priority = %d, want 1", got[0].Priority)
	}
	var sawCloser, sawZoomIn bool
	for _, s := range got {
		if s.Action == ActionMoveCloser {
			sawCloser = true
		}
		if s.Action == ActionZoomIn {
			sawZoomIn = true
		}
	}
	if !sawCloser {
		t.Errorf("macro suggestions missing move-closer advice: %+v", got)
	}
	if !sawZoomIn {
		t.Errorf("macro at 1x should suggest zooming in: %+v", got)
	}
}

func TestGenerateMacroDimWideFrame(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.Brightness = 100
	a.FocusQuality = analyzer.FocusExcellent
	a.MotionBlur = false
	a.Success = true

	state := photoState()
	state.Mode = camera.ModeMacro
	state.Zoom = 1.2
	got := e.Generate(state, scene.LabelMacro, &a, nil)

	var sawLight, sawZoomIn bool
	for _, s := range got {
		switch s.Action {
		case ActionFlashOn:
			sawLight = true
		case ActionZoomIn:
			sawZoomIn = true
		case ActionZoomOut:
			t.Errorf("macro below 1.5x must not suggest zooming out: %+v", s)
		}
	}
	if !sawLight {
		t.Errorf("dim macro frame should ask for more light: %+v", got)
	}
	if !sawZoomIn {
		t.Errorf("macro below 1.5x should suggest zooming to 2x: %+v", got)
	}
}

func TestGenerateMacroShakeSuggestsStabilization(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.Brightness = 150
	a.FocusQuality = analyzer.FocusExcellent
	a.MotionBlur = true
	a.Success = true

	state := photoState()
	state.Mode = camera.ModeMacro
	state.Zoom = 2.0
	got := e.Generate(state, scene.LabelMacro, &a, nil)
	var sawStab bool
	for _, s := range got {
		if s.Action == ActionStabilization {
			sawStab = true
		}
	}
	if !sawStab {
		t.Errorf("shaky macro frame should suggest stabilization: %+v", got)
	}
}

func TestGenerateFoodMode(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.FoodWarmth = 0.1
	a.FoodSaturation = 50
	a.Success = true

	state := photoState()
	state.Mode = camera.ModeFood
	got := e.Generate(state, scene.LabelFood, &a, nil)
	var sawWarm, sawVivid bool
	for _, s := range got {
		if s.Action == ActionFilterWarm {
			sawWarm = true
		}
		if s.Action == ActionFilterVivid {
			sawVivid = true
		}
	}
	if !sawWarm || !sawVivid {
		t.Errorf("food suggestions missing filter advice: %+v", got)
	}
}

func TestGenerateFoodCompositionAndZoom(t *testing.T) {
	e := NewEngine()
	a := analyzer.DefaultAnalysis()
	a.Brightness = 90
	a.ColorBalance = analyzer.ColorCool
	a.FoodWarmth = 0.5
	a.FoodSaturation = 120
	a.CompositionScore = 0.2
	a.Success = true

	state := photoState()
	state.Mode = camera.ModeFood
	state.Zoom = 2.5
	state.AspectRatio = camera.Ratio1x1
	got := e.Generate(state, scene.LabelFood, &a, nil)

	want := map[Action]bool{
		ActionFlashOn:    false,
		ActionFilterWarm: false,
		ActionGridOn:     false,
		ActionZoomOut:    false,
	}
	for _, s := range got {
		if _, ok := want[s.Action]; ok {
			want[s.Action] = true
		}
		if s.Action == ActionZoomIn {
			t.Errorf("zoomed food shot must not suggest zooming in: %+v", s)
		}
	}
	for action, seen := range want {
		if !seen {
			t.Errorf("food suggestions missing %q: %+v", action, got)
		}
	}
	for _, s := range got {
		if s.Action == ActionGridOn && s.Title != "Shoot from Above" {
			t.Errorf("weak food composition should point overhead, got %q", s.Title)
		}
	}
}

func TestFallback(t *testing.T) {
	e := NewEngine()

	state := photoState()
	state.LowLight = true
	got := e.Fallback(state)
	if len(got) != maxFallback {
		t.Fatalf("got %d fallback suggestions, want %d", len(got), maxFallback)
	}
	if got[0].Action != ActionFlashOn {
		t.Errorf("first fallback action = %q, want %q", got[0].Action, ActionFlashOn)
	}

	// A bland state still yields a full fallback list via top-up.
	e2 := NewEngine()
	state = photoState()
	state.GridEnabled = true
	got = e2.Fallback(state)
	if len(got) != maxFallback {
		t.Errorf("bland state: got %d fallback suggestions, want %d", len(got), maxFallback)
	}
}

func TestFallbackPrimaryIsExclusive(t *testing.T) {
	// Flash outranks the zoom rule; only one primary may fire, then
	// the low-light top-up fills the second slot.
	e := NewEngine()
	state := photoState()
	state.LowLight = true
	state.Zoom = 3.0

	got := e.Fallback(state)
	if len(got) != maxFallback {
		t.Fatalf("got %d fallback suggestions, want %d", len(got), maxFallback)
	}
	if got[0].Action != ActionFlashOn {
		t.Errorf("primary = %q, want %q", got[0].Action, ActionFlashOn)
	}
	if got[1].Action != ActionNightModeOn {
		t.Errorf("top-up = %q, want %q", got[1].Action, ActionNightModeOn)
	}
	for _, s := range got {
		if s.Action == ActionZoomOut {
			t.Errorf("second primary leaked into fallback: %+v", got)
		}
	}
}

func TestFallbackFrontCameraLowLight(t *testing.T) {
	e := NewEngine()
	state := photoState()
	state.LowLight = true
	state.Flash = camera.FlashOn
	state.FrontCamera = true

	got := e.Fallback(state)
	if len(got) != maxFallback {
		t.Fatalf("got %d fallback suggestions, want %d", len(got), maxFallback)
	}
	if got[0].Action != ActionSwitchCamera {
		t.Errorf("primary = %q, want %q", got[0].Action, ActionSwitchCamera)
	}
	if got[1].Action != ActionNightModeOn {
		t.Errorf("top-up = %q, want %q", got[1].Action, ActionNightModeOn)
	}
}

func TestFallbackMacroFood(t *testing.T) {
	e := NewEngine()
	state := photoState()
	state.Mode = camera.ModeMacro
	got := e.Fallback(state)
	if len(got) != 2 || got[0].Action != ActionMoveCloser {
		t.Errorf("macro fallback = %+v", got)
	}

	state.Mode = camera.ModeFood
	got = e.Fallback(state)
	if len(got) != 2 {
		t.Errorf("food fallback = %+v", got)
	}
}

func TestSplitForSpeech(t *testing.T) {
	in := []Suggestion{
		{Title: "Turn on Flash", Action: ActionFlashOn},
		{Title: "Hold Steady", Action: ActionHoldSteady},
		{Title: "Zoom in", Action: ActionZoomIn},
		{Title: "Move Closer", Action: ActionMoveCloser},
	}
	phone, guidance := SplitForSpeech(in)
	if len(phone) != 2 || len(guidance) != 2 {
		t.Fatalf("split = %d phone / %d guidance, want 2/2", len(phone), len(guidance))
	}
	if phone[0].Action != ActionFlashOn || guidance[0].Action != ActionHoldSteady {
		t.Errorf("split order wrong: phone=%+v guidance=%+v", phone, guidance)
	}
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory()
	for i := 0; i < historyCap+10; i++ {
		h.Remember(string(rune('a'+i%26)) + string(rune('0'+i/26)))
	}
	if h.Len() != historyCap {
		t.Errorf("history length = %d, want %d", h.Len(), historyCap)
	}

	h.Reset()
	if h.Len() != 0 {
		t.Errorf("history length after reset = %d, want 0", h.Len())
	}
	if h.Contains("a0") {
		t.Error("history still contains entries after reset")
	}
}

func TestHistoryCaseInsensitive(t *testing.T) {
	h := NewHistory()
	h.Remember("Turn on Flash")
	if !h.Contains("turn on flash") || !h.Contains("  TURN ON FLASH ") {
		t.Error("history lookup should ignore case and surrounding space")
	}
	if h.Len() != 1 {
		t.Errorf("history length = %d, want 1", h.Len())
	}
}
