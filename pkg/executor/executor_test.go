package executor

import (
	"strings"
	"testing"

	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/suggest"
)

func TestApplyFlashAndMode(t *testing.T) {
	sim := camera.NewSim()
	e := New(sim)

	report := e.Apply([]suggest.Suggestion{
		{Title: "Turn on Flash", Action: suggest.ActionFlashOn},
		{Title: "Try Portrait", Action: suggest.ActionPortraitMode},
	})
	if len(report.Applied) != 2 || len(report.Failed) != 0 {
		t.Fatalf("report = %+v", report)
	}
	state := sim.GetState()
	if state.Flash != camera.FlashOn {
		t.Errorf("flash = %v, want on", state.Flash)
	}
	if state.Mode != camera.ModePortrait {
		t.Errorf("mode = %v, want portrait", state.Mode)
	}
}

func TestApplyZoomVerification(t *testing.T) {
	sim := camera.NewSim()
	e := New(sim)

	report := e.Apply([]suggest.Suggestion{{Title: "Zoom in", Action: suggest.ActionZoomIn}})
	if len(report.Applied) != 1 {
		t.Fatalf("zoom in failed: %+v", report)
	}
	if sim.GetZoom() != camera.SimMinZoom+camera.SimZoomStep {
		t.Errorf("zoom = %v", sim.GetZoom())
	}

	// At max zoom, zooming in changes nothing and must be a failure.
	for sim.GetZoom() < camera.SimMaxZoom {
		sim.ZoomIn()
	}
	report = e.Apply([]suggest.Suggestion{{Title: "Zoom in", Action: suggest.ActionZoomIn}})
	if len(report.Failed) != 1 {
		t.Errorf("zoom in at max should fail: %+v", report)
	}

	// Same at minimum for zooming out.
	sim2 := camera.NewSim()
	e2 := New(sim2)
	report = e2.Apply([]suggest.Suggestion{{Title: "Zoom out", Action: suggest.ActionZoomOut}})
	if len(report.Failed) != 1 {
		t.Errorf("zoom out at min should fail: %+v", report)
	}
}

func TestApplyGridShortCircuit(t *testing.T) {
	sim := camera.NewSim()
	sim.ToggleGrid()
	e := New(sim)

	report := e.Apply([]suggest.Suggestion{{Title: "Enable Grid", Action: suggest.ActionGridOn}})
	if len(report.Applied) != 1 {
		t.Fatalf("already-enabled grid should count as applied: %+v", report)
	}
	if !sim.IsGridEnabled() {
		t.Error("grid toggled off by a no-op request")
	}
}

func TestApplyModeVerification(t *testing.T) {
	sim := camera.NewSim()
	sim.FailOps["mode"] = true
	e := New(sim)

	report := e.Apply([]suggest.Suggestion{{Title: "Night Mode", Action: suggest.ActionNightModeOn}})
	if len(report.Failed) != 1 {
		t.Errorf("refused mode switch should fail: %+v", report)
	}
	if sim.GetMode() != camera.ModePhoto {
		t.Errorf("mode = %v, want unchanged", sim.GetMode())
	}
}

func TestApplyFlipVerification(t *testing.T) {
	sim := camera.NewSim()
	e := New(sim)

	report := e.Apply([]suggest.Suggestion{{Title: "Switch Camera", Action: suggest.ActionSwitchCamera}})
	if len(report.Applied) != 1 || !sim.IsUsingFrontCamera() {
		t.Errorf("flip: report=%+v front=%v", report, sim.IsUsingFrontCamera())
	}

	sim.FailOps["flip"] = true
	report = e.Apply([]suggest.Suggestion{{Title: "Switch Camera", Action: suggest.ActionSwitchCamera}})
	if len(report.Failed) != 1 {
		t.Errorf("refused flip should fail: %+v", report)
	}
}

func TestApplyGuidanceAlwaysSucceeds(t *testing.T) {
	sim := camera.NewSim()
	before := sim.GetState()
	e := New(sim)

	report := e.Apply([]suggest.Suggestion{
		{Title: "Hold Steady", Action: suggest.ActionHoldSteady},
		{Title: "Move Closer", Action: suggest.ActionMoveCloser},
		{Title: "Move Back", Action: suggest.ActionMoveBack},
	})
	if len(report.Applied) != 3 {
		t.Errorf("guidance report = %+v", report)
	}
	if sim.GetState() != before {
		t.Error("guidance changed camera state")
	}
}

func TestApplyPartialFailureSummary(t *testing.T) {
	sim := camera.NewSim()
	sim.FailOps["flash"] = true
	e := New(sim)

	report := e.Apply([]suggest.Suggestion{
		{Title: "Turn on Flash", Action: suggest.ActionFlashOn},
		{Title: "Enable Grid", Action: suggest.ActionGridOn},
		{Title: "Hold Steady", Action: suggest.ActionHoldSteady},
	})
	if len(report.Applied) != 2 || len(report.Failed) != 1 {
		t.Fatalf("report = %+v", report)
	}

	summary := report.Summary()
	if !strings.Contains(summary, "Applied: Enable Grid, Hold Steady") {
		t.Errorf("summary = %q", summary)
	}
	if !strings.Contains(summary, "Failed: Turn on Flash") {
		t.Errorf("summary = %q", summary)
	}
	if !strings.Contains(summary, " | ") {
		t.Errorf("summary separator missing: %q", summary)
	}
}

func TestApplyEveryActionDispatches(t *testing.T) {
	actions := []suggest.Action{
		suggest.ActionFlashOn, suggest.ActionFlashOff,
		suggest.ActionZoomIn, suggest.ActionZoomOut,
		suggest.ActionSwitchCamera,
		suggest.ActionNightModeOn, suggest.ActionNightModeOff,
		suggest.ActionPortraitMode, suggest.ActionMacroMode, suggest.ActionFoodMode,
		suggest.ActionGridOn, suggest.ActionStabilization,
		suggest.ActionFilterWarm, suggest.ActionFilterCool,
		suggest.ActionFilterVivid, suggest.ActionFilterMono,
		suggest.ActionRatio16x9, suggest.ActionRatio4x3,
		suggest.ActionRatio1x1, suggest.ActionRatioFull,
		suggest.ActionHoldSteady, suggest.ActionMoveCloser, suggest.ActionMoveBack,
	}
	for _, action := range actions {
		sim := camera.NewSim()
		sim.ZoomIn() // leave headroom for both zoom directions
		e := New(sim)
		report := e.Apply([]suggest.Suggestion{{Title: string(action), Action: action}})
		if len(report.Applied) != 1 {
			t.Errorf("action %s not applied: %+v", action, report)
		}
	}
}

func TestApplyUnmappedActionFails(t *testing.T) {
	e := New(camera.NewSim())
	report := e.Apply([]suggest.Suggestion{{Title: "Mystery", Action: suggest.Action("DO_A_FLIP")}})
	if len(report.Failed) != 1 {
		t.Errorf("unmapped action should fail: %+v", report)
	}
}

func TestSummaryEmpty(t *testing.T) {
	if got := (Report{}).Summary(); got != "Nothing to apply" {
		t.Errorf("empty summary = %q", got)
	}
}
