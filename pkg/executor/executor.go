// Package executor applies suggestions to the camera and verifies that
// each operation actually took effect.
package executor

import (
	"log/slog"
	"strings"

	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/suggest"
)

// Report lists which suggestion titles were applied and which failed,
// in input order.
type Report struct {
	Applied []string `json:"applied"`
	Failed  []string `json:"failed"`
}

// Summary renders the report as one user-facing line.
func (r Report) Summary() string {
	switch {
	case len(r.Applied) > 0 && len(r.Failed) > 0:
		return "Applied: " + strings.Join(r.Applied, ", ") + " | Failed: " + strings.Join(r.Failed, ", ")
	case len(r.Applied) > 0:
		return "Applied: " + strings.Join(r.Applied, ", ")
	case len(r.Failed) > 0:
		return "Failed: " + strings.Join(r.Failed, ", ")
	}
	return "Nothing to apply"
}

// Executor dispatches suggestion actions onto camera controls.
type Executor struct {
	controls camera.Controls
	logger   *slog.Logger
}

func New(controls camera.Controls) *Executor {
	return &Executor{
		controls: controls,
		logger:   slog.Default().With("component", "executor"),
	}
}

// Apply runs every suggestion in order and reports the outcome of
// each. One failing suggestion never stops the rest.
func (e *Executor) Apply(suggestions []suggest.Suggestion) Report {
	var report Report
	for _, s := range suggestions {
		if e.applyOne(s) {
			report.Applied = append(report.Applied, s.Title)
		} else {
			report.Failed = append(report.Failed, s.Title)
		}
	}
	e.logger.Info("applied suggestions",
		"applied", len(report.Applied),
		"failed", len(report.Failed))
	return report
}

func (e *Executor) applyOne(s suggest.Suggestion) bool {
	switch s.Action {
	case suggest.ActionFlashOn:
		return e.controls.SetFlash(true)
	case suggest.ActionFlashOff:
		return e.controls.SetFlash(false)

	case suggest.ActionZoomIn:
		before := e.controls.GetZoom()
		after := e.controls.ZoomIn()
		return after > before
	case suggest.ActionZoomOut:
		before := e.controls.GetZoom()
		after := e.controls.ZoomOut()
		return after < before

	case suggest.ActionSwitchCamera:
		before := e.controls.IsUsingFrontCamera()
		e.controls.FlipCamera()
		return e.controls.IsUsingFrontCamera() != before

	case suggest.ActionNightModeOn:
		return e.switchMode(camera.ModeNight)
	case suggest.ActionNightModeOff:
		return e.switchMode(camera.ModePhoto)
	case suggest.ActionPortraitMode:
		return e.switchMode(camera.ModePortrait)
	case suggest.ActionMacroMode:
		return e.switchMode(camera.ModeMacro)
	case suggest.ActionFoodMode:
		return e.switchMode(camera.ModeFood)

	case suggest.ActionGridOn:
		// Already on counts as done.
		if e.controls.IsGridEnabled() {
			return true
		}
		e.controls.ToggleGrid()
		return e.controls.IsGridEnabled()
	case suggest.ActionStabilization:
		if e.controls.IsStabilizationEnabled() {
			return true
		}
		e.controls.ToggleStabilization()
		return e.controls.IsStabilizationEnabled()

	case suggest.ActionFilterWarm:
		return e.controls.ApplyFilter("warm")
	case suggest.ActionFilterCool:
		return e.controls.ApplyFilter("cool")
	case suggest.ActionFilterVivid:
		return e.controls.ApplyFilter("vivid")
	case suggest.ActionFilterMono:
		return e.controls.ApplyFilter("mono")

	case suggest.ActionRatio16x9:
		return e.controls.SetAspectRatio(camera.Ratio16x9)
	case suggest.ActionRatio4x3:
		return e.controls.SetAspectRatio(camera.Ratio4x3)
	case suggest.ActionRatio1x1:
		return e.controls.SetAspectRatio(camera.Ratio1x1)
	case suggest.ActionRatioFull:
		return e.controls.SetAspectRatio(camera.RatioFull)

	case suggest.ActionHoldSteady, suggest.ActionMoveCloser, suggest.ActionMoveBack:
		// Guidance is for the user, not the camera. Surfacing it is
		// the whole job.
		e.logger.Info("user guidance", "title", s.Title, "action", string(s.Action))
		return true
	}

	e.logger.Warn("unmapped action", "action", string(s.Action), "title", s.Title)
	return false
}

// switchMode changes mode and confirms the camera actually landed
// there. Some devices silently refuse modes they lack.
func (e *Executor) switchMode(mode camera.Mode) bool {
	if e.controls.GetMode() == mode {
		return true
	}
	e.controls.SwitchMode(mode)
	return e.controls.GetMode() == mode
}
