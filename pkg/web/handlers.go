package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lenslab/go-lenscoach/pkg/hub"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleSnapshot returns the full latest cycle result.
func (s *Server) handleSnapshot(c *fiber.Ctx) error {
	return c.JSON(s.coach.Current())
}

// handleSuggestions returns the latest suggestion list.
func (s *Server) handleSuggestions(c *fiber.Ctx) error {
	snap := s.coach.Current()
	return c.JSON(fiber.Map{
		"seq":         snap.Seq,
		"scene":       snap.Scene,
		"suggestions": snap.Suggestions,
	})
}

// handleState returns the camera state of the latest cycle.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.coach.Current().State)
}

// handleScene returns the scene label and frame analysis.
func (s *Server) handleScene(c *fiber.Ctx) error {
	snap := s.coach.Current()
	return c.JSON(fiber.Map{
		"scene":    snap.Scene,
		"analysis": snap.Analysis,
	})
}

// handleReport returns the result of the most recent apply.
func (s *Server) handleReport(c *fiber.Ctx) error {
	report := s.coach.LastReport()
	return c.JSON(fiber.Map{
		"applied": report.Applied,
		"failed":  report.Failed,
		"summary": report.Summary(),
	})
}

// handleApply applies the current suggestions to the camera.
func (s *Server) handleApply(c *fiber.Ctx) error {
	report := s.coach.ApplyCurrent()
	return c.JSON(fiber.Map{
		"applied": report.Applied,
		"failed":  report.Failed,
		"summary": report.Summary(),
	})
}

// handleRefresh requests an immediate analysis cycle.
func (s *Server) handleRefresh(c *fiber.Ctx) error {
	s.coach.Refresh()
	return c.JSON(fiber.Map{"status": "refresh requested"})
}

// handleSessionReset clears suggestion history for a new session.
func (s *Server) handleSessionReset(c *fiber.Ctx) error {
	s.coach.ResetSession()
	return c.JSON(fiber.Map{"status": "session reset"})
}

// handleSuggestionsWS streams cycle snapshots.
func (s *Server) handleSuggestionsWS(conn *websocket.Conn) {
	hub.NewClient(s.snapshotHub, conn).Run()
}

// handlePreviewWS streams JPEG preview frames.
func (s *Server) handlePreviewWS(conn *websocket.Conn) {
	hub.NewClient(s.previewHub, conn).Run()
}
