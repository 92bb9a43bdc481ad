// Package web provides the HTTP and websocket surface of the coaching
// core: live suggestions, camera state, and manual apply/refresh
// controls.
package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/lenslab/go-lenscoach/pkg/coach"
	"github.com/lenslab/go-lenscoach/pkg/hub"
)

// Server exposes the coaching loop over HTTP and websockets.
type Server struct {
	app    *fiber.App
	port   string
	coach  *coach.Coach
	logger *slog.Logger

	snapshotHub *hub.Hub
	previewHub  *hub.Hub
}

// NewServer creates the web server over a running coach.
func NewServer(port string, c *coach.Coach) *Server {
	s := &Server{
		port:        port,
		coach:       c,
		logger:      slog.Default().With("component", "web"),
		snapshotHub: hub.New("snapshots"),
		previewHub:  hub.New("preview"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "LensCoach",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/snapshot", s.handleSnapshot)
	api.Get("/suggestions", s.handleSuggestions)
	api.Get("/state", s.handleState)
	api.Get("/scene", s.handleScene)
	api.Get("/report", s.handleReport)
	api.Post("/apply", s.handleApply)
	api.Post("/refresh", s.handleRefresh)
	api.Post("/session/reset", s.handleSessionReset)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/suggestions", websocket.New(s.handleSuggestionsWS))
	app.Get("/ws/preview", websocket.New(s.handlePreviewWS))

	s.app = app
	return s
}

// Start runs the server. It blocks until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("web server listening", "port", s.port)

	go s.snapshotHub.Run()
	go s.previewHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("web server stopped", "error", err)
		}
	}()
}

// PublishSnapshot broadcasts a cycle result to websocket clients. Wire
// it to the coach's snapshot callback.
func (s *Server) PublishSnapshot(snap coach.Snapshot) {
	if err := s.snapshotHub.BroadcastJSON(snap); err != nil {
		s.logger.Warn("snapshot broadcast failed", "error", err)
	}
}

// PublishPreview broadcasts an encoded JPEG preview frame.
func (s *Server) PublishPreview(jpeg []byte) {
	if len(jpeg) == 0 {
		return
	}
	s.previewHub.BroadcastBinary(jpeg)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
