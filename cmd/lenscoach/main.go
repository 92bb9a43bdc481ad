// LensCoach - real-time photography coaching core.
// Analyzes camera preview frames, synthesizes shooting suggestions
// locally, and consults a remote vision model within a daily budget.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lenslab/go-lenscoach/internal/config"
	"github.com/lenslab/go-lenscoach/internal/log"
	"github.com/lenslab/go-lenscoach/pkg/advisor"
	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/coach"
	"github.com/lenslab/go-lenscoach/pkg/vision"
	"github.com/lenslab/go-lenscoach/pkg/web"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to YAML config file")
	device := flag.Int("camera", -1, "Capture device ID (-1 = simulated camera)")
	faceModel := flag.String("face-model", os.Getenv("FACE_MODEL_PATH"), "Path to YuNet ONNX face model")
	port := flag.String("port", "", "Dashboard port (overrides config)")
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Init("info")
			slog.Error("config load failed", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	log.Init(cfg.LogLevel)

	webPort := config.WebPort(cfg.WebPort)
	if *port != "" {
		webPort = *port
	}

	toolkit, err := vision.NewGoCV(vision.GoCVConfig{FaceModelPath: *faceModel})
	if err != nil {
		slog.Error("vision toolkit init failed", "error", err)
		os.Exit(1)
	}
	defer toolkit.Close()

	controls := camera.NewSim()
	if *device >= 0 {
		webcam, err := camera.OpenWebcam(*device)
		if err != nil {
			slog.Error("webcam open failed", "device", *device, "error", err)
			os.Exit(1)
		}
		defer webcam.Close()
		controls.Frames = webcam.Frame
		slog.Info("using capture device", "device", *device)
	} else {
		slog.Info("using simulated camera, no frames available")
	}

	opts := []coach.Option{coach.WithInterval(cfg.CycleInterval)}
	if key := config.APIKey(); key != "" {
		gateway := advisor.NewGateway(
			advisor.NewGemini(key, cfg.Advisor.Model),
			advisor.WithMinInterval(cfg.Advisor.MinInterval),
			advisor.WithBudget(advisor.NewBudget(cfg.Advisor.MaxDailyCalls)),
		)
		opts = append(opts, coach.WithAdvisor(gateway))
		slog.Info("remote advisor enabled",
			"model", cfg.Advisor.Model,
			"daily_budget", cfg.Advisor.MaxDailyCalls)
	} else {
		slog.Warn("GEMINI_API_KEY not set, running with local rules only")
	}

	c := coach.New(controls, analyzer.New(toolkit), opts...)

	server := web.NewServer(webPort, c)
	c.SetOnSnapshot(func(snap coach.Snapshot) {
		server.PublishSnapshot(snap)
		if frame := controls.CapturePreviewFrame(); frame != nil {
			if jpeg, err := advisor.EncodeFrame(frame); err == nil {
				server.PublishPreview(jpeg)
			}
		}
	})

	server.StartAsync()
	defer server.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c.Run(ctx)
}
