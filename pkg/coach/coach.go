// Package coach runs the periodic analyze-suggest loop that ties the
// camera, frame analyzer, suggestion engine, and remote advisor
// together.
package coach

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lenslab/go-lenscoach/pkg/advisor"
	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/executor"
	"github.com/lenslab/go-lenscoach/pkg/scene"
	"github.com/lenslab/go-lenscoach/pkg/suggest"
)

// DefaultInterval is the spacing between analysis cycles.
const DefaultInterval = 3 * time.Second

// brightnessChange is how far mean brightness must move between cycles
// before the scene counts as changed for remote-advisor purposes.
const brightnessChange = 40.0

// Advisor is the remote suggestion source. *advisor.Gateway implements
// it; a nil Advisor keeps the coach fully local.
type Advisor interface {
	RequestSuggestions(ctx context.Context, state camera.State, label scene.Label, analysis *analyzer.FrameAnalysis, frame image.Image) ([]suggest.Suggestion, error)
}

var _ Advisor = (*advisor.Gateway)(nil)

// Snapshot is the published result of one analysis cycle.
type Snapshot struct {
	Seq         uint64                 `json:"seq"`
	TraceID     string                 `json:"trace_id"`
	State       camera.State           `json:"state"`
	Scene       scene.Label            `json:"scene"`
	Analysis    analyzer.FrameAnalysis `json:"analysis"`
	Suggestions []suggest.Suggestion   `json:"suggestions"`
	RemoteUsed  bool                   `json:"remote_used"`
	At          time.Time              `json:"at"`
}

// Option configures a Coach.
type Option func(*Coach)

// WithInterval overrides the cycle interval.
func WithInterval(d time.Duration) Option {
	return func(c *Coach) { c.interval = d }
}

// WithAdvisor attaches a remote advisor.
func WithAdvisor(a Advisor) Option {
	return func(c *Coach) { c.advisor = a }
}

// WithOnSnapshot registers a callback invoked after every published
// cycle. The callback runs on the coach goroutine; keep it fast.
func WithOnSnapshot(fn func(Snapshot)) Option {
	return func(c *Coach) { c.onSnapshot = fn }
}

// Coach owns the periodic cycle. Start it with Run; poke it with
// Refresh. All published state is read through Current.
type Coach struct {
	controls   camera.Controls
	analyzer   *analyzer.Analyzer
	engine     *suggest.Engine
	executor   *executor.Executor
	advisor    Advisor
	interval   time.Duration
	onSnapshot func(Snapshot)
	logger     *slog.Logger

	refresh chan struct{}
	seq     atomic.Uint64

	mu         sync.Mutex
	inFlight   bool
	current    Snapshot
	hasPrev    bool
	lastReport executor.Report
}

// New creates a coach over the given camera and analyzer.
func New(controls camera.Controls, frameAnalyzer *analyzer.Analyzer, opts ...Option) *Coach {
	c := &Coach{
		controls: controls,
		analyzer: frameAnalyzer,
		engine:   suggest.NewEngine(),
		executor: executor.New(controls),
		interval: DefaultInterval,
		logger:   slog.Default().With("component", "coach"),
		refresh:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes cycles until ctx is cancelled. The first cycle fires
// immediately.
func (c *Coach) Run(ctx context.Context) {
	c.logger.Info("coach started", "interval", c.interval)
	c.cycle(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("coach stopped")
			return
		case <-ticker.C:
			c.cycle(ctx)
		case <-c.refresh:
			c.cycle(ctx)
		}
	}
}

// SetOnSnapshot replaces the snapshot callback. Call before Run.
func (c *Coach) SetOnSnapshot(fn func(Snapshot)) {
	c.onSnapshot = fn
}

// Refresh requests an immediate cycle. It never blocks; when a refresh
// is already pending the request coalesces.
func (c *Coach) Refresh() {
	select {
	case c.refresh <- struct{}{}:
	default:
	}
}

// Current returns the latest published snapshot. The zero Snapshot
// means no cycle has completed yet.
func (c *Coach) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Suggestions returns the latest suggestion list.
func (c *Coach) Suggestions() []suggest.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]suggest.Suggestion, len(c.current.Suggestions))
	copy(out, c.current.Suggestions)
	return out
}

// ApplyCurrent applies the latest suggestions to the camera and
// triggers a refresh so the next snapshot reflects the new state.
func (c *Coach) ApplyCurrent() executor.Report {
	report := c.executor.Apply(c.Suggestions())
	c.mu.Lock()
	c.lastReport = report
	c.mu.Unlock()
	c.Refresh()
	return report
}

// LastReport returns the report of the most recent ApplyCurrent call.
func (c *Coach) LastReport() executor.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReport
}

// ResetSession clears suggestion history, typically when a new shooting
// session starts.
func (c *Coach) ResetSession() {
	c.engine.History().Reset()
	c.mu.Lock()
	c.hasPrev = false
	c.mu.Unlock()
}

// cycle runs one analyze-suggest pass. Overlapping cycles are skipped
// rather than queued, and a cycle that finishes after a newer one
// discards its result.
func (c *Coach) cycle(ctx context.Context) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.logger.Debug("cycle already in flight, skipping")
		return
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	seq := c.seq.Add(1)
	traceID := uuid.NewString()
	logger := c.logger.With("trace_id", traceID, "seq", seq)

	frame := c.controls.CapturePreviewFrame()
	state := c.controls.GetState()

	var analysis analyzer.FrameAnalysis
	switch state.Mode {
	case camera.ModeMacro:
		analysis = c.analyzer.AnalyzeMacro(frame)
	case camera.ModeFood:
		analysis = c.analyzer.AnalyzeFood(frame)
	default:
		analysis = c.analyzer.Analyze(frame)
	}
	label := scene.Classify(state, &analysis)
	logger.Debug("frame analyzed", "scene", string(label), "success", analysis.Success)

	var remote []suggest.Suggestion
	remoteUsed := false
	if c.advisor != nil && c.sceneChanged(state, analysis) {
		// A nil frame downgrades the gateway request to text-only.
		result, err := c.advisor.RequestSuggestions(ctx, state, label, &analysis, frame)
		switch {
		case err == nil:
			remote = result
			remoteUsed = true
		case errors.Is(err, advisor.ErrThrottled):
			logger.Debug("remote advisor throttled")
		case errors.Is(err, advisor.ErrQuotaExhausted):
			logger.Warn("remote advisor quota exhausted")
		default:
			logger.Error("remote advisor failed", "error", err)
		}
	}

	suggestions := c.engine.Generate(state, label, &analysis, remote)
	if len(suggestions) == 0 {
		suggestions = c.engine.Fallback(state)
	}

	snap := Snapshot{
		Seq:         seq,
		TraceID:     traceID,
		State:       state,
		Scene:       label,
		Analysis:    analysis,
		Suggestions: suggestions,
		RemoteUsed:  remoteUsed,
		At:          time.Now(),
	}

	c.mu.Lock()
	if snap.Seq < c.current.Seq {
		c.mu.Unlock()
		logger.Debug("stale cycle result discarded")
		return
	}
	c.current = snap
	c.hasPrev = true
	c.mu.Unlock()

	logger.Info("cycle complete",
		"scene", string(label),
		"suggestions", len(suggestions),
		"remote", remoteUsed)
	if c.onSnapshot != nil {
		c.onSnapshot(snap)
	}
}

// sceneChanged reports whether the scene moved enough since the last
// remote call to justify another one. Redundant calls burn quota on
// near-identical frames.
func (c *Coach) sceneChanged(state camera.State, analysis analyzer.FrameAnalysis) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasPrev {
		return true
	}
	prev := c.current
	if state != prev.State {
		return true
	}
	if math.Abs(analysis.Brightness-prev.Analysis.Brightness) > brightnessChange {
		return true
	}
	if analysis.FaceCount != prev.Analysis.FaceCount {
		return true
	}
	if analysis.MotionBlur != prev.Analysis.MotionBlur {
		return true
	}
	return false
}
