package advisor

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/scene"
	"github.com/lenslab/go-lenscoach/pkg/suggest"
)

// DefaultMinInterval is the minimum spacing between remote calls.
const DefaultMinInterval = 3 * time.Second

// Gateway fronts the remote advisor: it throttles, enforces the daily
// budget, downscales the frame, and parses the reply. Throttle and
// quota refusals are reported as ErrThrottled and ErrQuotaExhausted
// without touching the transport; the caller decides what to show
// instead.
type Gateway struct {
	transport   Transport
	budget      *Budget
	minInterval time.Duration
	logger      *slog.Logger

	mu       sync.Mutex
	lastCall time.Time
	now      func() time.Time
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMinInterval overrides the request spacing floor.
func WithMinInterval(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.minInterval = d }
}

// WithBudget replaces the daily budget.
func WithBudget(b *Budget) GatewayOption {
	return func(g *Gateway) { g.budget = b }
}

// NewGateway creates a gateway over the given transport.
func NewGateway(transport Transport, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		transport:   transport,
		budget:      NewBudget(DefaultMaxDailyCalls),
		minInterval: DefaultMinInterval,
		logger:      slog.Default().With("component", "advisor"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Remaining reports how many remote calls are left today.
func (g *Gateway) Remaining() int { return g.budget.Remaining() }

// RequestSuggestions asks the remote advisor to critique the current
// frame. It returns ErrThrottled when called sooner than the minimum
// interval after the previous attempt, and ErrQuotaExhausted when the
// daily budget is spent. Both refusals are cheap and leave the budget
// untouched.
func (g *Gateway) RequestSuggestions(ctx context.Context, state camera.State, label scene.Label, analysis *analyzer.FrameAnalysis, frame image.Image) ([]suggest.Suggestion, error) {
	g.mu.Lock()
	if !g.lastCall.IsZero() && g.now().Sub(g.lastCall) < g.minInterval {
		g.mu.Unlock()
		return nil, ErrThrottled
	}
	if !g.budget.Take() {
		g.mu.Unlock()
		return nil, ErrQuotaExhausted
	}
	g.lastCall = g.now()
	g.mu.Unlock()

	jpeg, err := EncodeFrame(frame)
	if err != nil {
		g.logger.Warn("frame encode failed, sending text-only prompt", "error", err)
		jpeg = nil
	}

	prompt := BuildPrompt(state, label, analysis)
	raw, err := g.transport.Generate(ctx, prompt, jpeg)
	if err != nil {
		g.logger.Error("remote advisor call failed", "error", err, "remaining", g.budget.Remaining())
		return nil, err
	}

	suggestions := ParseResponse(raw)
	g.logger.Info("remote advisor responded",
		"suggestions", len(suggestions),
		"remaining", g.budget.Remaining())
	return suggestions, nil
}
