package advisor

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	"strings"
	"testing"
	"time"

	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
	"github.com/lenslab/go-lenscoach/pkg/scene"
	"github.com/lenslab/go-lenscoach/pkg/suggest"
)

func decodeConfig(data []byte) (image.Config, string, error) {
	return image.DecodeConfig(bytes.NewReader(data))
}

func testState() camera.State {
	return camera.State{Mode: camera.ModePhoto, Flash: camera.FlashOff, Zoom: 1.0}
}

func jsonReply(t *testing.T) string {
	t.Helper()
	return `Here you go:
{"suggestions":[
  {"title":"Turn on Flash","description":"Too dark.","action":"FLASH_ON","priority":1},
  {"title":"Hold Steady","description":"Shaky.","action":"HOLD_STEADY","priority":2}
]}
Hope that helps!`
}

func TestGatewayThrottle(t *testing.T) {
	mock := &MockTransport{GenerateFunc: func(ctx context.Context, prompt string, jpeg []byte) (string, error) {
		return jsonReply(t), nil
	}}

	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clock := base
	g := NewGateway(mock, WithMinInterval(3*time.Second))
	g.now = func() time.Time { return clock }

	if _, err := g.RequestSuggestions(context.Background(), testState(), scene.LabelGeneral, nil, nil); err != nil {
		t.Fatalf("first call: %v", err)
	}

	clock = base.Add(1 * time.Second)
	if _, err := g.RequestSuggestions(context.Background(), testState(), scene.LabelGeneral, nil, nil); !errors.Is(err, ErrThrottled) {
		t.Errorf("1s later: err = %v, want ErrThrottled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("throttled request reached transport: %d calls", mock.CallCount())
	}

	clock = base.Add(3 * time.Second)
	if _, err := g.RequestSuggestions(context.Background(), testState(), scene.LabelGeneral, nil, nil); err != nil {
		t.Errorf("3s later: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("transport calls = %d, want 2", mock.CallCount())
	}
}

func TestGatewayQuota(t *testing.T) {
	mock := &MockTransport{GenerateFunc: func(ctx context.Context, prompt string, jpeg []byte) (string, error) {
		return jsonReply(t), nil
	}}

	day1 := time.Date(2026, 8, 28, 23, 50, 0, 0, time.UTC)
	clock := day1
	budget := NewBudget(2)
	budget.now = func() time.Time { return clock }

	g := NewGateway(mock, WithMinInterval(0), WithBudget(budget))
	g.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		clock = clock.Add(time.Minute)
		if _, err := g.RequestSuggestions(context.Background(), testState(), scene.LabelGeneral, nil, nil); err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
	}

	clock = clock.Add(time.Minute)
	if _, err := g.RequestSuggestions(context.Background(), testState(), scene.LabelGeneral, nil, nil); !errors.Is(err, ErrQuotaExhausted) {
		t.Errorf("over budget: err = %v, want ErrQuotaExhausted", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("exhausted request reached transport: %d calls", mock.CallCount())
	}

	// Crossing midnight resets the calendar-day budget.
	clock = time.Date(2026, 8, 29, 0, 5, 0, 0, time.UTC)
	if _, err := g.RequestSuggestions(context.Background(), testState(), scene.LabelGeneral, nil, nil); err != nil {
		t.Errorf("after midnight: %v", err)
	}
}

func TestGatewayTransportErrorConsumesBudget(t *testing.T) {
	mock := &MockTransport{GenerateFunc: func(ctx context.Context, prompt string, jpeg []byte) (string, error) {
		return "", &APIError{StatusCode: 500, Message: "boom"}
	}}
	budget := NewBudget(5)
	g := NewGateway(mock, WithMinInterval(0), WithBudget(budget))

	_, err := g.RequestSuggestions(context.Background(), testState(), scene.LabelGeneral, nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsServerError() {
		t.Fatalf("err = %v, want server APIError", err)
	}
	if budget.Used() != 1 {
		t.Errorf("budget used = %d, want 1", budget.Used())
	}
}

func TestBudgetRollover(t *testing.T) {
	clock := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	b := NewBudget(3)
	b.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		if !b.Take() {
			t.Fatalf("take %d refused", i+1)
		}
	}
	if b.Take() {
		t.Error("take beyond budget succeeded")
	}
	if b.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", b.Remaining())
	}

	clock = clock.Add(24 * time.Hour)
	if b.Remaining() != 3 {
		t.Errorf("remaining after rollover = %d, want 3", b.Remaining())
	}
	if !b.Take() {
		t.Error("take after rollover refused")
	}
}

func TestParseResponseJSON(t *testing.T) {
	got := ParseResponse(jsonReply(t))
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].Title != "Turn on Flash" || got[0].Action != suggest.ActionFlashOn || got[0].Priority != 1 {
		t.Errorf("first suggestion = %+v", got[0])
	}
	if got[1].Action != suggest.ActionHoldSteady {
		t.Errorf("second action = %q", got[1].Action)
	}
}

func TestParseResponseUnknownAction(t *testing.T) {
	raw := `{"suggestions":[{"title":"Something","description":"x","action":"DO_A_FLIP","priority":1}]}`
	got := ParseResponse(raw)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Action != suggest.ActionHoldSteady {
		t.Errorf("unknown action mapped to %q, want %q", got[0].Action, suggest.ActionHoldSteady)
	}
}

func TestParseResponseCap(t *testing.T) {
	raw := `{"suggestions":[
		{"title":"A","action":"FLASH_ON"},{"title":"B","action":"ZOOM_IN"},
		{"title":"C","action":"GRID_ON"},{"title":"D","action":"MOVE_BACK"},
		{"title":"E","action":"FLASH_OFF"},{"title":"F","action":"ZOOM_OUT"}]}`
	got := ParseResponse(raw)
	if len(got) != maxRemoteSuggestions {
		t.Errorf("got %d suggestions, want cap %d", len(got), maxRemoteSuggestions)
	}
}

func TestParseResponseFreeText(t *testing.T) {
	got := ParseResponse("Try turning on the flash and zoom in a bit on your subject. Also get closer.")
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].Action != suggest.ActionFlashOn || got[1].Action != suggest.ActionZoomIn {
		t.Errorf("free-text actions = %q, %q", got[0].Action, got[1].Action)
	}
}

func TestParseResponseGarbage(t *testing.T) {
	if got := ParseResponse("I cannot help with that."); len(got) != 0 {
		t.Errorf("got %d suggestions from unusable reply, want 0", len(got))
	}
}

func TestBuildPromptMentionsConditions(t *testing.T) {
	a := analyzer.DefaultAnalysis()
	a.Brightness = 42
	a.Underexposed = true
	a.FaceCount = 2
	a.Success = true

	state := testState()
	state.Zoom = 2.0
	prompt := BuildPrompt(state, scene.LabelLowLight, &a)

	for _, want := range []string{"Low-light scene", "2.0x zoom", "underexposed", "Faces detected: 2", "FLASH_ON", "suggestions"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestEncodeFrameDownscales(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	data, err := EncodeFrame(big)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	cfg, _, err := decodeConfig(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width > maxUploadWidth || cfg.Height > maxUploadHeight {
		t.Errorf("encoded %dx%d, want within %dx%d", cfg.Width, cfg.Height, maxUploadWidth, maxUploadHeight)
	}

	// Small frames pass through without upscaling.
	small := image.NewRGBA(image.Rect(0, 0, 320, 240))
	data, err = EncodeFrame(small)
	if err != nil {
		t.Fatalf("encode small: %v", err)
	}
	cfg, _, err = decodeConfig(data)
	if err != nil {
		t.Fatalf("decode small: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("small frame resized to %dx%d", cfg.Width, cfg.Height)
	}

	if data, err := EncodeFrame(nil); err != nil || data != nil {
		t.Errorf("nil frame: data=%v err=%v", data, err)
	}
}
