package advisor

import (
	"context"
	"sync"
)

// MockTransport implements Transport for testing. Override GenerateFunc
// to control replies; calls are recorded.
type MockTransport struct {
	GenerateFunc func(ctx context.Context, prompt string, jpeg []byte) (string, error)

	mu    sync.Mutex
	calls []string
}

var _ Transport = (*MockTransport)(nil)

func (m *MockTransport) Generate(ctx context.Context, prompt string, jpeg []byte) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, jpeg)
	}
	return "", nil
}

// CallCount returns how many times Generate was invoked.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastPrompt returns the most recent prompt, or "" when none.
func (m *MockTransport) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1]
}
