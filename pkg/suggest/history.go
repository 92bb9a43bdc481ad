package suggest

import (
	"strings"
	"sync"
)

// historyCap bounds remembered suggestion titles; oldest entries are
// evicted first.
const historyCap = 50

// History remembers recently surfaced suggestion titles so the engine
// can avoid repeating advice within a session. Safe for concurrent use.
type History struct {
	mu     sync.Mutex
	titles []string
	seen   map[string]int
}

func NewHistory() *History {
	return &History{seen: make(map[string]int)}
}

// Remember records a title. Duplicate titles bump their count instead
// of consuming another slot.
func (h *History) Remember(title string) {
	key := normalizeTitle(title)
	if key == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seen[key] == 0 {
		if len(h.titles) >= historyCap {
			evict := h.titles[0]
			h.titles = h.titles[1:]
			delete(h.seen, evict)
		}
		h.titles = append(h.titles, key)
	}
	h.seen[key]++
}

// Contains reports whether a title was surfaced before.
func (h *History) Contains(title string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seen[normalizeTitle(title)] > 0
}

// Len returns the number of distinct remembered titles.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.titles)
}

// Reset clears the history, typically when the shooting session ends.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.titles = nil
	h.seen = make(map[string]int)
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
