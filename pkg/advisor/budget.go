package advisor

import (
	"sync"
	"time"
)

// DefaultMaxDailyCalls is the free-tier friendly daily call budget.
const DefaultMaxDailyCalls = 40

// Budget enforces a per-calendar-day cap on remote calls. The counter
// resets when the local date changes, not on a rolling 24h window.
// Safe for concurrent use.
type Budget struct {
	mu   sync.Mutex
	max  int
	used int
	day  string
	now  func() time.Time
}

// NewBudget creates a budget allowing max calls per day. A max of zero
// or less uses DefaultMaxDailyCalls.
func NewBudget(max int) *Budget {
	if max <= 0 {
		max = DefaultMaxDailyCalls
	}
	return &Budget{max: max, now: time.Now}
}

// Take consumes one call from today's budget. It returns false, without
// consuming anything, when the budget is spent.
func (b *Budget) Take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	if b.used >= b.max {
		return false
	}
	b.used++
	return true
}

// Remaining reports how many calls are left today.
func (b *Budget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	return b.max - b.used
}

// Used reports how many calls were consumed today.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollover()
	return b.used
}

func (b *Budget) rollover() {
	today := b.now().Format("2006-01-02")
	if today != b.day {
		b.day = today
		b.used = 0
	}
}
