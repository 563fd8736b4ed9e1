package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. Until set it follows the wall clock.
type Time struct {
	mu      sync.Mutex
	current time.Time
	frozen  bool
}

func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime freezes the clock at currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime.UTC()
	t.frozen = true
}

// Advance moves a frozen clock forward.
func (t *Time) Advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.frozen {
		t.current = time.Now().UTC()
		t.frozen = true
	}
	t.current = t.current.Add(d)
}

// Reset returns the clock to wall time.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = false
}

func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frozen {
		return t.current
	}
	return time.Now().UTC()
}
