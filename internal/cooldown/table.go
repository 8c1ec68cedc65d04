// Package cooldown provides per-user fixed-window command cooldowns
package cooldown

import (
	"sync"
	"time"
)

// DefaultWindow between allowed invocations of one user
const DefaultWindow = 30 * time.Second

// Decision of single cooldown check
type Decision struct {
	Allowed bool
	// Remaining whole seconds until user may invoke again, zero when allowed
	Remaining int
}

// Table tracks last allowed invocation per user for one command family
type Table struct {
	last   map[string]time.Time
	mu     sync.Mutex
	window time.Duration
}

// New returns table with given window, non-positive window uses DefaultWindow
func New(window time.Duration) *Table {
	if window <= 0 {
		window = DefaultWindow
	}

	return &Table{
		last:   make(map[string]time.Time),
		window: window,
	}
}

// Window returns configured cooldown window
func (t *Table) Window() time.Duration {
	return t.window
}

// CheckAndRecord allows invocation if user has no record or window has passed since last allowed one,
// recording now in that case. Denied checks leave the table untouched.
func (t *Table) CheckAndRecord(userID string, now time.Time) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.last[userID]
	if ok {
		elapsed := now.Sub(last)
		if elapsed < 0 {
			elapsed = 0
		}

		if elapsed < t.window {
			return Decision{
				Remaining: int((t.window - elapsed.Truncate(time.Second)) / time.Second),
			}
		}
	}

	t.last[userID] = now

	return Decision{Allowed: true}
}

// Prune drops entries whose window has passed at now
func (t *Table) Prune(now time.Time) (pruned int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, last := range t.last {
		if now.Sub(last) >= t.window {
			delete(t.last, id)

			pruned++
		}
	}

	return pruned
}

// Len returns number of tracked users
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.last)
}
