package metrics

import (
	"sync"
	"time"
)

// ThroughputTracker derives a terms-per-second rate from fractional progress
// updates. The TUI polls it between frames; the orchestrator feeds it from
// the progress channel. Safe for concurrent use.
type ThroughputTracker struct {
	mu         sync.Mutex
	totalTerms uint64
	start      time.Time
	lastFrac   float64
	lastUpdate time.Time
}

// NewThroughputTracker creates a tracker for a run over totalTerms terms.
func NewThroughputTracker(totalTerms uint64) *ThroughputTracker {
	now := time.Now()
	return &ThroughputTracker{
		totalTerms: totalTerms,
		start:      now,
		lastUpdate: now,
	}
}

// Observe records a fractional progress value in [0, 1].
func (t *ThroughputTracker) Observe(frac float64) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if frac > t.lastFrac {
		t.lastFrac = frac
	}
	t.lastUpdate = time.Now()
}

// Rate returns the average terms-per-second rate since the tracker was
// created. Returns 0 before any progress has been observed.
func (t *ThroughputTracker) Rate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.lastUpdate.Sub(t.start).Seconds()
	if elapsed <= 0 || t.lastFrac <= 0 {
		return 0
	}
	return t.lastFrac * float64(t.totalTerms) / elapsed
}

// Processed returns the estimated number of terms accumulated so far.
func (t *ThroughputTracker) Processed() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return uint64(t.lastFrac * float64(t.totalTerms))
}
