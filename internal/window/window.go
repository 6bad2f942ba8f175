// Package window implements the sliding-window event counter that backs
// the burst detectors (spam, raids, repeated deletions).
package window

import (
	"sync"
	"time"
)

// Tracker counts events per key inside a sliding time window. Entries
// strictly older than window fall out on every Record; an entry exactly
// window old is still counted. State is in-memory only and lost on
// restart, which is acceptable for short-horizon burst detection.
//
// The per-guild dispatcher serializes mutations for any one key; the
// internal mutex only exists because one Tracker instance is shared by
// keys belonging to different guilds.
type Tracker struct {
	mu     sync.Mutex
	window time.Duration
	events map[string][]time.Time
}

func NewTracker(window time.Duration) *Tracker {
	return &Tracker{
		window: window,
		events: make(map[string][]time.Time),
	}
}

// Record appends now to the key's sequence, prunes expired entries and
// returns the resulting count.
func (t *Tracker) Record(key string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	seq := append(t.events[key], now)
	seq = prune(seq, now.Add(-t.window))
	t.events[key] = seq
	return len(seq)
}

// Count returns the current in-window count without recording an event.
func (t *Tracker) Count(key string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	seq := prune(t.events[key], now.Add(-t.window))
	if len(seq) == 0 {
		delete(t.events, key)
	} else {
		t.events[key] = seq
	}
	return len(seq)
}

// Reset drops all state for a key. Detectors call this after the key's
// governing action fires so the same burst cannot trigger twice.
func (t *Tracker) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.events, key)
}

// Sweep garbage-collects keys whose entries have all expired.
func (t *Tracker) Sweep(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-t.window)
	for key, seq := range t.events {
		seq = prune(seq, cutoff)
		if len(seq) == 0 {
			delete(t.events, key)
		} else {
			t.events[key] = seq
		}
	}
}

// prune drops timestamps strictly before cutoff. Sequences are
// append-ordered, so the first retained index bounds the rest.
func prune(seq []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(seq) && seq[i].Before(cutoff) {
		i++
	}
	return seq[i:]
}
