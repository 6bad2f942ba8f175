package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordCountsWithinWindow(t *testing.T) {
	tr := NewTracker(5 * time.Second)
	base := time.Unix(1000, 0)

	for i := 0; i < 5; i++ {
		tr.Record("u1", base.Add(time.Duration(i)*time.Second))
	}

	// t=5 with a 5s window: t=0 sits exactly on the boundary and is
	// still counted.
	assert.Equal(t, 6, tr.Record("u1", base.Add(5*time.Second)))

	// Half a second later t=0 is strictly older than the window and
	// falls out (t=1..5 plus the new event remain).
	assert.Equal(t, 7, tr.Record("u1", base.Add(5500*time.Millisecond)))
}

func TestRecordExpiresOldEntries(t *testing.T) {
	tr := NewTracker(5 * time.Second)
	base := time.Unix(1000, 0)

	tr.Record("u1", base)
	tr.Record("u1", base.Add(time.Second))

	assert.Equal(t, 1, tr.Record("u1", base.Add(20*time.Second)))
}

func TestKeysAreIndependent(t *testing.T) {
	tr := NewTracker(10 * time.Second)
	now := time.Unix(1000, 0)

	tr.Record("g1:a", now)
	tr.Record("g1:a", now)
	assert.Equal(t, 1, tr.Record("g2:a", now))
}

func TestReset(t *testing.T) {
	tr := NewTracker(10 * time.Second)
	now := time.Unix(1000, 0)

	tr.Record("u1", now)
	tr.Record("u1", now)
	tr.Reset("u1")

	assert.Equal(t, 1, tr.Record("u1", now))
}

func TestSweepDropsEmptyKeys(t *testing.T) {
	tr := NewTracker(time.Second)
	now := time.Unix(1000, 0)

	tr.Record("u1", now)
	tr.Record("u2", now.Add(10*time.Second))
	tr.Sweep(now.Add(10 * time.Second))

	tr.mu.Lock()
	defer tr.mu.Unlock()
	assert.NotContains(t, tr.events, "u1")
	assert.Contains(t, tr.events, "u2")
}

func TestCountDoesNotRecord(t *testing.T) {
	tr := NewTracker(time.Minute)
	now := time.Unix(1000, 0)

	tr.Record("u1", now)
	assert.Equal(t, 1, tr.Count("u1", now))
	assert.Equal(t, 1, tr.Count("u1", now))
}
