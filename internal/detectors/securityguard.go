package detectors

import (
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/window"
)

// SecurityGuard tracks destructive channel/role operations per executor.
// The engine attributes each deletion through the audit log and feeds
// the executor here; two deletions inside the window ban the executor.
// Creations by untrusted executors are zero-tolerance and bypass the
// window entirely, so only deletions are tracked.
type SecurityGuard struct {
	deletions *window.Tracker
	threshold int
}

func NewSecurityGuard(threshold int, windowSize time.Duration) *SecurityGuard {
	return &SecurityGuard{
		deletions: window.NewTracker(windowSize),
		threshold: threshold,
	}
}

// RecordDeletion counts a destructive op for the executor and reports
// whether the ban threshold was reached. The window resets on trigger —
// the ban is the governing action for the key.
func (g *SecurityGuard) RecordDeletion(guildID, executorID string, now time.Time) bool {
	key := guildID + ":" + executorID
	count := g.deletions.Record(key, now)
	if count < g.threshold {
		return false
	}
	g.deletions.Reset(key)
	return true
}

// Sweep drops executor keys whose entries have all expired.
func (g *SecurityGuard) Sweep(now time.Time) { g.deletions.Sweep(now) }
