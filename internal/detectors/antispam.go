// Package detectors holds the burst and content detectors. Each one
// consumes normalized events on the owning guild's queue and emits
// remediation intents for the engine to execute.
package detectors

import (
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/window"
)

// AntiSpam times out members who exceed the message burst threshold.
type AntiSpam struct {
	windows   *window.Tracker
	threshold int
	timeout   time.Duration
}

func NewAntiSpam(threshold int, windowSize, timeout time.Duration) *AntiSpam {
	return &AntiSpam{
		windows:   window.NewTracker(windowSize),
		threshold: threshold,
		timeout:   timeout,
	}
}

// Check records a message and, past the threshold, emits a timeout and
// resets the member's window so one burst triggers exactly once.
func (d *AntiSpam) Check(ev *models.Event) []models.Action {
	if ev.ActorIsBot {
		return nil
	}

	key := ev.GuildID + ":" + ev.ActorID
	count := d.windows.Record(key, ev.Timestamp)
	if count <= d.threshold {
		return nil
	}

	d.windows.Reset(key)
	return []models.Action{
		models.NewTimeoutAction(ev.GuildID, ev.ActorID, d.timeout, "message spam"),
	}
}

// Sweep drops per-member keys whose entries have all expired.
func (d *AntiSpam) Sweep(now time.Time) { d.windows.Sweep(now) }
