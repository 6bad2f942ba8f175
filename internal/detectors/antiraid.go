package detectors

import (
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/window"
)

// AntiRaid watches the guild-wide join rate and calls for a lockdown on
// a join burst. The key is not reset on trigger; lockdown activation is
// idempotent, so continued joins during an active lockdown are harmless.
type AntiRaid struct {
	windows   *window.Tracker
	threshold int
}

func NewAntiRaid(threshold int, windowSize time.Duration) *AntiRaid {
	return &AntiRaid{
		windows:   window.NewTracker(windowSize),
		threshold: threshold,
	}
}

func (d *AntiRaid) Check(ev *models.Event) []models.Action {
	count := d.windows.Record(ev.GuildID, ev.Timestamp)
	if count < d.threshold {
		return nil
	}
	a := models.NewLockdownAction(ev.GuildID)
	a.ActorID = ev.ActorID
	return []models.Action{a}
}

// Sweep drops guild keys whose entries have all expired.
func (d *AntiRaid) Sweep(now time.Time) { d.windows.Sweep(now) }
