// Package lockdown freezes a guild's message permissions during a raid.
package lockdown

import (
	"fmt"
	"sync"
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

// Overwrite bits denied for @everyone while a lockdown is active:
// SEND_MESSAGES (1<<11) and ADD_REACTIONS (1<<6).
const denyBits = int64(1<<11 | 1<<6)

const overwriteTypeRole = 0

type state struct {
	activatedAt time.Time
	expiresAt   time.Time
	timer       *time.Timer
}

// Controller applies and reverts guild-wide send/react freezes. At most
// one lockdown is active per guild; a second Activate is a no-op and a
// manual Deactivate cancels the pending auto-expiry.
type Controller struct {
	mu       sync.Mutex
	client   platform.Client
	duration time.Duration
	active   map[string]*state
}

func New(client platform.Client, duration time.Duration) *Controller {
	return &Controller{
		client:   client,
		duration: duration,
		active:   make(map[string]*state),
	}
}

// Activate freezes every text channel for the default role and schedules
// auto-deactivation. Idempotent while a lockdown is already active. The
// guild is only marked active once the channel listing succeeds, so a
// failed Activate leaves it free to retry.
func (c *Controller) Activate(guildID string) error {
	c.mu.Lock()
	if _, ok := c.active[guildID]; ok {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	channels, err := c.client.TextChannels(guildID)
	if err != nil {
		return fmt.Errorf("failed to list channels for lockdown: %w", err)
	}

	c.mu.Lock()
	if _, ok := c.active[guildID]; ok {
		c.mu.Unlock()
		return nil
	}
	now := time.Now()
	st := &state{activatedAt: now, expiresAt: now.Add(c.duration)}
	st.timer = time.AfterFunc(c.duration, func() {
		if err := c.Deactivate(guildID); err != nil {
			logging.Error("Lockdown auto-expiry failed for guild %s: %v", guildID, err)
		}
	})
	c.active[guildID] = st
	c.mu.Unlock()

	for _, channelID := range channels {
		// The @everyone role shares the guild's ID.
		if err := c.client.SetChannelPermission(channelID, guildID, overwriteTypeRole, 0, denyBits); err != nil {
			logging.Warn("Lockdown overwrite failed on channel %s: %v", channelID, err)
		}
	}

	logging.Info("Lockdown activated for guild %s (expires %s)", guildID, st.expiresAt.Format(time.RFC3339))
	return nil
}

// Deactivate removes the freeze, reverting channels to inherited
// permissions. Calling it on an inactive guild has no observable effect;
// calling it before expiry cancels the scheduled auto-deactivation.
func (c *Controller) Deactivate(guildID string) error {
	c.mu.Lock()
	st, ok := c.active[guildID]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	st.timer.Stop()
	delete(c.active, guildID)
	c.mu.Unlock()

	channels, err := c.client.TextChannels(guildID)
	if err != nil {
		return fmt.Errorf("failed to list channels for lockdown revert: %w", err)
	}

	for _, channelID := range channels {
		if err := c.client.DeleteChannelPermission(channelID, guildID); err != nil {
			logging.Warn("Lockdown revert failed on channel %s: %v", channelID, err)
		}
	}

	logging.Info("Lockdown deactivated for guild %s", guildID)
	return nil
}

// IsActive reports whether a lockdown is currently in effect.
func (c *Controller) IsActive(guildID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.active[guildID]
	return ok
}
