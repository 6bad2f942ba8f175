// Package warnings implements the escalation machine: warnings
// accumulate per (user, guild) and the third non-expired one kicks the
// member and wipes the slate.
package warnings

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

// Result reports what a single Issue call did.
type Result struct {
	// Immune means the target is exempt from the warning pipeline:
	// nothing was persisted and no notification was sent.
	Immune  bool
	Count   int
	Kicked  bool
	Warning *database.Warning
}

type Machine struct {
	db          *database.Database
	client      platform.Client
	maxWarnings int
}

func NewMachine(db *database.Database, client platform.Client, maxWarnings int) *Machine {
	return &Machine{db: db, client: client, maxWarnings: maxWarnings}
}

// Issue runs one escalation step. Immune users short-circuit to a no-op
// result. Otherwise the warning is persisted, the user is notified
// best-effort, and reaching the threshold kicks the member and deletes
// every warning for the pair. A failed kick is logged but the persisted
// warnings stand — the machine prefers over-enforcement bookkeeping to
// rolling back.
//
// Whitelisted users are deliberately NOT exempt here: whitelist only
// shields from automated filter triggers, not from warnings themselves.
func (m *Machine) Issue(guildID, userID, reason, moderatorID string) (*Result, error) {
	if m.db.IsImmune(guildID, userID) {
		logging.Info("Warning skipped for immune user %s in guild %s", userID, guildID)
		return &Result{Immune: true}, nil
	}

	w := &database.Warning{
		ID:          uuid.NewString(),
		GuildID:     guildID,
		UserID:      userID,
		Reason:      reason,
		ModeratorID: moderatorID,
	}
	if err := m.db.AddWarning(w); err != nil {
		return nil, fmt.Errorf("failed to persist warning: %w", err)
	}

	count, err := m.db.CountWarnings(guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count warnings: %w", err)
	}

	res := &Result{Count: count, Warning: w}

	next := "another warning"
	if count+1 >= m.maxWarnings {
		next = "a kick from the server"
	}
	notice := fmt.Sprintf(
		"You received warning %d/%d in this server.\nReason: %s\nIssued by: <@%s>\nThe next violation will result in %s.",
		count, m.maxWarnings, reason, moderatorID, next,
	)
	go func() {
		if err := m.client.SendDM(userID, notice); err != nil {
			logging.Warn("Warning DM to %s failed: %v", userID, err)
		}
	}()

	if count >= m.maxWarnings {
		res.Kicked = true
		if err := m.client.KickMember(guildID, userID, "excessive warnings"); err != nil {
			logging.Error("Escalation kick of %s in guild %s failed: %v", userID, guildID, err)
		}
		go func() {
			if err := m.client.SendDM(userID, fmt.Sprintf("You were kicked for reaching %d warnings.", m.maxWarnings)); err != nil {
				logging.Warn("Kick DM to %s failed: %v", userID, err)
			}
		}()
		if err := m.db.DeleteWarnings(guildID, userID); err != nil {
			// Left inconsistent on purpose; the next read shows the
			// discrepancy until a manual clear.
			logging.Error("Warning cleanup after kick failed for %s/%s: %v", guildID, userID, err)
		}
	}

	return res, nil
}

// Clear removes every warning for a member.
func (m *Machine) Clear(guildID, userID string) error {
	return m.db.DeleteWarnings(guildID, userID)
}

// List returns the member's non-expired warnings.
func (m *Machine) List(guildID, userID string) ([]*database.Warning, error) {
	return m.db.ListWarnings(guildID, userID)
}

// Remove deletes a single warning by id.
func (m *Machine) Remove(id string) (bool, error) {
	return m.db.DeleteWarning(id)
}
