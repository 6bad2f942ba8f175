// Package tickets manages the support-ticket lifecycle: one channel per
// ticket, at most one open ticket per creator per guild.
package tickets

import (
	"errors"
	"fmt"
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/config"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

var (
	// ErrDuplicateTicket: the creator already has an open ticket.
	ErrDuplicateTicket = errors.New("creator already has an open ticket")
	// ErrAlreadyClaimed: a second claim attempt; the original claimant stands.
	ErrAlreadyClaimed = errors.New("ticket already claimed")
	// ErrNotTicket: the channel has no ticket bound to it.
	ErrNotTicket = errors.New("channel is not a ticket")
	// ErrClosed: the ticket was already closed.
	ErrClosed = errors.New("ticket already closed")
)

// Valid ticket types.
const (
	TypeGeneral = "general"
	TypeApply   = "apply"
	TypeMerge   = "merge"
)

const (
	permViewChannel  = int64(1 << 10)
	permSendMessages = int64(1 << 11)
	overwriteRole    = 0
	overwriteMember  = 1
)

type Manager struct {
	db              *database.Database
	client          platform.Client
	guilds          *config.GuildStore
	transcriptLimit int
}

func NewManager(db *database.Database, client platform.Client, guilds *config.GuildStore, transcriptLimit int) *Manager {
	return &Manager{db: db, client: client, guilds: guilds, transcriptLimit: transcriptLimit}
}

// Create opens a ticket channel for creatorID. The one-open-ticket
// precondition is a single read before creation; the store's partial
// unique index catches the race when two presses pass the check
// together, and both paths surface ErrDuplicateTicket.
func (m *Manager) Create(guildID, creatorID, kind string) (string, error) {
	switch kind {
	case TypeGeneral, TypeApply, TypeMerge:
	default:
		return "", fmt.Errorf("unknown ticket type %q", kind)
	}

	existing, err := m.db.OpenTicketFor(guildID, creatorID)
	if err != nil {
		return "", fmt.Errorf("failed to check open tickets: %w", err)
	}
	if existing != nil {
		return "", ErrDuplicateTicket
	}

	gcfg, err := m.guilds.Get(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to load guild config: %w", err)
	}

	overwrites := []models.PermissionOverwrite{
		// @everyone (role ID == guild ID) sees nothing.
		{TargetID: guildID, TargetType: overwriteRole, Deny: permViewChannel},
		{TargetID: creatorID, TargetType: overwriteMember, Allow: permViewChannel | permSendMessages},
	}
	if gcfg.TicketRoleID != "" {
		overwrites = append(overwrites, models.PermissionOverwrite{
			TargetID: gcfg.TicketRoleID, TargetType: overwriteRole,
			Allow: permViewChannel | permSendMessages,
		})
	}

	channelID, err := m.client.CreateChannel(guildID, &models.ChannelInfo{
		Name:       fmt.Sprintf("%s-ticket", kind),
		Topic:      fmt.Sprintf("%s ticket for <@%s>", kind, creatorID),
		Overwrites: overwrites,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create ticket channel: %w", err)
	}

	ticket := &database.Ticket{
		ChannelID: channelID,
		GuildID:   guildID,
		CreatorID: creatorID,
		Type:      kind,
	}
	if err := m.db.CreateTicket(ticket); err != nil {
		// Lost the check-then-create race or the insert failed; the
		// channel without a row is orphaned, so take it back down.
		if derr := m.client.DeleteChannel(channelID); derr != nil {
			logging.Warn("Failed to remove orphaned ticket channel %s: %v", channelID, derr)
		}
		if database.IsDuplicateTicketErr(err) {
			return "", ErrDuplicateTicket
		}
		return "", fmt.Errorf("failed to persist ticket: %w", err)
	}

	logging.Info("Ticket %s (%s) opened by %s in guild %s", channelID, kind, creatorID, guildID)
	return channelID, nil
}

// Get returns the ticket bound to channelID, or nil when the channel is
// not a ticket.
func (m *Manager) Get(channelID string) (*database.Ticket, error) {
	return m.db.GetTicket(channelID)
}

// Claim assigns the ticket to userID. A ticket is claimed at most once;
// a duplicate claim is rejected without touching the original claimant.
func (m *Manager) Claim(channelID, userID string) error {
	ticket, err := m.db.GetTicket(channelID)
	if err != nil {
		return fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return ErrNotTicket
	}
	if ticket.Closed {
		return ErrClosed
	}

	ok, err := m.db.ClaimTicket(channelID, userID)
	if err != nil {
		return fmt.Errorf("failed to claim ticket: %w", err)
	}
	if !ok {
		return ErrAlreadyClaimed
	}

	if err := m.client.SetChannelPermission(channelID, userID, overwriteMember, permViewChannel|permSendMessages, 0); err != nil {
		logging.Warn("Failed to grant claimant %s access to %s: %v", userID, channelID, err)
	}
	if err := m.client.RenameChannel(channelID, fmt.Sprintf("claimed-%s-ticket", ticket.Type)); err != nil {
		logging.Warn("Failed to rename claimed ticket %s: %v", channelID, err)
	}

	logging.Info("Ticket %s claimed by %s", channelID, userID)
	return nil
}

// Close terminates the ticket: marks it closed, builds a transcript from
// recent history, delivers it best-effort to the creator and the log
// channel, then deletes the channel. Transcript and delivery failures
// never block deletion; only the channel delete is must-succeed-or-report.
func (m *Manager) Close(channelID, closerID string) error {
	ticket, err := m.db.GetTicket(channelID)
	if err != nil {
		return fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return ErrNotTicket
	}
	if ticket.Closed {
		return ErrClosed
	}

	ok, err := m.db.CloseTicket(channelID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to close ticket: %w", err)
	}
	if !ok {
		// A concurrent closer won the update; the channel is already
		// on its way out.
		return ErrClosed
	}

	// History must be read before the channel disappears; everything
	// after that is fire-and-forget.
	transcript, err := m.buildTranscript(ticket)
	if err != nil {
		logging.Warn("Transcript generation for ticket %s failed: %v", channelID, err)
	} else {
		go m.deliverTranscript(ticket, closerID, transcript)
	}

	if err := m.client.DeleteChannel(channelID); err != nil {
		return fmt.Errorf("failed to delete ticket channel: %w", err)
	}

	logging.Info("Ticket %s closed by %s", channelID, closerID)
	return nil
}

func (m *Manager) buildTranscript(t *database.Ticket) (string, error) {
	msgs, err := m.client.RecentMessages(t.ChannelID, m.transcriptLimit)
	if err != nil {
		return "", err
	}
	return renderTranscript(t, msgs), nil
}

func (m *Manager) deliverTranscript(t *database.Ticket, closerID, transcript string) {
	if err := m.client.SendDM(t.CreatorID, transcript); err != nil {
		logging.Warn("Transcript DM to %s failed: %v", t.CreatorID, err)
	}

	gcfg, err := m.guilds.Get(t.GuildID)
	if err != nil {
		logging.Warn("Failed to load guild config for transcript log: %v", err)
		return
	}
	if gcfg.LogChannelID == "" {
		return
	}
	if _, err := m.client.SendMessage(gcfg.LogChannelID, transcript); err != nil {
		logging.Warn("Transcript post to log channel failed: %v", err)
	}
}
