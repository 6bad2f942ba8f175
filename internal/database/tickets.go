package database

import (
	"database/sql"
	"strings"
	"time"
)

// ticketRetention: closed tickets are purged this long after closure.
const ticketRetention = 30 * 24 * time.Hour

// CreateTicket persists a new open ticket. The partial unique index on
// (guild_id, creator_id) WHERE closed = 0 makes the store reject the
// loser of a check-then-create race.
func (d *Database) CreateTicket(t *Ticket) error {
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}
	_, err := d.db.Exec(
		`INSERT INTO tickets (channel_id, guild_id, creator_id, type, claimed_by, closed, created_at, closed_at)
		 VALUES (?, ?, ?, ?, '', 0, ?, 0)`,
		t.ChannelID, t.GuildID, t.CreatorID, t.Type, t.CreatedAt,
	)
	return err
}

// IsDuplicateTicketErr reports whether err is the unique-index violation
// raised when a creator already has an open ticket.
func IsDuplicateTicketErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_tickets_open_creator")
}

// GetTicket fetches the ticket bound to a channel, or nil when the
// channel is not a ticket channel.
func (d *Database) GetTicket(channelID string) (*Ticket, error) {
	var t Ticket
	var closed int
	err := d.db.QueryRow(
		`SELECT channel_id, guild_id, creator_id, type, claimed_by, closed, created_at, closed_at
		 FROM tickets WHERE channel_id = ?`,
		channelID,
	).Scan(&t.ChannelID, &t.GuildID, &t.CreatorID, &t.Type, &t.ClaimedBy, &closed, &t.CreatedAt, &t.ClosedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Closed = closed != 0
	return &t, nil
}

// OpenTicketFor returns the creator's open (non-closed) ticket in a
// guild, or nil when there is none.
func (d *Database) OpenTicketFor(guildID, creatorID string) (*Ticket, error) {
	var t Ticket
	var closed int
	err := d.db.QueryRow(
		`SELECT channel_id, guild_id, creator_id, type, claimed_by, closed, created_at, closed_at
		 FROM tickets WHERE guild_id = ? AND creator_id = ? AND closed = 0`,
		guildID, creatorID,
	).Scan(&t.ChannelID, &t.GuildID, &t.CreatorID, &t.Type, &t.ClaimedBy, &closed, &t.CreatedAt, &t.ClosedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Closed = closed != 0
	return &t, nil
}

// ClaimTicket sets claimed_by for an unclaimed ticket. Returns false
// without mutating anything when the ticket is already claimed.
func (d *Database) ClaimTicket(channelID, userID string) (bool, error) {
	res, err := d.db.Exec(
		`UPDATE tickets SET claimed_by = ? WHERE channel_id = ? AND claimed_by = '' AND closed = 0`,
		userID, channelID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CloseTicket marks a ticket closed. Closing is terminal; returns false
// when the ticket was already closed.
func (d *Database) CloseTicket(channelID string, closedAt int64) (bool, error) {
	res, err := d.db.Exec(
		`UPDATE tickets SET closed = 1, closed_at = ? WHERE channel_id = ? AND closed = 0`,
		closedAt, channelID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
