package database

import "strings"

// Warning is one moderation warning issued to a user in a guild.
type Warning struct {
	ID          string
	GuildID     string
	UserID      string
	Reason      string
	ModeratorID string
	CreatedAt   int64
}

// Ticket is a support ticket bound to its channel. ChannelID is the
// primary key and never changes once the ticket exists.
type Ticket struct {
	ChannelID string
	GuildID   string
	CreatorID string
	Type      string // general, apply, merge
	ClaimedBy string // empty until claimed
	Closed    bool
	CreatedAt int64
	ClosedAt  int64
}

// WhitelistEntry exempts a user from automated content-filter and
// security-guard remediation. It does not exempt from manual warnings.
type WhitelistEntry struct {
	GuildID   string
	UserID    string
	AddedBy   string
	CreatedAt int64
}

// ImmuneEntry exempts a user from the warning pipeline entirely.
type ImmuneEntry struct {
	GuildID   string
	UserID    string
	AddedBy   string
	Reason    string
	CreatedAt int64
}

// GuildConfig holds per-guild settings. AdminIDs/AuthorizedIDs are stored
// comma-separated, matching how the rest of the schema keeps ID lists.
type GuildConfig struct {
	GuildID          string
	WelcomeChannelID string
	LogChannelID     string
	TicketRoleID     string
	AdminIDs         string
	AuthorizedIDs    string
	CreatedAt        int64
	UpdatedAt        int64
}

func (c *GuildConfig) IsAdmin(userID string) bool {
	return containsID(c.AdminIDs, userID)
}

// IsAuthorized reports whether userID may run gated commands
// (adminIds union authorizedUserIds).
func (c *GuildConfig) IsAuthorized(userID string) bool {
	return containsID(c.AdminIDs, userID) || containsID(c.AuthorizedIDs, userID)
}

func containsID(list, id string) bool {
	if list == "" || id == "" {
		return false
	}
	for _, v := range strings.Split(list, ",") {
		if v == id {
			return true
		}
	}
	return false
}

// AddID appends id to a comma-separated list if absent.
func AddID(list, id string) string {
	if containsID(list, id) {
		return list
	}
	if list == "" {
		return id
	}
	return list + "," + id
}

// RemoveID drops id from a comma-separated list.
func RemoveID(list, id string) string {
	parts := strings.Split(list, ",")
	kept := parts[:0]
	for _, v := range parts {
		if v != id && v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ",")
}
