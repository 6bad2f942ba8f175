// Package platform defines the imperative surface the engine invokes on
// the chat platform. internal/bot implements it over the live session;
// tests substitute a Recorder.
package platform

import (
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
)

// AuditAction selects which audit-log stream to read the latest entry from.
type AuditAction int

const (
	AuditChannelCreate AuditAction = iota
	AuditChannelDelete
	AuditRoleCreate
	AuditRoleDelete
)

// AuditEntry is the most recent audit-log attribution for an action.
type AuditEntry struct {
	ActorID    string
	ActorIsBot bool
	TargetID   string
}

// Message is a fetched channel message, used for transcripts.
type Message struct {
	ID         string
	AuthorID   string
	AuthorName string
	Content    string
	Timestamp  time.Time
}

// Client is the platform collaborator. Every method is a thin I/O
// wrapper; failures are the caller's to classify (most are
// recoverable-external and must not abort the triggering transition).
type Client interface {
	// Messaging.
	SendMessage(channelID, content string) (messageID string, err error)
	DeleteMessage(channelID, messageID string) error
	// SendTemporary posts a notice and removes it after ttl.
	SendTemporary(channelID, content string, ttl time.Duration) error
	SendDM(userID, content string) error
	RecentMessages(channelID string, limit int) ([]Message, error)

	// Members.
	TimeoutMember(guildID, userID string, d time.Duration) error
	KickMember(guildID, userID, reason string) error
	BanMember(guildID, userID, reason string) error
	MemberCanMentionEveryone(guildID, userID string) (bool, error)

	// Channels and roles.
	CreateChannel(guildID string, info *models.ChannelInfo) (channelID string, err error)
	DeleteChannel(channelID string) error
	RenameChannel(channelID, name string) error
	CreateRole(guildID string, info *models.RoleInfo) (roleID string, err error)
	DeleteRole(guildID, roleID string) error
	TextChannels(guildID string) ([]string, error)

	// Permission overwrites.
	SetChannelPermission(channelID, targetID string, targetType int, allow, deny int64) error
	DeleteChannelPermission(channelID, targetID string) error

	// Audit log.
	LatestAuditEntry(guildID string, action AuditAction) (*AuditEntry, error)
}
