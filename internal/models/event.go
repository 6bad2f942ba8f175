package models

import "time"

// EventType identifies the kind of platform event routed into the engine.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventMessageCreate
	EventMessageDelete
	EventMessageUpdate
	EventMemberJoin
	EventMemberLeave
	EventChannelCreate
	EventChannelDelete
	EventRoleCreate
	EventRoleDelete
)

// Event is a normalized platform event. Handlers in internal/bot translate
// raw gateway payloads into this shape before dispatch; snowflakes stay as
// strings because that is how the platform hands them out.
type Event struct {
	Type       EventType
	GuildID    string
	ActorID    string
	ActorIsBot bool
	ChannelID  string
	MessageID  string
	Content    string

	// Message-only fields.
	MentionCount     int
	MentionsEveryone bool

	// Snapshots of the acted-upon resource, populated for channel/role
	// events so the security guard can rebuild what was destroyed.
	Channel *ChannelInfo
	Role    *RoleInfo

	Timestamp time.Time
}

// ChannelInfo captures enough of a channel to recreate it best-effort.
type ChannelInfo struct {
	ID         string
	Name       string
	Type       int
	Topic      string
	ParentID   string
	Position   int
	NSFW       bool
	Overwrites []PermissionOverwrite
}

// RoleInfo captures enough of a role to recreate it best-effort.
type RoleInfo struct {
	ID          string
	Name        string
	Color       int
	Hoist       bool
	Permissions int64
	Mentionable bool
}

// PermissionOverwrite mirrors a channel permission overwrite.
type PermissionOverwrite struct {
	TargetID   string
	TargetType int // 0 = role, 1 = member
	Allow      int64
	Deny       int64
}
