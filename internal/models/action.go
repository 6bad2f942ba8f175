package models

import "time"

// ActionType identifies a remediation intent emitted by a detector.
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionTimeout
	ActionDeleteMessage
	ActionEphemeralWarn
	ActionIssueWarning
	ActionActivateLockdown
	ActionBan
	ActionRecreateChannel
	ActionRecreateRole
	ActionDeleteChannel
	ActionDeleteRole
)

// Action is a remediation intent. Detectors emit these and the engine
// executes them against the platform client on the owning guild queue.
type Action struct {
	Type      ActionType
	GuildID   string
	TargetID  string
	ActorID   string // executor who provoked the action, when attributable
	ChannelID string
	MessageID string
	Reason    string
	Notice    string
	Duration  time.Duration
	Channel   *ChannelInfo
	Role      *RoleInfo
}

func NewTimeoutAction(guildID, userID string, d time.Duration, reason string) Action {
	return Action{Type: ActionTimeout, GuildID: guildID, TargetID: userID, Duration: d, Reason: reason}
}

func NewBanAction(guildID, userID, reason string) Action {
	return Action{Type: ActionBan, GuildID: guildID, TargetID: userID, Reason: reason}
}

func NewLockdownAction(guildID string) Action {
	return Action{Type: ActionActivateLockdown, GuildID: guildID, Reason: "join burst detected"}
}

func NewRecreateChannelAction(guildID string, info *ChannelInfo) Action {
	return Action{Type: ActionRecreateChannel, GuildID: guildID, Channel: info}
}

func NewRecreateRoleAction(guildID string, info *RoleInfo) Action {
	return Action{Type: ActionRecreateRole, GuildID: guildID, Role: info}
}
