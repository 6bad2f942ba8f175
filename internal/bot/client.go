package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

// Client implements platform.Client over a live discordgo session.
type Client struct {
	s *discordgo.Session
}

func NewClient(s *discordgo.Session) *Client {
	return &Client{s: s}
}

func (c *Client) SendMessage(channelID, content string) (string, error) {
	msg, err := c.s.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (c *Client) DeleteMessage(channelID, messageID string) error {
	return c.s.ChannelMessageDelete(channelID, messageID)
}

// SendTemporary posts a notice and removes it after ttl. The removal is
// detached; its failure only logs.
func (c *Client) SendTemporary(channelID, content string, ttl time.Duration) error {
	msg, err := c.s.ChannelMessageSend(channelID, content)
	if err != nil {
		return err
	}
	time.AfterFunc(ttl, func() {
		if err := c.s.ChannelMessageDelete(channelID, msg.ID); err != nil {
			logging.Debug("Failed to remove temporary notice %s: %v", msg.ID, err)
		}
	})
	return nil
}

func (c *Client) SendDM(userID, content string) error {
	dm, err := c.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	_, err = c.s.ChannelMessageSend(dm.ID, content)
	return err
}

func (c *Client) RecentMessages(channelID string, limit int) ([]platform.Message, error) {
	raw, err := c.s.ChannelMessages(channelID, limit, "", "", "")
	if err != nil {
		return nil, err
	}

	msgs := make([]platform.Message, 0, len(raw))
	for _, m := range raw {
		name := "unknown"
		authorID := ""
		if m.Author != nil {
			name = m.Author.Username
			authorID = m.Author.ID
		}
		msgs = append(msgs, platform.Message{
			ID:         m.ID,
			AuthorID:   authorID,
			AuthorName: name,
			Content:    m.Content,
			Timestamp:  m.Timestamp,
		})
	}
	return msgs, nil
}

func (c *Client) TimeoutMember(guildID, userID string, d time.Duration) error {
	until := time.Now().Add(d)
	return c.s.GuildMemberTimeout(guildID, userID, &until)
}

func (c *Client) KickMember(guildID, userID, reason string) error {
	return c.s.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (c *Client) BanMember(guildID, userID, reason string) error {
	return c.s.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

// MemberCanMentionEveryone reports whether the member holds the
// mention-everyone capability through any role or administrator.
func (c *Client) MemberCanMentionEveryone(guildID, userID string) (bool, error) {
	guild, err := c.s.State.Guild(guildID)
	if err != nil {
		guild, err = c.s.Guild(guildID)
		if err != nil {
			return false, fmt.Errorf("failed to get guild: %w", err)
		}
	}
	if userID == guild.OwnerID {
		return true, nil
	}

	member, err := c.s.State.Member(guildID, userID)
	if err != nil {
		member, err = c.s.GuildMember(guildID, userID)
		if err != nil {
			return false, fmt.Errorf("failed to get member: %w", err)
		}
	}

	var perms int64
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID {
				perms |= role.Permissions
			}
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&discordgo.PermissionMentionEveryone != 0, nil
}

func (c *Client) CreateChannel(guildID string, info *models.ChannelInfo) (string, error) {
	overwrites := make([]*discordgo.PermissionOverwrite, 0, len(info.Overwrites))
	for _, o := range info.Overwrites {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    o.TargetID,
			Type:  discordgo.PermissionOverwriteType(o.TargetType),
			Allow: o.Allow,
			Deny:  o.Deny,
		})
	}

	ch, err := c.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 info.Name,
		Type:                 discordgo.ChannelType(info.Type),
		Topic:                info.Topic,
		NSFW:                 info.NSFW,
		ParentID:             info.ParentID,
		Position:             info.Position,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func (c *Client) DeleteChannel(channelID string) error {
	_, err := c.s.ChannelDelete(channelID)
	return err
}

func (c *Client) RenameChannel(channelID, name string) error {
	_, err := c.s.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name})
	return err
}

func (c *Client) CreateRole(guildID string, info *models.RoleInfo) (string, error) {
	role, err := c.s.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        info.Name,
		Color:       &info.Color,
		Hoist:       &info.Hoist,
		Permissions: &info.Permissions,
		Mentionable: &info.Mentionable,
	})
	if err != nil {
		return "", err
	}
	return role.ID, nil
}

func (c *Client) DeleteRole(guildID, roleID string) error {
	return c.s.GuildRoleDelete(guildID, roleID)
}

// TextChannels lists the guild's text-capable channel IDs.
func (c *Client) TextChannels(guildID string) ([]string, error) {
	channels, err := c.s.GuildChannels(guildID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews {
			ids = append(ids, ch.ID)
		}
	}
	return ids, nil
}

func (c *Client) SetChannelPermission(channelID, targetID string, targetType int, allow, deny int64) error {
	return c.s.ChannelPermissionSet(channelID, targetID, discordgo.PermissionOverwriteType(targetType), allow, deny)
}

func (c *Client) DeleteChannelPermission(channelID, targetID string) error {
	return c.s.ChannelPermissionDelete(channelID, targetID)
}

var auditActions = map[platform.AuditAction]discordgo.AuditLogAction{
	platform.AuditChannelCreate: discordgo.AuditLogActionChannelCreate,
	platform.AuditChannelDelete: discordgo.AuditLogActionChannelDelete,
	platform.AuditRoleCreate:    discordgo.AuditLogActionRoleCreate,
	platform.AuditRoleDelete:    discordgo.AuditLogActionRoleDelete,
}

// LatestAuditEntry fetches the most recent audit-log entry for an
// action and resolves whether the actor is a bot.
func (c *Client) LatestAuditEntry(guildID string, action platform.AuditAction) (*platform.AuditEntry, error) {
	audit, err := c.s.GuildAuditLog(guildID, "", "", int(auditActions[action]), 1)
	if err != nil {
		return nil, err
	}
	if len(audit.AuditLogEntries) == 0 {
		return nil, nil
	}

	entry := audit.AuditLogEntries[0]
	out := &platform.AuditEntry{ActorID: entry.UserID, TargetID: entry.TargetID}
	for _, user := range audit.Users {
		if user.ID == entry.UserID && user.Bot {
			out.ActorIsBot = true
			break
		}
	}
	return out, nil
}
