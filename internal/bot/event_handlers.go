package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/engine"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
)

// SetupEventHandlers translates gateway events into normalized engine
// events. Interactions (commands, buttons) are wired separately by the
// commands package.
func (s *Session) SetupEventHandlers(eng *engine.Engine) {
	logging.Info("Setting up Discord event handlers...")

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.Ready) {
		logging.Info("Ready: serving %d guilds", len(r.Guilds))
	})

	s.discord.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildCreate) {
		logging.Info("Joined/loaded guild %s (%s)", g.Name, g.ID)
	})

	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
		if m.GuildID == "" || m.Author == nil {
			return
		}
		eng.HandleEvent(&models.Event{
			Type:             models.EventMessageCreate,
			GuildID:          m.GuildID,
			ActorID:          m.Author.ID,
			ActorIsBot:       m.Author.Bot,
			ChannelID:        m.ChannelID,
			MessageID:        m.ID,
			Content:          m.Content,
			MentionCount:     len(m.Mentions),
			MentionsEveryone: m.MentionEveryone,
			Timestamp:        time.Now(),
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.GuildMemberAdd) {
		if m.GuildID == "" || m.User == nil {
			return
		}
		eng.HandleEvent(&models.Event{
			Type:       models.EventMemberJoin,
			GuildID:    m.GuildID,
			ActorID:    m.User.ID,
			ActorIsBot: m.User.Bot,
			Timestamp:  time.Now(),
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, c *discordgo.ChannelCreate) {
		if c.GuildID == "" {
			return
		}
		eng.HandleEvent(&models.Event{
			Type:      models.EventChannelCreate,
			GuildID:   c.GuildID,
			ChannelID: c.ID,
			Channel:   snapshotChannel(c.Channel),
			Timestamp: time.Now(),
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, c *discordgo.ChannelDelete) {
		if c.GuildID == "" {
			return
		}
		eng.HandleEvent(&models.Event{
			Type:      models.EventChannelDelete,
			GuildID:   c.GuildID,
			ChannelID: c.ID,
			Channel:   snapshotChannel(c.Channel),
			Timestamp: time.Now(),
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.GuildRoleCreate) {
		if r.GuildID == "" || r.Role == nil {
			return
		}
		eng.HandleEvent(&models.Event{
			Type:      models.EventRoleCreate,
			GuildID:   r.GuildID,
			Role:      snapshotRole(r.Role),
			Timestamp: time.Now(),
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.GuildRoleDelete) {
		if r.GuildID == "" {
			return
		}
		eng.HandleEvent(&models.Event{
			Type:      models.EventRoleDelete,
			GuildID:   r.GuildID,
			Role:      s.roleSnapshotFromState(r.GuildID, r.RoleID),
			Timestamp: time.Now(),
		})
	})
}

func snapshotChannel(c *discordgo.Channel) *models.ChannelInfo {
	if c == nil {
		return nil
	}
	info := &models.ChannelInfo{
		ID:       c.ID,
		Name:     c.Name,
		Type:     int(c.Type),
		Topic:    c.Topic,
		ParentID: c.ParentID,
		Position: c.Position,
		NSFW:     c.NSFW,
	}
	for _, o := range c.PermissionOverwrites {
		info.Overwrites = append(info.Overwrites, models.PermissionOverwrite{
			TargetID:   o.ID,
			TargetType: int(o.Type),
			Allow:      o.Allow,
			Deny:       o.Deny,
		})
	}
	return info
}

func snapshotRole(r *discordgo.Role) *models.RoleInfo {
	return &models.RoleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Hoist:       r.Hoist,
		Permissions: r.Permissions,
		Mentionable: r.Mentionable,
	}
}

// roleSnapshotFromState recovers a deleted role's properties from the
// state cache when it still has them; recreation falls back to a
// placeholder name otherwise.
func (s *Session) roleSnapshotFromState(guildID, roleID string) *models.RoleInfo {
	if role, err := s.discord.State.Role(guildID, roleID); err == nil && role != nil {
		return snapshotRole(role)
	}
	return &models.RoleInfo{ID: roleID, Name: "restored-role"}
}
