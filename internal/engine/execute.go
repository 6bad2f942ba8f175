package engine

import (
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/notifier"
)

// execute carries out remediation intents in order on the guild queue.
// Failures of individual actions are recoverable-external: logged and
// reported to the guild's log channel, never aborting the rest.
func (e *Engine) execute(acts []models.Action) {
	for _, a := range acts {
		if err := e.executeOne(a); err != nil {
			logging.Error("Action %d for guild %s failed: %v", a.Type, a.GuildID, err)
			e.logToGuild(a.GuildID, "A moderation action could not be completed; check bot permissions.")
		}
	}
}

func (e *Engine) executeOne(a models.Action) error {
	switch a.Type {
	case models.ActionTimeout:
		if err := e.client.TimeoutMember(a.GuildID, a.TargetID, a.Duration); err != nil {
			return err
		}
		e.logToGuild(a.GuildID, "Timed out <@"+a.TargetID+"> for "+a.Duration.String()+": "+a.Reason)

	case models.ActionDeleteMessage:
		return e.client.DeleteMessage(a.ChannelID, a.MessageID)

	case models.ActionEphemeralWarn:
		return e.client.SendTemporary(a.ChannelID, a.Notice, e.noticeTTL)

	case models.ActionIssueWarning:
		res, err := e.warnings.Issue(a.GuildID, a.TargetID, a.Reason, "automod")
		if err != nil {
			return err
		}
		if res.Kicked {
			e.logToGuild(a.GuildID, "Kicked <@"+a.TargetID+"> after reaching the warning limit.")
		}

	case models.ActionActivateLockdown:
		if e.lockdown.IsActive(a.GuildID) {
			return nil
		}
		if err := e.lockdown.Activate(a.GuildID); err != nil {
			return err
		}
		e.alertGuild(a.GuildID, "Raid Protection Triggered", a.ActorID, "Server locked down temporarily after a join burst.")

	case models.ActionBan:
		if err := e.client.BanMember(a.GuildID, a.TargetID, a.Reason); err != nil {
			return err
		}
		e.alertGuild(a.GuildID, "Member Banned", a.TargetID, "Banned: "+a.Reason)

	case models.ActionRecreateChannel:
		if _, err := e.client.CreateChannel(a.GuildID, a.Channel); err != nil {
			return err
		}
		e.alertGuild(a.GuildID, "Channel Restored", a.ActorID, "Recreated deleted channel #"+a.Channel.Name+".")

	case models.ActionRecreateRole:
		if _, err := e.client.CreateRole(a.GuildID, a.Role); err != nil {
			return err
		}
		e.alertGuild(a.GuildID, "Role Restored", a.ActorID, "Recreated deleted role "+a.Role.Name+".")

	case models.ActionDeleteChannel:
		if err := e.client.DeleteChannel(a.ChannelID); err != nil {
			return err
		}
		e.alertGuild(a.GuildID, "Unauthorized Channel Removed", a.ActorID, "Deleted the channel.")

	case models.ActionDeleteRole:
		if err := e.client.DeleteRole(a.GuildID, a.TargetID); err != nil {
			return err
		}
		e.alertGuild(a.GuildID, "Unauthorized Role Removed", a.ActorID, "Deleted the role.")
	}

	return nil
}

// logToGuild posts a moderation notice to the guild's log channel,
// fire-and-forget.
func (e *Engine) logToGuild(guildID, message string) {
	gcfg, err := e.guilds.Get(guildID)
	if err != nil || gcfg.LogChannelID == "" {
		return
	}
	channelID := gcfg.LogChannelID
	go func() {
		if _, err := e.client.SendMessage(channelID, message); err != nil {
			logging.Warn("Log post to guild %s failed: %v", guildID, err)
		}
	}()
}

// alertGuild posts a remediation embed to the guild's log channel.
func (e *Engine) alertGuild(guildID, title, actorID, actionTaken string) {
	gcfg, err := e.guilds.Get(guildID)
	if err != nil || gcfg.LogChannelID == "" {
		return
	}
	notifier.SendSecurityAlert(gcfg.LogChannelID, title, actorID, actionTaken)
}
