package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/notifier"
)

// handleWhitelist handles /whitelist add|remove|view. Whitelisted users
// are exempt from automated filter and security-guard remediation only;
// they can still be warned.
func (h *Handler) handleWhitelist(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "add":
		user := sub.Options[0].UserValue(s)
		if err := h.db.AddWhitelist(i.GuildID, user.ID, invokerID(i)); err != nil {
			return fmt.Errorf("failed to add whitelist entry: %w", err)
		}
		h.audit(i, "whitelist add", fmt.Sprintf("<@%s> whitelisted", user.ID))
		return respondEmbed(s, i, successEmbed("Whitelist Updated",
			fmt.Sprintf("<@%s> is now exempt from automated enforcement. Manual warnings still apply.", user.ID)), true)

	case "remove":
		user := sub.Options[0].UserValue(s)
		if err := h.db.RemoveWhitelist(i.GuildID, user.ID); err != nil {
			return fmt.Errorf("failed to remove whitelist entry: %w", err)
		}
		h.audit(i, "whitelist remove", fmt.Sprintf("<@%s> removed from whitelist", user.ID))
		return respondEmbed(s, i, successEmbed("Whitelist Updated",
			fmt.Sprintf("<@%s> is no longer exempt from automated enforcement.", user.ID)), true)

	case "view":
		entries, err := h.db.ListWhitelist(i.GuildID)
		if err != nil {
			return fmt.Errorf("failed to list whitelist: %w", err)
		}
		h.audit(i, "whitelist view", "Viewed the whitelist")
		if len(entries) == 0 {
			return respondEmbed(s, i, successEmbed("Whitelist", "No users are whitelisted."), true)
		}
		var sb strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sb, "<@%s> — added by <@%s> <t:%d:R>\n", e.UserID, e.AddedBy, e.CreatedAt)
		}
		return respondEmbed(s, i, successEmbed("Whitelist", sb.String()), true)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

// handleImmune handles /immune add|remove|view. Immune users are exempt
// from the warning pipeline entirely.
func (h *Handler) handleImmune(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "add":
		user := sub.Options[0].UserValue(s)
		reason := ""
		if len(sub.Options) > 1 {
			reason = sub.Options[1].StringValue()
		}
		if err := h.db.AddImmune(i.GuildID, user.ID, invokerID(i), reason); err != nil {
			return fmt.Errorf("failed to add immune entry: %w", err)
		}
		h.audit(i, "immune add", fmt.Sprintf("<@%s> made immune (%s)", user.ID, reason))
		return respondEmbed(s, i, successEmbed("Immunity Granted",
			fmt.Sprintf("<@%s> can no longer receive warnings.", user.ID)), true)

	case "remove":
		user := sub.Options[0].UserValue(s)
		if err := h.db.RemoveImmune(i.GuildID, user.ID); err != nil {
			return fmt.Errorf("failed to remove immune entry: %w", err)
		}
		h.audit(i, "immune remove", fmt.Sprintf("<@%s> immunity revoked", user.ID))
		return respondEmbed(s, i, successEmbed("Immunity Revoked",
			fmt.Sprintf("<@%s> can receive warnings again.", user.ID)), true)

	case "view":
		entries, err := h.db.ListImmune(i.GuildID)
		if err != nil {
			return fmt.Errorf("failed to list immune users: %w", err)
		}
		h.audit(i, "immune view", "Viewed the immune list")
		if len(entries) == 0 {
			return respondEmbed(s, i, successEmbed("Immune Users", "No users are immune."), true)
		}
		var sb strings.Builder
		for _, e := range entries {
			reason := e.Reason
			if reason == "" {
				reason = "no reason given"
			}
			fmt.Fprintf(&sb, "<@%s> — %s (added by <@%s> <t:%d:R>)\n", e.UserID, reason, e.AddedBy, e.CreatedAt)
		}
		return respondEmbed(s, i, successEmbed("Immune Users", sb.String()), true)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

// audit posts a command-audit embed to the guild's log channel when one
// is configured.
func (h *Handler) audit(i *discordgo.InteractionCreate, command, detail string) {
	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return
	}
	notifier.SendCommandAudit(gcfg.LogChannelID, command, invokerID(i), detail)
}
