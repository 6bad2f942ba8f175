package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// handleWarn handles /warn
func (h *Handler) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	opts := i.ApplicationCommandData().Options
	user := opts[0].UserValue(s)
	reason := opts[1].StringValue()

	res, err := h.eng.Warnings().Issue(i.GuildID, user.ID, reason, invokerID(i))
	if err != nil {
		return err
	}

	if res.Immune {
		h.audit(i, "warn", fmt.Sprintf("Warning for <@%s> skipped: user is immune", user.ID))
		return respondEmbed(s, i, successEmbed("User Immune",
			fmt.Sprintf("<@%s> is on the immune list; no warning was issued.", user.ID)), true)
	}

	detail := fmt.Sprintf("Warning %d issued to <@%s>: %s", res.Count, user.ID, reason)
	title := "Warning Issued"
	if res.Kicked {
		detail += " (threshold reached, user kicked)"
		title = "Warning Threshold Reached"
	}
	h.audit(i, "warn", detail)

	desc := fmt.Sprintf("<@%s> now has **%d** warning(s).\nReason: %s", user.ID, res.Count, reason)
	if res.Kicked {
		desc = fmt.Sprintf("<@%s> reached the warning limit and was kicked. Their warnings were cleared.", user.ID)
	}
	return respondEmbed(s, i, successEmbed(title, desc), false)
}

// handleWarnings handles /warnings
func (h *Handler) handleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	user := i.ApplicationCommandData().Options[0].UserValue(s)
	warns, err := h.eng.Warnings().List(i.GuildID, user.ID)
	if err != nil {
		return err
	}
	h.audit(i, "warnings", fmt.Sprintf("Viewed warnings for <@%s>", user.ID))

	if len(warns) == 0 {
		return respondEmbed(s, i, successEmbed("No Warnings",
			fmt.Sprintf("<@%s> has no active warnings.", user.ID)), true)
	}

	var sb strings.Builder
	for n, w := range warns {
		fmt.Fprintf(&sb, "**%d.** %s\nID: `%s` | By: <@%s> | <t:%d:R>\n", n+1, w.Reason, w.ID, w.ModeratorID, w.CreatedAt)
	}

	embed := successEmbed(fmt.Sprintf("Warnings for %s", user.Username), sb.String())
	embed.Color = 0xFEE75C
	return respondEmbed(s, i, embed, true)
}

// handleClearWarnings handles /clearwarnings
func (h *Handler) handleClearWarnings(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	user := i.ApplicationCommandData().Options[0].UserValue(s)
	if err := h.eng.Warnings().Clear(i.GuildID, user.ID); err != nil {
		return fmt.Errorf("failed to clear warnings: %w", err)
	}

	h.audit(i, "clearwarnings", fmt.Sprintf("All warnings cleared for <@%s>", user.ID))
	return respondEmbed(s, i, successEmbed("Warnings Cleared",
		fmt.Sprintf("All warnings for <@%s> were removed.", user.ID)), true)
}

// handleRemoveWarning handles /removewarning
func (h *Handler) handleRemoveWarning(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	id := i.ApplicationCommandData().Options[0].StringValue()
	removed, err := h.eng.Warnings().Remove(id)
	if err != nil {
		return fmt.Errorf("failed to remove warning: %w", err)
	}
	if !removed {
		respondError(s, i, fmt.Sprintf("No warning found with ID `%s`.", id))
		return nil
	}

	h.audit(i, "removewarning", fmt.Sprintf("Warning `%s` removed", id))
	return respondEmbed(s, i, successEmbed("Warning Removed",
		fmt.Sprintf("Warning `%s` was removed.", id)), true)
}
