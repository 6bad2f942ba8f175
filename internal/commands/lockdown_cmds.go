package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// handleLockdown handles /lockdown enable|disable.
func (h *Handler) handleLockdown(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	sub := i.ApplicationCommandData().Options[0]
	ctrl := h.eng.Lockdown()

	switch sub.Name {
	case "enable":
		if ctrl.IsActive(i.GuildID) {
			respondError(s, i, "A lockdown is already active.")
			return nil
		}
		if err := ctrl.Activate(i.GuildID); err != nil {
			return fmt.Errorf("failed to activate lockdown: %w", err)
		}
		h.audit(i, "lockdown enable", "Manual lockdown activated")
		embed := successEmbed("Lockdown Active",
			"Messaging is frozen in every text channel. It lifts automatically unless disabled sooner.")
		embed.Color = 0xED4245
		return respondEmbed(s, i, embed, false)

	case "disable":
		if !ctrl.IsActive(i.GuildID) {
			respondError(s, i, "No lockdown is active.")
			return nil
		}
		if err := ctrl.Deactivate(i.GuildID); err != nil {
			return fmt.Errorf("failed to deactivate lockdown: %w", err)
		}
		h.audit(i, "lockdown disable", "Manual lockdown lifted")
		return respondEmbed(s, i, successEmbed("Lockdown Lifted",
			"Channel permissions have been restored."), false)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}
