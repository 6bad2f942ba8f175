package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// authorize checks whether the invoker may run a gated command.
// Returns true if:
// 1. User is the server owner, OR
// 2. User is in the guild's admin or authorized list
func (h *Handler) authorize(s *discordgo.Session, i *discordgo.InteractionCreate) (bool, error) {
	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			return false, fmt.Errorf("failed to get guild: %w", err)
		}
	}

	if i.Member == nil || i.Member.User == nil {
		return false, nil
	}
	if i.Member.User.ID == guild.OwnerID {
		return true, nil
	}

	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return false, fmt.Errorf("failed to load guild config: %w", err)
	}
	return gcfg.IsAuthorized(i.Member.User.ID), nil
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	return ""
}

// respondPermissionError sends a permission denied error response
func respondPermissionError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	embed := &discordgo.MessageEmbed{
		Title:       "Access Denied",
		Description: message,
		Color:       0x2B2D31,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Moderation & Ticket Systems",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondError sends an ephemeral error message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondEmbed sends an embed response, ephemeral when requested.
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// successEmbed builds the standard confirmation embed.
func successEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0x57F287,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Moderation & Ticket Systems",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
