package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/tickets"
)

// handleTicketPanel handles /ticketpanel: posts the panel with one
// create button per ticket type into the current channel.
func (h *Handler) handleTicketPanel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Support Tickets",
		Description: "Need help? Open a ticket below. You can have one open ticket at a time.",
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "General", Value: "Questions and general support", Inline: true},
			{Name: "Apply", Value: "Staff and team applications", Inline: true},
			{Name: "Merge", Value: "Account and clan merge requests", Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Moderation & Ticket Systems",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "General",
					Style:    discordgo.PrimaryButton,
					CustomID: "ticket_create_" + tickets.TypeGeneral,
				},
				discordgo.Button{
					Label:    "Apply",
					Style:    discordgo.SecondaryButton,
					CustomID: "ticket_create_" + tickets.TypeApply,
				},
				discordgo.Button{
					Label:    "Merge",
					Style:    discordgo.SecondaryButton,
					CustomID: "ticket_create_" + tickets.TypeMerge,
				},
			},
		},
	}

	if _, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}); err != nil {
		return fmt.Errorf("failed to post ticket panel: %w", err)
	}

	h.audit(i, "ticketpanel", fmt.Sprintf("Ticket panel posted in <#%s>", i.ChannelID))
	return respondEmbed(s, i, successEmbed("Panel Posted", "The ticket panel is live in this channel."), true)
}

// handleTicketCreate handles the ticket_create_* panel buttons.
func (h *Handler) handleTicketCreate(s *discordgo.Session, i *discordgo.InteractionCreate, kind string) error {
	userID := invokerID(i)
	if userID == "" {
		return errors.New("ticket buttons only work inside a guild")
	}

	channelID, err := h.tickets.Create(i.GuildID, userID, kind)
	if errors.Is(err, tickets.ErrDuplicateTicket) {
		respondError(s, i, "You already have an open ticket. Close it before opening another.")
		return nil
	}
	if err != nil {
		return err
	}

	// Drop the claim/close controls into the fresh channel.
	welcome := &discordgo.MessageEmbed{
		Title:       "Ticket Opened",
		Description: fmt.Sprintf("<@%s>, describe your issue here. Staff will be with you shortly.", userID),
		Color:       0x5865F2,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	controls := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Claim", Style: discordgo.SuccessButton, CustomID: "ticket_claim"},
				discordgo.Button{Label: "Close", Style: discordgo.DangerButton, CustomID: "ticket_close"},
			},
		},
	}
	if _, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{welcome},
		Components: controls,
	}); err != nil {
		// The ticket exists either way; the controls are a convenience.
		respondError(s, i, fmt.Sprintf("Ticket created: <#%s> (controls could not be posted)", channelID))
		return nil
	}

	h.audit(i, "ticket create", fmt.Sprintf("%s ticket <#%s> opened by <@%s>", kind, channelID, userID))
	return respondEmbed(s, i, successEmbed("Ticket Created",
		fmt.Sprintf("Your %s ticket is ready: <#%s>", kind, channelID)), true)
}

// handleTicketClaim handles the ticket_claim button.
func (h *Handler) handleTicketClaim(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.canHandleTickets(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "Only staff with the ticket role can claim tickets.")
		return nil
	}

	err = h.tickets.Claim(i.ChannelID, invokerID(i))
	switch {
	case errors.Is(err, tickets.ErrNotTicket):
		respondError(s, i, "This channel is not a ticket.")
		return nil
	case errors.Is(err, tickets.ErrClosed):
		respondError(s, i, "This ticket is already closed.")
		return nil
	case errors.Is(err, tickets.ErrAlreadyClaimed):
		respondError(s, i, "This ticket was already claimed.")
		return nil
	case err != nil:
		return err
	}

	h.audit(i, "ticket claim", fmt.Sprintf("Ticket <#%s> claimed", i.ChannelID))
	return respondEmbed(s, i, successEmbed("Ticket Claimed",
		fmt.Sprintf("<@%s> is now handling this ticket.", invokerID(i))), false)
}

// handleTicketClose handles the ticket_close button. The creator may
// close their own ticket; everyone else needs staff standing.
func (h *Handler) handleTicketClose(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID := invokerID(i)

	ticket, err := h.tickets.Get(i.ChannelID)
	if err != nil {
		return err
	}
	if ticket == nil {
		respondError(s, i, "This channel is not a ticket.")
		return nil
	}
	if ticket.CreatorID != userID {
		allowed, err := h.canHandleTickets(s, i)
		if err != nil {
			return err
		}
		if !allowed {
			respondPermissionError(s, i, "Only the ticket creator or staff can close this ticket.")
			return nil
		}
	}

	// The channel is about to disappear, so acknowledge first.
	if err := respondEmbed(s, i, successEmbed("Closing Ticket",
		"Saving the transcript and removing this channel..."), false); err != nil {
		return err
	}

	err = h.tickets.Close(i.ChannelID, userID)
	switch {
	case errors.Is(err, tickets.ErrClosed):
		return nil
	case err != nil:
		return err
	}

	h.audit(i, "ticket close", fmt.Sprintf("Ticket closed by <@%s>", userID))
	return nil
}

// canHandleTickets reports whether the invoker has staff standing for
// tickets: authorized, or holding the configured ticket role.
func (h *Handler) canHandleTickets(s *discordgo.Session, i *discordgo.InteractionCreate) (bool, error) {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return false, err
	}
	if allowed {
		return true, nil
	}

	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return false, err
	}
	if gcfg.TicketRoleID == "" || i.Member == nil {
		return false, nil
	}
	for _, roleID := range i.Member.Roles {
		if roleID == gcfg.TicketRoleID {
			return true, nil
		}
	}
	return false, nil
}
