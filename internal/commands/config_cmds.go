package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/notifier"
)

// handleSetWelcome handles /setwelcome
func (h *Handler) handleSetWelcome(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	channel := i.ApplicationCommandData().Options[0].ChannelValue(s)
	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return err
	}
	gcfg.WelcomeChannelID = channel.ID
	if err := h.guilds.Update(gcfg); err != nil {
		return fmt.Errorf("failed to save welcome channel: %w", err)
	}

	notifier.SendCommandAudit(gcfg.LogChannelID, "setwelcome", invokerID(i), fmt.Sprintf("Welcome channel set to <#%s>", channel.ID))
	return respondEmbed(s, i, successEmbed("Welcome Channel Set",
		fmt.Sprintf("New members will be greeted in <#%s>.", channel.ID)), true)
}

// handleSetLog handles /setlog
func (h *Handler) handleSetLog(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	channel := i.ApplicationCommandData().Options[0].ChannelValue(s)
	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return err
	}
	gcfg.LogChannelID = channel.ID
	if err := h.guilds.Update(gcfg); err != nil {
		return fmt.Errorf("failed to save log channel: %w", err)
	}

	notifier.SendCommandAudit(gcfg.LogChannelID, "setlog", invokerID(i), fmt.Sprintf("Log channel set to <#%s>", channel.ID))
	return respondEmbed(s, i, successEmbed("Log Channel Set",
		fmt.Sprintf("Moderation and ticket logs will be posted in <#%s>.", channel.ID)), true)
}

// handleSetTicketRole handles /setticketrole
func (h *Handler) handleSetTicketRole(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	role := i.ApplicationCommandData().Options[0].RoleValue(s, i.GuildID)
	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return err
	}
	gcfg.TicketRoleID = role.ID
	if err := h.guilds.Update(gcfg); err != nil {
		return fmt.Errorf("failed to save ticket role: %w", err)
	}

	notifier.SendCommandAudit(gcfg.LogChannelID, "setticketrole", invokerID(i), fmt.Sprintf("Ticket role set to <@&%s>", role.ID))
	return respondEmbed(s, i, successEmbed("Ticket Role Set",
		fmt.Sprintf("Members with <@&%s> can now see every ticket channel.", role.ID)), true)
}

// handleAdminList handles /admin add|remove.
func (h *Handler) handleAdminList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return h.handleIDList(s, i, "admin")
}

// handleAuthorizedList handles /authorized add|remove.
func (h *Handler) handleAuthorizedList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return h.handleIDList(s, i, "authorized")
}

func (h *Handler) handleIDList(s *discordgo.Session, i *discordgo.InteractionCreate, list string) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	sub := i.ApplicationCommandData().Options[0]
	user := sub.Options[0].UserValue(s)

	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return err
	}

	var title, detail string
	switch sub.Name {
	case "add":
		if list == "admin" {
			gcfg.AdminIDs = database.AddID(gcfg.AdminIDs, user.ID)
		} else {
			gcfg.AuthorizedIDs = database.AddID(gcfg.AuthorizedIDs, user.ID)
		}
		title = "User Added"
		detail = fmt.Sprintf("<@%s> added to the %s list", user.ID, list)
	case "remove":
		if list == "admin" {
			gcfg.AdminIDs = database.RemoveID(gcfg.AdminIDs, user.ID)
		} else {
			gcfg.AuthorizedIDs = database.RemoveID(gcfg.AuthorizedIDs, user.ID)
		}
		title = "User Removed"
		detail = fmt.Sprintf("<@%s> removed from the %s list", user.ID, list)
	default:
		return fmt.Errorf("unknown subcommand: %s", sub.Name)
	}

	if err := h.guilds.Update(gcfg); err != nil {
		return fmt.Errorf("failed to save %s list: %w", list, err)
	}

	notifier.SendCommandAudit(gcfg.LogChannelID, list+" "+sub.Name, invokerID(i), detail)
	return respondEmbed(s, i, successEmbed(title, detail+"."), true)
}

// handleWelcomePreview handles /welcomepreview: shows the exact welcome
// text the invoker would receive on join, without posting it.
func (h *Handler) handleWelcomePreview(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	gcfg, err := h.guilds.Get(i.GuildID)
	if err != nil {
		return err
	}

	target := "No welcome channel configured. Set one with `/setwelcome`."
	if gcfg.WelcomeChannelID != "" {
		target = fmt.Sprintf("Posted in <#%s>.", gcfg.WelcomeChannelID)
	}
	notifier.SendCommandAudit(gcfg.LogChannelID, "welcomepreview", invokerID(i), "Previewed the welcome message")

	embed := successEmbed("Welcome Preview",
		fmt.Sprintf("Welcome to the server, <@%s>!\n\n%s", invokerID(i), target))
	return respondEmbed(s, i, embed, true)
}
