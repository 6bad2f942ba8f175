// Package commands implements the administrative slash-command and
// button surface.
package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/bot"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/config"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/engine"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/tickets"
)

// Handler routes all interactions (commands and buttons).
type Handler struct {
	session *bot.Session
	db      *database.Database
	guilds  *config.GuildStore
	eng     *engine.Engine
	tickets *tickets.Manager
}

var globalHandler *Handler

// Initialize wires the interaction handler and registers the commands.
func Initialize(session *bot.Session, db *database.Database, guilds *config.GuildStore, eng *engine.Engine, tm *tickets.Manager) error {
	globalHandler = &Handler{
		session: session,
		db:      db,
		guilds:  guilds,
		eng:     eng,
		tickets: tm,
	}

	session.AddHandler(globalHandler.handleInteraction)

	commands := GetAllCommands()
	if err := session.RegisterCommands(commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(commands))
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(s, i)
	}
}

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	var err error
	switch data.Name {
	case "setwelcome":
		err = h.handleSetWelcome(s, i)
	case "setlog":
		err = h.handleSetLog(s, i)
	case "setticketrole":
		err = h.handleSetTicketRole(s, i)
	case "admin":
		err = h.handleAdminList(s, i)
	case "authorized":
		err = h.handleAuthorizedList(s, i)
	case "whitelist":
		err = h.handleWhitelist(s, i)
	case "immune":
		err = h.handleImmune(s, i)
	case "warn":
		err = h.handleWarn(s, i)
	case "warnings":
		err = h.handleWarnings(s, i)
	case "clearwarnings":
		err = h.handleClearWarnings(s, i)
	case "removewarning":
		err = h.handleRemoveWarning(s, i)
	case "ticketpanel":
		err = h.handleTicketPanel(s, i)
	case "lockdown":
		err = h.handleLockdown(s, i)
	case "welcomepreview":
		err = h.handleWelcomePreview(s, i)
	case "status":
		err = h.handleStatus(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondError(s, i, err.Error())
	}
}

func (h *Handler) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()

	var err error
	switch {
	case strings.HasPrefix(data.CustomID, "ticket_create_"):
		err = h.handleTicketCreate(s, i, strings.TrimPrefix(data.CustomID, "ticket_create_"))
	case data.CustomID == "ticket_claim":
		err = h.handleTicketClaim(s, i)
	case data.CustomID == "ticket_close":
		err = h.handleTicketClose(s, i)
	}

	if err != nil {
		logging.Error("Component error [%s]: %v", data.CustomID, err)
		respondError(s, i, err.Error())
	}
}
