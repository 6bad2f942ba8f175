// Package engine routes platform events to the detectors on the owning
// guild's queue and executes the remediation intents they emit.
package engine

import (
	"fmt"
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/config"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/detectors"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/dispatcher"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/lockdown"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/warnings"
)

type Engine struct {
	db     *database.Database
	guilds *config.GuildStore
	client platform.Client
	disp   *dispatcher.Dispatcher

	spam   *detectors.AntiSpam
	raid   *detectors.AntiRaid
	filter *detectors.ContentFilter
	guard  *detectors.SecurityGuard

	warnings *warnings.Machine
	lockdown *lockdown.Controller

	noticeTTL time.Duration
}

func New(
	cfg *config.Config,
	db *database.Database,
	guilds *config.GuildStore,
	client platform.Client,
	disp *dispatcher.Dispatcher,
	warn *warnings.Machine,
	lock *lockdown.Controller,
) *Engine {
	mod := cfg.Moderation
	return &Engine{
		db:       db,
		guilds:   guilds,
		client:   client,
		disp:     disp,
		spam:     detectors.NewAntiSpam(mod.SpamThreshold, mod.SpamWindow(), mod.SpamTimeout()),
		raid:     detectors.NewAntiRaid(mod.RaidThreshold, mod.RaidWindow()),
		filter:   detectors.NewContentFilter(mod.MassMentionLimit),
		guard:    detectors.NewSecurityGuard(mod.GuardThreshold, mod.GuardWindow()),
		warnings: warn,
		lockdown: lock,

		noticeTTL: mod.EphemeralNotice(),
	}
}

// StartJanitor periodically drops detector keys whose window entries
// have all expired, so idle members and guilds do not accumulate state.
// The returned stop function ends the loop.
func (e *Engine) StartJanitor(interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				e.spam.Sweep(now)
				e.raid.Sweep(now)
				e.guard.Sweep(now)
			}
		}
	}()
	return func() { close(stop) }
}

// Warnings exposes the escalation machine to the command layer.
func (e *Engine) Warnings() *warnings.Machine { return e.warnings }

// Lockdown exposes the lockdown controller to the command layer.
func (e *Engine) Lockdown() *lockdown.Controller { return e.lockdown }

// HandleEvent enqueues the event on its guild's serialized queue.
// Events without a guild are dropped; all engine state is guild-scoped.
func (e *Engine) HandleEvent(ev *models.Event) {
	if ev.GuildID == "" {
		return
	}
	e.disp.Submit(ev.GuildID, func() { e.process(ev) })
}

func (e *Engine) process(ev *models.Event) {
	switch ev.Type {
	case models.EventMessageCreate:
		e.handleMessage(ev)
	case models.EventMemberJoin:
		e.handleJoin(ev)
	case models.EventChannelDelete, models.EventRoleDelete:
		e.handleDeletion(ev)
	case models.EventChannelCreate, models.EventRoleCreate:
		e.handleCreation(ev)
	}
}

func (e *Engine) handleMessage(ev *models.Event) {
	if ev.ActorIsBot {
		return
	}

	e.execute(e.spam.Check(ev))

	rule := e.filter.Evaluate(ev)
	if rule == detectors.FilterNone {
		return
	}
	if e.db.IsWhitelisted(ev.GuildID, ev.ActorID) {
		return
	}
	if rule == detectors.FilterMassMention {
		allowed, err := e.client.MemberCanMentionEveryone(ev.GuildID, ev.ActorID)
		if err != nil {
			logging.Warn("Mention permission check for %s failed: %v", ev.ActorID, err)
		}
		if allowed {
			return
		}
	}

	e.execute([]models.Action{
		{Type: models.ActionDeleteMessage, GuildID: ev.GuildID, ChannelID: ev.ChannelID, MessageID: ev.MessageID},
		{
			Type: models.ActionEphemeralWarn, GuildID: ev.GuildID, ChannelID: ev.ChannelID,
			Notice: fmt.Sprintf("<@%s>, that message was removed: %s is not allowed here.", ev.ActorID, rule.Reason()),
		},
		{Type: models.ActionIssueWarning, GuildID: ev.GuildID, TargetID: ev.ActorID, Reason: rule.Reason()},
	})
}

func (e *Engine) handleJoin(ev *models.Event) {
	e.sendWelcome(ev)
	e.execute(e.raid.Check(ev))
}

// handleDeletion is the security-guard path for destroyed channels and
// roles: attribute via the audit log, rebuild what was destroyed, and
// ban executors who delete twice inside the window.
func (e *Engine) handleDeletion(ev *models.Event) {
	action := platform.AuditChannelDelete
	if ev.Type == models.EventRoleDelete {
		action = platform.AuditRoleDelete
	}

	entry, err := e.client.LatestAuditEntry(ev.GuildID, action)
	if err != nil {
		logging.Warn("Audit fetch for deletion in guild %s failed: %v", ev.GuildID, err)
		return
	}
	if entry == nil || entry.ActorIsBot || e.db.IsWhitelisted(ev.GuildID, entry.ActorID) {
		return
	}

	acts := make([]models.Action, 0, 2)
	if ev.Type == models.EventChannelDelete && ev.Channel != nil {
		a := models.NewRecreateChannelAction(ev.GuildID, ev.Channel)
		a.ActorID = entry.ActorID
		acts = append(acts, a)
	}
	if ev.Type == models.EventRoleDelete && ev.Role != nil {
		a := models.NewRecreateRoleAction(ev.GuildID, ev.Role)
		a.ActorID = entry.ActorID
		acts = append(acts, a)
	}

	if e.guard.RecordDeletion(ev.GuildID, entry.ActorID, ev.Timestamp) {
		acts = append(acts, models.NewBanAction(ev.GuildID, entry.ActorID, "destructive action burst"))
	}

	e.execute(acts)
}

// handleCreation enforces the zero-tolerance rule: objects created by
// untrusted executors are removed immediately, no window involved.
func (e *Engine) handleCreation(ev *models.Event) {
	action := platform.AuditChannelCreate
	if ev.Type == models.EventRoleCreate {
		action = platform.AuditRoleCreate
	}

	entry, err := e.client.LatestAuditEntry(ev.GuildID, action)
	if err != nil {
		logging.Warn("Audit fetch for creation in guild %s failed: %v", ev.GuildID, err)
		return
	}
	if entry == nil || entry.ActorIsBot || e.db.IsWhitelisted(ev.GuildID, entry.ActorID) {
		return
	}

	switch ev.Type {
	case models.EventChannelCreate:
		e.execute([]models.Action{{
			Type: models.ActionDeleteChannel, GuildID: ev.GuildID,
			ChannelID: ev.ChannelID, ActorID: entry.ActorID,
		}})
	case models.EventRoleCreate:
		if ev.Role != nil {
			e.execute([]models.Action{{
				Type: models.ActionDeleteRole, GuildID: ev.GuildID,
				TargetID: ev.Role.ID, ActorID: entry.ActorID,
			}})
		}
	}
}

func (e *Engine) sendWelcome(ev *models.Event) {
	gcfg, err := e.guilds.Get(ev.GuildID)
	if err != nil || gcfg.WelcomeChannelID == "" {
		return
	}
	msg := fmt.Sprintf("Welcome to the server, <@%s>!", ev.ActorID)
	go func() {
		if _, err := e.client.SendMessage(gcfg.WelcomeChannelID, msg); err != nil {
			logging.Warn("Welcome message for %s failed: %v", ev.ActorID, err)
		}
	}()
}
