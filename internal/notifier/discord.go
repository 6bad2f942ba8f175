package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
)

var discordSession *discordgo.Session

const (
	colorAudit  = 0x5865F2
	colorDanger = 0xED4245
)

// SetSession sets the Discord session for the notifier.
func SetSession(session *discordgo.Session) {
	discordSession = session
}

// SendCommandAudit posts an audit embed for an administrative command to
// the guild's log channel. Fire-and-forget: delivery failure only logs.
func SendCommandAudit(channelID, command, actorID, detail string) {
	if discordSession == nil || channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Command Audit",
		Color: colorAudit,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Command", Value: fmt.Sprintf("`%s`", command), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", actorID), Inline: true},
			{Name: "Detail", Value: detail, Inline: false},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	go func() {
		if _, err := discordSession.ChannelMessageSendEmbed(channelID, embed); err != nil {
			logging.Warn("Command audit post failed: %v", err)
		}
	}()
}

// SendSecurityAlert posts a remediation embed to the guild's log channel.
func SendSecurityAlert(channelID, title, actorID, actionTaken string) {
	if discordSession == nil || channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Color:       colorDanger,
		Description: fmt.Sprintf("**Action Taken:** %s", actionTaken),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Actor", Value: fmt.Sprintf("<@%s> (`%s`)", actorID, actorID), Inline: true},
			{Name: "Timestamp", Value: fmt.Sprintf("<t:%d:F>", time.Now().Unix()), Inline: true},
		},
	}

	go func() {
		if _, err := discordSession.ChannelMessageSendEmbed(channelID, embed); err != nil {
			logging.Warn("Security alert post failed: %v", err)
		}
	}()
}
