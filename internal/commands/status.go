package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

var botStartTime = time.Now()

// handleStatus handles /status: bot health plus host resource usage.
func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	allowed, err := h.authorize(s, i)
	if err != nil {
		return err
	}
	if !allowed {
		respondPermissionError(s, i, "You must be the server owner or on the authorized list.")
		return nil
	}

	// Defer: cpu.Percent samples for a second.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	hostValue := "unavailable"
	if hostInfo, err := host.Info(); err == nil {
		hostValue = fmt.Sprintf("**OS:** `%s`\n**Platform:** `%s`\n**Uptime:** `%s`",
			hostInfo.OS, hostInfo.Platform, formatDuration(time.Duration(hostInfo.Uptime)*time.Second))
	}

	cpuValue := "unavailable"
	if pct, err := cpu.Percent(time.Second, false); err == nil && len(pct) > 0 {
		cpuValue = fmt.Sprintf("**Usage:** `%.2f%%`\n**Threads:** `%d`", pct[0], runtime.NumCPU())
	}

	memValue := "unavailable"
	if vm, err := mem.VirtualMemory(); err == nil {
		memValue = fmt.Sprintf("**Used:** `%s` / `%s` (%.1f%%)",
			formatBytes(vm.Used), formatBytes(vm.Total), vm.UsedPercent)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	gcfg, _ := h.guilds.Get(i.GuildID)
	logChannelText := "Not configured"
	if gcfg != nil && gcfg.LogChannelID != "" {
		logChannelText = fmt.Sprintf("<#%s>", gcfg.LogChannelID)
	}
	h.audit(i, "status", "Viewed system status")

	lockdownText := "Inactive"
	if h.eng.Lockdown().IsActive(i.GuildID) {
		lockdownText = "**ACTIVE**"
	}

	embed := &discordgo.MessageEmbed{
		Title: "System Status Overview",
		Color: 0x2B2D31,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Bot",
				Value: fmt.Sprintf("**Uptime:** `%s`\n**Guilds:** `%d`\n**Latency:** `%dms`\n**Goroutines:** `%d`\n**Heap:** `%s`",
					formatDuration(time.Since(botStartTime)),
					len(s.State.Guilds),
					s.HeartbeatLatency().Milliseconds(),
					runtime.NumGoroutine(),
					formatBytes(ms.Alloc)),
				Inline: true,
			},
			{Name: "Host", Value: hostValue, Inline: true},
			{Name: "CPU", Value: cpuValue, Inline: true},
			{Name: "Memory", Value: memValue, Inline: true},
			{Name: "Audit Logging", Value: logChannelText, Inline: true},
			{Name: "Lockdown", Value: lockdownText, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Moderation & Ticket Systems",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	embeds := []*discordgo.MessageEmbed{embed}
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
