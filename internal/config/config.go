package config

import (
	"encoding/json"
	"os"
	"time"
)

type Config struct {
	Bot        BotConfig        `json:"bot"`
	Database   DatabaseConfig   `json:"database"`
	Log        LogConfig        `json:"log"`
	Moderation ModerationConfig `json:"moderation"`
	Tickets    TicketConfig     `json:"tickets"`
}

type BotConfig struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

type LogConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

type ModerationConfig struct {
	SpamThreshold      int `json:"spam_threshold"`
	SpamWindowSec      int `json:"spam_window_sec"`
	SpamTimeoutMin     int `json:"spam_timeout_min"`
	RaidThreshold      int `json:"raid_threshold"`
	RaidWindowSec      int `json:"raid_window_sec"`
	GuardThreshold     int `json:"guard_threshold"`
	GuardWindowSec     int `json:"guard_window_sec"`
	MassMentionLimit   int `json:"mass_mention_limit"`
	MaxWarnings        int `json:"max_warnings"`
	LockdownMinutes    int `json:"lockdown_minutes"`
	EphemeralNoticeSec int `json:"ephemeral_notice_sec"`
}

type TicketConfig struct {
	TranscriptLimit int `json:"transcript_limit"`
}

var globalConfig *Config

// Load reads the JSON config file, applies environment overrides and
// installs the result as the process config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	globalConfig = cfg
	return cfg, nil
}

// LoadOrDefault falls back to defaults (plus env overrides) when the
// config file is missing or malformed.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnv(cfg)
		globalConfig = cfg
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if clientID := os.Getenv("CLIENT_ID"); clientID != "" {
		cfg.Bot.ClientID = clientID
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "modguard.db"},
		Log:      LogConfig{Level: "info", Path: "modguard.log"},
		Moderation: ModerationConfig{
			SpamThreshold:      5,
			SpamWindowSec:      5,
			SpamTimeoutMin:     5,
			RaidThreshold:      5,
			RaidWindowSec:      10,
			GuardThreshold:     2,
			GuardWindowSec:     5,
			MassMentionLimit:   5,
			MaxWarnings:        3,
			LockdownMinutes:    10,
			EphemeralNoticeSec: 5,
		},
		Tickets: TicketConfig{TranscriptLimit: 100},
	}
}

func Get() *Config {
	if globalConfig == nil {
		return DefaultConfig()
	}
	return globalConfig
}

func (m ModerationConfig) SpamWindow() time.Duration     { return time.Duration(m.SpamWindowSec) * time.Second }
func (m ModerationConfig) SpamTimeout() time.Duration    { return time.Duration(m.SpamTimeoutMin) * time.Minute }
func (m ModerationConfig) RaidWindow() time.Duration     { return time.Duration(m.RaidWindowSec) * time.Second }
func (m ModerationConfig) GuardWindow() time.Duration    { return time.Duration(m.GuardWindowSec) * time.Second }
func (m ModerationConfig) LockdownTime() time.Duration   { return time.Duration(m.LockdownMinutes) * time.Minute }
func (m ModerationConfig) EphemeralNotice() time.Duration {
	return time.Duration(m.EphemeralNoticeSec) * time.Second
}
