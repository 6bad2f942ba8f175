package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Database wraps the sqlite store that owns Warning, Ticket, whitelist,
// immune and GuildConfig rows. The engine is the sole writer.
type Database struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and
// ensures the schema exists.
func Open(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS warnings (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_warnings_member ON warnings(guild_id, user_id);
	CREATE INDEX IF NOT EXISTS idx_warnings_created ON warnings(created_at);

	CREATE TABLE IF NOT EXISTS tickets (
		channel_id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		creator_id TEXT NOT NULL,
		type TEXT NOT NULL,
		claimed_by TEXT DEFAULT '',
		closed INTEGER DEFAULT 0,
		created_at INTEGER NOT NULL,
		closed_at INTEGER DEFAULT 0
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_open_creator
		ON tickets(guild_id, creator_id) WHERE closed = 0;
	CREATE INDEX IF NOT EXISTS idx_tickets_guild ON tickets(guild_id);

	CREATE TABLE IF NOT EXISTS whitelist (
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		added_by TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		UNIQUE(guild_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS immune (
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		added_by TEXT NOT NULL,
		reason TEXT DEFAULT '',
		created_at INTEGER NOT NULL,
		UNIQUE(guild_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS guild_config (
		guild_id TEXT PRIMARY KEY,
		welcome_channel_id TEXT DEFAULT '',
		log_channel_id TEXT DEFAULT '',
		ticket_role_id TEXT DEFAULT '',
		admin_ids TEXT DEFAULT '',
		authorized_ids TEXT DEFAULT '',
		created_at INTEGER DEFAULT 0,
		updated_at INTEGER DEFAULT 0
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

// GetGuildConfig retrieves guild configuration, returning a fresh default
// when no row exists yet.
func (d *Database) GetGuildConfig(guildID string) (*GuildConfig, error) {
	var cfg GuildConfig
	err := d.db.QueryRow(
		`SELECT guild_id, welcome_channel_id, log_channel_id, ticket_role_id, admin_ids, authorized_ids, created_at, updated_at
		 FROM guild_config WHERE guild_id = ?`,
		guildID,
	).Scan(&cfg.GuildID, &cfg.WelcomeChannelID, &cfg.LogChannelID, &cfg.TicketRoleID,
		&cfg.AdminIDs, &cfg.AuthorizedIDs, &cfg.CreatedAt, &cfg.UpdatedAt)

	if err == sql.ErrNoRows {
		now := time.Now().Unix()
		return &GuildConfig{GuildID: guildID, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpsertGuildConfig creates or updates guild configuration.
func (d *Database) UpsertGuildConfig(cfg *GuildConfig) error {
	cfg.UpdatedAt = time.Now().Unix()
	if cfg.CreatedAt == 0 {
		cfg.CreatedAt = cfg.UpdatedAt
	}

	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO guild_config
		 (guild_id, welcome_channel_id, log_channel_id, ticket_role_id, admin_ids, authorized_ids, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.GuildID, cfg.WelcomeChannelID, cfg.LogChannelID, cfg.TicketRoleID,
		cfg.AdminIDs, cfg.AuthorizedIDs, cfg.CreatedAt, cfg.UpdatedAt,
	)
	return err
}
