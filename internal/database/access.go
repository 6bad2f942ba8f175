package database

import "time"

// Whitelist and immune membership. The two sets are deliberately
// separate: whitelist shields a user from automated content-filter and
// security-guard remediation only, immune removes them from the warning
// pipeline entirely.

// AddWhitelist inserts a whitelist entry; duplicates are ignored.
func (d *Database) AddWhitelist(guildID, userID, addedBy string) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO whitelist (guild_id, user_id, added_by, created_at) VALUES (?, ?, ?, ?)`,
		guildID, userID, addedBy, time.Now().Unix(),
	)
	return err
}

func (d *Database) RemoveWhitelist(guildID, userID string) error {
	_, err := d.db.Exec(`DELETE FROM whitelist WHERE guild_id = ? AND user_id = ?`, guildID, userID)
	return err
}

func (d *Database) IsWhitelisted(guildID, userID string) bool {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM whitelist WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&count)
	return err == nil && count > 0
}

func (d *Database) ListWhitelist(guildID string) ([]*WhitelistEntry, error) {
	rows, err := d.db.Query(
		`SELECT guild_id, user_id, added_by, created_at FROM whitelist WHERE guild_id = ? ORDER BY created_at`,
		guildID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*WhitelistEntry
	for rows.Next() {
		var e WhitelistEntry
		if err := rows.Scan(&e.GuildID, &e.UserID, &e.AddedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// AddImmune inserts an immune entry; duplicates are ignored.
func (d *Database) AddImmune(guildID, userID, addedBy, reason string) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO immune (guild_id, user_id, added_by, reason, created_at) VALUES (?, ?, ?, ?, ?)`,
		guildID, userID, addedBy, reason, time.Now().Unix(),
	)
	return err
}

func (d *Database) RemoveImmune(guildID, userID string) error {
	_, err := d.db.Exec(`DELETE FROM immune WHERE guild_id = ? AND user_id = ?`, guildID, userID)
	return err
}

func (d *Database) IsImmune(guildID, userID string) bool {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM immune WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&count)
	return err == nil && count > 0
}

func (d *Database) ListImmune(guildID string) ([]*ImmuneEntry, error) {
	rows, err := d.db.Query(
		`SELECT guild_id, user_id, added_by, reason, created_at FROM immune WHERE guild_id = ? ORDER BY created_at`,
		guildID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*ImmuneEntry
	for rows.Next() {
		var e ImmuneEntry
		if err := rows.Scan(&e.GuildID, &e.UserID, &e.AddedBy, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
