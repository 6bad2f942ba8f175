package database

import "time"

// warningRetention is enforced by the store: warnings older than this are
// invisible to counts/lists and removed by the retention sweep.
const warningRetention = 90 * 24 * time.Hour

// AddWarning persists a new warning row.
func (d *Database) AddWarning(w *Warning) error {
	if w.CreatedAt == 0 {
		w.CreatedAt = time.Now().Unix()
	}
	_, err := d.db.Exec(
		`INSERT INTO warnings (id, guild_id, user_id, reason, moderator_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.GuildID, w.UserID, w.Reason, w.ModeratorID, w.CreatedAt,
	)
	return err
}

// CountWarnings returns the number of non-expired warnings for a member.
func (d *Database) CountWarnings(guildID, userID string) (int, error) {
	cutoff := time.Now().Add(-warningRetention).Unix()
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM warnings WHERE guild_id = ? AND user_id = ? AND created_at > ?`,
		guildID, userID, cutoff,
	).Scan(&count)
	return count, err
}

// ListWarnings returns the non-expired warnings for a member, newest first.
func (d *Database) ListWarnings(guildID, userID string) ([]*Warning, error) {
	cutoff := time.Now().Add(-warningRetention).Unix()
	rows, err := d.db.Query(
		`SELECT id, guild_id, user_id, reason, moderator_id, created_at
		 FROM warnings WHERE guild_id = ? AND user_id = ? AND created_at > ?
		 ORDER BY created_at DESC`,
		guildID, userID, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warnings []*Warning
	for rows.Next() {
		var w Warning
		if err := rows.Scan(&w.ID, &w.GuildID, &w.UserID, &w.Reason, &w.ModeratorID, &w.CreatedAt); err != nil {
			return nil, err
		}
		warnings = append(warnings, &w)
	}
	return warnings, rows.Err()
}

// DeleteWarnings removes every warning for a member. Called after an
// escalation kick and by the clear-warnings command.
func (d *Database) DeleteWarnings(guildID, userID string) error {
	_, err := d.db.Exec(
		`DELETE FROM warnings WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	)
	return err
}

// DeleteWarning removes a single warning by id. Returns whether a row
// was actually deleted.
func (d *Database) DeleteWarning(id string) (bool, error) {
	res, err := d.db.Exec(`DELETE FROM warnings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
