package database

import (
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
)

// Retention: the store, not the engine, enforces the two TTL policies —
// warnings expire 90 days after creation, closed tickets purge 30 days
// after closure.

// PurgeExpiredWarnings deletes warnings past retention. Returns rows removed.
func (d *Database) PurgeExpiredWarnings(now time.Time) (int64, error) {
	cutoff := now.Add(-warningRetention).Unix()
	res, err := d.db.Exec(`DELETE FROM warnings WHERE created_at <= ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PurgeExpiredTickets deletes closed tickets past retention. Returns rows removed.
func (d *Database) PurgeExpiredTickets(now time.Time) (int64, error) {
	cutoff := now.Add(-ticketRetention).Unix()
	res, err := d.db.Exec(`DELETE FROM tickets WHERE closed = 1 AND closed_at <= ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartRetentionSweeper runs both purges on an interval until the
// returned stop function is called.
func (d *Database) StartRetentionSweeper(interval time.Duration) func() {
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				now := time.Now()
				if n, err := d.PurgeExpiredWarnings(now); err != nil {
					logging.Error("Warning retention sweep failed: %v", err)
				} else if n > 0 {
					logging.Info("Retention sweep removed %d expired warnings", n)
				}
				if n, err := d.PurgeExpiredTickets(now); err != nil {
					logging.Error("Ticket retention sweep failed: %v", err)
				} else if n > 0 {
					logging.Info("Retention sweep removed %d expired tickets", n)
				}
			}
		}
	}()

	return func() { close(stop) }
}
