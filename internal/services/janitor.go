package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	// failedLoginRetention is how long resolved failure rows linger before
	// the janitor drops them; well past any lockout window.
	failedLoginRetention = 7 * 24 * time.Hour

	// Idle accounts are removed after three months when they never joined a
	// group, and after a year regardless.
	ungroupedIdleCutoff = 90 * 24 * time.Hour
	anyIdleCutoff       = 365 * 24 * time.Hour
)

// Janitor periodically sweeps rows nothing reads anymore: elapsed session
// tokens, stale failure counters, idle accounts and the links, ratings and
// empty groups they leave behind. Every request-path check stands on its
// own; the janitor only keeps the tables from growing without bound.
type Janitor struct {
	database *gorm.DB
	log      zerolog.Logger
	interval time.Duration
	now      func() time.Time
}

func NewJanitor(database *gorm.DB, log zerolog.Logger, interval time.Duration) *Janitor {
	return &Janitor{
		database: database,
		log:      log.With().Str("component", "janitor").Logger(),
		interval: interval,
		now:      time.Now,
	}
}

func (janitor *Janitor) WithClock(now func() time.Time) *Janitor {
	janitor.now = now
	return janitor
}

// Start runs one sweep immediately and then on every tick until the context
// is cancelled.
func (janitor *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(janitor.interval)
	go func() {
		defer ticker.Stop()

		janitor.Sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				janitor.Sweep(ctx)
			}
		}
	}()
}

// Sweep runs every cleanup pass once. Each pass logs and moves on when it
// fails, so one broken statement never blocks the others.
func (janitor *Janitor) Sweep(ctx context.Context) {
	now := janitor.now()

	passes := []struct {
		name string
		sql  string
		args []any
	}{
		{
			name: "expired sessions",
			sql: `UPDATE users SET session_token = NULL, session_expiration = NULL
WHERE session_expiration IS NOT NULL AND session_expiration <= ?`,
			args: []any{now},
		},
		{
			name: "stale failed logins",
			sql:  `DELETE FROM failed_logins WHERE last_attempt < ?`,
			args: []any{now.Add(-failedLoginRetention)},
		},
		{
			name: "idle ungrouped accounts",
			sql: `DELETE FROM users WHERE last_login < ?
AND user_id NOT IN (SELECT user_id FROM link_users)`,
			args: []any{now.Add(-ungroupedIdleCutoff)},
		},
		{
			name: "idle accounts",
			sql:  `DELETE FROM users WHERE last_login < ?`,
			args: []any{now.Add(-anyIdleCutoff)},
		},
		{
			name: "orphaned links",
			sql:  `DELETE FROM link_users WHERE user_id NOT IN (SELECT user_id FROM users)`,
		},
		{
			name: "orphaned likes",
			sql:  `DELETE FROM user_liked WHERE user_id NOT IN (SELECT user_id FROM users)`,
		},
		{
			name: "orphaned dislikes",
			sql:  `DELETE FROM user_disliked WHERE user_id NOT IN (SELECT user_id FROM users)`,
		},
		{
			name: "empty groups",
			sql:  `DELETE FROM groups WHERE group_id NOT IN (SELECT group_id FROM link_users)`,
		},
	}

	for _, pass := range passes {
		result := janitor.database.WithContext(ctx).Exec(pass.sql, pass.args...)
		if result.Error != nil {
			janitor.log.Error().Err(result.Error).Str("pass", pass.name).Msg("sweep pass failed")
			continue
		}
		if result.RowsAffected > 0 {
			janitor.log.Info().Str("pass", pass.name).Int64("rows", result.RowsAffected).Msg("swept")
		}
	}
}
