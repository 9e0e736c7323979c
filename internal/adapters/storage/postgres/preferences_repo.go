package postgres

import (
	"context"
	"database/sql"
	"strings"

	"health-companion/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

func (r *PreferencesRepo) Get(ctx context.Context, userID string) (preferences.Preferences, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return preferences.Preferences{}, false, nil
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, reminders_enabled, theme
		FROM preferences
		WHERE user_id = $1
	`, userID)

	var p preferences.Preferences
	if err := row.Scan(&p.UserID, &p.RemindersEnabled, &p.Theme); err != nil {
		if err == sql.ErrNoRows {
			return preferences.Preferences{}, false, nil
		}
		return preferences.Preferences{}, false, err
	}

	return p, true, nil
}

func (r *PreferencesRepo) Put(ctx context.Context, p preferences.Preferences) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, reminders_enabled, theme)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id) DO UPDATE
		SET reminders_enabled = EXCLUDED.reminders_enabled,
		    theme = EXCLUDED.theme
	`,
		p.UserID,
		p.RemindersEnabled,
		p.Theme,
	)
	return err
}
