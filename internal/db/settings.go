package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/academic-tracker/internal/types"
)

// LoadSettings returns the saved settings or the defaults when none are saved
func (db *DB) LoadSettings(ctx context.Context) (types.AppSettings, error) {
	var settings types.AppSettings
	var theme string
	err := db.pool.QueryRow(ctx,
		`SELECT grading_scale, theme FROM app_settings WHERE id = 1`,
	).Scan(&settings.GradingScale, &theme)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.DefaultSettings(), nil
		}
		return types.AppSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	settings.Theme = types.Theme(theme)
	return settings, nil
}

// SaveSettings upserts the single settings row
func (db *DB) SaveSettings(ctx context.Context, settings types.AppSettings) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO app_settings (id, grading_scale, theme)
		 VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET
		   grading_scale = EXCLUDED.grading_scale,
		   theme = EXCLUDED.theme,
		   updated_at = NOW()`,
		settings.GradingScale, string(settings.Theme),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
