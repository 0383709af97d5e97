package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gebrayel/ecommerce-simulator/models"
)

// settingsRowID pins the settings to a single row.
const settingsRowID = 1

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Find(ctx context.Context) (*models.OrderSettings, error) {
	var settings models.OrderSettings
	err := r.db.QueryRowContext(ctx,
		`SELECT id, card_rejection_probability, payment_retry_attempts, updated_at
		 FROM order_settings WHERE id = $1`, settingsRowID,
	).Scan(&settings.ID, &settings.CardRejectionProbability,
		&settings.PaymentRetryAttempts, &settings.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *models.OrderSettings) error {
	settings.ID = settingsRowID
	settings.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO order_settings (id, card_rejection_probability, payment_retry_attempts, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
			card_rejection_probability = EXCLUDED.card_rejection_probability,
			payment_retry_attempts = EXCLUDED.payment_retry_attempts,
			updated_at = EXCLUDED.updated_at`,
		settings.ID, settings.CardRejectionProbability,
		settings.PaymentRetryAttempts, settings.UpdatedAt,
	)
	return err
}
