package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gebrayel/ecommerce-simulator/models"
)

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings returns the stored simulator settings, or the defaults
// (probability 0, one attempt) when none were ever saved.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.OrderSettings, error) {
	settings, err := s.repo.Find(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultOrderSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies the requested values with clamping; fields left
// nil in the request reset to their defaults (probability 0, one attempt).
func (s *SettingsService) UpdateSettings(ctx context.Context, req models.UpdateSettingsRequest) (*models.OrderSettings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.CardRejectionProbability != nil {
		current.CardRejectionProbability = *req.CardRejectionProbability
	} else {
		current.CardRejectionProbability = 0
	}
	if req.PaymentRetryAttempts != nil {
		current.PaymentRetryAttempts = *req.PaymentRetryAttempts
	} else {
		current.PaymentRetryAttempts = 1
	}
	current.Clamp()

	if err := s.repo.Save(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return current, nil
}
