package models

import "time"

// OrderSettings tunes the payment simulator. A single row holds the
// current values; reads fall back to the defaults below when it is absent.
type OrderSettings struct {
	ID                       int64     `json:"id"`
	CardRejectionProbability float64   `json:"card_rejection_probability"`
	PaymentRetryAttempts     int       `json:"payment_retry_attempts"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func DefaultOrderSettings() *OrderSettings {
	return &OrderSettings{
		CardRejectionProbability: 0.0,
		PaymentRetryAttempts:     1,
	}
}

// Clamp forces the probability into [0,1] and the retry budget to at
// least one attempt.
func (s *OrderSettings) Clamp() {
	if s.CardRejectionProbability < 0 {
		s.CardRejectionProbability = 0
	}
	if s.CardRejectionProbability > 1 {
		s.CardRejectionProbability = 1
	}
	if s.PaymentRetryAttempts < 1 {
		s.PaymentRetryAttempts = 1
	}
}

type UpdateSettingsRequest struct {
	CardRejectionProbability *float64 `json:"card_rejection_probability"`
	PaymentRetryAttempts     *int     `json:"payment_retry_attempts"`
}
