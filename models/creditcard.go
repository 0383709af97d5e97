package models

import "time"

type CreditCard struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	CardNumberHash string    `json:"-"`
	LastFourDigits string    `json:"last_four_digits"`
	ExpiryMonth    int       `json:"expiry_month"`
	ExpiryYear     int       `json:"expiry_year"`
	TokenID        string    `json:"token_id"`
	TokenSignature string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`

	// PlainToken is only populated on the registration response. It is
	// never persisted and cannot be re-derived without the HMAC key.
	PlainToken string `json:"token,omitempty"`
}

type RegisterCardRequest struct {
	CardNumber  string `json:"card_number" binding:"required"`
	CVV         string `json:"cvv" binding:"required"`
	ExpiryMonth int    `json:"expiry_month" binding:"required"`
	ExpiryYear  int    `json:"expiry_year" binding:"required"`
}
