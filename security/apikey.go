package security

import (
	"crypto/subtle"
	"errors"
)

var ErrInvalidAPIKey = errors.New("invalid or missing API key")

type APIKeyValidator struct {
	expected string
}

func NewAPIKeyValidator(expected string) *APIKeyValidator {
	return &APIKeyValidator{expected: expected}
}

func (v *APIKeyValidator) Validate(provided string) error {
	if provided == "" {
		return ErrInvalidAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(v.expected), []byte(provided)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}
