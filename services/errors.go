package services

import "errors"

// Failure taxonomy surfaced to the HTTP layer. Services wrap these with
// context via fmt.Errorf("...: %w", ...); handlers match with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
)
