package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gebrayel/ecommerce-simulator/models"
	"github.com/gebrayel/ecommerce-simulator/security"
)

type CreditCardService struct {
	cards  CreditCardRepository
	tokens *security.CardTokenService
}

func NewCreditCardService(cards CreditCardRepository, tokens *security.CardTokenService) *CreditCardService {
	return &CreditCardService{cards: cards, tokens: tokens}
}

// RegisterCard validates and stores hashed card data, then mints the
// card's access token. The returned record carries the one-time
// PlainToken; once the response is gone the token cannot be re-derived.
func (s *CreditCardService) RegisterCard(ctx context.Context, userID int64, cardNumber, cvv string, expiryMonth, expiryYear int) (*models.CreditCard, error) {
	if err := validateCardData(cardNumber, cvv, expiryMonth, expiryYear); err != nil {
		return nil, err
	}

	card := &models.CreditCard{
		UserID:         userID,
		CardNumberHash: security.HashSensitive(cardNumber + ":" + cvv),
		LastFourDigits: lastFour(cardNumber),
		ExpiryMonth:    expiryMonth,
		ExpiryYear:     expiryYear,
		CreatedAt:      time.Now(),
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	generated := s.tokens.Generate(card.ID, card.UserID)
	card.TokenID = generated.TokenID
	card.TokenSignature = generated.Signature
	if err := s.cards.AttachToken(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to attach card token: %w", err)
	}

	card.PlainToken = generated.Token
	return card, nil
}

func (s *CreditCardService) FindByUser(ctx context.Context, userID int64) ([]models.CreditCard, error) {
	cards, err := s.cards.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// FindByToken resolves a card from its bearer token. Malformed tokens,
// unknown (cardId, tokenId) pairs and signature mismatches all come back
// as (nil, nil): a forged token is indistinguishable from an absent one.
func (s *CreditCardService) FindByToken(ctx context.Context, token string) (*models.CreditCard, error) {
	components, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil
	}

	card, err := s.cards.FindByCardIDAndTokenID(ctx, components.CardID, components.TokenID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load card: %w", err)
	}

	if !s.tokens.IsValid(card.ID, card.UserID, card.TokenID, components.Signature) {
		return nil, nil
	}
	return card, nil
}

func validateCardData(cardNumber, cvv string, expiryMonth, expiryYear int) error {
	if len(cardNumber) < 12 || len(cardNumber) > 19 {
		return fmt.Errorf("card number must be 12-19 digits: %w", ErrInvalidInput)
	}
	if !allDigits(cardNumber) {
		return fmt.Errorf("card number must be numeric: %w", ErrInvalidInput)
	}
	if len(cvv) < 3 || len(cvv) > 4 || !allDigits(cvv) {
		return fmt.Errorf("invalid cvv: %w", ErrInvalidInput)
	}
	if expiryMonth < 1 || expiryMonth > 12 {
		return fmt.Errorf("invalid expiry month: %w", ErrInvalidInput)
	}
	now := time.Now()
	if expiryYear < now.Year() {
		return fmt.Errorf("invalid expiry year: %w", ErrInvalidInput)
	}
	if expiryYear == now.Year() && expiryMonth < int(now.Month()) {
		return fmt.Errorf("card is expired: %w", ErrInvalidInput)
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func lastFour(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
