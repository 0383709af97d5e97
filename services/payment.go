package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gebrayel/ecommerce-simulator/models"
)

// CardResolver is the slice of CreditCardService the payment flow needs.
type CardResolver interface {
	FindByToken(ctx context.Context, token string) (*models.CreditCard, error)
}

// SettingsReader provides the simulator tunables read before each
// payment registration.
type SettingsReader interface {
	GetSettings(ctx context.Context) (*models.OrderSettings, error)
}

type PaymentService struct {
	payments PaymentRepository
	orders   OrderRepository
	cards    CardResolver
	settings SettingsReader

	// draw returns one uniform value in [0,1) per approval attempt.
	// Injectable so tests can force outcomes without patching global
	// randomness.
	draw func() float64
}

func NewPaymentService(payments PaymentRepository, orders OrderRepository, cards CardResolver, settings SettingsReader) *PaymentService {
	return &PaymentService{
		payments: payments,
		orders:   orders,
		cards:    cards,
		settings: settings,
		draw:     rand.Float64,
	}
}

// WithDraw replaces the approval draw. Test seam.
func (s *PaymentService) WithDraw(draw func() float64) *PaymentService {
	s.draw = draw
	return s
}

// RegisterPayment runs the approval simulator for one order/card pair.
// An attempt is approved when its draw is >= the configured rejection
// probability; the loop stops on the first approval or after the retry
// budget is spent. Exhausting the budget is a normal FAILED outcome.
//
// The payment row is always written before any order mutation, and the
// order only transitions to PAID after the payment is durably COMPLETED.
func (s *PaymentService) RegisterPayment(ctx context.Context, userID, orderID int64, amount float64, method, cardToken string) (*models.Payment, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.UserID != userID {
		return nil, fmt.Errorf("order does not belong to the authenticated user: %w", ErrUnauthorized)
	}

	card, err := s.cards.FindByToken(ctx, cardToken)
	if err != nil {
		return nil, fmt.Errorf("card token resolution failed: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("invalid card token: %w", ErrUnauthorized)
	}

	if card.UserID != userID {
		return nil, fmt.Errorf("card does not belong to the authenticated user: %w", ErrUnauthorized)
	}

	if cardExpired(card) {
		return nil, fmt.Errorf("card is expired: %w", ErrUnauthorized)
	}

	payment := models.NewPayment(orderID, amount, method, card)

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	rejectionProbability := clampProbability(settings.CardRejectionProbability)
	maxRetries := settings.PaymentRetryAttempts
	if maxRetries < 1 {
		maxRetries = 1
	}

	attempts := 0
	approved := false
	for attempts < maxRetries {
		attempts++
		if s.draw() >= rejectionProbability {
			approved = true
			break
		}
	}
	payment.Attempts = attempts

	if !approved {
		payment.MarkFailed()
		if err := s.payments.Create(ctx, payment); err != nil {
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}
		return payment, nil
	}

	payment.MarkCompleted()
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	order.MarkAsPaid()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return payment, nil
}

// MarkAsCompleted is the out-of-band settlement confirmation. It forces
// the owning order to PAID regardless of the order's current status.
func (s *PaymentService) MarkAsCompleted(ctx context.Context, paymentID int64) (*models.Payment, error) {
	payment, err := s.getOrNotFound(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment.MarkCompleted()
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	order, err := s.orders.FindByID(ctx, payment.OrderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", payment.OrderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	order.MarkAsPaid()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	return payment, nil
}

func (s *PaymentService) MarkAsFailed(ctx context.Context, paymentID int64) (*models.Payment, error) {
	payment, err := s.getOrNotFound(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment.MarkFailed()
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	return payment, nil
}

func (s *PaymentService) FindByID(ctx context.Context, paymentID int64) (*models.Payment, error) {
	return s.getOrNotFound(ctx, paymentID)
}

func (s *PaymentService) getOrNotFound(ctx context.Context, paymentID int64) (*models.Payment, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return payment, nil
}

func cardExpired(card *models.CreditCard) bool {
	now := time.Now()
	if card.ExpiryYear != now.Year() {
		return card.ExpiryYear < now.Year()
	}
	return card.ExpiryMonth < int(now.Month())
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
