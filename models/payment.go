package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type Payment struct {
	ID           int64         `json:"id"`
	OrderID      int64         `json:"order_id"`
	Amount       float64       `json:"amount"`
	Method       string        `json:"method"`
	Status       PaymentStatus `json:"status"`
	CreditCardID int64         `json:"credit_card_id"`
	CardTokenID  string        `json:"card_token_id"`
	CardLastFour string        `json:"card_last_four"`
	Attempts     int           `json:"attempts"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func NewPayment(orderID int64, amount float64, method string, card *CreditCard) *Payment {
	now := time.Now()
	return &Payment{
		OrderID:      orderID,
		Amount:       amount,
		Method:       method,
		Status:       PaymentStatusPending,
		CreditCardID: card.ID,
		CardTokenID:  card.TokenID,
		CardLastFour: card.LastFourDigits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (p *Payment) MarkCompleted() {
	p.Status = PaymentStatusCompleted
	p.UpdatedAt = time.Now()
}

func (p *Payment) MarkFailed() {
	p.Status = PaymentStatusFailed
	p.UpdatedAt = time.Now()
}

type CreatePaymentRequest struct {
	OrderID   int64   `json:"order_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required"`
	CardToken string  `json:"card_token" binding:"required"`
}

type PaymentEvent struct {
	PaymentID int64         `json:"payment_id"`
	OrderID   int64         `json:"order_id"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	Attempts  int           `json:"attempts"`
	EventType string        `json:"event_type"` // payment_completed, payment_failed
}
