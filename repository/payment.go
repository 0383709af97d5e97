package repository

import (
	"context"
	"database/sql"

	"github.com/gebrayel/ecommerce-simulator/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO payments (order_id, amount, method, status, credit_card_id, card_token_id, card_last_four, attempts, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		payment.OrderID, payment.Amount, payment.Method, payment.Status,
		payment.CreditCardID, payment.CardTokenID, payment.CardLastFour,
		payment.Attempts, payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID)
}

func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = $1, attempts = $2, updated_at = $3 WHERE id = $4`,
		payment.Status, payment.Attempts, payment.UpdatedAt, payment.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.QueryRowContext(ctx,
		`SELECT id, order_id, amount, method, status, credit_card_id, card_token_id, card_last_four, attempts, created_at, updated_at
		 FROM payments WHERE id = $1`, id,
	).Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Method, &payment.Status,
		&payment.CreditCardID, &payment.CardTokenID, &payment.CardLastFour,
		&payment.Attempts, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
