package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gebrayel/ecommerce-simulator/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateFromCart inserts the order and empties the source cart in one
// transaction. Placing an order and clearing the cart either both happen
// or neither does.
func (r *OrderRepository) CreateFromCart(ctx context.Context, order *models.Order, cartID int64) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, delivery_address, items, total, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		order.UserID, order.DeliveryAddress, items, order.Total, order.Status,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE carts SET items = '[]', total = 0, updated_at = $1 WHERE id = $2`,
		time.Now(), cartID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		order.Status, order.UpdatedAt, order.ID,
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

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	var items []byte

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, delivery_address, items, total, status, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.UserID, &order.DeliveryAddress, &items, &order.Total,
		&order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	return &order, nil
}
