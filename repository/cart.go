package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gebrayel/ecommerce-simulator/models"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	return r.db.QueryRowContext(ctx,
		`INSERT INTO carts (user_id, user_email, user_name, user_phone, user_address, items, total, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		cart.UserID, cart.UserEmail, cart.UserName, cart.UserPhone, cart.UserAddress,
		items, cart.Total, cart.CreatedAt, cart.UpdatedAt,
	).Scan(&cart.ID)
}

func (r *CartRepository) Update(ctx context.Context, cart *models.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE carts SET items = $1, total = $2, updated_at = $3 WHERE id = $4`,
		items, cart.Total, cart.UpdatedAt, cart.ID,
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

func (r *CartRepository) FindByID(ctx context.Context, id int64) (*models.Cart, error) {
	var cart models.Cart
	var items []byte

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, user_email, user_name, user_phone, user_address, items, total, created_at, updated_at
		 FROM carts WHERE id = $1`, id,
	).Scan(&cart.ID, &cart.UserID, &cart.UserEmail, &cart.UserName, &cart.UserPhone,
		&cart.UserAddress, &items, &cart.Total, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}
	return &cart, nil
}
