package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gebrayel/ecommerce-simulator/models"
)

type OrderService struct {
	orders OrderRepository
	carts  CartRepository
}

func NewOrderService(orders OrderRepository, carts CartRepository) *OrderService {
	return &OrderService{orders: orders, carts: carts}
}

// CreateFromCart converts a non-empty cart into an immutable order
// snapshot and clears the cart in the same transaction. The delivery
// address is validated before the cart is touched.
func (s *OrderService) CreateFromCart(ctx context.Context, cartID int64, deliveryAddress string) (*models.Order, error) {
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryAddress == "" {
		return nil, fmt.Errorf("delivery address must not be blank: %w", ErrInvalidInput)
	}

	cart, err := s.carts.FindByID(ctx, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cart %d: %w", cartID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cannot create an order from an empty cart: %w", ErrInvalidState)
	}

	order := models.NewOrderFromCart(cart, deliveryAddress)
	if err := s.orders.CreateFromCart(ctx, order, cartID); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return order, nil
}

func (s *OrderService) FindByID(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.getOrNotFound(ctx, orderID)
}

func (s *OrderService) MarkAsPaid(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.getOrNotFound(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("cannot pay a cancelled order: %w", ErrInvalidState)
	}

	order.MarkAsPaid()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.getOrNotFound(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusPaid || order.Status == models.OrderStatusCompleted {
		return nil, fmt.Errorf("cannot cancel a paid or completed order: %w", ErrInvalidState)
	}

	order.Cancel()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return order, nil
}

func (s *OrderService) getOrNotFound(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}
