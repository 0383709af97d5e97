package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gebrayel/ecommerce-simulator/models"
)

type CartService struct {
	carts   CartRepository
	users   UserDirectory
	catalog ProductCatalog
}

func NewCartService(carts CartRepository, users UserDirectory, catalog ProductCatalog) *CartService {
	return &CartService{carts: carts, users: users, catalog: catalog}
}

// CreateCart seeds a new cart with the user's contact snapshot as it is
// at creation time.
func (s *CartService) CreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	cart := models.NewCart(*user)
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, cartID, productID int64, quantity int) (*models.Cart, error) {
	cart, err := s.getOrNotFound(ctx, cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	cart.UpsertItem(models.CartItem{
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductDescription: product.Description,
		Quantity:           quantity,
		Price:              product.Price,
	})

	if err := s.carts.Update(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID int64) (*models.Cart, error) {
	cart, err := s.getOrNotFound(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.carts.Update(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, cartID int64) (*models.Cart, error) {
	cart, err := s.getOrNotFound(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.ClearItems()

	if err := s.carts.Update(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) GetByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	return s.getOrNotFound(ctx, cartID)
}

func (s *CartService) getOrNotFound(ctx context.Context, cartID int64) (*models.Cart, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cart %d: %w", cartID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}
