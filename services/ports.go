package services

import (
	"context"

	"github.com/gebrayel/ecommerce-simulator/models"
)

// Persistence ports. Implementations report a missing row as
// sql.ErrNoRows, which services translate into ErrNotFound.

type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	Update(ctx context.Context, cart *models.Cart) error
	FindByID(ctx context.Context, id int64) (*models.Cart, error)
}

type OrderRepository interface {
	CreateFromCart(ctx context.Context, order *models.Order, cartID int64) error
	Update(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id int64) (*models.Payment, error)
}

type CreditCardRepository interface {
	Create(ctx context.Context, card *models.CreditCard) error
	AttachToken(ctx context.Context, card *models.CreditCard) error
	FindByUserID(ctx context.Context, userID int64) ([]models.CreditCard, error)
	FindByCardIDAndTokenID(ctx context.Context, cardID int64, tokenID string) (*models.CreditCard, error)
}

type SettingsRepository interface {
	Find(ctx context.Context) (*models.OrderSettings, error)
	Save(ctx context.Context, settings *models.OrderSettings) error
}

// Collaborator ports over the users and catalog services. A nil snapshot
// with a nil error means the resource does not exist.

type UserDirectory interface {
	FindByID(ctx context.Context, userID int64) (*models.UserSnapshot, error)
}

type ProductCatalog interface {
	FindByID(ctx context.Context, productID int64) (*models.ProductSnapshot, error)
}
