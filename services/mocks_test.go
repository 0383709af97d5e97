package services

import (
	"context"
	"database/sql"

	"github.com/gebrayel/ecommerce-simulator/models"
)

// Hand-written in-memory fakes. Each keeps its rows in a map and
// reports missing ids as sql.ErrNoRows like the real repositories.

type fakeCartRepo struct {
	carts  map[int64]*models.Cart
	nextID int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[int64]*models.Cart{}, nextID: 1}
}

func (r *fakeCartRepo) Create(_ context.Context, cart *models.Cart) error {
	cart.ID = r.nextID
	r.nextID++
	copied := *cart
	r.carts[cart.ID] = &copied
	return nil
}

func (r *fakeCartRepo) Update(_ context.Context, cart *models.Cart) error {
	if _, ok := r.carts[cart.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	r.carts[cart.ID] = &copied
	return nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id int64) (*models.Cart, error) {
	cart, ok := r.carts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

type fakeOrderRepo struct {
	orders    map[int64]*models.Order
	cartRepo  *fakeCartRepo
	nextID    int64
	updateLog []models.OrderStatus
}

func newFakeOrderRepo(cartRepo *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*models.Order{}, cartRepo: cartRepo, nextID: 1}
}

func (r *fakeOrderRepo) CreateFromCart(_ context.Context, order *models.Order, cartID int64) error {
	order.ID = r.nextID
	r.nextID++
	copied := *order
	r.orders[order.ID] = &copied
	if r.cartRepo != nil {
		if cart, ok := r.cartRepo.carts[cartID]; ok {
			cart.ClearItems()
		}
	}
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *models.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *order
	r.orders[order.ID] = &copied
	r.updateLog = append(r.updateLog, order.Status)
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (r *fakeOrderRepo) put(order *models.Order) *models.Order {
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	copied := *order
	r.orders[order.ID] = &copied
	return order
}

type fakePaymentRepo struct {
	payments map[int64]*models.Payment
	nextID   int64
	writes   []string // "create" / "update", to assert write ordering
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[int64]*models.Payment{}, nextID: 1}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = r.nextID
	r.nextID++
	copied := *payment
	r.payments[payment.ID] = &copied
	r.writes = append(r.writes, "create")
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *payment
	r.payments[payment.ID] = &copied
	r.writes = append(r.writes, "update")
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id int64) (*models.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *payment
	return &copied, nil
}

type fakeCardRepo struct {
	cards  map[int64]*models.CreditCard
	nextID int64
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: map[int64]*models.CreditCard{}, nextID: 1}
}

func (r *fakeCardRepo) Create(_ context.Context, card *models.CreditCard) error {
	card.ID = r.nextID
	r.nextID++
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeCardRepo) AttachToken(_ context.Context, card *models.CreditCard) error {
	stored, ok := r.cards[card.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.TokenID = card.TokenID
	stored.TokenSignature = card.TokenSignature
	return nil
}

func (r *fakeCardRepo) FindByUserID(_ context.Context, userID int64) ([]models.CreditCard, error) {
	var out []models.CreditCard
	for _, card := range r.cards {
		if card.UserID == userID {
			out = append(out, *card)
		}
	}
	return out, nil
}

func (r *fakeCardRepo) FindByCardIDAndTokenID(_ context.Context, cardID int64, tokenID string) (*models.CreditCard, error) {
	card, ok := r.cards[cardID]
	if !ok || card.TokenID != tokenID {
		return nil, sql.ErrNoRows
	}
	copied := *card
	return &copied, nil
}

type fakeSettingsRepo struct {
	settings *models.OrderSettings
}

func (r *fakeSettingsRepo) Find(_ context.Context) (*models.OrderSettings, error) {
	if r.settings == nil {
		return nil, sql.ErrNoRows
	}
	copied := *r.settings
	return &copied, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *models.OrderSettings) error {
	copied := *settings
	r.settings = &copied
	return nil
}

type fakeUserDirectory struct {
	users map[int64]models.UserSnapshot
}

func (d *fakeUserDirectory) FindByID(_ context.Context, userID int64) (*models.UserSnapshot, error) {
	user, ok := d.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type fakeProductCatalog struct {
	products map[int64]models.ProductSnapshot
}

func (p *fakeProductCatalog) FindByID(_ context.Context, productID int64) (*models.ProductSnapshot, error) {
	product, ok := p.products[productID]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// sequenceDraw returns the queued values in order, then repeats the last.
func sequenceDraw(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}
