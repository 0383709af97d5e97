package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebrayel/ecommerce-simulator/models"
)

func newCartFixture() (*CartService, *fakeCartRepo) {
	carts := newFakeCartRepo()
	users := &fakeUserDirectory{users: map[int64]models.UserSnapshot{
		7: {ID: 7, Email: "ana@example.com", Name: "Ana", Phone: "555-0100", Address: "1 Main St"},
	}}
	catalog := &fakeProductCatalog{products: map[int64]models.ProductSnapshot{
		1: {ID: 1, Name: "Keyboard", Description: "Mechanical", Price: 80},
		2: {ID: 2, Name: "Mouse", Description: "Wireless", Price: 25.5},
	}}
	return NewCartService(carts, users, catalog), carts
}

func TestCreateCartSnapshotsUser(t *testing.T) {
	svc, _ := newCartFixture()

	cart, err := svc.CreateCart(context.Background(), 7)
	require.NoError(t, err)

	assert.NotZero(t, cart.ID)
	assert.Equal(t, int64(7), cart.UserID)
	assert.Equal(t, "ana@example.com", cart.UserEmail)
	assert.Equal(t, "1 Main St", cart.UserAddress)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCreateCartUnknownUser(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.CreateCart(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemKeepsTotalConsistent(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, 7)
	require.NoError(t, err)

	cart, err = svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 160.0, cart.Total, 1e-9)

	cart, err = svc.AddItem(ctx, cart.ID, 2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 185.5, cart.Total, 1e-9)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, 7)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)
	cart, err = svc.AddItem(ctx, cart.ID, 1, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.InDelta(t, 400.0, cart.Total, 1e-9)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, 7)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, cart.ID, 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemUnknownCart(t *testing.T) {
	svc, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 404, 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItemRecalculatesTotal(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, 7)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 2, 4)
	require.NoError(t, err)

	cart, err = svc.RemoveItem(ctx, cart.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].ProductID)
	assert.InDelta(t, 102.0, cart.Total, 1e-9)
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, 7)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 1, 1)
	require.NoError(t, err)

	cart, err = svc.RemoveItem(ctx, cart.ID, 999)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.InDelta(t, 80.0, cart.Total, 1e-9)
}

func TestClearCartEmptiesItemsAndTotal(t *testing.T) {
	svc, repo := newCartFixture()
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, 7)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 1, 3)
	require.NoError(t, err)

	cart, err = svc.ClearCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	stored, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
	assert.Zero(t, stored.Total)
}
