package service

import (
	"context"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (*CartService, *models.User, *models.Product) {
	t.Helper()
	db := setupTestDB(t)

	user := createTestUser(t, db, "shopper", models.RoleUser)
	category := createTestCategory(t, db, "Electronics", "electronics")
	product := createTestProduct(t, db, category.ID, "usb-hub", 2499, 10)

	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, user, product
}

func TestAddItemQuantityBounds(t *testing.T) {
	svc, user, product := newCartService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{"zero rejected", 0, true},
		{"negative rejected", -1, true},
		{"over max rejected", 100, true},
		{"minimum accepted", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: tt.quantity})
			if tt.wantErr {
				assertAppErrorCode(t, err, models.CodeValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, user, product := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.AddItem(ctx, AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 5, resp.Cart.Items[0].Quantity)
	assert.Equal(t, int64(5*2499), resp.SubtotalCents)
}

func TestAddItemInsufficientStock(t *testing.T) {
	svc, user, product := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: 8})
	require.NoError(t, err)

	// merged quantity 11 exceeds stock of 10
	_, err = svc.AddItem(ctx, AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: 3})
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestAddItemInactiveProductHidden(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "shopper", models.RoleUser)
	category := createTestCategory(t, db, "Electronics", "electronics")
	product := createTestProduct(t, db, category.ID, "retired-hub", 999, 5)
	require.NoError(t, db.Model(product).Update("active", false).Error)

	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	_, err := svc.AddItem(context.Background(), AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: 1})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestUpdateItemZeroRemovesLine(t *testing.T) {
	svc, user, product := newCartService(t)
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	itemID := resp.Cart.Items[0].ID

	resp, err = svc.UpdateItem(ctx, UpdateCartItemInput{ActorID: user.ID, ItemID: itemID, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, resp.Cart.Items)
	assert.Equal(t, int64(0), resp.SubtotalCents)
}

func TestUpdateItemForeignLineReadsAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner", models.RoleUser)
	intruder := createTestUser(t, db, "intruder", models.RoleUser)
	category := createTestCategory(t, db, "Electronics", "electronics")
	product := createTestProduct(t, db, category.ID, "usb-hub", 2499, 10)

	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, AddCartItemInput{ActorID: owner.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	itemID := resp.Cart.Items[0].ID

	_, err = svc.UpdateItem(ctx, UpdateCartItemInput{ActorID: intruder.ID, ItemID: itemID, Quantity: 5})
	assertAppErrorCode(t, err, models.CodeNotFound)

	_, err = svc.RemoveItem(ctx, intruder.ID, itemID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestClearCart(t *testing.T) {
	svc, user, product := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, AddCartItemInput{ActorID: user.ID, ProductID: product.ID, Quantity: 4})
	require.NoError(t, err)

	resp, err := svc.ClearCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Cart.Items)
}
