package service

import (
	"context"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWishlistService(t *testing.T) (*WishlistService, *gorm.DB, *models.User, *models.Product) {
	t.Helper()
	db := setupTestDB(t)

	user := createTestUser(t, db, "collector", models.RoleUser)
	category := createTestCategory(t, db, "Outdoors", "outdoors")
	product := createTestProduct(t, db, category.ID, "camp-stove", 5499, 3)

	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	return svc, db, user, product
}

func TestWishlistAddAndList(t *testing.T) {
	svc, _, user, product := newWishlistService(t)
	ctx := context.Background()

	item, err := svc.Add(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
}

func TestWishlistDoubleAddConflicts(t *testing.T) {
	svc, _, user, product := newWishlistService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, product.ID)
	require.NoError(t, err)

	_, err = svc.Add(ctx, user.ID, product.ID)
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestWishlistAddInactiveProductHidden(t *testing.T) {
	svc, db, user, product := newWishlistService(t)

	require.NoError(t, db.Model(product).Update("active", false).Error)

	_, err := svc.Add(context.Background(), user.ID, product.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestWishlistRemove(t *testing.T) {
	svc, _, user, product := newWishlistService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, product.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, user.ID, product.ID))

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// removing again is not found, membership is gone
	err = svc.Remove(ctx, user.ID, product.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestWishlistIsPerUser(t *testing.T) {
	svc, db, user, product := newWishlistService(t)
	ctx := context.Background()

	other := createTestUser(t, db, "other", models.RoleUser)

	_, err := svc.Add(ctx, user.ID, product.ID)
	require.NoError(t, err)

	items, err := svc.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.Remove(ctx, other.ID, product.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
