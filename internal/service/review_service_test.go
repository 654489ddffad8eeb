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

func newReviewService(t *testing.T) (*ReviewService, *gorm.DB, *models.User, *models.Product) {
	t.Helper()
	db := setupTestDB(t)

	user := createTestUser(t, db, "reviewer", models.RoleUser)
	category := createTestCategory(t, db, "Toys", "toys")
	product := createTestProduct(t, db, category.ID, "wooden-train", 1599, 20)

	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	return svc, db, user, product
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _, user, product := newReviewService(t)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateReview(ctx, CreateReviewInput{
			ActorID: user.ID, ProductID: product.ID, Rating: rating, Body: "meh",
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	}

	review, err := svc.CreateReview(ctx, CreateReviewInput{
		ActorID: user.ID, ProductID: product.ID, Rating: 5, Title: "Great", Body: "Sturdy and fun",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}

func TestCreateReviewRequiresBody(t *testing.T) {
	svc, _, user, product := newReviewService(t)

	_, err := svc.CreateReview(context.Background(), CreateReviewInput{
		ActorID: user.ID, ProductID: product.ID, Rating: 4, Body: "   ",
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestCreateReviewOncePerProduct(t *testing.T) {
	svc, _, user, product := newReviewService(t)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, CreateReviewInput{
		ActorID: user.ID, ProductID: product.ID, Rating: 4, Body: "First impressions",
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, CreateReviewInput{
		ActorID: user.ID, ProductID: product.ID, Rating: 2, Body: "Changed my mind",
	})
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestCreateReviewInactiveProductHidden(t *testing.T) {
	svc, db, user, product := newReviewService(t)

	require.NoError(t, db.Model(product).Update("active", false).Error)

	_, err := svc.CreateReview(context.Background(), CreateReviewInput{
		ActorID: user.ID, ProductID: product.ID, Rating: 3, Body: "Too late",
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	svc, db, user, product := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, CreateReviewInput{
		ActorID: user.ID, ProductID: product.ID, Rating: 3, Body: "It is okay",
	})
	require.NoError(t, err)

	other := createTestUser(t, db, "other", models.RoleUser)
	_, err = svc.UpdateReview(ctx, UpdateReviewInput{
		ActorID: other.ID, ReviewID: review.ID, Rating: 1, Body: "Sabotage",
	})
	assertAppErrorCode(t, err, models.CodeForbidden)

	updated, err := svc.UpdateReview(ctx, UpdateReviewInput{
		ActorID: user.ID, ReviewID: review.ID, Rating: 5, Title: "Upgraded", Body: "Grew on me",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Upgraded", updated.Title)
}

func TestDeleteReviewOwnerOrAdmin(t *testing.T) {
	svc, db, user, product := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, CreateReviewInput{
		ActorID: user.ID, ProductID: product.ID, Rating: 2, Body: "Not for me",
	})
	require.NoError(t, err)

	other := createTestUser(t, db, "other", models.RoleUser)
	err = svc.DeleteReview(ctx, other.ID, models.RoleUser, review.ID)
	assertAppErrorCode(t, err, models.CodeForbidden)

	admin := createTestUser(t, db, "mod", models.RoleAdmin)
	require.NoError(t, svc.DeleteReview(ctx, admin.ID, models.RoleAdmin, review.ID))

	reviews, err := svc.ListByProduct(ctx, product.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
