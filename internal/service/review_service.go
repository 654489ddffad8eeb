package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

// ReviewService enforces one review per user per product with a 1..5
// star rating. Product rating aggregates are derived at read time, so
// review writes never touch the product row.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

type CreateReviewInput struct {
	ActorID   uint
	ProductID uint
	Rating    int
	Title     string
	Body      string
}

type UpdateReviewInput struct {
	ActorID  uint
	ReviewID uint
	Rating   int
	Title    string
	Body     string
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return models.NewValidationError("Rating must be between 1 and 5")
	}
	return nil
}

func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Review body is required")
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", in.ProductID)
		}
		return nil, err
	}
	if !product.Active {
		return nil, models.NewNotFoundError("Product", in.ProductID)
	}

	existing, err := s.reviewRepo.GetByUserAndProduct(ctx, in.ActorID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("You have already reviewed this product")
	}

	review := &models.Review{
		UserID:    in.ActorID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Title:     in.Title,
		Body:      in.Body,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uint, limit, offset int) ([]*models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", productID)
		}
		return nil, err
	}

	return s.reviewRepo.ListByProduct(ctx, productID, limit, offset)
}

func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Review body is required")
	}

	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", in.ReviewID)
		}
		return nil, err
	}
	if review.UserID != in.ActorID {
		return nil, models.NewForbiddenError("You can only update your own reviews")
	}

	review.Rating = in.Rating
	review.Title = in.Title
	review.Body = in.Body
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, actorID uint, actorRole string, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Review", reviewID)
		}
		return err
	}
	if review.UserID != actorID && actorRole != models.RoleAdmin {
		return models.NewForbiddenError("You can only delete your own reviews")
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}
