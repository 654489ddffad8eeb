package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// AdminService aggregates back-office reads that span entities.
type AdminService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	blogRepo    repository.BlogRepository
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	blogRepo repository.BlogRepository,
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// Dashboard collects the entity counts shown on the admin landing page.
func (s *AdminService) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.blogRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DashboardResponse{
		Users:          users,
		Products:       products,
		Orders:         orders,
		OrdersByStatus: byStatus,
		BlogPosts:      posts,
		Comments:       comments,
		Reviews:        reviews,
	}, nil
}
