package server

import (
	"storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProductReviews handles GET /api/products/:id/reviews
func (s *Server) GetProductReviews(c *fiber.Ctx) error {
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	reviews, svcErr := s.reviewService.ListByProduct(c.Context(), productID, p.Limit, p.Offset)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// CreateReview handles POST /api/products/:id/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	review, svcErr := s.reviewService.CreateReview(c.Context(), service.CreateReviewInput{
		ActorID:   userID,
		ProductID: productID,
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReview handles PUT /api/reviews/:id
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	review, svcErr := s.reviewService.UpdateReview(c.Context(), service.UpdateReviewInput{
		ActorID:  userID,
		ReviewID: reviewID,
		Rating:   req.Rating,
		Title:    req.Title,
		Body:     req.Body,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	userID, role := s.actor(c)

	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.reviewService.DeleteReview(c.Context(), userID, role, reviewID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
