package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetWishlist handles GET /api/wishlist
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	items, err := s.wishlistService.List(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// AddWishlistItem handles POST /api/wishlist/:productId
func (s *Server) AddWishlistItem(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	productID, err := s.parseID(c, "productId")
	if err != nil {
		return nil
	}

	item, svcErr := s.wishlistService.Add(c.Context(), userID, productID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// RemoveWishlistItem handles DELETE /api/wishlist/:productId
func (s *Server) RemoveWishlistItem(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	productID, err := s.parseID(c, "productId")
	if err != nil {
		return nil
	}

	if svcErr := s.wishlistService.Remove(c.Context(), userID, productID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
