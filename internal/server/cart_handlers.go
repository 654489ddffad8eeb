package server

import (
	"storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCart handles GET /api/cart
func (s *Server) GetCart(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	resp, err := s.cartService.GetCart(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

// AddCartItem handles POST /api/cart/items
func (s *Server) AddCartItem(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	resp, err := s.cartService.AddItem(c.Context(), service.AddCartItemInput{
		ActorID:   userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateCartItem handles PUT /api/cart/items/:id
func (s *Server) UpdateCartItem(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	resp, svcErr := s.cartService.UpdateItem(c.Context(), service.UpdateCartItemInput{
		ActorID:  userID,
		ItemID:   itemID,
		Quantity: req.Quantity,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(resp)
}

// RemoveCartItem handles DELETE /api/cart/items/:id
func (s *Server) RemoveCartItem(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	resp, svcErr := s.cartService.RemoveItem(c.Context(), userID, itemID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(resp)
}

// ClearCart handles DELETE /api/cart
func (s *Server) ClearCart(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	resp, err := s.cartService.ClearCart(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}
