package server

import (
	"storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Checkout handles POST /api/checkout
func (s *Server) Checkout(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	var req struct {
		ShipName    string `json:"ship_name"`
		ShipAddress string `json:"ship_address"`
		ShipCity    string `json:"ship_city"`
		ShipZip     string `json:"ship_zip"`
		ShipCountry string `json:"ship_country"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	order, err := s.orderService.Checkout(c.Context(), service.CheckoutInput{
		ActorID:     userID,
		ShipName:    req.ShipName,
		ShipAddress: req.ShipAddress,
		ShipCity:    req.ShipCity,
		ShipZip:     req.ShipZip,
		ShipCountry: req.ShipCountry,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetMyOrders handles GET /api/orders
func (s *Server) GetMyOrders(c *fiber.Ctx) error {
	userID, _ := s.actor(c)
	p := parsePagination(c, 20)

	orders, err := s.orderService.ListOrders(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GetOrder handles GET /api/orders/:id
func (s *Server) GetOrder(c *fiber.Ctx) error {
	userID, role := s.actor(c)

	orderID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	order, svcErr := s.orderService.GetOrder(c.Context(), userID, role, orderID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(order)
}

// CancelOrder handles POST /api/orders/:id/cancel
func (s *Server) CancelOrder(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	orderID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	order, svcErr := s.orderService.CancelOrder(c.Context(), userID, orderID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(order)
}
