package server

import (
	"storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProducts handles GET /api/products
func (s *Server) GetProducts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	resp, err := s.catalogService.ListProducts(c.Context(), service.ListProductsInput{
		CategorySlug: c.Query("category"),
		Limit:        p.Limit,
		Offset:       p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

// SearchProducts handles GET /api/products/search
func (s *Server) SearchProducts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	products, err := s.catalogService.SearchProducts(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GetProduct handles GET /api/products/:slug
func (s *Server) GetProduct(c *fiber.Ctx) error {
	product, err := s.catalogService.GetProductBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(product)
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.catalogService.ListCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}
