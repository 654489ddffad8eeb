package server

import (
	"storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /api/admin/dashboard
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	resp, err := s.adminService.Dashboard(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

// AdminGetUsers handles GET /api/admin/users
func (s *Server) AdminGetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// AdminUpdateUserRole handles PUT /api/admin/users/:id/role
func (s *Server) AdminUpdateUserRole(c *fiber.Ctx) error {
	actorID, _ := s.actor(c)

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	user, svcErr := s.userService.UpdateRole(c.Context(), service.UpdateRoleInput{
		ActorID: actorID,
		UserID:  userID,
		Role:    req.Role,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(user)
}

// AdminGetProducts handles GET /api/admin/products; inactive products included.
func (s *Server) AdminGetProducts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	resp, err := s.catalogService.ListProducts(c.Context(), service.ListProductsInput{
		CategorySlug: c.Query("category"),
		Limit:        p.Limit,
		Offset:       p.Offset,
		IncludeAll:   true,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

// AdminCreateProduct handles POST /api/admin/products
func (s *Server) AdminCreateProduct(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		PriceCents  int64  `json:"price_cents"`
		Stock       int    `json:"stock"`
		ImageURL    string `json:"image_url"`
		Active      bool   `json:"active"`
		CategoryID  uint   `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	product, err := s.catalogService.CreateProduct(c.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// AdminUpdateProduct handles PUT /api/admin/products/:id
func (s *Server) AdminUpdateProduct(c *fiber.Ctx) error {
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		PriceCents  *int64  `json:"price_cents"`
		Stock       *int    `json:"stock"`
		ImageURL    *string `json:"image_url"`
		Active      *bool   `json:"active"`
		CategoryID  *uint   `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	product, svcErr := s.catalogService.UpdateProduct(c.Context(), service.UpdateProductInput{
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
		CategoryID:  req.CategoryID,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(product)
}

// AdminDeleteProduct handles DELETE /api/admin/products/:id
func (s *Server) AdminDeleteProduct(c *fiber.Ctx) error {
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.catalogService.DeleteProduct(c.Context(), productID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// AdminCreateCategory handles POST /api/admin/categories
func (s *Server) AdminCreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	category, err := s.catalogService.CreateCategory(c.Context(), req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// AdminUpdateCategory handles PUT /api/admin/categories/:id
func (s *Server) AdminUpdateCategory(c *fiber.Ctx) error {
	categoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	category, svcErr := s.catalogService.UpdateCategory(c.Context(), categoryID, req.Name)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(category)
}

// AdminDeleteCategory handles DELETE /api/admin/categories/:id
func (s *Server) AdminDeleteCategory(c *fiber.Ctx) error {
	categoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.catalogService.DeleteCategory(c.Context(), categoryID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// AdminGetOrders handles GET /api/admin/orders
func (s *Server) AdminGetOrders(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	orders, err := s.orderService.ListAllOrders(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// AdminUpdateOrderStatus handles PUT /api/admin/orders/:id/status
func (s *Server) AdminUpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	order, svcErr := s.orderService.UpdateStatus(c.Context(), service.UpdateOrderStatusInput{
		OrderID: orderID,
		Status:  req.Status,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(order)
}

// AdminGetComments handles GET /api/admin/comments for moderation.
func (s *Server) AdminGetComments(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	comments, err := s.commentService.ListRecent(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	actorID, role := s.actor(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, svcErr := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		ActorID:   actorID,
		ActorRole: role,
		CommentID: commentID,
	}); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
