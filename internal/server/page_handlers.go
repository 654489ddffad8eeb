package server

import (
	"github.com/gofiber/fiber/v2"
)

// Page shells. The storefront and admin SPAs are served by a frontend
// build in deployment; these handlers keep the gate's redirect and
// rewrite targets resolvable when the API runs standalone.

// HomePage handles GET /
func (s *Server) HomePage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "home"})
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

// AdminLoginPage handles GET /admin/login
func (s *Server) AdminLoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "admin-login"})
}

// AdminPage handles GET /admin and GET /admin/*
func (s *Server) AdminPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "admin"})
}
