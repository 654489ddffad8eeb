package server

import (
	"storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	resp, err := s.blogService.ListPosts(c.Context(), true, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

// GetDrafts handles GET /api/drafts. Staff see every post including
// unpublished drafts.
func (s *Server) GetDrafts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	resp, err := s.blogService.ListPosts(c.Context(), false, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

// GetPost handles GET /api/posts/:slug
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.blogService.GetPostBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	var req struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		CoverURL string `json:"cover_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	post, err := s.blogService.CreatePost(c.Context(), service.CreatePostInput{
		ActorID:  userID,
		Title:    req.Title,
		Body:     req.Body,
		CoverURL: req.CoverURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID, role := s.actor(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string `json:"title"`
		Body     *string `json:"body"`
		CoverURL *string `json:"cover_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	post, svcErr := s.blogService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:   userID,
		ActorRole: role,
		PostID:    postID,
		Title:     req.Title,
		Body:      req.Body,
		CoverURL:  req.CoverURL,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, role := s.actor(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.blogService.DeletePost(c.Context(), userID, role, postID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// PublishPost handles POST /api/posts/:id/publish
func (s *Server) PublishPost(c *fiber.Ctx) error {
	return s.setPublished(c, true)
}

// UnpublishPost handles POST /api/posts/:id/unpublish
func (s *Server) UnpublishPost(c *fiber.Ctx) error {
	return s.setPublished(c, false)
}

func (s *Server) setPublished(c *fiber.Ctx, published bool) error {
	userID, role := s.actor(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, svcErr := s.blogService.SetPublished(c.Context(), userID, role, postID, published)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(post)
}

// TogglePostLike handles POST /api/posts/:id/like
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	resp, svcErr := s.blogService.ToggleLike(c.Context(), userID, postID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(resp)
}

// TogglePostBookmark handles POST /api/posts/:id/bookmark
func (s *Server) TogglePostBookmark(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	resp, svcErr := s.blogService.ToggleBookmark(c.Context(), userID, postID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(resp)
}
