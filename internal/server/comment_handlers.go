package server

import (
	"storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments. Comments come back as
// two-level threads: roots newest first, replies oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	threads, svcErr := s.commentService.ListThreads(c.Context(), postID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"comments": threads})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	comment, svcErr := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		ActorID:  userID,
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	comment, svcErr := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		ActorID:   userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID, role := s.actor(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, svcErr := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		ActorID:   userID,
		ActorRole: role,
		CommentID: commentID,
	}); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// ToggleCommentLike handles POST /api/comments/:id/like
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	userID, _ := s.actor(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	resp, svcErr := s.commentService.ToggleLike(c.Context(), userID, commentID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(resp)
}
