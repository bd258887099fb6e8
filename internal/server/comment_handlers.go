package server

import (
	"postservice/internal/models"
	"postservice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/v1/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var in service.CreateCommentInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/v1/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetCommentByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if comment == nil {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Comment", id))
	}

	return c.JSON(comment)
}

// UpdateComment handles PUT /api/v1/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdateCommentInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(ctx, id, in)
	if err != nil {
		return serviceError(c, err)
	}
	if comment == nil {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Comment", id))
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/v1/comments/:id (soft delete)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.DeleteComment(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(comment)
}

// HardDeleteComment handles DELETE /api/v1/comments/:id/hard
func (s *Server) HardDeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.HardDeleteComment(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(comment)
}

// GetCommentReplies handles GET /api/v1/comments/:commentId/replies
func (s *Server) GetCommentReplies(c *fiber.Ctx) error {
	ctx := c.UserContext()
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	replies, err := s.commentService.GetCommentReplies(ctx, commentID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(replies)
}

// GetPostComments handles GET /api/v1/posts/:postId/comments
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.GetCommentsByPost(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(comments)
}

// GetNestedPostComments handles GET /api/v1/posts/:postId/comments/nested
func (s *Server) GetNestedPostComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	forest, err := s.commentService.GetNestedCommentsByPost(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(forest)
}

// GetUserComments handles GET /api/v1/users/:authorId/comments
func (s *Server) GetUserComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authorID := c.Params("authorId")

	comments, err := s.commentService.GetCommentsByAuthor(ctx, authorID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(comments)
}
