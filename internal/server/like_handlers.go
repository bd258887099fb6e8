package server

import (
	"postservice/internal/models"
	"postservice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateLike handles POST /api/v1/likes
func (s *Server) CreateLike(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var in service.CreateLikeInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	like, err := s.likeService.CreateLike(ctx, in)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(like)
}

// GetLike handles GET /api/v1/likes/:id
func (s *Server) GetLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.likeService.GetLikeByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if like == nil {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Like", id))
	}

	return c.JSON(like)
}

// DeleteLike handles DELETE /api/v1/likes/:id
func (s *Server) DeleteLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.likeService.DeleteLike(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(like)
}

// GetPostLikes handles GET /api/v1/posts/:postId/likes
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	likes, err := s.likeService.GetLikesByPost(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(likes)
}

// ToggleLike handles POST /api/v1/posts/:postId/likes/toggle
// Responds 201 with the like when one was created, 200 when one was removed.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	like, err := s.likeService.ToggleLike(ctx, postID, req.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	if like == nil {
		return c.JSON(fiber.Map{"message": "Like removed successfully"})
	}

	return c.Status(fiber.StatusCreated).JSON(like)
}

// CheckLike handles GET /api/v1/posts/:postId/likes/check?user_id=
func (s *Server) CheckLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := parseID(c, "postId")
	if err != nil {
		return nil
	}

	userID := c.Query("user_id")
	if userID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	liked, err := s.likeService.IsPostLikedByUser(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// GetUserLikes handles GET /api/v1/users/:userId/likes
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Params("userId")

	likes, err := s.likeService.GetLikesByUser(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(likes)
}
