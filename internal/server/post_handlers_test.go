package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postservice/internal/models"
	"postservice/internal/repository"
	"postservice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp wires a Fiber app against an in-memory database with the full
// route table registered. No Redis and no metrics middleware.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	))

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	s := &Server{
		db:             db,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
		postService:    service.NewPostService(postRepo),
		commentService: service.NewCommentService(db, commentRepo, postRepo),
		likeService:    service.NewLikeService(db, likeRepo, postRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestCreatePostHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	t.Run("201 with defaults", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/posts", fiber.Map{
			"author_id": "author-1",
			"content":   "hello",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.Post
		require.NoError(t, json.Unmarshal(body, &post))
		assert.NotZero(t, post.ID)
		assert.Equal(t, models.StatusActive, post.Status)
		assert.Equal(t, 0, post.LikeCount)
		assert.NotNil(t, post.Hashtags)
	})

	t.Run("400 on missing author_id", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/posts", fiber.Map{
			"content": "hello",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, models.CodeValidation, errResp.Code)
	})
}

func TestGetPostHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	_, created := doJSON(t, app, http.MethodPost, "/api/v1/posts", fiber.Map{
		"author_id": "author-1",
		"content":   "readable",
	})
	var post models.Post
	require.NoError(t, json.Unmarshal(created, &post))

	t.Run("200 for existing post", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Post
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "readable", got.Content)
	})

	t.Run("404 for missing post", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/posts/99999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, models.CodeNotFound, errResp.Code)
	})

	t.Run("400 for non-numeric id", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/posts/abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, models.CodeInvalidID, errResp.Code)
	})
}

func TestUpdatePostHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	_, created := doJSON(t, app, http.MethodPost, "/api/v1/posts", fiber.Map{
		"author_id": "author-1",
		"content":   "original",
		"hashtags":  []string{"go"},
	})
	var post models.Post
	require.NoError(t, json.Unmarshal(created, &post))

	t.Run("updates content only", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", post.ID), fiber.Map{
			"content": "edited",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Post
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "edited", got.Content)
		assert.Equal(t, []string{"go"}, got.Hashtags)
	})

	t.Run("updates hashtags and images", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", post.ID), fiber.Map{
			"hashtags": []string{"fiber", "gorm"},
			"images":   []string{"https://example.com/c.png"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Post
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, []string{"fiber", "gorm"}, got.Hashtags)
		assert.Equal(t, []string{"https://example.com/c.png"}, got.Images)
	})

	t.Run("immutable fields in the payload are dropped", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", post.ID), fiber.Map{
			"author_id":  "intruder",
			"like_count": 1000,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Post
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "author-1", got.AuthorID)
		assert.Equal(t, 0, got.LikeCount)
	})

	t.Run("404 for missing post", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/posts/99999", fiber.Map{
			"content": "x",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeletePostHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	_, created := doJSON(t, app, http.MethodPost, "/api/v1/posts", fiber.Map{
		"author_id": "author-1",
		"content":   "short lived",
	})
	var post models.Post
	require.NoError(t, json.Unmarshal(created, &post))

	resp, body := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted models.Post
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, models.StatusDeleted, deleted.Status)
	assert.Equal(t, "short lived", deleted.Content)

	// the record is still retrievable after a soft delete
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetUserPostsHandler(t *testing.T) {
	app, _ := setupTestApp(t)

	for i := 0; i < 2; i++ {
		doJSON(t, app, http.MethodPost, "/api/v1/posts", fiber.Map{
			"author_id": "author-1",
			"content":   fmt.Sprintf("post %d", i),
		})
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/users/author-1/posts", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.Unmarshal(body, &posts))
	assert.Len(t, posts, 2)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/users/nobody/posts", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))
}
