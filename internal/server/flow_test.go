package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"postservice/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostLifecycleFlow walks the whole surface in one scenario: publish a
// post, discuss it, like it, toggle the like off and on, then soft-delete.
// Counter values are re-read from the API after every mutation.
func TestPostLifecycleFlow(t *testing.T) {
	app, _ := setupTestApp(t)

	fetchPost := func(id uint) models.Post {
		t.Helper()
		resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", id), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var p models.Post
		require.NoError(t, json.Unmarshal(body, &p))
		return p
	}

	post := createPostViaAPI(t, app, "alice", "counters all the way down")

	// two comments, one a reply
	top := createCommentViaAPI(t, app, fiber.Map{
		"post_id":   post.ID,
		"author_id": "bob",
		"text":      "interesting",
	})
	createCommentViaAPI(t, app, fiber.Map{
		"post_id":           post.ID,
		"parent_comment_id": top.ID,
		"author_id":         "carol",
		"text":              "agreed",
	})
	assert.Equal(t, 2, fetchPost(post.ID).CommentCount)

	// bob likes the post
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/likes", fiber.Map{
		"post_id": post.ID,
		"user_id": "bob",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, fetchPost(post.ID).LikeCount)

	// toggle off, then on again
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/likes/toggle", post.ID), fiber.Map{
		"user_id": "bob",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, fetchPost(post.ID).LikeCount)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/likes/toggle", post.ID), fiber.Map{
		"user_id": "bob",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, fetchPost(post.ID).LikeCount)

	// removing the reply brings the comment counter back down
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/comments/%d/replies", top.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// soft delete leaves everything readable with status DELETED
	resp, body := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted models.Post
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, models.StatusDeleted, deleted.Status)
	assert.Equal(t, 1, deleted.LikeCount)
	assert.Equal(t, 2, deleted.CommentCount)

	after := fetchPost(post.ID)
	assert.Equal(t, models.StatusDeleted, after.Status)
	assert.Equal(t, "counters all the way down", after.Content)
}
