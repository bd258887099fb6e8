package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"postservice/internal/models"
	"postservice/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	return db
}

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(repository.NewPostRepository(db))
}

func TestPostService_CreatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, CreatePostInput{
			AuthorID: "author-1",
			Content:  "first post",
		})
		require.NoError(t, err)
		assert.NotZero(t, post.ID)
		assert.Equal(t, models.StatusActive, post.Status)
		assert.Equal(t, 0, post.LikeCount)
		assert.Equal(t, 0, post.CommentCount)
		assert.NotNil(t, post.Hashtags)
		assert.Empty(t, post.Hashtags)
		assert.NotNil(t, post.Images)
	})

	t.Run("missing author_id", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{Content: "x"})
		require.Error(t, err)
		assert.True(t, models.IsValidation(err))
	})

	t.Run("missing content", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "author-1"})
		require.Error(t, err)
		assert.True(t, models.IsValidation(err))
	})
}

func TestPostService_GetPostByID(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "a", Content: "hi"})
	require.NoError(t, err)

	found, err := svc.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "hi", found.Content)

	missing, err := svc.GetPostByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostService_UpdatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID: "author-1",
		Content:  "original",
		Hashtags: []string{"go"},
	})
	require.NoError(t, err)

	t.Run("nil fields stay unchanged", func(t *testing.T) {
		content := "edited"
		updated, err := svc.UpdatePost(ctx, created.ID, UpdatePostInput{Content: &content})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "edited", updated.Content)
		assert.Equal(t, []string{"go"}, updated.Hashtags)
		assert.Equal(t, "author-1", updated.AuthorID)
	})

	t.Run("replacing hashtags", func(t *testing.T) {
		tags := []string{"rust", "zig"}
		updated, err := svc.UpdatePost(ctx, created.ID, UpdatePostInput{Hashtags: &tags})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, tags, updated.Hashtags)

		// a fresh read must decode the stored column back into the slice
		reread, err := svc.GetPostByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, reread)
		assert.Equal(t, tags, reread.Hashtags)
	})

	t.Run("replacing images", func(t *testing.T) {
		images := []string{"https://example.com/a.png", "https://example.com/b.png"}
		updated, err := svc.UpdatePost(ctx, created.ID, UpdatePostInput{Images: &images})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, images, updated.Images)
	})

	t.Run("clearing hashtags with an empty slice", func(t *testing.T) {
		empty := []string{}
		updated, err := svc.UpdatePost(ctx, created.ID, UpdatePostInput{Hashtags: &empty})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.NotNil(t, updated.Hashtags)
		assert.Empty(t, updated.Hashtags)
	})

	t.Run("missing post yields nil", func(t *testing.T) {
		content := "x"
		updated, err := svc.UpdatePost(ctx, 9999, UpdatePostInput{Content: &content})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("empty input is a read", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, created.ID, UpdatePostInput{})
		require.NoError(t, err)
		require.NotNil(t, updated)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "a", Content: "to delete"})
	require.NoError(t, err)

	deleted, err := svc.DeletePost(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, models.StatusDeleted, deleted.Status)
	assert.Equal(t, "to delete", deleted.Content)

	// soft-deleted posts remain readable
	found, err := svc.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.StatusDeleted, found.Status)
}

func TestPostService_HardDeletePost(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "a", Content: "vanish"})
	require.NoError(t, err)

	snapshot, err := svc.HardDeletePost(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "vanish", snapshot.Content)

	found, err := svc.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostService_GetPostsByAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "author-1", Content: fmt.Sprintf("post %d", i)})
		require.NoError(t, err)
	}
	_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: "author-2", Content: "other"})
	require.NoError(t, err)

	posts, err := svc.GetPostsByAuthor(ctx, "author-1")
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	none, err := svc.GetPostsByAuthor(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
