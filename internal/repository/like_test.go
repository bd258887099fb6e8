package repository

import (
	"context"
	"testing"

	"postservice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	post := createTestPost(t, db)

	like := &models.Like{PostID: post.ID, UserID: "user-1"}
	require.NoError(t, repo.Create(ctx, like))
	assert.NotZero(t, like.ID)

	found, err := repo.GetByID(ctx, like.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user-1", found.UserID)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLikeRepository_DuplicatePairRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	post := createTestPost(t, db)

	require.NoError(t, repo.Create(ctx, &models.Like{PostID: post.ID, UserID: "user-1"}))

	err := repo.Create(ctx, &models.Like{PostID: post.ID, UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, models.IsPersistence(err))

	// same user on another post is fine
	other := createTestPost(t, db)
	assert.NoError(t, repo.Create(ctx, &models.Like{PostID: other.ID, UserID: "user-1"}))
}

func TestLikeRepository_GetByPostAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	post := createTestPost(t, db)

	require.NoError(t, repo.Create(ctx, &models.Like{PostID: post.ID, UserID: "user-1"}))

	found, err := repo.GetByPostAndUser(ctx, post.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, found)

	none, err := repo.GetByPostAndUser(ctx, post.ID, "user-2")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLikeRepository_HardDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	post := createTestPost(t, db)

	like := &models.Like{PostID: post.ID, UserID: "user-1"}
	require.NoError(t, repo.Create(ctx, like))

	snapshot, err := repo.HardDelete(ctx, like.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, like.ID, snapshot.ID)

	found, err := repo.GetByID(ctx, like.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	again, err := repo.HardDelete(ctx, like.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestLikeRepository_Lists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	post := createTestPost(t, db)
	other := createTestPost(t, db)

	require.NoError(t, repo.Create(ctx, &models.Like{PostID: post.ID, UserID: "user-1"}))
	require.NoError(t, repo.Create(ctx, &models.Like{PostID: post.ID, UserID: "user-2"}))
	require.NoError(t, repo.Create(ctx, &models.Like{PostID: other.ID, UserID: "user-1"}))

	byPost, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, byPost, 2)

	byUser, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	empty, err := repo.ListByPost(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
