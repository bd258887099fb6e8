package service

import (
	"context"

	"postservice/internal/models"
	"postservice/internal/repository"

	"gorm.io/gorm"
)

// LikeService pairs every like write with the post's like_count inside one
// transaction, mirroring the comment counter discipline.
type LikeService struct {
	db       *gorm.DB
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

// CreateLikeInput carries the client-supplied fields for a new like.
type CreateLikeInput struct {
	PostID uint   `json:"post_id"`
	UserID string `json:"user_id"`
}

// NewLikeService creates a new LikeService
func NewLikeService(db *gorm.DB, likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{
		db:       db,
		likeRepo: likeRepo,
		postRepo: postRepo,
	}
}

// CreateLike inserts the like and increments the post's like_count in one
// transaction. A duplicate (post, user) pair fails on the unique index and
// rolls the counter update back with it.
func (s *LikeService) CreateLike(ctx context.Context, in CreateLikeInput) (*models.Like, error) {
	if in.PostID == 0 {
		return nil, models.NewValidationError("post_id is required")
	}
	if in.UserID == "" {
		return nil, models.NewValidationError("user_id is required")
	}

	like := &models.Like{PostID: in.PostID, UserID: in.UserID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.likeRepo.WithTx(tx).Create(ctx, like); err != nil {
			return err
		}
		if _, err := s.postRepo.WithTx(tx).IncrementCounter(ctx, in.PostID, models.CounterLikes); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

func (s *LikeService) GetLikeByID(ctx context.Context, id uint) (*models.Like, error) {
	return s.likeRepo.GetByID(ctx, id)
}

func (s *LikeService) GetLikesByPost(ctx context.Context, postID uint) ([]*models.Like, error) {
	return s.likeRepo.ListByPost(ctx, postID)
}

func (s *LikeService) GetLikesByUser(ctx context.Context, userID string) ([]*models.Like, error) {
	return s.likeRepo.ListByUser(ctx, userID)
}

// GetUserLikeForPost returns the like for the (post, user) pair, or nil.
func (s *LikeService) GetUserLikeForPost(ctx context.Context, postID uint, userID string) (*models.Like, error) {
	return s.likeRepo.GetByPostAndUser(ctx, postID, userID)
}

// DeleteLike hard-deletes the like and decrements the post's like_count
// atomically. A missing like aborts before any write.
func (s *LikeService) DeleteLike(ctx context.Context, id uint) (*models.Like, error) {
	var deleted *models.Like
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)

		found, err := likeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return models.NewNotFoundError("Like", id)
		}

		deleted, err = likeRepo.HardDelete(ctx, id)
		if err != nil {
			return err
		}

		if _, err := s.postRepo.WithTx(tx).DecrementCounter(ctx, found.PostID, models.CounterLikes); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// ToggleLike removes the user's like if present (returning nil) or creates one
// (returning it). The existence check and the subsequent write are two
// separate operations, not one atomic check-and-act: two concurrent toggles
// for the same pair can race, with the duplicate create rejected by the
// unique index and the duplicate delete surfacing one NotFound.
func (s *LikeService) ToggleLike(ctx context.Context, postID uint, userID string) (*models.Like, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id is required")
	}

	existing, err := s.likeRepo.GetByPostAndUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if _, err := s.DeleteLike(ctx, existing.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return s.CreateLike(ctx, CreateLikeInput{PostID: postID, UserID: userID})
}

// IsPostLikedByUser reports whether the user has liked the post.
func (s *LikeService) IsPostLikedByUser(ctx context.Context, postID uint, userID string) (bool, error) {
	like, err := s.likeRepo.GetByPostAndUser(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	return like != nil, nil
}
