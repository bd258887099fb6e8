package repository

import (
	"context"
	"errors"

	"postservice/internal/models"
	"postservice/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations.
type LikeRepository interface {
	WithTx(tx *gorm.DB) LikeRepository
	Create(ctx context.Context, like *models.Like) error
	GetByID(ctx context.Context, id uint) (*models.Like, error)
	HardDelete(ctx context.Context, id uint) (*models.Like, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Like, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Like, error)
	GetByPostAndUser(ctx context.Context, postID uint, userID string) (*models.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	defer observability.TrackQuery("insert", "likes")()
	err := r.db.WithContext(ctx).Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewPersistenceError("like already exists for this post and user", err)
	}
	return err
}

func (r *likeRepository) GetByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).First(&like, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) HardDelete(ctx context.Context, id uint) (*models.Like, error) {
	like, err := r.GetByID(ctx, id)
	if err != nil || like == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Like{}, id).Error; err != nil {
		return nil, err
	}
	return like, nil
}

func (r *likeRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Like, error) {
	likes := make([]*models.Like, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id").
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) ListByUser(ctx context.Context, userID string) ([]*models.Like, error) {
	likes := make([]*models.Like, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) GetByPostAndUser(ctx context.Context, postID uint, userID string) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}
