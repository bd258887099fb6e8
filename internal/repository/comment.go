package repository

import (
	"context"
	"errors"

	"postservice/internal/models"
	"postservice/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Update(ctx context.Context, id uint, updates map[string]any) (*models.Comment, error)
	Delete(ctx context.Context, id uint) (*models.Comment, error)
	HardDelete(ctx context.Context, id uint) (*models.Comment, error)
	// ListByPost returns every comment on the post, or only top-level ones
	// (parent_comment_id IS NULL) when topLevelOnly is set.
	ListByPost(ctx context.Context, postID uint, topLevelOnly bool) ([]*models.Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Comment, error)
	ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("insert", "comments")()
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, id uint, updates map[string]any) (*models.Comment, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	return r.Update(ctx, id, map[string]any{"status": models.StatusDeleted})
}

func (r *commentRepository) HardDelete(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := r.GetByID(ctx, id)
	if err != nil || comment == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, topLevelOnly bool) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if topLevelOnly {
		q = q.Where("parent_comment_id IS NULL")
	}
	err := q.Order("id").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("parent_comment_id = ?", parentID).
		Order("id").
		Find(&comments).Error
	return comments, err
}
