// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"

	"postservice/internal/cache"
	"postservice/internal/models"
	"postservice/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// Absent rows come back as (nil, nil); list finders return empty slices.
type PostRepository interface {
	// WithTx returns a repository bound to the caller's transaction.
	WithTx(tx *gorm.DB) PostRepository
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	Update(ctx context.Context, id uint, updates map[string]any) (*models.Post, error)
	Delete(ctx context.Context, id uint) (*models.Post, error)
	HardDelete(ctx context.Context, id uint) (*models.Post, error)
	IncrementCounter(ctx context.Context, id uint, field models.CounterField) (*models.Post, error)
	DecrementCounter(ctx context.Context, id uint, field models.CounterField) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
	// inTx disables the read cache so transactional reads see their own writes.
	inTx bool
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx, inTx: true}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()
	var post models.Post

	fetch := func() error {
		return r.db.WithContext(ctx).First(&post, id).Error
	}

	var err error
	if r.inTx {
		err = fetch()
	} else {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, id uint, updates map[string]any) (*models.Post, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	cache.InvalidatePost(ctx, id)
	return r.GetByID(ctx, id)
}

// Delete soft-deletes: the row stays and keeps all fields except status.
func (r *postRepository) Delete(ctx context.Context, id uint) (*models.Post, error) {
	return r.Update(ctx, id, map[string]any{"status": models.StatusDeleted})
}

// HardDelete removes the row and returns a pre-removal snapshot.
func (r *postRepository) HardDelete(ctx context.Context, id uint) (*models.Post, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil || post == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, id)
	return post, nil
}

func (r *postRepository) IncrementCounter(ctx context.Context, id uint, field models.CounterField) (*models.Post, error) {
	return r.adjustCounter(ctx, id, field, 1)
}

func (r *postRepository) DecrementCounter(ctx context.Context, id uint, field models.CounterField) (*models.Post, error) {
	return r.adjustCounter(ctx, id, field, -1)
}

// adjustCounter applies an atomic relative update so concurrent counter
// mutations never overwrite each other. updated_at is left untouched.
func (r *postRepository) adjustCounter(ctx context.Context, id uint, field models.CounterField, delta int) (*models.Post, error) {
	defer observability.TrackQuery("update", "posts")()

	col := string(field)
	switch field {
	case models.CounterLikes, models.CounterComments:
	default:
		return nil, fmt.Errorf("unknown counter field %q", col)
	}

	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	direction := "increment"
	if delta < 0 {
		direction = "decrement"
	}
	observability.CounterUpdates.WithLabelValues(col, direction).Inc()
	cache.InvalidatePost(ctx, id)

	return r.GetByID(ctx, id)
}
