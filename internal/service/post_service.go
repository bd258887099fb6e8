// Package service contains the business orchestration layer between handlers
// and repositories.
package service

import (
	"context"
	"encoding/json"

	"postservice/internal/models"
	"postservice/internal/repository"
)

// PostService is mostly a pass-through over the post repository; the one rule
// it owns is that author_id and the denormalized counters are immutable from
// the outside.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the client-supplied fields for a new post.
type CreatePostInput struct {
	AuthorID string   `json:"author_id"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
	Images   []string `json:"images"`
}

// UpdatePostInput carries the updatable fields of a post. Nil means "leave
// unchanged". AuthorID, status and the counters are deliberately not
// representable here.
type UpdatePostInput struct {
	Content  *string   `json:"content"`
	Hashtags *[]string `json:"hashtags"`
	Images   *[]string `json:"images"`
}

// NewPostService creates a new PostService
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == "" {
		return nil, models.NewValidationError("author_id is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("content is required")
	}

	post := &models.Post{
		AuthorID: in.AuthorID,
		Content:  in.Content,
		Hashtags: in.Hashtags,
		Images:   in.Images,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	return s.postRepo.GetByAuthor(ctx, authorID)
}

func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) (*models.Post, error) {
	updates := map[string]any{}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	// Map-based Updates bypass the model's JSON serializer, so slice columns
	// must be marshaled here before they reach the statement builder.
	if in.Hashtags != nil {
		encoded, err := json.Marshal(*in.Hashtags)
		if err != nil {
			return nil, err
		}
		updates["hashtags"] = string(encoded)
	}
	if in.Images != nil {
		encoded, err := json.Marshal(*in.Images)
		if err != nil {
			return nil, err
		}
		updates["images"] = string(encoded)
	}
	return s.postRepo.Update(ctx, id, updates)
}

// DeletePost soft-deletes: the post remains readable with status DELETED.
func (s *PostService) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.Delete(ctx, id)
}

// HardDeletePost permanently removes the post record.
func (s *PostService) HardDeletePost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.HardDelete(ctx, id)
}
