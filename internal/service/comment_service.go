package service

import (
	"context"

	"postservice/internal/models"
	"postservice/internal/repository"

	"gorm.io/gorm"
)

// maxReplyDepth bounds reply-tree traversal. A parent chain deeper than this
// (or a corrupted cyclic chain) stops expanding instead of looping.
const maxReplyDepth = 32

// CommentService orchestrates comment writes together with the denormalized
// comment counter on the parent post. Creation and deletion pair the two
// writes inside one database transaction; everything else is a single write.
type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries the client-supplied fields for a new comment.
type CreateCommentInput struct {
	PostID          uint   `json:"post_id"`
	ParentCommentID *uint  `json:"parent_comment_id"`
	AuthorID        string `json:"author_id"`
	Text            string `json:"text"`
}

// UpdateCommentInput permits updating the text only; post_id, author_id and
// parent_comment_id are immutable after creation and silently dropped even if
// a client smuggles them into the payload.
type UpdateCommentInput struct {
	Text *string `json:"text"`
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB, commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment inserts the comment and increments the parent post's
// comment_count in one transaction. Whether the post (or the parent comment)
// actually exists is not checked; a missing post means the counter update
// touches zero rows and the transaction still commits.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.PostID == 0 {
		return nil, models.NewValidationError("post_id is required")
	}
	if in.AuthorID == "" {
		return nil, models.NewValidationError("author_id is required")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("text is required")
	}

	comment := &models.Comment{
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
		AuthorID:        in.AuthorID,
		Text:            in.Text,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}
		if _, err := s.postRepo.WithTx(tx).IncrementCounter(ctx, in.PostID, models.CounterComments); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// GetCommentsByPost returns every comment on the post, replies included, in
// insertion order.
func (s *CommentService) GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, false)
}

func (s *CommentService) GetCommentsByAuthor(ctx context.Context, authorID string) ([]*models.Comment, error) {
	return s.commentRepo.ListByAuthor(ctx, authorID)
}

// GetCommentReplies returns the direct children of a comment, flat.
func (s *CommentService) GetCommentReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListReplies(ctx, parentID)
}

func (s *CommentService) UpdateComment(ctx context.Context, id uint, in UpdateCommentInput) (*models.Comment, error) {
	updates := map[string]any{}
	if in.Text != nil {
		updates["text"] = *in.Text
	}
	return s.commentRepo.Update(ctx, id, updates)
}

// DeleteComment soft-deletes the comment and decrements the parent post's
// comment_count atomically. A missing comment aborts before any write.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.deleteComment(ctx, id, false)
}

// HardDeleteComment removes the comment permanently with the same counter
// discipline as DeleteComment.
func (s *CommentService) HardDeleteComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.deleteComment(ctx, id, true)
}

func (s *CommentService) deleteComment(ctx context.Context, id uint, hard bool) (*models.Comment, error) {
	var deleted *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentRepo := s.commentRepo.WithTx(tx)

		found, err := commentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return models.NewNotFoundError("Comment", id)
		}

		if hard {
			deleted, err = commentRepo.HardDelete(ctx, id)
		} else {
			deleted, err = commentRepo.Delete(ctx, id)
		}
		if err != nil {
			return err
		}

		if _, err := s.postRepo.WithTx(tx).DecrementCounter(ctx, found.PostID, models.CounterComments); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// GetNestedCommentsByPost returns the post's top-level comments with their
// full descendant subtrees attached. The forest is built iteratively with an
// explicit stack; a visited set and depth cap guard against corrupted parent
// chains, which the store never validates.
func (s *CommentService) GetNestedCommentsByPost(ctx context.Context, postID uint) ([]*models.CommentNode, error) {
	topLevel, err := s.commentRepo.ListByPost(ctx, postID, true)
	if err != nil {
		return nil, err
	}

	forest := make([]*models.CommentNode, 0, len(topLevel))
	visited := make(map[uint]bool, len(topLevel))

	type frame struct {
		node  *models.CommentNode
		depth int
	}
	stack := make([]frame, 0, len(topLevel))

	for _, c := range topLevel {
		node := models.NewCommentNode(*c)
		visited[c.ID] = true
		forest = append(forest, node)
		stack = append(stack, frame{node: node, depth: 0})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth >= maxReplyDepth {
			continue
		}

		replies, err := s.commentRepo.ListReplies(ctx, f.node.ID)
		if err != nil {
			return nil, err
		}
		for _, reply := range replies {
			if visited[reply.ID] {
				continue
			}
			visited[reply.ID] = true
			child := models.NewCommentNode(*reply)
			f.node.Replies = append(f.node.Replies, child)
			stack = append(stack, frame{node: child, depth: f.depth + 1})
		}
	}

	return forest, nil
}
