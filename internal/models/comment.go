package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. ParentCommentID is a nullable
// self-reference; nil means the comment is top-level. Whether a parent
// belongs to the same post is not enforced anywhere.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`
	AuthorID        string    `gorm:"not null;index" json:"author_id"`
	Text            string    `gorm:"type:text;not null" json:"text"`
	Status          Status    `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate sets the initial status when the caller left it empty.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.Status == "" {
		c.Status = StatusActive
	}
	return nil
}

// CommentNode is a comment with its reply subtree attached. The nested view
// is materialized explicitly rather than recursed over; see CommentService.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// NewCommentNode wraps a comment with an empty (non-nil) reply list so that
// leaves marshal as "replies": [].
func NewCommentNode(c Comment) *CommentNode {
	return &CommentNode{Comment: c, Replies: make([]*CommentNode, 0)}
}
