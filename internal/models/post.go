// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Status is the lifecycle state of a soft-deletable entity.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// CounterField names a denormalized counter column on Post.
type CounterField string

const (
	CounterLikes    CounterField = "like_count"
	CounterComments CounterField = "comment_count"
)

// Post represents a social-feed post authored by an external user.
// AuthorID is an opaque reference into the user service and is not validated here.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	AuthorID string   `gorm:"not null;index" json:"author_id"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	Hashtags []string `gorm:"serializer:json" json:"hashtags"`
	Images   []string `gorm:"serializer:json" json:"images"`
	Status   Status   `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	// LikeCount and CommentCount are denormalized; only the Like and Comment
	// services write them, always through the transactional counter path.
	LikeCount    int       `gorm:"not null;default:0" json:"like_count"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets defaults that not every driver applies from column defaults.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return nil
}
