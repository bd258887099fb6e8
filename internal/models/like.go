package models

import "time"

// Like represents a user's like on a post.
// The combination of PostID and UserID must be unique; the index makes a
// duplicate create fail at the store. Likes are only ever hard-deleted.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
