package models

import (
	"time"
)

// Like is toggled by the feed handler: one row per (user, post) at most,
// creating again removes it.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_like_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_like_pair" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
