package models

import (
	"time"
)

// Follow is a directed edge: follower -> followed.
// The composite unique index keeps at most one edge per ordered pair;
// self-follows are rejected at the handler before any write.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follow_pair" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
