package models

import (
	"time"
)

type Community struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Sport     string    `gorm:"size:50;not null" json:"sport"`
	Emoji     string    `gorm:"size:10;default:🏅" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`

	// 非数据库字段，用于查询时填充
	MemberCount int  `gorm:"-" json:"member_count"`
	JoinedByMe  bool `gorm:"-" json:"joined_by_me"`
}

// UserCommunity is a membership edge; the unique pair makes joining idempotent.
type UserCommunity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_user_community_pair" json:"user_id"`
	CommunityID uint      `gorm:"not null;index;uniqueIndex:idx_user_community_pair" json:"community_id"`
	CreatedAt   time.Time `json:"created_at"`
}
