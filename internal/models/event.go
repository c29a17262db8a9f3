package models

import (
	"time"
)

type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Date      string    `gorm:"size:50;not null" json:"date"` // free-form, ordered as text
	Location  string    `gorm:"size:100;not null" json:"location"`
	Sport     string    `gorm:"size:50;not null" json:"sport"`
	CreatorID uint      `gorm:"index" json:"creator_id"`
	Creator   User      `gorm:"foreignKey:CreatorID" json:"creator"`
	CreatedAt time.Time `json:"created_at"`

	// 非数据库字段，用于查询时填充
	AttendeeCount int  `gorm:"-" json:"attendee_count"`
	JoinedByMe    bool `gorm:"-" json:"joined_by_me"`
}

// UserEvent is an attendance edge; the unique pair makes joining idempotent.
type UserEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_event_pair" json:"user_id"`
	EventID   uint      `gorm:"not null;index;uniqueIndex:idx_user_event_pair" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}
