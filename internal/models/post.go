package models

import (
	"html/template"
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `gorm:"size:255" json:"image"` // stored upload filename, optional
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	LikeCount   int           `gorm:"-" json:"like_count"`
	LikedByMe   bool          `gorm:"-" json:"liked_by_me"`
	ContentHTML template.HTML `gorm:"-" json:"-"`
}
