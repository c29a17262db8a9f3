package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Bio        string    `gorm:"size:200" json:"bio"`
	Location   string    `gorm:"size:100" json:"location"`
	ProfilePic string    `gorm:"size:255;default:default.jpg" json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
