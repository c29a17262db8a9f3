package models

import (
	"time"
)

// Message is immutable once created. A "thread" is not a table: it is the
// bidirectional (sender, receiver) filter ordered by CreatedAt.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
