package models

import "time"

// Post is a single authored text entry. Posts are never updated or deleted.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	User      *User     `json:"author,omitempty"`
}
