package models

import "time"

// Like records that a user liked a blog. The composite primary key makes
// a second like for the same pair a unique-constraint violation.
type Like struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	BlogID    uint      `gorm:"primaryKey" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}
