package models

import "time"

// Comment represents a comment on a blog. A user may comment on the same
// blog any number of times; deletion targets a specific comment id.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Comment   string    `gorm:"not null" json:"comment"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	BlogID    uint      `gorm:"not null;index" json:"blog_id"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
