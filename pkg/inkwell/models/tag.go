package models

import "time"

// Tag represents a tag that can be applied to blogs.
// Tags are created on first use and reused by name.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Blogs []Blog `gorm:"many2many:blog_tags;" json:"blogs,omitempty"`
}
