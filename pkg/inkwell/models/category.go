package models

import "time"

// Category represents a category a blog can be filed under.
// Like tags, categories are created on first use and reused by name.
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Blogs []Blog `gorm:"many2many:blog_categories;" json:"blogs,omitempty"`
}
