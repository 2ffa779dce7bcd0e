package models

import "time"

// Blog represents a post. Tags and categories are attached through
// explicit join models so the update path can replace the whole join set
// inside a transaction.
type Blog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`

	// Relationships
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags       []Tag      `gorm:"many2many:blog_tags;" json:"tags,omitempty"`
	Categories []Category `gorm:"many2many:blog_categories;" json:"categories,omitempty"`
	Comments   []Comment  `gorm:"foreignKey:BlogID" json:"comments,omitempty"`
	Likes      []Like     `gorm:"foreignKey:BlogID" json:"likes,omitempty"`
}

// BlogTag is the blog<->tag join row.
type BlogTag struct {
	BlogID    uint      `gorm:"primaryKey" json:"blog_id"`
	TagID     uint      `gorm:"primaryKey" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogCategory is the blog<->category join row.
type BlogCategory struct {
	BlogID     uint      `gorm:"primaryKey" json:"blog_id"`
	CategoryID uint      `gorm:"primaryKey" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}
