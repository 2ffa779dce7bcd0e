package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
// The composite primary key keeps the edge unique per pair.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships, projected separately in responses
	Follower  User `gorm:"foreignKey:FollowerID" json:"-"`
	Following User `gorm:"foreignKey:FollowingID" json:"-"`
}
