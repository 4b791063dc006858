package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: follower receives the followed user's posts in
// the "following" feed mode. Self-edges are rejected at the service layer;
// the unique index keeps concurrent duplicate follows down to one row.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
