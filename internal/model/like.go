package model

import (
	"time"

	"github.com/google/uuid"
)

// PostLike is boolean membership, not a counter: at most one row per
// (user, post) pair, enforced by the unique index.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_post_like" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_post_like" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
