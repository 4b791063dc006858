package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationFollow  = "follow"
	NotificationComment = "comment"
	NotificationLike    = "like"
)

// Notification is append-only; is_read is the only field ever updated.
// PostID and CommentID may go stale after a cascade delete of their targets,
// which is acceptable since notifications are informational only.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`  // recipient
	ActorID   uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`       // who triggered it
	Type      string     `gorm:"size:50;not null" json:"type"`             // follow, comment, like
	PostID    *uuid.UUID `gorm:"type:uuid" json:"post_id,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid" json:"comment_id,omitempty"`
	Message   string     `gorm:"size:255;not null" json:"message"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Associations - pointer to avoid recursion through User
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
