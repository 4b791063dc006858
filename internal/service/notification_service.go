package service

import (
	"context"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotifyInput struct {
	RecipientID uuid.UUID
	ActorID     uuid.UUID
	Type        string
	Message     string
	PostID      *uuid.UUID
	CommentID   *uuid.UUID
}

type NotificationService interface {
	// Notify records a notification for the recipient. Self-notifications
	// (recipient == actor) are silently suppressed.
	Notify(ctx context.Context, input NotifyInput) error
	List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) NotificationService {
	return &notificationService{db: db}
}

func (s *notificationService) Notify(ctx context.Context, input NotifyInput) error {
	return notifyTx(ctx, s.db, input)
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return repository.NewNotificationRepository(s.db).ListByUser(ctx, userID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return repository.NewNotificationRepository(s.db).MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return repository.NewNotificationRepository(s.db).CountUnread(ctx, userID)
}

// notifyTx inserts a notification using the given handle, which may be a
// transaction so the notification commits atomically with the event that
// triggered it. Self-notifications are suppressed without error.
func notifyTx(ctx context.Context, tx *gorm.DB, input NotifyInput) error {
	if input.RecipientID == input.ActorID {
		return nil
	}

	n := &model.Notification{
		UserID:    input.RecipientID,
		ActorID:   input.ActorID,
		Type:      input.Type,
		Message:   input.Message,
		PostID:    input.PostID,
		CommentID: input.CommentID,
	}
	return repository.NewNotificationRepository(tx).Create(ctx, n)
}
