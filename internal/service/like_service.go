package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeService interface {
	// Like records the like and notifies the post author. Liking an already
	// liked post is a no-op and produces no second notification.
	Like(ctx context.Context, postID, userID uuid.UUID) error
	// Unlike removes the like if present. It is deliberately lenient: no
	// error when the like row, or even the post, no longer exists.
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	IsLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}

type likeService struct {
	db    *gorm.DB
	likes repository.LikeRepository
	posts repository.PostRepository
	users repository.UserRepository
}

func NewLikeService(db *gorm.DB, likes repository.LikeRepository, posts repository.PostRepository, users repository.UserRepository) LikeService {
	return &likeService{
		db:    db,
		likes: likes,
		posts: posts,
		users: users,
	}
}

func (s *likeService) Like(ctx context.Context, postID, userID uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrUnauthorized
		}
		return err
	}

	// Like and notification commit together.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := repository.NewLikeRepository(tx).Create(ctx, userID, postID)
		if err != nil {
			return err
		}
		if !created {
			// Already liked; nothing else to do.
			return nil
		}

		return notifyTx(ctx, tx, NotifyInput{
			RecipientID: post.UserID,
			ActorID:     userID,
			Type:        model.NotificationLike,
			Message:     fmt.Sprintf("%s liked your post.", user.Username),
			PostID:      &post.ID,
		})
	})
}

func (s *likeService) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	return s.likes.Delete(ctx, userID, postID)
}

func (s *likeService) IsLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return s.likes.IsLiked(ctx, userID, postID)
}
