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

type FollowService interface {
	// Follow creates the edge and notifies the followed user. Following
	// someone twice is a no-op; following yourself fails with ErrSelfFollow.
	Follow(ctx context.Context, followerID, followedID uuid.UUID) error
	// Unfollow removes the edge; removing an absent edge is a no-op.
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type followService struct {
	db      *gorm.DB
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(db *gorm.DB, follows repository.FollowRepository, users repository.UserRepository) FollowService {
	return &followService{
		db:      db,
		follows: follows,
		users:   users,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	if followerID == followedID {
		return apperror.ErrSelfFollow
	}

	follower, err := s.users.FindByID(ctx, followerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrUnauthorized
		}
		return err
	}

	if _, err := s.users.FindByID(ctx, followedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	// Edge and notification commit together.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := repository.NewFollowRepository(tx).Create(ctx, followerID, followedID)
		if err != nil {
			return err
		}
		if !created {
			// Edge already existed; no second notification.
			return nil
		}

		return notifyTx(ctx, tx, NotifyInput{
			RecipientID: followedID,
			ActorID:     followerID,
			Type:        model.NotificationFollow,
			Message:     fmt.Sprintf("%s started following you.", follower.Username),
		})
	})
}

func (s *followService) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	return s.follows.Delete(ctx, followerID, followedID)
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followedID)
}

func (s *followService) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.follows.FollowingIDs(ctx, userID)
}
