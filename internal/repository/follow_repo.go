package repository

import (
	"context"
	"errors"

	"anoa.com/communityhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowRepository interface {
	// Create inserts the edge and reports whether a new row was created.
	// A unique-constraint violation from a concurrent duplicate follow is
	// treated as success with created=false.
	Create(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followedID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	FollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	FollowersCount(ctx context.Context, userID uuid.UUID) (int64, error)
	FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	follow := model.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	err := r.db.WithContext(ctx).Create(&follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	// Deleting a missing edge is a no-op, not an error.
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{}).Error
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	return ids, err
}

func (r *followRepository) FollowersCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
