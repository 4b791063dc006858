package service

import (
	"context"
	"errors"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/pkg/apperror"
	"anoa.com/communityhub/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	Bio string `form:"bio" binding:"max=1000"`
}

type ProfileResponse struct {
	User           *model.User  `json:"user"`
	Posts          []model.Post `json:"posts"`
	FollowersCount int64        `json:"followers_count"`
	FollowingCount int64        `json:"following_count"`
	IsFollowing    bool         `json:"is_following"`
}

type ProfileService interface {
	GetByUsername(ctx context.Context, username string, viewerID uuid.UUID) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *ImageFile) (*model.User, error)
}

type profileService struct {
	users        repository.UserRepository
	posts        repository.PostRepository
	follows      repository.FollowRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(users repository.UserRepository, posts repository.PostRepository, follows repository.FollowRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		users:        users,
		posts:        posts,
		follows:      follows,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetByUsername(ctx context.Context, username string, viewerID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	posts, err := s.posts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	followersCount, err := s.follows.FollowersCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	followingCount, err := s.follows.FollowingCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != uuid.Nil && viewerID != user.ID {
		isFollowing, err = s.follows.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileResponse{
		User:           user,
		Posts:          posts,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput, avatar *ImageFile) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	user.Bio = sanitizer.Sanitize(input.Bio)

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		ref, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, apperror.New(0, err.Error(), apperror.ErrInvalidInput)
		}
		user.AvatarURL = &ref
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
