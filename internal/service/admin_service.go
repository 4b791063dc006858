package service

import (
	"context"
	"errors"

	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminService interface {
	// DeleteUser removes a user and cascades to everything they own: posts
	// (with comments and likes on them), their comments and likes elsewhere,
	// follow edges in both directions, and notifications they received or
	// triggered. One transaction, handled in the user store.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type adminService struct {
	users repository.UserRepository
}

func NewAdminService(users repository.UserRepository) AdminService {
	return &adminService{users: users}
}

func (s *adminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.users.Delete(ctx, userID)
}
