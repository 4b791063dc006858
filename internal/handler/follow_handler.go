package handler

import (
	"errors"
	"net/http"

	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/internal/service"
	"anoa.com/communityhub/pkg/apperror"
	"anoa.com/communityhub/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FollowHandler struct {
	followService service.FollowService
	userRepo      repository.UserRepository
}

func NewFollowHandler(followService service.FollowService, userRepo repository.UserRepository) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		userRepo:      userRepo,
	}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	target, err := h.userRepo.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ResponseError(c, apperror.ErrNotFound)
			return
		}
		response.ResponseError(c, err)
		return
	}

	if err := h.followService.Follow(c.Request.Context(), userID, target.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": true})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	target, err := h.userRepo.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ResponseError(c, apperror.ErrNotFound)
			return
		}
		response.ResponseError(c, err)
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), userID, target.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}
