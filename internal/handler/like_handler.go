package handler

import (
	"net/http"

	"anoa.com/communityhub/internal/service"
	"anoa.com/communityhub/pkg/apperror"
	"anoa.com/communityhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) Like(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid post id", apperror.ErrInvalidInput))
		return
	}

	if err := h.likeService.Like(c.Request.Context(), postID, userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": true})
}

func (h *LikeHandler) Unlike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid post id", apperror.ErrInvalidInput))
		return
	}

	if err := h.likeService.Unlike(c.Request.Context(), postID, userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": false})
}
