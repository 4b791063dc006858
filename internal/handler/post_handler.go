package handler

import (
	"net/http"

	"anoa.com/communityhub/internal/service"
	"anoa.com/communityhub/pkg/apperror"
	"anoa.com/communityhub/pkg/response"
	"anoa.com/communityhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type commentInput struct {
	Body string `json:"body" binding:"required,max=1000"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.CreatePostInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	image, err := formImage(c, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": post})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid post id", apperror.ErrInvalidInput))
		return
	}

	detail, err := h.postService.GetPost(c.Request.Context(), postID, response.OptionalUserID(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
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

	var input service.UpdatePostInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	image, err := formImage(c, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), postID, userID, input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
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

	if err := h.postService.DeletePost(c.Request.Context(), postID, userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func (h *PostHandler) AddComment(c *gin.Context) {
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

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	comment, err := h.postService.AddComment(c.Request.Context(), postID, userID, input.Body)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": comment})
}

// Feed serves the home feed. mode=following restricts to followed authors
// when the caller is authenticated.
func (h *PostHandler) Feed(c *gin.Context) {
	mode := c.DefaultQuery("mode", service.FeedModeAll)

	posts, err := h.postService.Feed(c.Request.Context(), response.OptionalUserID(c), mode)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts, "mode": mode})
}

func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")

	posts, err := h.postService.Search(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts, "q": q})
}
