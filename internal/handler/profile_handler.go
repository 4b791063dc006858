package handler

import (
	"net/http"

	"anoa.com/communityhub/internal/service"
	"anoa.com/communityhub/pkg/apperror"
	"anoa.com/communityhub/pkg/response"
	"anoa.com/communityhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	viewerID := response.OptionalUserID(c)

	profile, err := h.profileService.GetByUsername(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	avatar, err := formImage(c, "avatar")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// formImage extracts an optional uploaded file from the multipart form.
func formImage(c *gin.Context, field string) (*service.ImageFile, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Absent file is fine; images are optional everywhere.
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "could not read uploaded file", apperror.ErrInvalidInput)
	}

	return &service.ImageFile{
		Reader:   f,
		FileName: fileHeader.Filename,
	}, nil
}
