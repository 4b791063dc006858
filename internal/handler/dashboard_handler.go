package handler

import (
	"net/http"

	"anoa.com/communityhub/internal/service"
	"anoa.com/communityhub/pkg/apperror"
	"anoa.com/communityhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	adminService     service.AdminService
}

func NewDashboardHandler(dashboardService service.DashboardService, adminService service.AdminService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		adminService:     adminService,
	}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.dashboardService.Counts(ctx)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	topPosts, err := h.dashboardService.TopPosts(ctx, service.TopPostsLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	recent, err := h.dashboardService.RecentPosts(ctx, service.RecentPostsLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":       counts,
		"top_posts":    topPosts,
		"recent_posts": recent,
	})
}

func (h *DashboardHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid user id", apperror.ErrInvalidInput))
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
