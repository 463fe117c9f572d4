package controller

import (
	"eduflex_backend/internal/service"
	"eduflex_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// DashboardStats godoc
// @Summary Dashboard statistics shaped by the caller's role
// @Description Instructors get course/quiz/student rollups, students get their own progress summary
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "unknown role"
// @Router /api/analytics/stats [get]
func (c *AnalyticsController) DashboardStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	stats, err := c.AnalyticsService.DashboardStats(ctx, claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, util.ErrUnknownRole) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, stats)
}
