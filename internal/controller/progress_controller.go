package controller

import (
	"eduflex_backend/internal/service"
	"eduflex_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ProgressController exposes the per-student completion state. The student
// identity always comes from the verified claims, never from the URL or body.
type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetProgress godoc
// @Summary Get (or lazily create) the caller's progress for a course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 404 {object} util.Response "course not found"
// @Router /api/courses/{id}/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	rec, err := c.ProgressService.GetOrCreateProgress(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, rec)
}

// ToggleModule godoc
// @Summary Toggle one module's completion in the caller's checklist
// @Description Rejected with 400 once the course has been explicitly completed
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param moduleIndex path int true "zero-based module index"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 400 {object} util.Response "course locked"
// @Failure 404 {object} util.Response "record or module not found"
// @Router /api/courses/{id}/module/{moduleIndex} [put]
func (c *ProgressController) ToggleModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	moduleIndex, err := strconv.Atoi(ctx.Param("moduleIndex"))
	if err != nil {
		util.BadRequest(ctx, "invalid module index")
		return
	}

	rec, err := c.ProgressService.ToggleModule(claims.UserID, courseID, moduleIndex)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseLocked):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrModuleNotFound), errors.Is(err, util.ErrProgressNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, rec)
}

// CompleteCourse godoc
// @Summary Mark the whole course complete for the caller
// @Description Forces every module complete and locks further toggling; idempotent
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 404 {object} util.Response "no progress record"
// @Router /api/courses/{id}/complete [put]
func (c *ProgressController) CompleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	rec, err := c.ProgressService.CompleteCourse(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, rec)
}
