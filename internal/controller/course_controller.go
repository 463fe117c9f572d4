package controller

import (
	"eduflex_backend/internal/service"
	"eduflex_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// courseModulePayload is the JSON half of a multipart module entry; its media
// files arrive as form parts named moduleImage_<i> / moduleVideo_<i>.
type courseModulePayload struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}

func (c *CourseController) parseModules(ctx *gin.Context) ([]service.ModuleInput, error) {
	raw := ctx.PostForm("modules")
	var payloads []courseModulePayload
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
			return nil, fmt.Errorf("invalid modules payload: %v", err)
		}
	}

	inputs := make([]service.ModuleInput, len(payloads))
	for i, p := range payloads {
		if p.Name == "" {
			return nil, fmt.Errorf("module %d is missing a name", i)
		}
		inputs[i] = service.ModuleInput{Name: p.Name, Content: p.Content}
		if file, err := ctx.FormFile(fmt.Sprintf("moduleImage_%d", i)); err == nil {
			inputs[i].Image = file
		}
		if file, err := ctx.FormFile(fmt.Sprintf("moduleVideo_%d", i)); err == nil {
			inputs[i].Video = file
		}
	}
	return inputs, nil
}

// CreateCourse godoc
// @Summary Create a course
// @Description Multipart: title, description, modules JSON array plus optional moduleImage_<i> / moduleVideo_<i> files
// @Tags courses
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "course title"
// @Param description formData string false "course description"
// @Param modules formData string false "JSON array of {name,content}"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	description := ctx.PostForm("description")

	inputs, err := c.parseModules(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(ctx, claims.UserID, title, description, inputs)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get one course with its modules
// @Tags courses
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Replaces metadata and module list; owner or admin only
// @Tags courses
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	description := ctx.PostForm("description")

	inputs, err := c.parseModules(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx, claims, id, title, description, inputs)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Cascades to modules, progress records, quizzes and attempts
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.DeleteCourse(claims, id); err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
