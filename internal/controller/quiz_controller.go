package controller

import (
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/service"
	"eduflex_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CreateQuizRequest defines the quiz authoring payload.
// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	CourseID  uint                 `json:"course" binding:"required"`
	Title     string               `json:"title" binding:"required"`
	Questions []model.QuizQuestion `json:"questions" binding:"required,min=1"`
}

// AttemptRequest carries a student's answers, one option index per question.
// swagger:model AttemptRequest
type AttemptRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// CreateQuiz godoc
// @Summary Create a quiz for a course
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateQuizRequest true "quiz payload"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "invalid questions"
// @Failure 404 {object} util.Response "course not found"
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz := &model.Quiz{
		CourseID:     req.CourseID,
		InstructorID: claims.UserID,
		Title:        req.Title,
		Questions:    req.Questions,
	}

	if err := c.QuizService.CreateQuiz(quiz); err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrQuizInvalidQuestion):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// ListQuizzes godoc
// @Summary List quizzes, optionally filtered by course
// @Description Students receive questions without correct answers
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param course query int false "course id filter"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var courseID uint
	if raw := ctx.Query("course"); raw != "" {
		id, err := util.ParseUint(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid course id")
			return
		}
		courseID = id
	}

	quizzes, err := c.QuizService.ListQuizzes(courseID, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// GetQuiz godoc
// @Summary Get one quiz
// @Description Students receive questions without correct answers
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	quiz, err := c.QuizService.GetQuiz(id, claims.Role)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// SubmitAttempt godoc
// @Summary Submit answers for a quiz
// @Description Scored server-side; one attempt per student, a second submission gets 409
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Param body body AttemptRequest true "answers"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.Response "answer count mismatch"
// @Failure 404 {object} util.Response "quiz not found"
// @Failure 409 {object} util.Response "already attempted"
// @Router /api/quizzes/{id}/attempt [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.QuizService.SubmitAttempt(claims.UserID, id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAnswerCountMismatch):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizAlreadyTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, attempt)
}

// GetAttempt godoc
// @Summary Get the caller's recorded attempt for a quiz
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/attempt [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseUint(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	attempt, err := c.QuizService.GetAttempt(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}
