package service

import (
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/repository"
	"eduflex_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(t *testing.T) (*QuizService, *repository.CourseRepository) {
	t.Helper()
	db := newTestDB(t)
	progressRepo := repository.NewProgressRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	analytics := NewAnalyticsService(progressRepo, courseRepo, quizRepo, nil)
	return NewQuizService(quizRepo, courseRepo, analytics), courseRepo
}

func seedQuiz(t *testing.T, svc *QuizService, courseID uint) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		CourseID:     courseID,
		InstructorID: 42,
		Title:        "Basics",
		Questions: []model.QuizQuestion{
			{QuestionText: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1},
			{QuestionText: "1+1?", Options: []string{"2", "5"}, CorrectAnswer: 0},
			{QuestionText: "3*3?", Options: []string{"6", "9"}, CorrectAnswer: 1},
		},
	}
	require.NoError(t, svc.CreateQuiz(quiz))
	return quiz
}

func TestCreateQuizRequiresExistingCourse(t *testing.T) {
	svc, _ := newQuizService(t)

	err := svc.CreateQuiz(&model.Quiz{
		CourseID: 999,
		Title:    "Orphan",
		Questions: []model.QuizQuestion{
			{QuestionText: "?", Options: []string{"a", "b"}, CorrectAnswer: 0},
		},
	})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCreateQuizRejectsInvalidQuestions(t *testing.T) {
	svc, courseRepo := newQuizService(t)
	course := seedCourse(t, courseRepo, 1)

	err := svc.CreateQuiz(&model.Quiz{
		CourseID: course.ID,
		Title:    "Bad options",
		Questions: []model.QuizQuestion{
			{QuestionText: "?", Options: []string{"only one"}, CorrectAnswer: 0},
		},
	})
	assert.ErrorIs(t, err, util.ErrQuizInvalidQuestion)

	err = svc.CreateQuiz(&model.Quiz{
		CourseID: course.ID,
		Title:    "Answer out of range",
		Questions: []model.QuizQuestion{
			{QuestionText: "?", Options: []string{"a", "b"}, CorrectAnswer: 2},
		},
	})
	assert.ErrorIs(t, err, util.ErrQuizInvalidQuestion)
}

func TestGetQuizHidesAnswersFromStudents(t *testing.T) {
	svc, courseRepo := newQuizService(t)
	course := seedCourse(t, courseRepo, 1)
	quiz := seedQuiz(t, svc, course.ID)

	asStudent, err := svc.GetQuiz(quiz.ID, model.Student)
	require.NoError(t, err)
	for _, q := range asStudent.Questions {
		assert.Equal(t, -1, q.CorrectAnswer)
	}

	asInstructor, err := svc.GetQuiz(quiz.ID, model.Instructor)
	require.NoError(t, err)
	assert.Equal(t, 1, asInstructor.Questions[0].CorrectAnswer)

	// the stored quiz must be untouched by sanitizing
	again, err := svc.GetQuiz(quiz.ID, model.Instructor)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Questions[0].CorrectAnswer)
}

func TestSubmitAttemptScoresServerSide(t *testing.T) {
	svc, courseRepo := newQuizService(t)
	course := seedCourse(t, courseRepo, 1)
	quiz := seedQuiz(t, svc, course.ID)

	attempt, err := svc.SubmitAttempt(7, quiz.ID, []int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, attempt.Score)
	assert.Equal(t, 3, attempt.TotalQuestions)
	assert.InDelta(t, 66.66, attempt.Percentage, 0.1)
	assert.False(t, attempt.AttemptedAt.IsZero())
}

func TestSubmitAttemptAnswerCountMismatch(t *testing.T) {
	svc, courseRepo := newQuizService(t)
	course := seedCourse(t, courseRepo, 1)
	quiz := seedQuiz(t, svc, course.ID)

	_, err := svc.SubmitAttempt(7, quiz.ID, []int{1})
	assert.ErrorIs(t, err, util.ErrAnswerCountMismatch)
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	svc, _ := newQuizService(t)

	_, err := svc.SubmitAttempt(7, 999, []int{0})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestSecondAttemptIsRejected(t *testing.T) {
	svc, courseRepo := newQuizService(t)
	course := seedCourse(t, courseRepo, 1)
	quiz := seedQuiz(t, svc, course.ID)

	first, err := svc.SubmitAttempt(7, quiz.ID, []int{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Score)

	_, err = svc.SubmitAttempt(7, quiz.ID, []int{0, 1, 0})
	assert.ErrorIs(t, err, util.ErrQuizAlreadyTaken)

	// the first score must stand
	stored, err := svc.GetAttempt(7, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Score)

	// a different student is unaffected
	_, err = svc.SubmitAttempt(8, quiz.ID, []int{0, 0, 0})
	require.NoError(t, err)
}

func TestGetAttemptWithoutSubmission(t *testing.T) {
	svc, courseRepo := newQuizService(t)
	course := seedCourse(t, courseRepo, 1)
	quiz := seedQuiz(t, svc, course.ID)

	_, err := svc.GetAttempt(7, quiz.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}
