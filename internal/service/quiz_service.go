package service

import (
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/repository"
	"eduflex_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	CourseRepo *repository.CourseRepository
	Analytics  *AnalyticsService
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository, analytics *AnalyticsService) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		CourseRepo: courseRepo,
		Analytics:  analytics,
	}
}

// CreateQuiz validates the question set and attaches the quiz to an existing
// course. Every question needs at least two options and a correct answer
// index inside them.
func (s *QuizService) CreateQuiz(quiz *model.Quiz) error {
	if _, err := s.CourseRepo.FindByID(quiz.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	for _, q := range quiz.Questions {
		if len(q.Options) < 2 {
			return util.ErrQuizInvalidQuestion
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return util.ErrQuizInvalidQuestion
		}
	}

	return s.QuizRepo.Create(quiz)
}

// GetQuiz returns one quiz. For students the correct answers are blanked
// before the payload leaves the service.
func (s *QuizService) GetQuiz(id uint, role model.UserRole) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	if role == model.Student {
		return sanitizeQuiz(quiz), nil
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzes(courseID uint, role model.UserRole) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	var err error
	if courseID > 0 {
		quizzes, err = s.QuizRepo.FindByCourse(courseID)
	} else {
		quizzes, err = s.QuizRepo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	if role == model.Student {
		for i := range quizzes {
			quizzes[i] = *sanitizeQuiz(&quizzes[i])
		}
	}
	return quizzes, nil
}

// SubmitAttempt scores a student's answers against the stored question set
// and records the attempt. A student gets exactly one attempt per quiz; the
// unique index rejects the second insert and the first score stands.
func (s *QuizService) SubmitAttempt(studentID, quizID uint, answers []int) (*model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(answers) != len(quiz.Questions) {
		return nil, util.ErrAnswerCountMismatch
	}

	score := 0
	for i, q := range quiz.Questions {
		if answers[i] == q.CorrectAnswer {
			score++
		}
	}

	percentage := float64(0)
	if len(quiz.Questions) > 0 {
		percentage = float64(score) / float64(len(quiz.Questions)) * 100
	}

	attempt := &model.QuizAttempt{
		QuizID:         quizID,
		StudentID:      studentID,
		Answers:        answers,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		Percentage:     percentage,
		AttemptedAt:    time.Now(),
	}

	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrQuizAlreadyTaken
		}
		return nil, err
	}

	s.Analytics.InvalidateStudent(studentID)
	return attempt, nil
}

func (s *QuizService) GetAttempt(studentID, quizID uint) (*model.QuizAttempt, error) {
	attempt, err := s.QuizRepo.FindAttempt(quizID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// sanitizeQuiz copies the quiz with every correct answer replaced by -1 so
// students cannot read the key out of the payload.
func sanitizeQuiz(quiz *model.Quiz) *model.Quiz {
	clean := *quiz
	clean.Questions = make([]model.QuizQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		q.CorrectAnswer = -1
		clean.Questions[i] = q
	}
	return &clean
}
