package service

import (
	"context"
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/repository"
	"eduflex_backend/internal/util"
	"eduflex_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	statsCacheKeyPrefix = "eduflex:stats:"
	statsCacheTTL       = 60 * time.Second
)

// AnalyticsService computes read-only dashboard rollups over the progress,
// course and quiz stores. Results are cached briefly in redis; progress and
// quiz mutations invalidate the acting student's entry.
type AnalyticsService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	QuizRepo     *repository.QuizRepository
	Redis        *redis.Client
}

func NewAnalyticsService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository, quizRepo *repository.QuizRepository, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		QuizRepo:     quizRepo,
		Redis:        rdb,
	}
}

// DashboardStats returns a role-shaped stats payload for the caller.
func (s *AnalyticsService) DashboardStats(ctx context.Context, userID uint, role model.UserRole) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s%s:%d", statsCacheKeyPrefix, role, userID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			switch role {
			case model.Instructor, model.Admin:
				var stats model.InstructorStats
				if json.Unmarshal([]byte(cached), &stats) == nil {
					return &stats, nil
				}
			case model.Student:
				var stats model.StudentStats
				if json.Unmarshal([]byte(cached), &stats) == nil {
					return &stats, nil
				}
			}
		}
	}

	var stats interface{}
	var err error

	switch role {
	case model.Instructor, model.Admin:
		stats, err = s.instructorStats(userID)
	case model.Student:
		stats, err = s.studentStats(userID)
	default:
		return nil, util.ErrUnknownRole
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, statsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache dashboard stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

// InvalidateStudent drops the student's cached dashboard entry after a
// progress or quiz mutation. Instructor rollups age out via the TTL.
func (s *AnalyticsService) InvalidateStudent(studentID uint) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("%s%s:%d", statsCacheKeyPrefix, model.Student, studentID)
	if err := s.Redis.Del(context.Background(), key).Err(); err != nil {
		logger.Log.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func (s *AnalyticsService) instructorStats(instructorID uint) (*model.InstructorStats, error) {
	totalCourses, err := s.CourseRepo.CountByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	totalQuizzes, err := s.QuizRepo.CountByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	courseIDs, err := s.CourseRepo.IDsByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	totalStudents, err := s.ProgressRepo.CountDistinctStudents(courseIDs)
	if err != nil {
		return nil, err
	}

	avgPerformance, err := s.ProgressRepo.AvgPercentageByCourses(courseIDs)
	if err != nil {
		return nil, err
	}

	return &model.InstructorStats{
		TotalCourses:   totalCourses,
		TotalQuizzes:   totalQuizzes,
		TotalStudents:  totalStudents,
		AvgPerformance: avgPerformance,
	}, nil
}

func (s *AnalyticsService) studentStats(studentID uint) (*model.StudentStats, error) {
	enrolled, err := s.ProgressRepo.CountByStudent(studentID)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CountCompletedByStudent(studentID)
	if err != nil {
		return nil, err
	}

	overall, err := s.ProgressRepo.AvgPercentageByStudent(studentID)
	if err != nil {
		return nil, err
	}

	totalQuizzes, err := s.QuizRepo.CountAll()
	if err != nil {
		return nil, err
	}

	attempted, err := s.QuizRepo.CountAttemptsByStudent(studentID)
	if err != nil {
		return nil, err
	}

	return &model.StudentStats{
		EnrolledCourses:  enrolled,
		CoursesCompleted: completed,
		QuizzesCompleted: attempted,
		TotalQuizzes:     totalQuizzes,
		OverallProgress:  overall,
	}, nil
}
