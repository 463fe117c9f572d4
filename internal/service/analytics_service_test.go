package service

import (
	"context"
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/repository"
	"eduflex_backend/internal/util"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsFixture struct {
	analytics *AnalyticsService
	progress  *ProgressService
	quiz      *QuizService
	courses   *repository.CourseRepository
	redis     *miniredis.Miniredis
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	db := newTestDB(t)
	progressRepo := repository.NewProgressRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	analytics := NewAnalyticsService(progressRepo, courseRepo, quizRepo, rdb)
	return &analyticsFixture{
		analytics: analytics,
		progress:  NewProgressService(progressRepo, courseRepo, analytics),
		quiz:      NewQuizService(quizRepo, courseRepo, analytics),
		courses:   courseRepo,
		redis:     mr,
	}
}

func TestStudentStatsAggregates(t *testing.T) {
	f := newAnalyticsFixture(t)
	c1 := seedCourse(t, f.courses, 2)
	c2 := seedCourse(t, f.courses, 4)
	quiz := seedQuiz(t, f.quiz, c1.ID)

	_, err := f.progress.GetOrCreateProgress(1, c1.ID)
	require.NoError(t, err)
	_, err = f.progress.GetOrCreateProgress(1, c2.ID)
	require.NoError(t, err)

	_, err = f.progress.CompleteCourse(1, c1.ID)
	require.NoError(t, err)
	_, err = f.progress.ToggleModule(1, c2.ID, 0)
	require.NoError(t, err)

	_, err = f.quiz.SubmitAttempt(1, quiz.ID, []int{1, 0, 1})
	require.NoError(t, err)

	stats, err := f.analytics.DashboardStats(context.Background(), 1, model.Student)
	require.NoError(t, err)

	s, ok := stats.(*model.StudentStats)
	require.True(t, ok)
	assert.Equal(t, int64(2), s.EnrolledCourses)
	assert.Equal(t, int64(1), s.CoursesCompleted)
	assert.Equal(t, int64(1), s.QuizzesCompleted)
	assert.Equal(t, int64(1), s.TotalQuizzes)
	assert.InDelta(t, 62.5, s.OverallProgress, 0.01) // mean of 100 and 25
}

func TestStudentStatsWithNoData(t *testing.T) {
	f := newAnalyticsFixture(t)

	stats, err := f.analytics.DashboardStats(context.Background(), 1, model.Student)
	require.NoError(t, err)

	s, ok := stats.(*model.StudentStats)
	require.True(t, ok)
	assert.Equal(t, int64(0), s.EnrolledCourses)
	assert.Equal(t, int64(0), s.CoursesCompleted)
	assert.Equal(t, float64(0), s.OverallProgress)
}

func TestInstructorStatsAggregates(t *testing.T) {
	f := newAnalyticsFixture(t)
	c1 := seedCourse(t, f.courses, 2) // CreatedBy 42
	seedQuiz(t, f.quiz, c1.ID)        // InstructorID 42

	_, err := f.progress.GetOrCreateProgress(1, c1.ID)
	require.NoError(t, err)
	_, err = f.progress.GetOrCreateProgress(2, c1.ID)
	require.NoError(t, err)
	_, err = f.progress.CompleteCourse(2, c1.ID)
	require.NoError(t, err)

	stats, err := f.analytics.DashboardStats(context.Background(), 42, model.Instructor)
	require.NoError(t, err)

	s, ok := stats.(*model.InstructorStats)
	require.True(t, ok)
	assert.Equal(t, int64(1), s.TotalCourses)
	assert.Equal(t, int64(1), s.TotalQuizzes)
	assert.Equal(t, int64(2), s.TotalStudents)
	assert.InDelta(t, 50, s.AvgPerformance, 0.01) // mean of 0 and 100
}

func TestInstructorStatsWithNoCourses(t *testing.T) {
	f := newAnalyticsFixture(t)

	stats, err := f.analytics.DashboardStats(context.Background(), 42, model.Instructor)
	require.NoError(t, err)

	s, ok := stats.(*model.InstructorStats)
	require.True(t, ok)
	assert.Equal(t, int64(0), s.TotalCourses)
	assert.Equal(t, int64(0), s.TotalStudents)
	assert.Equal(t, float64(0), s.AvgPerformance)
}

func TestAdminGetsInstructorShapedStats(t *testing.T) {
	f := newAnalyticsFixture(t)

	stats, err := f.analytics.DashboardStats(context.Background(), 42, model.Admin)
	require.NoError(t, err)
	_, ok := stats.(*model.InstructorStats)
	assert.True(t, ok)
}

func TestAdminStatsServedFromCache(t *testing.T) {
	f := newAnalyticsFixture(t)

	first, err := f.analytics.DashboardStats(context.Background(), 42, model.Admin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.(*model.InstructorStats).TotalCourses)

	// new data behind the cache's back must not show up within the TTL
	seedCourse(t, f.courses, 1)

	cached, err := f.analytics.DashboardStats(context.Background(), 42, model.Admin)
	require.NoError(t, err)
	s, ok := cached.(*model.InstructorStats)
	require.True(t, ok)
	assert.Equal(t, int64(0), s.TotalCourses)

	f.redis.FlushAll()
	fresh, err := f.analytics.DashboardStats(context.Background(), 42, model.Admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.(*model.InstructorStats).TotalCourses)
}

func TestUnknownRoleIsRejected(t *testing.T) {
	f := newAnalyticsFixture(t)

	_, err := f.analytics.DashboardStats(context.Background(), 1, model.UserRole("ghost"))
	assert.ErrorIs(t, err, util.ErrUnknownRole)
}

func TestStatsAreCachedUntilInvalidated(t *testing.T) {
	f := newAnalyticsFixture(t)
	c1 := seedCourse(t, f.courses, 2)

	_, err := f.progress.GetOrCreateProgress(1, c1.ID)
	require.NoError(t, err)

	stats, err := f.analytics.DashboardStats(context.Background(), 1, model.Student)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.(*model.StudentStats).CoursesCompleted)

	// a mutation through the service invalidates the cache
	_, err = f.progress.CompleteCourse(1, c1.ID)
	require.NoError(t, err)

	stats, err = f.analytics.DashboardStats(context.Background(), 1, model.Student)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.(*model.StudentStats).CoursesCompleted)

	// a second read within the TTL is served from the cache
	keys := f.redis.Keys()
	require.NotEmpty(t, keys)
}

func TestStaleCacheServedWithinTTL(t *testing.T) {
	f := newAnalyticsFixture(t)
	c1 := seedCourse(t, f.courses, 2)

	_, err := f.progress.GetOrCreateProgress(1, c1.ID)
	require.NoError(t, err)

	first, err := f.analytics.DashboardStats(context.Background(), 1, model.Student)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.(*model.StudentStats).EnrolledCourses)

	// enroll in another course behind the cache's back
	c2 := seedCourse(t, f.courses, 1)
	_, err = f.progress.GetOrCreateProgress(1, c2.ID)
	require.NoError(t, err)
	// GetOrCreate does not invalidate; manually drop the key to simulate TTL expiry
	cached, err := f.analytics.DashboardStats(context.Background(), 1, model.Student)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.(*model.StudentStats).EnrolledCourses)

	f.redis.FlushAll()
	fresh, err := f.analytics.DashboardStats(context.Background(), 1, model.Student)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.(*model.StudentStats).EnrolledCourses)
}
