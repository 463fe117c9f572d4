package service

import (
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/repository"
	"eduflex_backend/internal/util"
	"eduflex_backend/pkg/database"
	"eduflex_backend/pkg/logger"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one named in-memory database per test so parallel tests stay isolated
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newProgressService(t *testing.T) (*ProgressService, *repository.CourseRepository) {
	t.Helper()
	db := newTestDB(t)
	progressRepo := repository.NewProgressRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	analytics := NewAnalyticsService(progressRepo, courseRepo, quizRepo, nil)
	return NewProgressService(progressRepo, courseRepo, analytics), courseRepo
}

func seedCourse(t *testing.T, courseRepo *repository.CourseRepository, moduleCount int) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:     "Intro to Go",
		CreatedBy: 42,
	}
	for i := 0; i < moduleCount; i++ {
		course.Modules = append(course.Modules, model.CourseModule{
			Name:     fmt.Sprintf("Module %d", i+1),
			Position: i,
		})
	}
	require.NoError(t, courseRepo.Create(course))
	return course
}

func TestGetOrCreateProgressInitializesChecklist(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 3)

	rec, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)

	assert.Equal(t, uint(1), rec.StudentID)
	assert.Equal(t, course.ID, rec.CourseID)
	assert.Len(t, rec.ModuleProgress, 3)
	for i, m := range rec.ModuleProgress {
		assert.Equal(t, course.Modules[i].ID, m.ModuleID)
		assert.False(t, m.IsCompleted)
	}
	assert.Equal(t, 0, rec.CompletedLessons)
	assert.Equal(t, 3, rec.TotalLessons)
	assert.Equal(t, float64(0), rec.Percentage)
	assert.False(t, rec.CourseCompleted)
}

func TestGetOrCreateProgressIsIdempotent(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	first, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)

	// mutate, then fetch again: the stored record must survive, not be reset
	_, err = svc.ToggleModule(1, course.ID, 0)
	require.NoError(t, err)

	second, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.CompletedLessons)
}

func TestGetOrCreateProgressUnknownCourse(t *testing.T) {
	svc, _ := newProgressService(t)

	_, err := svc.GetOrCreateProgress(1, 999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetOrCreateProgressSeparatesStudents(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	_, err := svc.ToggleModule(1, course.ID, 0)
	assert.ErrorIs(t, err, util.ErrProgressNotFound)

	a, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	b, err := svc.GetOrCreateProgress(2, course.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	_, err = svc.ToggleModule(1, course.ID, 0)
	require.NoError(t, err)

	b, err = svc.GetOrCreateProgress(2, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, b.CompletedLessons)
}

func TestToggleModuleFlipsAndRecounts(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 4)

	_, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)

	rec, err := svc.ToggleModule(1, course.ID, 2)
	require.NoError(t, err)
	assert.True(t, rec.ModuleProgress[2].IsCompleted)
	assert.Equal(t, 1, rec.CompletedLessons)
	assert.Equal(t, float64(25), rec.Percentage)

	// toggling the same module again reverts it
	rec, err = svc.ToggleModule(1, course.ID, 2)
	require.NoError(t, err)
	assert.False(t, rec.ModuleProgress[2].IsCompleted)
	assert.Equal(t, 0, rec.CompletedLessons)
	assert.Equal(t, float64(0), rec.Percentage)
}

func TestToggleModuleIndexOutOfRange(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	_, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)

	_, err = svc.ToggleModule(1, course.ID, 2)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
	_, err = svc.ToggleModule(1, course.ID, -1)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)

	rec, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CompletedLessons)
}

func TestToggleModuleWithoutRecord(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	_, err := svc.ToggleModule(1, course.ID, 0)
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
}

func TestFullToggleDoesNotLockRecord(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	_, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)

	_, err = svc.ToggleModule(1, course.ID, 0)
	require.NoError(t, err)
	rec, err := svc.ToggleModule(1, course.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(100), rec.Percentage)
	assert.False(t, rec.CourseCompleted)

	// still toggleable: 100% alone does not finalize the course
	rec, err = svc.ToggleModule(1, course.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(50), rec.Percentage)
}

func TestCompleteCourseForcesTerminalState(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 3)

	_, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	_, err = svc.ToggleModule(1, course.ID, 0)
	require.NoError(t, err)

	rec, err := svc.CompleteCourse(1, course.ID)
	require.NoError(t, err)
	assert.True(t, rec.CourseCompleted)
	assert.Equal(t, 3, rec.CompletedLessons)
	assert.Equal(t, float64(100), rec.Percentage)
	for _, m := range rec.ModuleProgress {
		assert.True(t, m.IsCompleted)
	}
}

func TestCompleteCourseIsIdempotent(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	_, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)

	first, err := svc.CompleteCourse(1, course.ID)
	require.NoError(t, err)
	second, err := svc.CompleteCourse(1, course.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.CourseCompleted)
	assert.Equal(t, float64(100), second.Percentage)
}

func TestCompleteCourseWithoutRecord(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	_, err := svc.CompleteCourse(1, course.ID)
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
}

func TestToggleAfterCompleteIsRejected(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	_, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	_, err = svc.CompleteCourse(1, course.ID)
	require.NoError(t, err)

	_, err = svc.ToggleModule(1, course.ID, 0)
	assert.ErrorIs(t, err, util.ErrCourseLocked)

	// rejected toggle must not have mutated anything
	rec, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	assert.True(t, rec.CourseCompleted)
	assert.Equal(t, 2, rec.CompletedLessons)
	assert.Equal(t, float64(100), rec.Percentage)
}

func TestEmptyCourseProgress(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 0)

	rec, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	assert.Len(t, rec.ModuleProgress, 0)
	assert.Equal(t, 0, rec.TotalLessons)
	assert.Equal(t, float64(0), rec.Percentage)

	_, err = svc.ToggleModule(1, course.ID, 0)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)

	rec, err = svc.CompleteCourse(1, course.ID)
	require.NoError(t, err)
	assert.True(t, rec.CourseCompleted)
	assert.Equal(t, float64(100), rec.Percentage)
}

func TestChecklistFrozenAgainstCourseEdits(t *testing.T) {
	svc, courseRepo := newProgressService(t)
	course := seedCourse(t, courseRepo, 2)

	rec, err := svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	require.Len(t, rec.ModuleProgress, 2)

	// growing the course later does not resize existing checklists
	require.NoError(t, courseRepo.Update(course, []model.CourseModule{
		{Name: "A"}, {Name: "B"}, {Name: "C"},
	}))

	rec, err = svc.GetOrCreateProgress(1, course.ID)
	require.NoError(t, err)
	assert.Len(t, rec.ModuleProgress, 2)
	assert.Equal(t, 2, rec.TotalLessons)
}
