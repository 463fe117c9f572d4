package service

import (
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/repository"
	"eduflex_backend/internal/util"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressService owns the per-(student, course) completion state. Every
// operation takes the authenticated student's id resolved from the JWT
// claims, never a client-supplied one.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	Analytics    *AnalyticsService
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository, analytics *AnalyticsService) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		Analytics:    analytics,
	}
}

// GetOrCreateProgress returns the student's record for the course, lazily
// materializing it on first access. The checklist snapshots the course's
// current module order; TotalLessons is frozen from that point on. Creation
// goes through an insert-if-absent so two racing first reads end up with a
// single stored record.
func (s *ProgressService) GetOrCreateProgress(studentID, courseID uint) (*model.ProgressRecord, error) {
	rec, err := s.ProgressRepo.FindByStudentAndCourse(studentID, courseID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	checklist := make(datatypes.JSONSlice[model.ModuleStatus], len(course.Modules))
	for i, m := range course.Modules {
		checklist[i] = model.ModuleStatus{ModuleID: m.ID, IsCompleted: false}
	}

	fresh := &model.ProgressRecord{
		StudentID:        studentID,
		CourseID:         courseID,
		ModuleProgress:   checklist,
		CompletedLessons: 0,
		TotalLessons:     len(course.Modules),
		Percentage:       0,
		CourseCompleted:  false,
	}

	if err := s.ProgressRepo.InsertIfAbsent(fresh); err != nil {
		return nil, err
	}

	// Re-read: if a concurrent caller won the insert race we return theirs.
	return s.ProgressRepo.FindByStudentAndCourse(studentID, courseID)
}

// ToggleModule flips one checklist entry and rederives the counters. The
// record must already exist and must not be locked by an explicit course
// completion. Hitting 100% here does not lock the record; the student still
// has to confirm via CompleteCourse.
func (s *ProgressService) ToggleModule(studentID, courseID uint, moduleIndex int) (*model.ProgressRecord, error) {
	rec, err := s.ProgressRepo.MutateLocked(studentID, courseID, func(rec *model.ProgressRecord) error {
		if rec.CourseCompleted {
			return util.ErrCourseLocked
		}
		if moduleIndex < 0 || moduleIndex >= len(rec.ModuleProgress) {
			return util.ErrModuleNotFound
		}
		rec.ModuleProgress[moduleIndex].IsCompleted = !rec.ModuleProgress[moduleIndex].IsCompleted
		rec.Recalculate()
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Analytics.InvalidateStudent(studentID)
	return rec, nil
}

// CompleteCourse force-completes every module and locks the record. It is
// deliberately not guarded by "were all modules already done" and is
// idempotent: repeating it re-asserts the same terminal state.
func (s *ProgressService) CompleteCourse(studentID, courseID uint) (*model.ProgressRecord, error) {
	rec, err := s.ProgressRepo.MutateLocked(studentID, courseID, func(rec *model.ProgressRecord) error {
		for i := range rec.ModuleProgress {
			rec.ModuleProgress[i].IsCompleted = true
		}
		rec.CompletedLessons = rec.TotalLessons
		rec.Percentage = 100
		rec.CourseCompleted = true
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Analytics.InvalidateStudent(studentID)
	return rec, nil
}
