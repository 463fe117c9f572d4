package repository

import (
	"eduflex_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.ProgressRecord, error) {
	var rec model.ProgressRecord
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// InsertIfAbsent creates the record unless the (student, course) pair already
// exists. The unique composite index plus ON CONFLICT DO NOTHING makes first
// access idempotent under concurrent callers; the caller re-reads afterwards.
func (r *ProgressRepository) InsertIfAbsent(rec *model.ProgressRecord) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(rec).Error
}

// MutateLocked loads the record under a row lock, applies fn and saves the
// result, all in one transaction. Concurrent toggles on the same record
// serialize instead of losing updates.
func (r *ProgressRepository) MutateLocked(studentID, courseID uint, fn func(*model.ProgressRecord) error) (*model.ProgressRecord, error) {
	var rec model.ProgressRecord
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		q := tx
		// SQLite has no SELECT ... FOR UPDATE; its writers serialize anyway.
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&rec).Error; err != nil {
			return err
		}
		if err := fn(&rec); err != nil {
			return err
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ProgressRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ProgressRecord{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("student_id = ? AND percentage = ?", studentID, 100).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) AvgPercentageByStudent(studentID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("student_id = ?", studentID).
		Select("AVG(percentage)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *ProgressRepository) CountDistinctStudents(courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("course_id IN ?", courseIDs).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) AvgPercentageByCourses(courseIDs []uint) (float64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var avg *float64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("course_id IN ?", courseIDs).
		Select("AVG(percentage)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
