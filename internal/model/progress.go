package model

import (
	"gorm.io/datatypes"
)

// ModuleStatus is one entry of a progress record's per-module checklist.
type ModuleStatus struct {
	ModuleID    uint `json:"moduleId"`
	IsCompleted bool `json:"isCompleted"`
}

// ProgressRecord is the per-(student, course) completion ledger. The module
// checklist is frozen to the course's module order at record creation;
// TotalLessons does not track later course edits. The checklist is stored as
// a JSON column so the whole record stays a single row and row-level locking
// covers every mutation in one unit.
//
// Invariants maintained by ProgressService:
//   - 0 <= CompletedLessons <= TotalLessons == len(ModuleProgress)
//   - Percentage == CompletedLessons/TotalLessons*100 (0 when TotalLessons=0)
//   - CourseCompleted is set only by the explicit complete operation and,
//     once set, rejects further module toggles.
//
// swagger:model ProgressRecord
type ProgressRecord struct {
	BaseModel
	StudentID        uint                                 `gorm:"uniqueIndex:idx_student_course;not null" json:"student"`
	CourseID         uint                                 `gorm:"uniqueIndex:idx_student_course;not null" json:"course"`
	ModuleProgress   datatypes.JSONSlice[ModuleStatus]    `json:"moduleProgress"`
	CompletedLessons int                                  `gorm:"default:0" json:"completedLessons"`
	TotalLessons     int                                  `gorm:"default:0" json:"totalLessons"`
	Percentage       float64                              `gorm:"default:0" json:"percentage"`
	CourseCompleted  bool                                 `gorm:"default:false" json:"courseCompleted"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}

// Recalculate rederives CompletedLessons and Percentage from the checklist.
// It never touches CourseCompleted: reaching 100% by toggles does not lock
// the record, only the explicit complete operation does.
func (p *ProgressRecord) Recalculate() {
	completed := 0
	for _, m := range p.ModuleProgress {
		if m.IsCompleted {
			completed++
		}
	}
	p.CompletedLessons = completed
	if p.TotalLessons > 0 {
		p.Percentage = float64(p.CompletedLessons) / float64(p.TotalLessons) * 100
	} else {
		p.Percentage = 0
	}
}
