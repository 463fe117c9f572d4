package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuizQuestion is a multiple-choice question; CorrectAnswer indexes Options.
type QuizQuestion struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID     uint                              `gorm:"index;not null" json:"course"`
	InstructorID uint                              `gorm:"index;not null" json:"instructor"`
	Title        string                            `gorm:"size:255;not null" json:"title"`
	Questions    datatypes.JSONSlice[QuizQuestion] `json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt is a student's single permitted submission for a quiz. The
// composite unique index makes a second attempt fail at the storage layer
// instead of overwriting the first.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID         uint                     `gorm:"uniqueIndex:idx_quiz_student;not null" json:"quiz"`
	StudentID      uint                     `gorm:"uniqueIndex:idx_quiz_student;not null" json:"student"`
	Answers        datatypes.JSONSlice[int] `json:"answers"`
	Score          int                      `gorm:"default:0" json:"score"`
	TotalQuestions int                      `gorm:"default:0" json:"totalQuestions"`
	Percentage     float64                  `gorm:"default:0" json:"percentage"`
	AttemptedAt    time.Time                `json:"attemptedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
