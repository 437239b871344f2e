package model

import (
	"time"

	"gorm.io/datatypes"
)

// DailyQuestionSet records the questions assigned to a student on one date.
// QuestionIDs is written once and never resampled.
type DailyQuestionSet struct {
	ID          uint                      `gorm:"primarykey" json:"id"`
	StudentID   uint                      `gorm:"not null;uniqueIndex:idx_daily_set_student_date,priority:1" json:"studentId"`
	SetDate     string                    `gorm:"size:10;not null;uniqueIndex:idx_daily_set_student_date,priority:2" json:"setDate"`
	SubjectID   uint                      `gorm:"not null" json:"subjectId"`
	QuestionIDs datatypes.JSONSlice[uint] `gorm:"not null" json:"questionIds"`
	Completed   bool                      `gorm:"not null;default:false" json:"completed"`
	Score       *int                      `json:"score,omitempty"`
	CompletedAt *time.Time                `json:"completedAt,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
}
