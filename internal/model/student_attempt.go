package model

import "time"

// StudentAttempt is append-only: one row per (student, question).
type StudentAttempt struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	StudentID        uint      `gorm:"not null;uniqueIndex:idx_attempt_student_question,priority:1" json:"studentId"`
	QuestionID       uint      `gorm:"not null;uniqueIndex:idx_attempt_student_question,priority:2" json:"questionId"`
	SelectedOption   string    `gorm:"size:1;not null" json:"selectedOption"`
	IsCorrect        bool      `gorm:"not null" json:"isCorrect"`
	SubjectID        uint      `gorm:"not null;index" json:"subjectId"`
	TimeSpentSeconds int       `gorm:"not null;default:0" json:"timeSpentSeconds"`
	AttemptedAt      time.Time `gorm:"not null" json:"attemptedAt"`
}
