package model

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type Question struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"size:300;not null" json:"title"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	OptionA       string     `gorm:"type:text;not null" json:"optionA"`
	OptionB       string     `gorm:"type:text;not null" json:"optionB"`
	OptionC       string     `gorm:"type:text;not null" json:"optionC"`
	OptionD       string     `gorm:"type:text;not null" json:"optionD"`
	CorrectOption string     `gorm:"size:1;not null" json:"correctOption"` // A, B, C or D
	Explanation   string     `gorm:"type:text" json:"explanation"`
	Difficulty    Difficulty `gorm:"size:10;not null" json:"difficulty"`
	ExamCategory  string     `gorm:"size:100" json:"examCategory"`
	SubjectID     uint       `gorm:"not null;index:idx_questions_subject_created,priority:1" json:"subjectId"`
	Year          *int       `json:"year,omitempty"`
	Source        *string    `gorm:"size:300" json:"source,omitempty"`
	CreatedBy     uint       `gorm:"not null;index" json:"createdBy"`
	DedupeHash    string     `gorm:"size:64;not null;uniqueIndex" json:"dedupeHash"`
	CreatedAt     time.Time  `gorm:"index:idx_questions_subject_created,priority:2" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
