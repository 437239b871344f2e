package dto

import "time"

// QuestionRequest is used by authors to create or replace a question.
type QuestionRequest struct {
	Title         string  `json:"title" binding:"required,notblank,max=300"`
	Content       string  `json:"content" binding:"required,notblank"`
	OptionA       string  `json:"optionA" binding:"required,notblank"`
	OptionB       string  `json:"optionB" binding:"required,notblank"`
	OptionC       string  `json:"optionC" binding:"required,notblank"`
	OptionD       string  `json:"optionD" binding:"required,notblank"`
	CorrectOption string  `json:"correctOption" binding:"required,oneof=A B C D"`
	Explanation   string  `json:"explanation"`
	Difficulty    string  `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	ExamCategory  string  `json:"examCategory" binding:"max=100"`
	SubjectID     uint    `json:"subjectId" binding:"required"`
	Year          *int    `json:"year" binding:"omitempty,min=1900,max=2100"`
	Source        *string `json:"source" binding:"omitempty,notblank,max=300"`
}

// QuestionResponse is the full question, answer included, for authors and admins.
type QuestionResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	OptionA       string    `json:"optionA"`
	OptionB       string    `json:"optionB"`
	OptionC       string    `json:"optionC"`
	OptionD       string    `json:"optionD"`
	CorrectOption string    `json:"correctOption"`
	Explanation   string    `json:"explanation"`
	Difficulty    string    `json:"difficulty"`
	ExamCategory  string    `json:"examCategory"`
	SubjectID     uint      `json:"subjectId"`
	Year          *int      `json:"year,omitempty"`
	Source        *string   `json:"source,omitempty"`
	CreatedBy     uint      `json:"createdBy"`
	DedupeHash    string    `json:"dedupeHash"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ExplanationDraftResponse struct {
	QuestionID uint   `json:"questionId"`
	Draft      string `json:"draft"`
}
