package dto

import "time"

type SubjectRequest struct {
	Name         string `json:"name" binding:"required,notblank,max=200"`
	ExamCategory string `json:"examCategory" binding:"required,notblank,max=100"`
	Description  string `json:"description"`
}

type SubjectResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	ExamCategory  string    `json:"examCategory"`
	Description   string    `json:"description"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
