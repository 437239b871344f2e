package model

import "time"

type Subject struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	ExamCategory string    `gorm:"size:100;not null" json:"examCategory"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
