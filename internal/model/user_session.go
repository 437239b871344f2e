package model

import "time"

// UserSession accumulates login time for one user on one calendar day.
type UserSession struct {
	ID                   uint       `gorm:"primarykey" json:"id"`
	UserID               uint       `gorm:"not null;uniqueIndex:idx_session_user_date,priority:1" json:"userId"`
	Date                 string     `gorm:"size:10;not null;uniqueIndex:idx_session_user_date,priority:2" json:"date"`
	LoginTime            time.Time  `gorm:"not null" json:"loginTime"`
	LogoutTime           *time.Time `json:"logoutTime,omitempty"`
	TotalDurationSeconds int64      `gorm:"not null;default:0" json:"totalDurationSeconds"`
	IsActive             bool       `gorm:"not null;default:false" json:"isActive"`
}
