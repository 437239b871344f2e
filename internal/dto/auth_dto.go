package dto

import "time"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" binding:"required,notblank,max=200"`
	// Role defaults to STUDENT; SUPERADMIN accounts are provisioned at startup only.
	Role string `json:"role" binding:"omitempty,oneof=STUDENT QAUTHOR"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID               uint      `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	Role             string    `json:"role"`
	PrimarySubjectID *uint     `json:"primarySubjectId"`
	CurrentStreak    int       `json:"currentStreak"`
	LongestStreak    int       `json:"longestStreak"`
	LastLoginDate    *string   `json:"lastLoginDate"`
	CreatedAt        time.Time `json:"createdAt"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
