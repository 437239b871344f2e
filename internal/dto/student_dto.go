package dto

import "time"

type SelectSubjectRequest struct {
	SubjectID uint `json:"subjectId" binding:"required"`
}

type StudentSubjectsResponse struct {
	PrimarySubjectID *uint             `json:"primarySubjectId"`
	Subjects         []SubjectResponse `json:"subjects"`
}

type SubmitAnswerRequest struct {
	QuestionID       uint   `json:"questionId" binding:"required"`
	SelectedOption   string `json:"selectedOption" binding:"required,oneof=A B C D"`
	TimeSpentSeconds int    `json:"timeSpentSeconds" binding:"min=0,max=86400"`
}

type AttemptResponse struct {
	ID               uint      `json:"id"`
	QuestionID       uint      `json:"questionId"`
	SelectedOption   string    `json:"selectedOption"`
	IsCorrect        bool      `json:"isCorrect"`
	SubjectID        uint      `json:"subjectId"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	AttemptedAt      time.Time `json:"attemptedAt"`
	CorrectOption    string    `json:"correctOption,omitempty"`
	Explanation      string    `json:"explanation,omitempty"`
}

type SubmitAnswerResponse struct {
	Attempt          AttemptResponse `json:"attempt"`
	AlreadyAttempted bool            `json:"alreadyAttempted"`
}

type SessionResponse struct {
	Date                 string     `json:"date"`
	LoginTime            time.Time  `json:"loginTime"`
	LogoutTime           *time.Time `json:"logoutTime,omitempty"`
	TotalDurationSeconds int64      `json:"totalDurationSeconds"`
	IsActive             bool       `json:"isActive"`
}

type EndSessionResponse struct {
	Ended   bool             `json:"ended"`
	Session *SessionResponse `json:"session,omitempty"`
}

type SubjectAnalytics struct {
	SubjectID        uint    `json:"subjectId"`
	Name             string  `json:"name"`
	Attempted        int64   `json:"attempted"`
	Correct          int64   `json:"correct"`
	Accuracy         float64 `json:"accuracy"`
	TimeSpentSeconds int64   `json:"timeSpentSeconds"`
}

type AnalyticsResponse struct {
	PrimarySubjectID    *uint              `json:"primarySubjectId"`
	Subjects            []SubjectAnalytics `json:"subjects"`
	TotalAttempts       int64              `json:"totalAttempts"`
	CorrectAttempts     int64              `json:"correctAttempts"`
	Accuracy            float64            `json:"accuracy"`
	CurrentStreak       int                `json:"currentStreak"`
	LongestStreak       int                `json:"longestStreak"`
	TodaySeconds        int64              `json:"todaySeconds"`
	TotalSessionSeconds int64              `json:"totalSessionSeconds"`
	SessionDays         int64              `json:"sessionDays"`
	DailySetsCompleted  int64              `json:"dailySetsCompleted"`
	RecentSessions      []SessionResponse  `json:"recentSessions"`
}
