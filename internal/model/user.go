package model

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleQAuthor    Role = "QAUTHOR"
	RoleStudent    Role = "STUDENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleQAuthor, RoleStudent:
		return true
	}
	return false
}

// Identity is the credential record owned by the identity provider.
type Identity struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"size:320;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// User is the application profile resolved from an Identity.
type User struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	IdentityID       uint      `gorm:"not null;uniqueIndex" json:"identityId"`
	Email            string    `gorm:"size:320;not null;uniqueIndex" json:"email"`
	FullName         string    `gorm:"size:200" json:"fullName"`
	Role             Role      `gorm:"size:16;not null;index" json:"role"`
	PrimarySubjectID *uint     `json:"primarySubjectId,omitempty"` // write-once
	CurrentStreak    int       `gorm:"not null;default:0" json:"currentStreak"`
	LongestStreak    int       `gorm:"not null;default:0" json:"longestStreak"`
	LastLoginDate    *string   `gorm:"size:10" json:"lastLoginDate,omitempty"` // YYYY-MM-DD in APP_TIMEZONE
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
