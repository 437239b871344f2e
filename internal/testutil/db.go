// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/lshigami/dailydose/database"
	"github.com/lshigami/dailydose/internal/model"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Clock is a settable time source for services under test.
type Clock struct {
	Current time.Time
}

func (c *Clock) Now() time.Time { return c.Current }

func (c *Clock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

func CreateUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()
	identity := model.Identity{Email: email, PasswordHash: "x"}
	if err := db.Create(&identity).Error; err != nil {
		t.Fatalf("create identity: %v", err)
	}
	user := model.User{IdentityID: identity.ID, Email: email, FullName: email, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func CreateSubject(t *testing.T, db *gorm.DB, name string) *model.Subject {
	t.Helper()
	subject := model.Subject{Name: name, ExamCategory: "GATE"}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("create subject: %v", err)
	}
	return &subject
}

// CreateQuestions inserts n questions in subject with strictly increasing
// creation times, all answered by option A.
func CreateQuestions(t *testing.T, db *gorm.DB, subjectID, authorID uint, n int) []model.Question {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var questions []model.Question
	var existing int64
	db.Model(&model.Question{}).Count(&existing)
	for i := 0; i < n; i++ {
		seq := int(existing) + i
		q := model.Question{
			Title:         "Question",
			Content:       fmt.Sprintf("Content %d", seq),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: "A",
			Explanation:   "because",
			Difficulty:    model.DifficultyEasy,
			SubjectID:     subjectID,
			CreatedBy:     authorID,
			CreatedAt:     base.Add(time.Duration(seq) * time.Minute),
		}
		q.DedupeHash = fmt.Sprintf("fixture-%d", seq)
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
		questions = append(questions, q)
	}
	return questions
}
