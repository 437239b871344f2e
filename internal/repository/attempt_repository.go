package repository

import (
	"context"

	"github.com/lshigami/dailydose/internal/model"
	"gorm.io/gorm"
)

// SubjectAttemptStats aggregates a student's attempts in one subject.
type SubjectAttemptStats struct {
	SubjectID        uint
	Attempted        int64
	Correct          int64
	TimeSpentSeconds int64
}

type AttemptRepository interface {
	// Create inserts the attempt; ErrDuplicate means the student already
	// answered the question.
	Create(ctx context.Context, attempt *model.StudentAttempt) error
	FindByStudentAndQuestion(ctx context.Context, studentID, questionID uint) (*model.StudentAttempt, error)
	FindByStudentAndQuestions(ctx context.Context, studentID uint, questionIDs []uint) ([]model.StudentAttempt, error)
	SeenQuestionIDs(ctx context.Context, studentID uint) ([]uint, error)
	StatsBySubject(ctx context.Context, studentID uint) ([]SubjectAttemptStats, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.StudentAttempt) error {
	return translate(r.db.WithContext(ctx).Create(attempt).Error)
}

func (r *attemptRepository) FindByStudentAndQuestion(ctx context.Context, studentID, questionID uint) (*model.StudentAttempt, error) {
	var attempt model.StudentAttempt
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND question_id = ?", studentID, questionID).
		First(&attempt).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByStudentAndQuestions(ctx context.Context, studentID uint, questionIDs []uint) ([]model.StudentAttempt, error) {
	var attempts []model.StudentAttempt
	if len(questionIDs) == 0 {
		return attempts, nil
	}
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND question_id IN ?", studentID, questionIDs).
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) SeenQuestionIDs(ctx context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.StudentAttempt{}).
		Where("student_id = ?", studentID).
		Pluck("question_id", &ids).Error
	return ids, err
}

func (r *attemptRepository) StatsBySubject(ctx context.Context, studentID uint) ([]SubjectAttemptStats, error) {
	var stats []SubjectAttemptStats
	err := r.db.WithContext(ctx).Model(&model.StudentAttempt{}).
		Select("subject_id, COUNT(*) AS attempted, " +
			"SUM(CASE WHEN is_correct THEN 1 ELSE 0 END) AS correct, " +
			"COALESCE(SUM(time_spent_seconds), 0) AS time_spent_seconds").
		Where("student_id = ?", studentID).
		Group("subject_id").
		Scan(&stats).Error
	return stats, err
}
