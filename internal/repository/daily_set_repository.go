package repository

import (
	"context"
	"time"

	"github.com/lshigami/dailydose/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailySetRepository interface {
	FindByStudentAndDate(ctx context.Context, studentID uint, date string) (*model.DailyQuestionSet, error)
	// CreateIfAbsent inserts set unless the student already has one for
	// set.SetDate, then returns whichever row is stored.
	CreateIfAbsent(ctx context.Context, set *model.DailyQuestionSet) (*model.DailyQuestionSet, error)
	MarkCompleted(ctx context.Context, id uint, score int, at time.Time) error
	CountCompleted(ctx context.Context, studentID uint) (int64, error)
}

type dailySetRepository struct {
	db *gorm.DB
}

func NewDailySetRepository(db *gorm.DB) DailySetRepository {
	return &dailySetRepository{db: db}
}

func (r *dailySetRepository) FindByStudentAndDate(ctx context.Context, studentID uint, date string) (*model.DailyQuestionSet, error) {
	var set model.DailyQuestionSet
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND set_date = ?", studentID, date).
		First(&set).Error
	if err != nil {
		return nil, translate(err)
	}
	return &set, nil
}

func (r *dailySetRepository) CreateIfAbsent(ctx context.Context, set *model.DailyQuestionSet) (*model.DailyQuestionSet, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "set_date"}},
			DoNothing: true,
		}).
		Create(set).Error
	if err != nil {
		return nil, err
	}
	return r.FindByStudentAndDate(ctx, set.StudentID, set.SetDate)
}

func (r *dailySetRepository) MarkCompleted(ctx context.Context, id uint, score int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.DailyQuestionSet{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"score":        score,
			"completed_at": at,
		}).Error
}

func (r *dailySetRepository) CountCompleted(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DailyQuestionSet{}).
		Where("student_id = ? AND completed = ?", studentID, true).
		Count(&count).Error
	return count, err
}
