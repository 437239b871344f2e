package repository

import (
	"context"

	"github.com/lshigami/dailydose/internal/model"
	"gorm.io/gorm"
)

// SubjectWithCount is a subject plus the number of questions referencing it.
type SubjectWithCount struct {
	model.Subject
	QuestionCount int
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	FindByID(ctx context.Context, id uint) (*model.Subject, error)
	FindAllWithQuestionCount(ctx context.Context) ([]SubjectWithCount, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id uint) error
	CountQuestions(ctx context.Context, subjectID uint) (int64, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return translate(r.db.WithContext(ctx).Create(subject).Error)
}

func (r *subjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, translate(err)
	}
	return &subject, nil
}

func (r *subjectRepository) FindAllWithQuestionCount(ctx context.Context) ([]SubjectWithCount, error) {
	var results []SubjectWithCount
	err := r.db.WithContext(ctx).Model(&model.Subject{}).
		Select("subjects.*, (SELECT COUNT(*) FROM questions WHERE questions.subject_id = subjects.id) as question_count").
		Order("subjects.name ASC").
		Scan(&results).Error
	return results, err
}

func (r *subjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	return translate(r.db.WithContext(ctx).Save(subject).Error)
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Subject{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *subjectRepository) CountQuestions(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Question{}).Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}
