package repository

import (
	"context"

	"github.com/lshigami/dailydose/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	FindByHash(ctx context.Context, hash string) (*model.Question, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]model.Question, error)
	FindAll(ctx context.Context) ([]model.Question, error)
	// FindBySubject returns up to limit questions of a subject in bank order.
	FindBySubject(ctx context.Context, subjectID uint, limit int) ([]model.Question, error)
	// FindUnseenBySubject returns the oldest questions of a subject whose id is
	// not in seen, ordered by creation time.
	FindUnseenBySubject(ctx context.Context, subjectID uint, seen []uint, limit int) ([]model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return translate(r.db.WithContext(ctx).Create(question).Error)
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByHash(ctx context.Context, hash string) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).Where("dedupe_hash = ?", hash).First(&question).Error; err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

func (r *questionRepository) FindByOwner(ctx context.Context, ownerID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("created_by = ?", ownerID).Order("created_at desc, id desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindAll(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindBySubject(ctx context.Context, subjectID uint, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindUnseenBySubject(ctx context.Context, subjectID uint, seen []uint, limit int) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.WithContext(ctx).Where("subject_id = ?", subjectID)
	if len(seen) > 0 {
		query = query.Where("id NOT IN ?", seen)
	}
	err := query.Order("created_at ASC, id ASC").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(ctx context.Context, question *model.Question) error {
	return translate(r.db.WithContext(ctx).Save(question).Error)
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
