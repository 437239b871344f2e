package repository

import (
	"context"

	"github.com/lshigami/dailydose/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateWithIdentity(ctx context.Context, identity *model.Identity, user *model.User) error
	FindIdentityByEmail(ctx context.Context, email string) (*model.Identity, error)
	FindByIdentityID(ctx context.Context, identityID uint) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	UpdateStreak(ctx context.Context, userID uint, current, longest int, lastLoginDate string) error
	// SetPrimarySubjectOnce sets the primary subject only if none is set yet and
	// reports whether the row was updated.
	SetPrimarySubjectOnce(ctx context.Context, userID, subjectID uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithIdentity(ctx context.Context, identity *model.Identity, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(identity).Error; err != nil {
			return err
		}
		user.IdentityID = identity.ID
		return tx.Create(user).Error
	})
	return translate(err)
}

func (r *userRepository) FindIdentityByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var identity model.Identity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error; err != nil {
		return nil, translate(err)
	}
	return &identity, nil
}

func (r *userRepository) FindByIdentityID(ctx context.Context, identityID uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("identity_id = ?", identityID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateStreak(ctx context.Context, userID uint, current, longest int, lastLoginDate string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"current_streak":  current,
		"longest_streak":  longest,
		"last_login_date": lastLoginDate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetPrimarySubjectOnce(ctx context.Context, userID, subjectID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND primary_subject_id IS NULL", userID).
		Update("primary_subject_id", subjectID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
