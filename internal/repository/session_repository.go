package repository

import (
	"context"
	"time"

	"github.com/lshigami/dailydose/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionTotals summarises a user's session log.
type SessionTotals struct {
	TotalSeconds int64
	Days         int64
}

type SessionRepository interface {
	// Open creates the user's row for date or, if it exists and is not active,
	// restarts its login clock. Accumulated totals are kept.
	Open(ctx context.Context, userID uint, date string, now time.Time) error
	FindActive(ctx context.Context, userID uint) (*model.UserSession, error)
	FindByDate(ctx context.Context, userID uint, date string) (*model.UserSession, error)
	// Close folds addSeconds into the session and deactivates it. It returns
	// ErrNotFound when the session was already closed.
	Close(ctx context.Context, sessionID uint, logoutTime time.Time, addSeconds int64) error
	Totals(ctx context.Context, userID uint) (SessionTotals, error)
	Recent(ctx context.Context, userID uint, limit int) ([]model.UserSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Open(ctx context.Context, userID uint, date string, now time.Time) error {
	session := model.UserSession{
		UserID:    userID,
		Date:      date,
		LoginTime: now,
		IsActive:  true,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&session)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.UserSession{}).
		Where("user_id = ? AND date = ? AND is_active = ?", userID, date, false).
		Updates(map[string]interface{}{"login_time": now, "is_active": true}).Error
}

func (r *sessionRepository) FindActive(ctx context.Context, userID uint) (*model.UserSession, error) {
	var session model.UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("date DESC").
		First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionRepository) FindByDate(ctx context.Context, userID uint, date string) (*model.UserSession, error) {
	var session model.UserSession
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&session).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionRepository) Close(ctx context.Context, sessionID uint, logoutTime time.Time, addSeconds int64) error {
	res := r.db.WithContext(ctx).Model(&model.UserSession{}).
		Where("id = ? AND is_active = ?", sessionID, true).
		Updates(map[string]interface{}{
			"total_duration_seconds": gorm.Expr("total_duration_seconds + ?", addSeconds),
			"logout_time":            logoutTime,
			"is_active":              false,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepository) Totals(ctx context.Context, userID uint) (SessionTotals, error) {
	var totals SessionTotals
	err := r.db.WithContext(ctx).Model(&model.UserSession{}).
		Select("COALESCE(SUM(total_duration_seconds), 0) AS total_seconds, COUNT(*) AS days").
		Where("user_id = ?", userID).
		Scan(&totals).Error
	return totals, err
}

func (r *sessionRepository) Recent(ctx context.Context, userID uint, limit int) ([]model.UserSession, error) {
	var sessions []model.UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
