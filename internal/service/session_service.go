package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/rs/zerolog/log"
)

// SessionService tracks login streaks and per-day study sessions.
type SessionService interface {
	// RecordLogin advances the user's streak and opens today's session.
	RecordLogin(ctx context.Context, user *model.User) error
	EndSession(ctx context.Context, userID uint) (*dto.EndSessionResponse, error)
}

type sessionService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	calendar *Calendar
}

func NewSessionService(users repository.UserRepository, sessions repository.SessionRepository, calendar *Calendar) SessionService {
	return &sessionService{users: users, sessions: sessions, calendar: calendar}
}

func (s *sessionService) RecordLogin(ctx context.Context, user *model.User) error {
	today := s.calendar.Today()
	current, longest := NextStreak(user.CurrentStreak, user.LongestStreak, user.LastLoginDate, today)
	if err := s.users.UpdateStreak(ctx, user.ID, current, longest, today); err != nil {
		return err
	}
	user.CurrentStreak = current
	user.LongestStreak = longest
	user.LastLoginDate = &today

	return s.sessions.Open(ctx, user.ID, today, s.calendar.Now())
}

func (s *sessionService) EndSession(ctx context.Context, userID uint) (*dto.EndSessionResponse, error) {
	active, err := s.sessions.FindActive(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.currentTotals(ctx, userID)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load active session", err)
	}

	now := s.calendar.Now()
	elapsed := int64(now.Sub(active.LoginTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	err = s.sessions.Close(ctx, active.ID, now, elapsed)
	if errors.Is(err, repository.ErrNotFound) {
		// closed concurrently by another request
		return s.currentTotals(ctx, userID)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to close session", err)
	}
	log.Info().Uint("userID", userID).Str("date", active.Date).Int64("addedSeconds", elapsed).Msg("Session ended")

	active.TotalDurationSeconds += elapsed
	active.LogoutTime = &now
	active.IsActive = false
	return &dto.EndSessionResponse{Ended: true, Session: toSessionResponse(active)}, nil
}

func (s *sessionService) currentTotals(ctx context.Context, userID uint) (*dto.EndSessionResponse, error) {
	today, err := s.sessions.FindByDate(ctx, userID, s.calendar.Today())
	if errors.Is(err, repository.ErrNotFound) {
		return &dto.EndSessionResponse{Ended: false}, nil
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load session", err)
	}
	return &dto.EndSessionResponse{Ended: false, Session: toSessionResponse(today)}, nil
}

func toSessionResponse(session *model.UserSession) *dto.SessionResponse {
	var resp dto.SessionResponse
	copier.Copy(&resp, session)
	return &resp
}
