package service

import (
	"context"
	"errors"

	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/repository"
)

const recentSessionLimit = 7

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, studentID uint) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	users    repository.UserRepository
	subjects repository.SubjectRepository
	attempts repository.AttemptRepository
	sessions repository.SessionRepository
	sets     repository.DailySetRepository
	calendar *Calendar
}

func NewAnalyticsService(
	users repository.UserRepository,
	subjects repository.SubjectRepository,
	attempts repository.AttemptRepository,
	sessions repository.SessionRepository,
	sets repository.DailySetRepository,
	calendar *Calendar,
) AnalyticsService {
	return &analyticsService{users: users, subjects: subjects, attempts: attempts, sessions: sessions, sets: sets, calendar: calendar}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, studentID uint) (*dto.AnalyticsResponse, error) {
	user, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, apperror.Upstream("failed to load student", err)
	}
	resp := &dto.AnalyticsResponse{
		PrimarySubjectID: user.PrimarySubjectID,
		Subjects:         []dto.SubjectAnalytics{},
		CurrentStreak:    user.CurrentStreak,
		LongestStreak:    user.LongestStreak,
		RecentSessions:   []dto.SessionResponse{},
	}

	stats, err := s.attempts.StatsBySubject(ctx, studentID)
	if err != nil {
		return nil, apperror.Upstream("failed to aggregate attempts", err)
	}
	for _, st := range stats {
		resp.TotalAttempts += st.Attempted
		resp.CorrectAttempts += st.Correct
		if user.PrimarySubjectID == nil || st.SubjectID != *user.PrimarySubjectID {
			continue
		}
		item := dto.SubjectAnalytics{
			SubjectID:        st.SubjectID,
			Attempted:        st.Attempted,
			Correct:          st.Correct,
			Accuracy:         ratio(st.Correct, st.Attempted),
			TimeSpentSeconds: st.TimeSpentSeconds,
		}
		resp.Subjects = append(resp.Subjects, item)
	}
	resp.Accuracy = ratio(resp.CorrectAttempts, resp.TotalAttempts)

	if user.PrimarySubjectID != nil {
		if len(resp.Subjects) == 0 {
			resp.Subjects = append(resp.Subjects, dto.SubjectAnalytics{SubjectID: *user.PrimarySubjectID})
		}
		if subject, err := s.subjects.FindByID(ctx, *user.PrimarySubjectID); err == nil {
			resp.Subjects[0].Name = subject.Name
		}
	}

	totals, err := s.sessions.Totals(ctx, studentID)
	if err != nil {
		return nil, apperror.Upstream("failed to aggregate sessions", err)
	}
	resp.TotalSessionSeconds = totals.TotalSeconds
	resp.SessionDays = totals.Days

	today, err := s.sessions.FindByDate(ctx, studentID, s.calendar.Today())
	switch {
	case err == nil:
		resp.TodaySeconds = today.TotalDurationSeconds
		if today.IsActive {
			if live := int64(s.calendar.Now().Sub(today.LoginTime).Seconds()); live > 0 {
				resp.TodaySeconds += live
			}
		}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperror.Upstream("failed to load today's session", err)
	}

	recent, err := s.sessions.Recent(ctx, studentID, recentSessionLimit)
	if err != nil {
		return nil, apperror.Upstream("failed to load sessions", err)
	}
	for i := range recent {
		resp.RecentSessions = append(resp.RecentSessions, *toSessionResponse(&recent[i]))
	}

	if resp.DailySetsCompleted, err = s.sets.CountCompleted(ctx, studentID); err != nil {
		return nil, apperror.Upstream("failed to count daily sets", err)
	}
	return resp, nil
}

// ratio returns correct/attempted truncated to four decimals, 0 when nothing was attempted.
func ratio(correct, attempted int64) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(correct*10000/attempted) / 10000
}
