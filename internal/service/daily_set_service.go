package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lshigami/dailydose/config"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/rs/zerolog/log"
)

// DailySetService hands each student one fixed question set per calendar day.
type DailySetService interface {
	// GetOrCreateTodaySet returns today's set, generating it from the oldest
	// questions of the primary subject the student has not attempted yet.
	GetOrCreateTodaySet(ctx context.Context, studentID uint) (*dto.DailySetResponse, error)
	// CompleteTodaySet scores today's set. Unanswered questions count as wrong.
	CompleteTodaySet(ctx context.Context, studentID uint) (*dto.DailySetResponse, error)
	// CompleteIfAnswered completes today's set once all of its questions have
	// an attempt.
	CompleteIfAnswered(ctx context.Context, studentID uint) error
}

type dailySetService struct {
	users     repository.UserRepository
	subjects  repository.SubjectRepository
	questions repository.QuestionRepository
	attempts  repository.AttemptRepository
	sets      repository.DailySetRepository
	calendar  *Calendar
	size      int
}

func NewDailySetService(
	users repository.UserRepository,
	subjects repository.SubjectRepository,
	questions repository.QuestionRepository,
	attempts repository.AttemptRepository,
	sets repository.DailySetRepository,
	calendar *Calendar,
	cfg *config.Config,
) DailySetService {
	return &dailySetService{
		users:     users,
		subjects:  subjects,
		questions: questions,
		attempts:  attempts,
		sets:      sets,
		calendar:  calendar,
		size:      cfg.App.DailySetSize,
	}
}

func (s *dailySetService) GetOrCreateTodaySet(ctx context.Context, studentID uint) (*dto.DailySetResponse, error) {
	today := s.calendar.Today()
	user, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, apperror.Upstream("failed to load student", err)
	}
	if user.PrimarySubjectID == nil {
		return &dto.DailySetResponse{Status: dto.DailySetNoSubjectSelected, Date: today, Questions: []dto.DailyQuestionResponse{}}, nil
	}
	subjectID := *user.PrimarySubjectID

	existing, err := s.sets.FindByStudentAndDate(ctx, studentID, today)
	if err == nil {
		return s.render(ctx, existing)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Upstream("failed to load daily set", err)
	}

	seen, err := s.attempts.SeenQuestionIDs(ctx, studentID)
	if err != nil {
		return nil, apperror.Upstream("failed to load attempted questions", err)
	}
	picked, err := s.questions.FindUnseenBySubject(ctx, subjectID, seen, s.size)
	if err != nil {
		return nil, apperror.Upstream("failed to select questions", err)
	}
	if len(picked) == 0 {
		log.Info().Uint("studentID", studentID).Uint("subjectID", subjectID).Msg("Question bank exhausted")
		return &dto.DailySetResponse{
			Status:    dto.DailySetBankExhausted,
			Date:      today,
			SubjectID: &subjectID,
			Questions: []dto.DailyQuestionResponse{},
		}, nil
	}

	ids := make([]uint, 0, len(picked))
	for _, q := range picked {
		ids = append(ids, q.ID)
	}
	stored, err := s.sets.CreateIfAbsent(ctx, &model.DailyQuestionSet{
		StudentID:   studentID,
		SetDate:     today,
		SubjectID:   subjectID,
		QuestionIDs: ids,
	})
	if err != nil {
		return nil, apperror.Upstream("failed to store daily set", err)
	}
	log.Info().Uint("studentID", studentID).Str("date", today).Int("questions", len(stored.QuestionIDs)).Msg("Daily set generated")
	return s.render(ctx, stored)
}

func (s *dailySetService) CompleteTodaySet(ctx context.Context, studentID uint) (*dto.DailySetResponse, error) {
	today := s.calendar.Today()
	set, err := s.sets.FindByStudentAndDate(ctx, studentID, today)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("no daily set for today")
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load daily set", err)
	}
	if !set.Completed {
		if err := s.complete(ctx, set, false); err != nil {
			return nil, err
		}
		if set, err = s.sets.FindByStudentAndDate(ctx, studentID, today); err != nil {
			return nil, apperror.Upstream("failed to reload daily set", err)
		}
	}
	return s.render(ctx, set)
}

func (s *dailySetService) CompleteIfAnswered(ctx context.Context, studentID uint) error {
	set, err := s.sets.FindByStudentAndDate(ctx, studentID, s.calendar.Today())
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if set.Completed {
		return nil
	}
	return s.complete(ctx, set, true)
}

// complete scores set from the student's attempts. With onlyWhenAnswered it
// leaves a partially answered set untouched.
func (s *dailySetService) complete(ctx context.Context, set *model.DailyQuestionSet, onlyWhenAnswered bool) error {
	attempts, err := s.attempts.FindByStudentAndQuestions(ctx, set.StudentID, set.QuestionIDs)
	if err != nil {
		return apperror.Upstream("failed to load attempts", err)
	}
	if onlyWhenAnswered {
		pending, err := s.unanswered(ctx, set, attempts)
		if err != nil {
			return err
		}
		if pending > 0 {
			return nil
		}
	}
	score := 0
	for _, a := range attempts {
		if a.IsCorrect {
			score++
		}
	}
	if err := s.sets.MarkCompleted(ctx, set.ID, score, s.calendar.Now()); err != nil {
		return apperror.Upstream("failed to complete daily set", err)
	}
	log.Info().Uint("studentID", set.StudentID).Str("date", set.SetDate).Int("score", score).Msg("Daily set completed")
	return nil
}

// unanswered counts the set's questions that still exist and have no attempt.
// Questions deleted after the set was stored can no longer be answered.
func (s *dailySetService) unanswered(ctx context.Context, set *model.DailyQuestionSet, attempts []model.StudentAttempt) (int, error) {
	questions, err := s.questions.FindByIDs(ctx, set.QuestionIDs)
	if err != nil {
		return 0, apperror.Upstream("failed to load daily set questions", err)
	}
	answered := make(map[uint]bool, len(attempts))
	for _, a := range attempts {
		answered[a.QuestionID] = true
	}
	pending := 0
	for _, q := range questions {
		if !answered[q.ID] {
			pending++
		}
	}
	return pending, nil
}

func (s *dailySetService) render(ctx context.Context, set *model.DailyQuestionSet) (*dto.DailySetResponse, error) {
	questions, err := s.questions.FindByIDs(ctx, set.QuestionIDs)
	if err != nil {
		return nil, apperror.Upstream("failed to load daily set questions", err)
	}
	attempts, err := s.attempts.FindByStudentAndQuestions(ctx, set.StudentID, set.QuestionIDs)
	if err != nil {
		return nil, apperror.Upstream("failed to load attempts", err)
	}

	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}
	attemptByQuestion := make(map[uint]*model.StudentAttempt, len(attempts))
	for i := range attempts {
		attemptByQuestion[attempts[i].QuestionID] = &attempts[i]
	}

	subjectID := set.SubjectID
	resp := &dto.DailySetResponse{
		Status:    dto.DailySetReady,
		Date:      set.SetDate,
		SubjectID: &subjectID,
		Questions: make([]dto.DailyQuestionResponse, 0, len(set.QuestionIDs)),
		Completed: set.Completed,
		Score:     set.Score,
	}
	if subject, err := s.subjects.FindByID(ctx, set.SubjectID); err == nil {
		resp.SubjectName = subject.Name
	}

	// stored order is the order the student sees
	for _, id := range set.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			continue
		}
		var item dto.DailyQuestionResponse
		copier.Copy(&item, q)
		item.Difficulty = string(q.Difficulty)
		if a, ok := attemptByQuestion[id]; ok {
			item.Attempt = toAttemptResponse(a, q)
			resp.Answered++
		}
		resp.Questions = append(resp.Questions, item)
	}
	return resp, nil
}
