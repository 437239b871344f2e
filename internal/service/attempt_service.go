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

type AttemptService interface {
	// SubmitAnswer records a student's single attempt at a question. A repeat
	// submission returns the stored attempt with AlreadyAttempted set.
	SubmitAnswer(ctx context.Context, studentID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
}

type attemptService struct {
	attempts  repository.AttemptRepository
	questions repository.QuestionRepository
	dailySets DailySetService
	calendar  *Calendar
}

func NewAttemptService(attempts repository.AttemptRepository, questions repository.QuestionRepository, dailySets DailySetService, calendar *Calendar) AttemptService {
	return &attemptService{attempts: attempts, questions: questions, dailySets: dailySets, calendar: calendar}
}

func (s *attemptService) SubmitAnswer(ctx context.Context, studentID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	question, err := s.questions.FindByID(ctx, req.QuestionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errQuestionNotFound
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load question", err)
	}

	attempt := model.StudentAttempt{
		StudentID:        studentID,
		QuestionID:       question.ID,
		SelectedOption:   req.SelectedOption,
		IsCorrect:        req.SelectedOption == question.CorrectOption,
		SubjectID:        question.SubjectID,
		TimeSpentSeconds: req.TimeSpentSeconds,
		AttemptedAt:      s.calendar.Now(),
	}
	err = s.attempts.Create(ctx, &attempt)
	if errors.Is(err, repository.ErrDuplicate) {
		existing, findErr := s.attempts.FindByStudentAndQuestion(ctx, studentID, question.ID)
		if findErr != nil {
			return nil, apperror.Upstream("failed to load existing attempt", findErr)
		}
		log.Debug().Uint("studentID", studentID).Uint("questionID", question.ID).Msg("Question already attempted")
		return &dto.SubmitAnswerResponse{Attempt: *toAttemptResponse(existing, question), AlreadyAttempted: true}, nil
	}
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Uint("questionID", question.ID).Msg("Failed to record attempt")
		return nil, apperror.Upstream("failed to record attempt", err)
	}
	log.Info().Uint("studentID", studentID).Uint("questionID", question.ID).Bool("correct", attempt.IsCorrect).Msg("Attempt recorded")

	if err := s.dailySets.CompleteIfAnswered(ctx, studentID); err != nil {
		log.Warn().Err(err).Uint("studentID", studentID).Msg("Failed to auto-complete daily set")
	}
	return &dto.SubmitAnswerResponse{Attempt: *toAttemptResponse(&attempt, question)}, nil
}

// toAttemptResponse reveals the answer and explanation alongside the attempt.
func toAttemptResponse(a *model.StudentAttempt, q *model.Question) *dto.AttemptResponse {
	var resp dto.AttemptResponse
	copier.Copy(&resp, a)
	if q != nil {
		resp.CorrectOption = q.CorrectOption
		resp.Explanation = q.Explanation
	}
	return &resp
}
