package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/rs/zerolog/log"
)

var errQuestionNotFound = apperror.NotFound("question not found")

type QuestionService interface {
	CreateQuestion(ctx context.Context, authorID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	// GetQuestion returns a question to its author or to a super admin.
	GetQuestion(ctx context.Context, caller Caller, id uint) (*dto.QuestionResponse, error)
	// ListQuestions returns the author's own questions, or every question
	// (optionally filtered by subject) for a super admin.
	ListQuestions(ctx context.Context, caller Caller, subjectID *uint) ([]dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, authorID, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, authorID, id uint) error
	DraftExplanation(ctx context.Context, authorID, id uint) (*dto.ExplanationDraftResponse, error)
}

// subjectListingLimit caps a super admin's per-subject question listing.
const subjectListingLimit = 1000

type questionService struct {
	repo        repository.QuestionRepository
	subjectRepo repository.SubjectRepository
	drafter     ExplanationDrafter
}

func NewQuestionService(repo repository.QuestionRepository, subjectRepo repository.SubjectRepository, drafter ExplanationDrafter) QuestionService {
	return &questionService{repo: repo, subjectRepo: subjectRepo, drafter: drafter}
}

// DedupeHash fingerprints a question by its text, options and subject. Two
// questions with the same hash are duplicates.
func DedupeHash(content, optionA, optionB, optionC, optionD string, subjectID uint) string {
	h := sha256.New()
	h.Write([]byte(content))
	h.Write([]byte(optionA))
	h.Write([]byte(optionB))
	h.Write([]byte(optionC))
	h.Write([]byte(optionD))
	h.Write([]byte(strconv.FormatUint(uint64(subjectID), 10)))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *questionService) CreateQuestion(ctx context.Context, authorID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	subject, err := s.checkSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	question := model.Question{}
	applyQuestionRequest(&question, req)
	if question.ExamCategory == "" {
		question.ExamCategory = subject.ExamCategory
	}
	question.CreatedBy = authorID
	question.DedupeHash = DedupeHash(question.Content, question.OptionA, question.OptionB, question.OptionC, question.OptionD, question.SubjectID)

	if _, err := s.repo.FindByHash(ctx, question.DedupeHash); err == nil {
		return nil, apperror.Conflict("an identical question already exists in this subject")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Upstream("failed to check for duplicates", err)
	}

	if err := s.repo.Create(ctx, &question); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("an identical question already exists in this subject")
		}
		log.Error().Err(err).Uint("authorID", authorID).Msg("Failed to create question")
		return nil, apperror.Upstream("failed to create question", err)
	}
	log.Info().Uint("questionID", question.ID).Uint("authorID", authorID).Uint("subjectID", question.SubjectID).Msg("Question created")
	return toQuestionResponse(&question), nil
}

func (s *questionService) GetQuestion(ctx context.Context, caller Caller, id uint) (*dto.QuestionResponse, error) {
	question, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errQuestionNotFound
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load question", err)
	}
	if caller.Role != model.RoleSuperAdmin && question.CreatedBy != caller.ID {
		return nil, errQuestionNotFound
	}
	return toQuestionResponse(question), nil
}

func (s *questionService) ListQuestions(ctx context.Context, caller Caller, subjectID *uint) ([]dto.QuestionResponse, error) {
	var (
		questions []model.Question
		err       error
	)
	switch {
	case caller.Role == model.RoleSuperAdmin && subjectID != nil:
		questions, err = s.repo.FindBySubject(ctx, *subjectID, subjectListingLimit)
	case caller.Role == model.RoleSuperAdmin:
		questions, err = s.repo.FindAll(ctx)
	default:
		questions, err = s.repo.FindByOwner(ctx, caller.ID)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to list questions", err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, *toQuestionResponse(&questions[i]))
	}
	return resp, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, authorID, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.ownedQuestion(ctx, authorID, id)
	if err != nil {
		return nil, err
	}
	subject, err := s.checkSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	applyQuestionRequest(question, req)
	if question.ExamCategory == "" {
		question.ExamCategory = subject.ExamCategory
	}
	question.DedupeHash = DedupeHash(question.Content, question.OptionA, question.OptionB, question.OptionC, question.OptionD, question.SubjectID)
	if existing, err := s.repo.FindByHash(ctx, question.DedupeHash); err == nil && existing.ID != question.ID {
		return nil, apperror.Conflict("an identical question already exists in this subject")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Upstream("failed to check for duplicates", err)
	}

	if err := s.repo.Update(ctx, question); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("an identical question already exists in this subject")
		}
		return nil, apperror.Upstream("failed to update question", err)
	}
	log.Info().Uint("questionID", id).Uint("authorID", authorID).Msg("Question updated")
	return toQuestionResponse(question), nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, authorID, id uint) error {
	if _, err := s.ownedQuestion(ctx, authorID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errQuestionNotFound
		}
		return apperror.Upstream("failed to delete question", err)
	}
	log.Info().Uint("questionID", id).Uint("authorID", authorID).Msg("Question deleted")
	return nil
}

func (s *questionService) DraftExplanation(ctx context.Context, authorID, id uint) (*dto.ExplanationDraftResponse, error) {
	question, err := s.ownedQuestion(ctx, authorID, id)
	if err != nil {
		return nil, err
	}
	var subjectName string
	if subject, err := s.subjectRepo.FindByID(ctx, question.SubjectID); err == nil {
		subjectName = subject.Name
	}
	draft, err := s.drafter.Draft(ctx, question, subjectName)
	if err != nil {
		return nil, err
	}
	return &dto.ExplanationDraftResponse{QuestionID: question.ID, Draft: draft}, nil
}

// ownedQuestion loads a question and hides it from everyone but its author.
func (s *questionService) ownedQuestion(ctx context.Context, authorID, id uint) (*model.Question, error) {
	question, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errQuestionNotFound
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load question", err)
	}
	if question.CreatedBy != authorID {
		return nil, errQuestionNotFound
	}
	return question, nil
}

func (s *questionService) checkSubject(ctx context.Context, subjectID uint) (*model.Subject, error) {
	subject, err := s.subjectRepo.FindByID(ctx, subjectID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Validation("subject does not exist", map[string]string{"subjectId": "unknown subject"})
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load subject", err)
	}
	return subject, nil
}

func applyQuestionRequest(q *model.Question, req dto.QuestionRequest) {
	q.Title = strings.TrimSpace(req.Title)
	q.Content = req.Content
	q.OptionA = req.OptionA
	q.OptionB = req.OptionB
	q.OptionC = req.OptionC
	q.OptionD = req.OptionD
	q.CorrectOption = req.CorrectOption
	q.Explanation = req.Explanation
	q.Difficulty = model.Difficulty(req.Difficulty)
	q.ExamCategory = strings.TrimSpace(req.ExamCategory)
	q.SubjectID = req.SubjectID
	q.Year = req.Year
	q.Source = req.Source
}

func toQuestionResponse(q *model.Question) *dto.QuestionResponse {
	var resp dto.QuestionResponse
	copier.Copy(&resp, q)
	resp.Difficulty = string(q.Difficulty)
	return &resp
}
