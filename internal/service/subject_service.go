package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/rs/zerolog/log"
)

type SubjectService interface {
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	CreateSubject(ctx context.Context, req dto.SubjectRequest) (*dto.SubjectResponse, error)
	UpdateSubject(ctx context.Context, id uint, req dto.SubjectRequest) (*dto.SubjectResponse, error)
	DeleteSubject(ctx context.Context, id uint) error
}

type subjectService struct {
	repo repository.SubjectRepository
}

func NewSubjectService(repo repository.SubjectRepository) SubjectService {
	return &subjectService{repo: repo}
}

func (s *subjectService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.FindAllWithQuestionCount(ctx)
	if err != nil {
		return nil, apperror.Upstream("failed to list subjects", err)
	}
	resp := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sc := range subjects {
		var item dto.SubjectResponse
		copier.Copy(&item, &sc.Subject)
		item.QuestionCount = sc.QuestionCount
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *subjectService) CreateSubject(ctx context.Context, req dto.SubjectRequest) (*dto.SubjectResponse, error) {
	subject := model.Subject{}
	copier.Copy(&subject, &req)
	trimSubject(&subject)

	if err := s.repo.Create(ctx, &subject); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("a subject with this name already exists")
		}
		log.Error().Err(err).Msg("Failed to create subject")
		return nil, apperror.Upstream("failed to create subject", err)
	}
	log.Info().Uint("subjectID", subject.ID).Str("name", subject.Name).Msg("Subject created")

	var resp dto.SubjectResponse
	copier.Copy(&resp, &subject)
	return &resp, nil
}

func (s *subjectService) UpdateSubject(ctx context.Context, id uint, req dto.SubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("subject not found")
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load subject", err)
	}

	subject.Name = req.Name
	subject.ExamCategory = req.ExamCategory
	subject.Description = req.Description
	trimSubject(subject)

	if err := s.repo.Update(ctx, subject); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("a subject with this name already exists")
		}
		return nil, apperror.Upstream("failed to update subject", err)
	}

	count, err := s.repo.CountQuestions(ctx, id)
	if err != nil {
		return nil, apperror.Upstream("failed to count questions", err)
	}
	var resp dto.SubjectResponse
	copier.Copy(&resp, subject)
	resp.QuestionCount = int(count)
	return &resp, nil
}

// DeleteSubject refuses to delete a subject that questions still reference.
func (s *subjectService) DeleteSubject(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("subject not found")
		}
		return apperror.Upstream("failed to load subject", err)
	}
	count, err := s.repo.CountQuestions(ctx, id)
	if err != nil {
		return apperror.Upstream("failed to count questions", err)
	}
	if count > 0 {
		return apperror.Conflict("subject still has questions")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("subject not found")
		}
		return apperror.Upstream("failed to delete subject", err)
	}
	log.Info().Uint("subjectID", id).Msg("Subject deleted")
	return nil
}

func trimSubject(subject *model.Subject) {
	subject.Name = strings.TrimSpace(subject.Name)
	subject.ExamCategory = strings.TrimSpace(subject.ExamCategory)
	subject.Description = strings.TrimSpace(subject.Description)
}
