package service

import (
	"context"
	"errors"

	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/rs/zerolog/log"
)

type StudentService interface {
	ListSubjects(ctx context.Context, studentID uint) (*dto.StudentSubjectsResponse, error)
	// SelectPrimarySubject sets the student's primary subject. It can be set
	// once; repeating the same choice succeeds, a different one conflicts.
	SelectPrimarySubject(ctx context.Context, studentID, subjectID uint) (*dto.StudentSubjectsResponse, error)
}

type studentService struct {
	users    repository.UserRepository
	subjects SubjectService
	subRepo  repository.SubjectRepository
}

func NewStudentService(users repository.UserRepository, subjects SubjectService, subRepo repository.SubjectRepository) StudentService {
	return &studentService{users: users, subjects: subjects, subRepo: subRepo}
}

func (s *studentService) ListSubjects(ctx context.Context, studentID uint) (*dto.StudentSubjectsResponse, error) {
	user, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, apperror.Upstream("failed to load student", err)
	}
	subjects, err := s.subjects.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StudentSubjectsResponse{PrimarySubjectID: user.PrimarySubjectID, Subjects: subjects}, nil
}

func (s *studentService) SelectPrimarySubject(ctx context.Context, studentID, subjectID uint) (*dto.StudentSubjectsResponse, error) {
	if _, err := s.subRepo.FindByID(ctx, subjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Validation("subject does not exist", map[string]string{"subjectId": "unknown subject"})
		}
		return nil, apperror.Upstream("failed to load subject", err)
	}

	updated, err := s.users.SetPrimarySubjectOnce(ctx, studentID, subjectID)
	if err != nil {
		return nil, apperror.Upstream("failed to set primary subject", err)
	}
	if !updated {
		user, err := s.users.FindByID(ctx, studentID)
		if err != nil {
			return nil, apperror.Upstream("failed to load student", err)
		}
		if user.PrimarySubjectID == nil || *user.PrimarySubjectID != subjectID {
			return nil, apperror.Conflict("primary subject is already selected and cannot be changed")
		}
	} else {
		log.Info().Uint("studentID", studentID).Uint("subjectID", subjectID).Msg("Primary subject selected")
	}
	return s.ListSubjects(ctx, studentID)
}
