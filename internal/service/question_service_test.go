package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/service"
	"github.com/lshigami/dailydose/internal/testutil"
)

func questionRequest(subjectID uint, content string) dto.QuestionRequest {
	return dto.QuestionRequest{
		Title:         "Complexity",
		Content:       content,
		OptionA:       "O(n)",
		OptionB:       "O(log n)",
		OptionC:       "O(n log n)",
		OptionD:       "O(1)",
		CorrectOption: "B",
		Explanation:   "Binary search halves the range each step.",
		Difficulty:    "MEDIUM",
		SubjectID:     subjectID,
	}
}

func TestCreateQuestion(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")

	req := questionRequest(subject.ID, "Binary search runs in?")
	q, err := f.questions.CreateQuestion(ctx, author.ID, req)
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}
	wantHash := service.DedupeHash(req.Content, req.OptionA, req.OptionB, req.OptionC, req.OptionD, subject.ID)
	if q.DedupeHash != wantHash || q.CreatedBy != author.ID {
		t.Errorf("CreateQuestion() = %+v", q)
	}
	if q.ExamCategory != subject.ExamCategory {
		t.Errorf("exam category = %q, want subject default %q", q.ExamCategory, subject.ExamCategory)
	}

	_, err = f.questions.CreateQuestion(ctx, author.ID, req)
	wantKind(t, err, apperror.KindConflict)

	near := req
	near.Content = "Binary search runs in!"
	if _, err := f.questions.CreateQuestion(ctx, author.ID, near); err != nil {
		t.Errorf("CreateQuestion() with one character changed error = %v", err)
	}

	req.SubjectID = 4242
	_, err = f.questions.CreateQuestion(ctx, author.ID, req)
	wantKind(t, err, apperror.KindValidation)
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Fields["subjectId"] == "" {
		t.Errorf("unknown subject error = %v, want a subjectId field error", err)
	}
}

func TestQuestionOwnership(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner@example.com", model.RoleQAuthor)
	other := testutil.CreateUser(t, f.db, "other@example.com", model.RoleQAuthor)
	admin := testutil.CreateUser(t, f.db, "admin@example.com", model.RoleSuperAdmin)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")

	q, err := f.questions.CreateQuestion(ctx, owner.ID, questionRequest(subject.ID, "Q1"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.questions.UpdateQuestion(ctx, other.ID, q.ID, questionRequest(subject.ID, "hijacked"))
	wantKind(t, err, apperror.KindNotFound)
	wantKind(t, f.questions.DeleteQuestion(ctx, other.ID, q.ID), apperror.KindNotFound)
	_, err = f.questions.GetQuestion(ctx, service.Caller{ID: other.ID, Role: model.RoleQAuthor}, q.ID)
	wantKind(t, err, apperror.KindNotFound)

	if _, err := f.questions.GetQuestion(ctx, service.Caller{ID: admin.ID, Role: model.RoleSuperAdmin}, q.ID); err != nil {
		t.Errorf("super admin GetQuestion() error = %v", err)
	}

	updated, err := f.questions.UpdateQuestion(ctx, owner.ID, q.ID, questionRequest(subject.ID, "Q1 revised"))
	if err != nil {
		t.Fatal(err)
	}
	if updated.Content != "Q1 revised" || updated.DedupeHash == q.DedupeHash {
		t.Errorf("UpdateQuestion() = %+v, want new content and hash", updated)
	}

	if err := f.questions.DeleteQuestion(ctx, owner.ID, q.ID); err != nil {
		t.Fatal(err)
	}
	wantKind(t, f.questions.DeleteQuestion(ctx, owner.ID, q.ID), apperror.KindNotFound)
}

func TestUpdateQuestionDuplicate(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner@example.com", model.RoleQAuthor)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")

	if _, err := f.questions.CreateQuestion(ctx, owner.ID, questionRequest(subject.ID, "Q1")); err != nil {
		t.Fatal(err)
	}
	q2, err := f.questions.CreateQuestion(ctx, owner.ID, questionRequest(subject.ID, "Q2"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.questions.UpdateQuestion(ctx, owner.ID, q2.ID, questionRequest(subject.ID, "Q1"))
	wantKind(t, err, apperror.KindConflict)

	// saving a question unchanged is not a self-collision
	if _, err := f.questions.UpdateQuestion(ctx, owner.ID, q2.ID, questionRequest(subject.ID, "Q2")); err != nil {
		t.Errorf("UpdateQuestion() unchanged error = %v", err)
	}
}

func TestListQuestionsByRole(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	a1 := testutil.CreateUser(t, f.db, "a1@example.com", model.RoleQAuthor)
	a2 := testutil.CreateUser(t, f.db, "a2@example.com", model.RoleQAuthor)
	s1 := testutil.CreateSubject(t, f.db, "Algorithms")
	s2 := testutil.CreateSubject(t, f.db, "Networks")
	testutil.CreateQuestions(t, f.db, s1.ID, a1.ID, 2)
	testutil.CreateQuestions(t, f.db, s2.ID, a2.ID, 3)

	own, err := f.questions.ListQuestions(ctx, service.Caller{ID: a1.ID, Role: model.RoleQAuthor}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 2 {
		t.Errorf("author sees %d questions, want 2", len(own))
	}

	admin := service.Caller{ID: 99, Role: model.RoleSuperAdmin}
	all, err := f.questions.ListQuestions(ctx, admin, nil)
	if err != nil {
		t.Fatal(err)
	}
	filtered, err := f.questions.ListQuestions(ctx, admin, &s2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 || len(filtered) != 3 {
		t.Errorf("admin sees %d (filtered %d), want 5 (3)", len(all), len(filtered))
	}
	for i, q := range filtered {
		if q.SubjectID != s2.ID {
			t.Errorf("filtered[%d] is in subject %d, want %d", i, q.SubjectID, s2.ID)
		}
		if i > 0 && q.ID < filtered[i-1].ID {
			t.Errorf("filtered listing is not in bank order: %d after %d", q.ID, filtered[i-1].ID)
		}
	}
}

func TestDraftExplanation(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner@example.com", model.RoleQAuthor)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	q, err := f.questions.CreateQuestion(ctx, owner.ID, questionRequest(subject.ID, "Q1"))
	if err != nil {
		t.Fatal(err)
	}

	f.drafter.draft = "Because halving."
	draft, err := f.questions.DraftExplanation(ctx, owner.ID, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if draft.Draft != "Because halving." || draft.QuestionID != q.ID {
		t.Errorf("DraftExplanation() = %+v", draft)
	}

	f.drafter.err = service.ErrDrafterDisabled
	_, err = f.questions.DraftExplanation(ctx, owner.ID, q.ID)
	wantKind(t, err, apperror.KindUnavailable)
}
