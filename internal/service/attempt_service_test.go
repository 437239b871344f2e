package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/testutil"
)

func TestSubmitAnswerIsIdempotent(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	q := testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 1)[0]

	first, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: "A", TimeSpentSeconds: 30})
	if err != nil {
		t.Fatal(err)
	}
	if first.AlreadyAttempted || !first.Attempt.IsCorrect || first.Attempt.SubjectID != subject.ID {
		t.Errorf("first submission = %+v", first)
	}
	if first.Attempt.CorrectOption != "A" || first.Attempt.Explanation != "because" {
		t.Errorf("first submission should reveal the answer, got %+v", first.Attempt)
	}

	// changing the key afterwards does not regrade the stored attempt
	if err := f.db.Model(&model.Question{}).Where("id = ?", q.ID).Update("correct_option", "B").Error; err != nil {
		t.Fatal(err)
	}
	second, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.AlreadyAttempted {
		t.Error("second submission should report alreadyAttempted")
	}
	if second.Attempt.ID != first.Attempt.ID || second.Attempt.SelectedOption != "A" || !second.Attempt.IsCorrect {
		t.Errorf("second submission = %+v, want the original attempt", second.Attempt)
	}

	var count int64
	f.db.Model(&model.StudentAttempt{}).Count(&count)
	if count != 1 {
		t.Errorf("stored attempts = %d, want 1", count)
	}
}

func TestSubmitAnswerConcurrent(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	q := testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 1)[0]

	const n = 8
	var wg sync.WaitGroup
	results := make([]*dto.SubmitAnswerResponse, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: "A"})
		}(i)
	}
	wg.Wait()

	fresh := 0
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("submission %d error = %v", i, errs[i])
		}
		if !results[i].AlreadyAttempted {
			fresh++
		}
	}
	if fresh != 1 {
		t.Errorf("%d submissions created an attempt, want exactly 1", fresh)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	f := newFixture(t, 10)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	_, err := f.attempts.SubmitAnswer(context.Background(), student.ID, dto.SubmitAnswerRequest{QuestionID: 999, SelectedOption: "A"})
	wantKind(t, err, apperror.KindNotFound)
}
