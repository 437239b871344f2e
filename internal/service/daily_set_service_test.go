package service_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/testutil"
)

func questionIDs(set *dto.DailySetResponse) []uint {
	ids := make([]uint, 0, len(set.Questions))
	for _, q := range set.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func selectSubject(t *testing.T, f *fixture, studentID, subjectID uint) {
	t.Helper()
	if _, err := f.students.SelectPrimarySubject(context.Background(), studentID, subjectID); err != nil {
		t.Fatalf("SelectPrimarySubject() error = %v", err)
	}
}

func TestDailySetWithoutSubject(t *testing.T) {
	f := newFixture(t, 10)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)

	set, err := f.daily.GetOrCreateTodaySet(context.Background(), student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if set.Status != dto.DailySetNoSubjectSelected || len(set.Questions) != 0 {
		t.Errorf("set = %+v, want NO_SUBJECT_SELECTED with no questions", set)
	}
}

func TestDailySetIsStableWithinDay(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	questions := testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 12)
	selectSubject(t, f, student.ID, subject.ID)

	first, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != dto.DailySetReady || len(first.Questions) != 10 {
		t.Fatalf("first set = %s with %d questions, want READY with 10", first.Status, len(first.Questions))
	}
	for i, q := range first.Questions {
		if q.ID != questions[i].ID {
			t.Errorf("question %d = %d, want oldest-first %d", i, q.ID, questions[i].ID)
		}
		if q.Attempt != nil {
			t.Errorf("question %d should not carry an attempt yet", q.ID)
		}
	}

	// questions added later in the day do not change today's set
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 3)
	f.clock.Advance(5 * time.Hour)
	again, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(questionIDs(first), questionIDs(again)) {
		t.Errorf("set changed within the day: %v then %v", questionIDs(first), questionIDs(again))
	}

	var stored int64
	f.db.Model(&model.DailyQuestionSet{}).Count(&stored)
	if stored != 1 {
		t.Errorf("stored sets = %d, want 1", stored)
	}
}

func TestDailySetExcludesAttemptedQuestions(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 12)
	selectSubject(t, f, student.ID, subject.ID)

	day1, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	answered := map[uint]bool{}
	for _, q := range day1.Questions[:3] {
		if _, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: "A"}); err != nil {
			t.Fatal(err)
		}
		answered[q.ID] = true
	}

	f.clock.Advance(24 * time.Hour)
	day2, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if day2.Date != "2026-03-11" {
		t.Errorf("day2 date = %s", day2.Date)
	}
	if len(day2.Questions) != 9 {
		t.Errorf("day2 has %d questions, want the 9 unattempted ones", len(day2.Questions))
	}
	for _, q := range day2.Questions {
		if answered[q.ID] {
			t.Errorf("question %d was already attempted but reappeared", q.ID)
		}
	}
}

func TestDailySetBankExhausted(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	questions := testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 2)
	selectSubject(t, f, student.ID, subject.ID)

	for _, q := range questions {
		if _, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: "B"}); err != nil {
			t.Fatal(err)
		}
	}
	set, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if set.Status != dto.DailySetBankExhausted || len(set.Questions) != 0 {
		t.Errorf("set = %+v, want QUESTION_BANK_EXHAUSTED", set)
	}
	var stored int64
	f.db.Model(&model.DailyQuestionSet{}).Count(&stored)
	if stored != 0 {
		t.Errorf("exhausted set was persisted")
	}

	// a new question makes the bank usable again the same day
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 1)
	set, err = f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if set.Status != dto.DailySetReady || len(set.Questions) != 1 {
		t.Errorf("set = %s with %d questions, want READY with 1", set.Status, len(set.Questions))
	}
}

func TestDailySetRevealsAnswersOnlyAfterAttempt(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 3)
	selectSubject(t, f, student.ID, subject.ID)

	set, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	target := set.Questions[1].ID
	if _, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: target, SelectedOption: "C"}); err != nil {
		t.Fatal(err)
	}

	set, err = f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if set.Answered != 1 || set.Completed {
		t.Errorf("answered = %d, completed = %v; want 1, false", set.Answered, set.Completed)
	}
	for _, q := range set.Questions {
		switch {
		case q.ID == target && (q.Attempt == nil || q.Attempt.CorrectOption != "A" || q.Attempt.IsCorrect):
			t.Errorf("answered question %d attempt = %+v", q.ID, q.Attempt)
		case q.ID != target && q.Attempt != nil:
			t.Errorf("unanswered question %d revealed an attempt", q.ID)
		}
	}
}

func TestDailySetCompletes(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 5)
	selectSubject(t, f, student.ID, subject.ID)

	_, err := f.daily.CompleteTodaySet(ctx, student.ID)
	wantKind(t, err, apperror.KindNotFound)

	set, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Questions) != 3 {
		t.Fatalf("set size = %d, want 3", len(set.Questions))
	}
	answers := []string{"A", "B", "A"}
	for i, q := range set.Questions {
		if _, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: answers[i]}); err != nil {
			t.Fatal(err)
		}
	}

	set, err = f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !set.Completed || set.Score == nil || *set.Score != 2 {
		t.Fatalf("set completed = %v score = %v, want auto-completed with score 2", set.Completed, set.Score)
	}

	again, err := f.daily.CompleteTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Score == nil || *again.Score != 2 {
		t.Errorf("CompleteTodaySet() score = %v, want unchanged 2", again.Score)
	}
}

func TestCompleteTodaySetCountsUnansweredAsWrong(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 4)
	selectSubject(t, f, student.ID, subject.ID)

	set, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: set.Questions[0].ID, SelectedOption: "A"}); err != nil {
		t.Fatal(err)
	}

	done, err := f.daily.CompleteTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !done.Completed || done.Score == nil || *done.Score != 1 {
		t.Errorf("CompleteTodaySet() = completed %v score %v, want true 1", done.Completed, done.Score)
	}
}

func TestDailySetCompletesAfterQuestionDeleted(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 3)
	selectSubject(t, f, student.ID, subject.ID)

	set, err := f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.questions.DeleteQuestion(ctx, author.ID, set.Questions[2].ID); err != nil {
		t.Fatal(err)
	}
	for _, q := range set.Questions[:2] {
		if _, err := f.attempts.SubmitAnswer(ctx, student.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: "A"}); err != nil {
			t.Fatal(err)
		}
	}

	set, err = f.daily.GetOrCreateTodaySet(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !set.Completed || set.Score == nil || *set.Score != 2 {
		t.Errorf("set completed = %v score = %v, want auto-completed with score 2", set.Completed, set.Score)
	}
	if len(set.Questions) != 2 {
		t.Errorf("rendered %d questions, want the 2 that still exist", len(set.Questions))
	}
}
