package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/testutil"
)

func TestEndSession(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, dto.RegisterRequest{Email: "s@example.com", Password: "password1", FullName: "S"}); err != nil {
		t.Fatal(err)
	}
	result, err := f.auth.Login(ctx, dto.LoginRequest{Email: "s@example.com", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}
	userID := result.User.ID

	f.clock.Advance(25 * time.Minute)
	ended, err := f.sessions.EndSession(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if !ended.Ended || ended.Session == nil || ended.Session.TotalDurationSeconds != 1500 || ended.Session.IsActive {
		t.Fatalf("EndSession() = %+v, want 1500s closed session", ended.Session)
	}

	// no active session: totals are returned unchanged
	f.clock.Advance(time.Hour)
	again, err := f.sessions.EndSession(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Ended || again.Session == nil || again.Session.TotalDurationSeconds != 1500 {
		t.Errorf("second EndSession() = %+v, want unchanged totals", again)
	}

	// logging in again the same day reopens the row and keeps the total
	if _, err := f.auth.Login(ctx, dto.LoginRequest{Email: "s@example.com", Password: "password1"}); err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(10 * time.Minute)
	third, err := f.sessions.EndSession(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if third.Session.TotalDurationSeconds != 2100 {
		t.Errorf("total after second login = %d, want 2100", third.Session.TotalDurationSeconds)
	}

	var rows int64
	f.db.Model(&model.UserSession{}).Count(&rows)
	if rows != 1 {
		t.Errorf("session rows = %d, want 1 per day", rows)
	}
}

func TestEndSessionWithoutLogin(t *testing.T) {
	f := newFixture(t, 10)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)

	resp, err := f.sessions.EndSession(context.Background(), student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Ended || resp.Session != nil {
		t.Errorf("EndSession() = %+v, want a no-op", resp)
	}
}

func TestAnalyticsForFreshStudent(t *testing.T) {
	f := newFixture(t, 10)
	student := testutil.CreateUser(t, f.db, "s@example.com", model.RoleStudent)

	a, err := f.analytics.GetAnalytics(context.Background(), student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a.PrimarySubjectID != nil || len(a.Subjects) != 0 || a.TotalAttempts != 0 || a.Accuracy != 0 ||
		a.CurrentStreak != 0 || a.TodaySeconds != 0 || a.TotalSessionSeconds != 0 || a.DailySetsCompleted != 0 ||
		len(a.RecentSessions) != 0 {
		t.Errorf("GetAnalytics() = %+v, want all zero", a)
	}
}

func TestAnalyticsAggregates(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, dto.RegisterRequest{Email: "s@example.com", Password: "password1", FullName: "S"}); err != nil {
		t.Fatal(err)
	}
	result, err := f.auth.Login(ctx, dto.LoginRequest{Email: "s@example.com", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}
	studentID := result.User.ID
	author := testutil.CreateUser(t, f.db, "a@example.com", model.RoleQAuthor)
	subject := testutil.CreateSubject(t, f.db, "Algorithms")
	other := testutil.CreateSubject(t, f.db, "Networks")
	testutil.CreateQuestions(t, f.db, subject.ID, author.ID, 2)
	stray := testutil.CreateQuestions(t, f.db, other.ID, author.ID, 1)[0]
	selectSubject(t, f, studentID, subject.ID)

	set, err := f.daily.GetOrCreateTodaySet(ctx, studentID)
	if err != nil {
		t.Fatal(err)
	}
	for i, q := range set.Questions {
		option := []string{"A", "D"}[i]
		if _, err := f.attempts.SubmitAnswer(ctx, studentID, dto.SubmitAnswerRequest{QuestionID: q.ID, SelectedOption: option, TimeSpentSeconds: 40}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.attempts.SubmitAnswer(ctx, studentID, dto.SubmitAnswerRequest{QuestionID: stray.ID, SelectedOption: "A", TimeSpentSeconds: 5}); err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(10 * time.Minute)

	a, err := f.analytics.GetAnalytics(ctx, studentID)
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalAttempts != 3 || a.CorrectAttempts != 2 {
		t.Errorf("attempts = %d/%d, want 2/3", a.CorrectAttempts, a.TotalAttempts)
	}
	if len(a.Subjects) != 1 {
		t.Fatalf("subjects = %+v, want only the primary subject", a.Subjects)
	}
	s := a.Subjects[0]
	if s.SubjectID != subject.ID || s.Name != "Algorithms" || s.Attempted != 2 || s.Correct != 1 || s.Accuracy != 0.5 || s.TimeSpentSeconds != 80 {
		t.Errorf("subject analytics = %+v", s)
	}
	if a.CurrentStreak != 1 || a.DailySetsCompleted != 1 || a.SessionDays != 1 {
		t.Errorf("streak %d, sets %d, days %d; want 1, 1, 1", a.CurrentStreak, a.DailySetsCompleted, a.SessionDays)
	}
	if a.TodaySeconds != 600 {
		t.Errorf("todaySeconds = %d, want 600 for the open session", a.TodaySeconds)
	}
}
