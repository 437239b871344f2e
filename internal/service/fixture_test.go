package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/dailydose/config"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/lshigami/dailydose/internal/service"
	"github.com/lshigami/dailydose/internal/testutil"
	"gorm.io/gorm"
)

type stubDrafter struct {
	draft string
	err   error
}

func (d *stubDrafter) Draft(ctx context.Context, q *model.Question, subjectName string) (string, error) {
	return d.draft, d.err
}

type fixture struct {
	db    *gorm.DB
	clock *testutil.Clock
	cfg   *config.Config

	users     repository.UserRepository
	sessRepo  repository.SessionRepository
	setRepo   repository.DailySetRepository
	auth      service.AuthService
	sessions  service.SessionService
	subjects  service.SubjectService
	questions service.QuestionService
	students  service.StudentService
	daily     service.DailySetService
	attempts  service.AttemptService
	analytics service.AnalyticsService
	drafter   *stubDrafter
}

func newFixture(t *testing.T, setSize int) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	clock := &testutil.Clock{Current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	cfg := &config.Config{
		Auth: config.Auth{JWTSecret: "test-secret", CookieName: "dd_session", SessionTTL: time.Hour},
		App:  config.App{Timezone: "UTC", DailySetSize: setSize},
	}
	cal := service.NewFixedCalendar(clock.Now, time.UTC)

	users := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	sessRepo := repository.NewSessionRepository(db)
	setRepo := repository.NewDailySetRepository(db)

	f := &fixture{db: db, clock: clock, cfg: cfg, users: users, sessRepo: sessRepo, setRepo: setRepo, drafter: &stubDrafter{}}
	f.sessions = service.NewSessionService(users, sessRepo, cal)
	f.auth = service.NewAuthService(users, f.sessions, cal, cfg)
	f.subjects = service.NewSubjectService(subjectRepo)
	f.questions = service.NewQuestionService(questionRepo, subjectRepo, f.drafter)
	f.students = service.NewStudentService(users, f.subjects, subjectRepo)
	f.daily = service.NewDailySetService(users, subjectRepo, questionRepo, attemptRepo, setRepo, cal, cfg)
	f.attempts = service.NewAttemptService(attemptRepo, questionRepo, f.daily, cal)
	f.analytics = service.NewAnalyticsService(users, subjectRepo, attemptRepo, sessRepo, setRepo, cal)
	return f
}

func wantKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", kind)
	}
	if got := apperror.KindOf(err); got != kind {
		t.Fatalf("error kind = %v (%v), want %v", got, err, kind)
	}
}
