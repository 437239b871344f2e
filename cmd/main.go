package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailydose/config"
	"github.com/lshigami/dailydose/database"
	_ "github.com/lshigami/dailydose/docs" // Swagger docs
	"github.com/lshigami/dailydose/internal/controller/account"
	"github.com/lshigami/dailydose/internal/controller/admin"
	"github.com/lshigami/dailydose/internal/controller/author"
	"github.com/lshigami/dailydose/internal/controller/student"
	"github.com/lshigami/dailydose/internal/logger"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/lshigami/dailydose/internal/router"
	"github.com/lshigami/dailydose/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// @title Daily Dose Prep API
// @version 1.0
// @description Role-based exam practice: authors curate questions, students get a fixed daily set, answer once, and track streaks and study time.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	app := fx.New(appOptions()...)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func appOptions() []fx.Option {
	return []fx.Option{
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			router.NewGinEngine,
			service.NewCalendar,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSubjectRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewSessionRepository,
			repository.NewDailySetRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewSessionService,
			service.NewAuthService,
			service.NewSubjectService,
			service.NewExplanationDrafter,
			service.NewQuestionService,
			service.NewStudentService,
			service.NewDailySetService,
			service.NewAttemptService,
			service.NewAnalyticsService,
		),

		// API Controllers Layer
		fx.Provide(
			account.NewAccountController,
			admin.NewAdminController,
			author.NewQuestionController,
			student.NewStudentController,
		),

		fx.Invoke(setupLogging),
		fx.Invoke(database.Migrate),
		fx.Invoke(bootstrapSuperAdmin),
		fx.Invoke(router.RegisterRoutes),
		fx.Invoke(startServer),
	}
}

func setupLogging(cfg *config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
}

func bootstrapSuperAdmin(lc fx.Lifecycle, cfg *config.Config, auth service.AuthService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return auth.BootstrapSuperAdmin(ctx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword)
		},
	})
}

// startServer manages the HTTP server lifecycle.
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Daily Dose Prep API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
